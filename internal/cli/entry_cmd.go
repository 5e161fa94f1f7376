package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tnguyen/foodlog/internal/cli/formatter"
	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/repository"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage food entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryUpdateCmd(app),
		newEntryRemoveCmd(app),
		newEntryMoveCmd(app),
	)

	return cmd
}

// resolveFood turns --fdc or --query into a catalog food. A known FDC id is
// served from the local catalog; otherwise the remote lookup runs and the
// best match wins.
func resolveFood(ctx context.Context, app *App, fdcID int64, query string) (*domain.Food, error) {
	if fdcID != 0 {
		food, err := app.Catalog.Food(ctx, fdcID)
		if err == nil {
			return food, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if query == "" {
			return nil, fmt.Errorf("food %d is not in the catalog; add --query to search for it", fdcID)
		}
	}
	if query == "" {
		return nil, fmt.Errorf("either --fdc or --query is required")
	}
	foods, err := app.Lookup.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("no foods match %q", query)
	}
	if fdcID != 0 {
		for _, f := range foods {
			if f.FDCID == fdcID {
				return f, nil
			}
		}
		return nil, fmt.Errorf("food %d not among the matches for %q", fdcID, query)
	}
	return foods[0], nil
}

func newEntryAddCmd(app *App) *cobra.Command {
	var date, mealName, query string
	var fdcID int64
	var portionIdx, servings int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food to a meal",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()

			food, err := resolveFood(ctx, app, fdcID, query)
			if err != nil {
				return err
			}
			portion := food.DefaultPortion()
			if portionIdx >= 0 {
				if portionIdx >= len(food.Portions) {
					return fmt.Errorf("portion %d out of range; choices:\n%s", portionIdx, formatter.FormatPortionList(food))
				}
				portion = food.Portions[portionIdx]
			}

			plan, err := app.Plans.GetOrCreateMealPlan(ctx, day)
			if err != nil {
				return err
			}
			meal, err := findMeal(plan, mealName)
			if err != nil {
				return err
			}
			entry, err := app.Plans.AddFoodEntry(ctx, meal.ID, food, portion, servings)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s, %s x%d to %s [%s]\n",
				food.Description, portion.Label(), servings, meal.Name, formatter.ShortID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&mealName, "meal", "", "Meal name")
	cmd.Flags().Int64Var(&fdcID, "fdc", 0, "FDC id of the food")
	cmd.Flags().StringVar(&query, "query", "", "Search the food database")
	cmd.Flags().IntVar(&portionIdx, "portion", -1, "Portion index (see 'foodlog food search'; default middle option)")
	cmd.Flags().IntVar(&servings, "servings", 1, "Number of servings")
	_ = cmd.MarkFlagRequired("meal")
	return cmd
}

func newEntryUpdateCmd(app *App) *cobra.Command {
	var date string
	var portionIdx, servings int

	cmd := &cobra.Command{
		Use:   "update <entry-id>",
		Short: "Change an entry's serving size or quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			plan, err := app.Plans.GetMealPlan(ctx, day)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("nothing planned for %s", day.Format(dateLayout))
			}
			entry, err := findEntry(plan, args[0])
			if err != nil {
				return err
			}

			portion := entry.ServingSize
			if portionIdx >= 0 {
				if entry.Food == nil || portionIdx >= len(entry.Food.Portions) {
					return fmt.Errorf("portion %d out of range", portionIdx)
				}
				portion = entry.Food.Portions[portionIdx]
			}
			count := entry.NumberOfServings
			if servings > 0 {
				count = servings
			}
			if err := app.Plans.UpdateFoodEntry(ctx, entry.ID, portion, count); err != nil {
				return err
			}
			fmt.Printf("Updated: %s x%d\n", portion.Label(), count)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&portionIdx, "portion", -1, "New portion index")
	cmd.Flags().IntVar(&servings, "servings", 0, "New number of servings")
	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a food entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			plan, err := app.Plans.GetMealPlan(ctx, day)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("nothing planned for %s", day.Format(dateLayout))
			}
			entry, err := findEntry(plan, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.RemoveFoodEntry(ctx, entry.ID); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newEntryMoveCmd(app *App) *cobra.Command {
	var date, toMeal string
	var pos int

	cmd := &cobra.Command{
		Use:   "move <entry-id>",
		Short: "Move an entry to another meal or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			plan, err := app.Plans.GetMealPlan(ctx, day)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("nothing planned for %s", day.Format(dateLayout))
			}
			entry, err := findEntry(plan, args[0])
			if err != nil {
				return err
			}
			dest := plan.Meal(entry.MealID)
			if toMeal != "" {
				if dest, err = findMeal(plan, toMeal); err != nil {
					return err
				}
			}
			if err := app.Plans.MoveFoodEntry(ctx, entry.ID, dest.ID, pos); err != nil {
				return err
			}
			fmt.Printf("Moved to %s, position %d\n", dest.Name, pos+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&toMeal, "to-meal", "", "Destination meal (default: current meal)")
	cmd.Flags().IntVar(&pos, "pos", 0, "Destination position, 0-based")
	return cmd
}
