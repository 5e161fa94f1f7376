package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tnguyen/foodlog/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage daily meal plans",
	}

	cmd.AddCommand(
		newPlanShowCmd(app),
		newPlanAddMealCmd(app),
		newPlanReorderCmd(app),
		newPlanCopyCmd(app),
		newPlanCopyLatestCmd(app),
		newPlanPruneCmd(app),
	)

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var date string
	var micros bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's plan with nutrition totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetMealPlan(context.Background(), day)
			if err != nil {
				return err
			}
			if plan == nil {
				fmt.Printf("Nothing planned for %s.\n", day.Format(dateLayout))
				return nil
			}
			fmt.Println(formatter.FormatMealPlan(plan, micros))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&micros, "micros", false, "Include vitamin and mineral totals")
	return cmd
}

func newPlanAddMealCmd(app *App) *cobra.Command {
	var date, name string

	cmd := &cobra.Command{
		Use:   "add-meal",
		Short: "Add a meal to a day's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			plan, err := app.Plans.GetOrCreateMealPlan(ctx, day)
			if err != nil {
				return err
			}
			meal, err := app.Plans.AddMeal(ctx, plan.ID, name)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s to %s (position %d)\n", meal.Name, day.Format(dateLayout), meal.Index+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&name, "name", "", "Meal name, e.g. Breakfast")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPlanReorderCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reorder <meal> [<meal>...]",
		Short: "Reorder a day's meals",
		Long:  "Reorder a day's meals. List every meal name in the desired order.",
		Args:  cobra.MinimumNArgs(1),
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
			ids := make([]string, 0, len(args))
			for _, name := range args {
				meal, err := findMeal(plan, name)
				if err != nil {
					return err
				}
				ids = append(ids, meal.ID)
			}
			if err := app.Plans.ReorderMeals(ctx, plan.ID, ids); err != nil {
				return err
			}
			fmt.Println("Reordered.")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanCopyCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy one day's plan onto another day",
		Long:  "Copy one day's plan onto another day, replacing whatever the target day held.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceDay, err := parseDay(from)
			if err != nil {
				return err
			}
			targetDay, err := parseDay(to)
			if err != nil {
				return err
			}
			ctx := context.Background()
			target, err := app.Plans.GetOrCreateMealPlan(ctx, targetDay)
			if err != nil {
				return err
			}
			if _, err := app.Plans.CopyMealPlan(ctx, sourceDay, target.ID); err != nil {
				return err
			}
			fmt.Printf("Copied %s onto %s\n", sourceDay.Format(dateLayout), targetDay.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Target day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newPlanCopyLatestCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "copy-latest",
		Short: "Copy the most recent other plan onto a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			latest, err := app.Plans.LatestMealPlan(ctx, day)
			if err != nil {
				return err
			}
			if latest == nil {
				fmt.Println("No earlier plan to copy from.")
				return nil
			}
			target, err := app.Plans.GetOrCreateMealPlan(ctx, day)
			if err != nil {
				return err
			}
			if _, err := app.Plans.CopyMealPlan(ctx, latest.Date, target.ID); err != nil {
				return err
			}
			fmt.Printf("Copied %s onto %s\n", latest.Date.Format(dateLayout), day.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target day (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanPruneCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete a day's plan if it holds no entries",
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
				fmt.Printf("Nothing planned for %s.\n", day.Format(dateLayout))
				return nil
			}
			deleted, err := app.Plans.DeleteMealPlanIfEmpty(ctx, plan.ID)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Printf("Deleted the empty plan for %s.\n", day.Format(dateLayout))
			} else {
				fmt.Printf("Plan for %s has entries; kept.\n", day.Format(dateLayout))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	return cmd
}
