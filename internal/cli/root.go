package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/fdc"
	"github.com/tnguyen/foodlog/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Plans   service.PlanService
	Catalog service.CatalogService
	Lookup  *fdc.Searcher
}

// NewRootCmd creates the top-level "foodlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "foodlog",
		Short:         "Meal planner and food diary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newEntryCmd(app),
		newFoodCmd(app),
	)

	return root
}

const dateLayout = "2006-01-02"

// parseDay parses a --date flag, defaulting to today.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return domain.NormalizeDay(time.Now()), nil
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return d, nil
}

// findMeal resolves a meal within the plan by name, case-insensitive.
func findMeal(plan *domain.MealPlan, name string) (*domain.Meal, error) {
	for _, m := range plan.Meals {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no meal named %q on %s (try 'foodlog plan add-meal')", name, plan.Date.Format(dateLayout))
}

// findEntry resolves a food entry within the plan by id prefix.
func findEntry(plan *domain.MealPlan, prefix string) (*domain.FoodEntry, error) {
	var matches []*domain.FoodEntry
	for _, m := range plan.Meals {
		for _, e := range m.FoodEntries {
			if strings.HasPrefix(e.ID, prefix) {
				matches = append(matches, e)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("entry not found: %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("entry id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
