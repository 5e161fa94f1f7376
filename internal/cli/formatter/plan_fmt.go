package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tnguyen/foodlog/internal/domain"
)

// FormatMealPlan renders a full day: each meal with its entries, then the
// day's nutrition panel. includeMicros adds the vitamin and mineral sections.
func FormatMealPlan(plan *domain.MealPlan, includeMicros bool) string {
	var b strings.Builder

	b.WriteString(Header(plan.Date.Format("Monday, 2 Jan 2006")))
	b.WriteString("\n")

	if len(plan.Meals) == 0 {
		b.WriteString(Dim("No meals planned.") + "\n")
	}
	for _, meal := range plan.Meals {
		b.WriteString("\n" + Bold(meal.Name))
		cals := meal.TotalNutrient(domain.NutrientCalories)
		b.WriteString(Dim(fmt.Sprintf("  %s kcal", FmtAmount(cals))) + "\n")

		if len(meal.FoodEntries) == 0 {
			b.WriteString(Dim("  (empty)") + "\n")
			continue
		}
		rows := make([][]string, 0, len(meal.FoodEntries))
		for _, e := range meal.FoodEntries {
			desc := ""
			if e.Food != nil {
				desc = e.Food.Description
			}
			rows = append(rows, []string{
				Dim(ShortID(e.ID)),
				desc,
				e.ServingSize.Label(),
				strconv.Itoa(e.NumberOfServings),
				FmtAmount(e.Nutrient(domain.NutrientCalories)),
			})
		}
		b.WriteString(indent(RenderTable([]string{"ID", "Food", "Serving", "Qty", "kcal"}, rows), "  "))
	}

	b.WriteString("\n" + FormatNutrientPanel(plan, includeMicros))
	return b.String()
}

// FormatNutrientPanel renders the day's totals for the core nutrients, and
// optionally the vitamin and mineral breakdowns.
func FormatNutrientPanel(plan *domain.MealPlan, includeMicros bool) string {
	var b strings.Builder
	b.WriteString(Header("Totals") + "\n")
	b.WriteString(nutrientRows(plan, domain.MainNutrients))
	if includeMicros {
		b.WriteString("\n" + Header("Vitamins") + "\n")
		b.WriteString(nutrientRows(plan, domain.Vitamins))
		b.WriteString("\n" + Header("Minerals") + "\n")
		b.WriteString(nutrientRows(plan, domain.Minerals))
	}
	return b.String()
}

func nutrientRows(plan *domain.MealPlan, ids []domain.NutrientID) string {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{
			id.Name(),
			FmtAmount(plan.TotalNutrient(id)) + " " + id.Unit(),
		})
	}
	return RenderTable([]string{"Nutrient", "Amount"}, rows)
}

// ShortID returns the first uuid segment, enough to address an entry on the
// command line.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// FmtAmount formats a nutrient amount with one decimal, dropping a trailing
// ".0".
func FmtAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
