package formatter

import (
	"strconv"

	"github.com/tnguyen/foodlog/internal/domain"
)

// FormatFoodTable renders search results or history: FDC id, description and
// the calorie amount of the default portion.
func FormatFoodTable(foods []*domain.Food) string {
	rows := make([][]string, 0, len(foods))
	for _, f := range foods {
		portion := f.DefaultPortion()
		cals := "-"
		if n := f.Nutrient(domain.NutrientCalories); n != nil {
			cals = FmtAmount(domain.PerServing(n.Amount, portion.GramWeight))
		}
		rows = append(rows, []string{
			strconv.FormatInt(f.FDCID, 10),
			f.Description,
			portion.Label(),
			cals,
		})
	}
	return RenderTable([]string{"FDC ID", "Description", "Default serving", "kcal"}, rows)
}

// FormatPortionList renders a food's portions with their selector indexes.
func FormatPortionList(f *domain.Food) string {
	rows := make([][]string, 0, len(f.Portions))
	for i, p := range f.Portions {
		rows = append(rows, []string{strconv.Itoa(i), p.Label()})
	}
	return RenderTable([]string{"#", "Portion"}, rows)
}
