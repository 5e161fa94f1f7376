package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tnguyen/foodlog/internal/domain"
)

func samplePlan() *domain.MealPlan {
	food := &domain.Food{
		FDCID:       171688,
		Description: "Apples, raw, with skin",
		Portions: []domain.FoodPortion{
			{Amount: 1, Unit: "cup", Modifier: "slices", GramWeight: 109},
		},
		Nutrients: []domain.FoodNutrient{
			{ID: domain.NutrientCalories, Amount: 52, Unit: "kcal"},
		},
	}
	entry := &domain.FoodEntry{
		ID:               "aabbccdd-0000-0000-0000-000000000000",
		FoodID:           food.FDCID,
		ServingSize:      food.Portions[0],
		NumberOfServings: 2,
		Food:             food,
	}
	meal := &domain.Meal{Name: "Breakfast", FoodEntries: []*domain.FoodEntry{entry}}
	return &domain.MealPlan{
		Date:  time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local),
		Meals: []*domain.Meal{meal},
	}
}

func TestFormatMealPlan(t *testing.T) {
	out := FormatMealPlan(samplePlan(), false)

	assert.Contains(t, out, "SATURDAY, 16 MAR 2024")
	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "Apples, raw, with skin")
	assert.Contains(t, out, "1 cup, slices (109 g)")
	assert.Contains(t, out, "aabbccdd", "entries show their short id")
	assert.Contains(t, out, "TOTALS")
	assert.NotContains(t, out, "VITAMINS")
}

func TestFormatMealPlan_WithMicros(t *testing.T) {
	out := FormatMealPlan(samplePlan(), true)
	assert.Contains(t, out, "VITAMINS")
	assert.Contains(t, out, "MINERALS")
	assert.Contains(t, out, "Vitamin C")
}

func TestFormatMealPlan_EmptyDay(t *testing.T) {
	plan := &domain.MealPlan{Date: time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)}
	out := FormatMealPlan(plan, false)
	assert.Contains(t, out, "No meals planned.")
}

func TestFormatFoodTable(t *testing.T) {
	plan := samplePlan()
	out := FormatFoodTable([]*domain.Food{plan.Meals[0].FoodEntries[0].Food})

	assert.Contains(t, out, "171688")
	assert.Contains(t, out, "Apples, raw, with skin")
	// 52 kcal per 100 g at 109 g.
	assert.Contains(t, out, "56.7")
}

func TestFmtAmount(t *testing.T) {
	assert.Equal(t, "56.7", FmtAmount(56.68))
	assert.Equal(t, "52", FmtAmount(52.0))
	assert.Equal(t, "0", FmtAmount(0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "aabbccdd", ShortID("aabbccdd-0000-0000-0000-000000000000"))
	assert.Equal(t, "plain", ShortID("plain"))
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"A", "Long header"}, [][]string{
		{"x", "y"},
		{"longer cell", "z"},
	})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "Long header")
	assert.Contains(t, out, "longer cell")
}
