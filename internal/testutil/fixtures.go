package testutil

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tnguyen/foodlog/internal/domain"
)

var testFDCIDCounter atomic.Int64

// MealPlan options
type PlanOption func(*domain.MealPlan)

func WithPlanDate(d time.Time) PlanOption {
	return func(p *domain.MealPlan) {
		p.Date = domain.NormalizeDay(d)
	}
}

func NewTestPlan(opts ...PlanOption) *domain.MealPlan {
	now := time.Now().UTC()
	p := &domain.MealPlan{
		ID:        uuid.New().String(),
		Date:      domain.NormalizeDay(time.Now()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Meal options
type MealOption func(*domain.Meal)

func WithMealIndex(i int) MealOption {
	return func(m *domain.Meal) {
		m.Index = i
	}
}

func NewTestMeal(planID, name string, opts ...MealOption) *domain.Meal {
	now := time.Now().UTC()
	m := &domain.Meal{
		ID:         uuid.New().String(),
		MealPlanID: planID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Food options
type FoodOption func(*domain.Food)

func WithPortions(portions ...domain.FoodPortion) FoodOption {
	return func(f *domain.Food) {
		f.Portions = portions
	}
}

func WithNutrients(nutrients ...domain.FoodNutrient) FoodOption {
	return func(f *domain.Food) {
		f.Nutrients = nutrients
	}
}

func WithUpdatedAt(t time.Time) FoodOption {
	return func(f *domain.Food) {
		f.UpdatedAt = &t
	}
}

// NewTestFood builds a catalog food with one default 100 g portion and a
// calorie amount, enough for most store tests. FDC ids are allocated from
// an atomic counter so fixtures never collide within a test binary.
func NewTestFood(description string, opts ...FoodOption) *domain.Food {
	f := &domain.Food{
		FDCID:       100000 + testFDCIDCounter.Add(1),
		Description: description,
		Portions: []domain.FoodPortion{
			{Amount: 100, Unit: "g", GramWeight: 100},
		},
		Nutrients: []domain.FoodNutrient{
			{ID: domain.NutrientCalories, Amount: 52, Unit: "kcal"},
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FoodEntry options
type EntryOption func(*domain.FoodEntry)

func WithEntryIndex(i int) EntryOption {
	return func(e *domain.FoodEntry) {
		e.Index = i
	}
}

func WithServings(n int) EntryOption {
	return func(e *domain.FoodEntry) {
		e.NumberOfServings = n
	}
}

func NewTestEntry(mealID string, food *domain.Food, opts ...EntryOption) *domain.FoodEntry {
	now := time.Now().UTC()
	e := &domain.FoodEntry{
		ID:               uuid.New().String(),
		MealID:           mealID,
		FoodID:           food.FDCID,
		ServingSize:      food.DefaultPortion(),
		NumberOfServings: 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
