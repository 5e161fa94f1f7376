package service

import (
	"context"
	"time"

	"github.com/tnguyen/foodlog/internal/domain"
)

// PlanService is the mutation and query surface for the meal-plan graph.
// Every multi-step mutation runs inside a single transaction, so readers
// never observe a half-written plan.
type PlanService interface {
	// GetMealPlan returns the fully loaded plan for the given day, meals and
	// entries ordered by index and catalog foods attached. A missing plan is
	// not an error: the result is nil.
	GetMealPlan(ctx context.Context, day time.Time) (*domain.MealPlan, error)

	// GetOrCreateMealPlan returns the plan for the day, materializing an
	// empty one if none exists yet.
	GetOrCreateMealPlan(ctx context.Context, day time.Time) (*domain.MealPlan, error)

	// DeleteMealPlanIfEmpty deletes the plan when none of its meals holds an
	// entry. Reports whether a delete happened.
	DeleteMealPlanIfEmpty(ctx context.Context, planID string) (bool, error)

	// AddMeal appends a meal to the plan at the next free index.
	AddMeal(ctx context.Context, planID, name string) (*domain.Meal, error)

	// AddFoodEntry appends an entry for food to the meal, upserting the
	// shared catalog row and stamping its history timestamp. The serving
	// size must be one of the food's portions and servings must be positive.
	AddFoodEntry(ctx context.Context, mealID string, food *domain.Food, serving domain.FoodPortion, servings int) (*domain.FoodEntry, error)

	// UpdateFoodEntry replaces the entry's serving size and quantity under
	// the same validation as AddFoodEntry. Position and parentage are
	// untouched.
	UpdateFoodEntry(ctx context.Context, entryID string, serving domain.FoodPortion, servings int) error

	// RemoveFoodEntry deletes the entry and closes the index gap among its
	// former siblings.
	RemoveFoodEntry(ctx context.Context, entryID string) error

	// MoveFoodEntry moves the entry to position toIndex within toMealID,
	// which may be the entry's current meal. Both affected meals keep dense
	// 0..n-1 indexes.
	MoveFoodEntry(ctx context.Context, entryID, toMealID string, toIndex int) error

	// ReorderMeals rewrites the plan's meal order. orderedMealIDs must be a
	// permutation of the plan's current meal ids.
	ReorderMeals(ctx context.Context, planID string, orderedMealIDs []string) error

	// CopyMealPlan replaces the target plan's contents with the structure of
	// the source day's plan. The rebuilt plan keeps the target's date and
	// shares catalog rows with the source; nothing is merged.
	CopyMealPlan(ctx context.Context, sourceDay time.Time, targetPlanID string) (*domain.MealPlan, error)

	// LatestMealPlan returns the fully loaded plan with the most recent date
	// different from excluding, or nil when no other plan exists.
	LatestMealPlan(ctx context.Context, excluding time.Time) (*domain.MealPlan, error)
}

// CatalogService exposes the shared food catalog and its recency history.
type CatalogService interface {
	Food(ctx context.Context, fdcID int64) (*domain.Food, error)
	// FoodHistory lists previously used foods, most recent first.
	FoodHistory(ctx context.Context) ([]*domain.Food, error)
	// RemoveFromHistory hides the food from history without deleting the
	// catalog row, so existing entries keep resolving.
	RemoveFromHistory(ctx context.Context, fdcID int64) error
}
