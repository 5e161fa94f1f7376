package repository

import (
	"context"
	"time"

	"github.com/tnguyen/foodlog/internal/domain"
)

// Repository constructors accept db.DBTX, so the same repository types work
// against *sql.DB for reads and against a *sql.Tx inside a unit of work.

type MealPlanRepo interface {
	Create(ctx context.Context, p *domain.MealPlan) error
	GetByID(ctx context.Context, id string) (*domain.MealPlan, error)
	GetByDate(ctx context.Context, day time.Time) (*domain.MealPlan, error)
	// Latest returns the plan with the most recent date whose date differs
	// from excludeDay. Ties are broken by id so results are deterministic.
	Latest(ctx context.Context, excludeDay time.Time) (*domain.MealPlan, error)
	Delete(ctx context.Context, id string) error
}

type MealRepo interface {
	Create(ctx context.Context, m *domain.Meal) error
	GetByID(ctx context.Context, id string) (*domain.Meal, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Meal, error)
	CountByPlan(ctx context.Context, planID string) (int, error)
	Update(ctx context.Context, m *domain.Meal) error
	Delete(ctx context.Context, id string) error
}

type FoodEntryRepo interface {
	Create(ctx context.Context, e *domain.FoodEntry) error
	GetByID(ctx context.Context, id string) (*domain.FoodEntry, error)
	ListByMeal(ctx context.Context, mealID string) ([]*domain.FoodEntry, error)
	CountByMeal(ctx context.Context, mealID string) (int, error)
	Update(ctx context.Context, e *domain.FoodEntry) error
	Delete(ctx context.Context, id string) error
}

type FoodRepo interface {
	// Upsert inserts the catalog row or refreshes description, portions and
	// nutrients when a row with the same FDC id already exists.
	Upsert(ctx context.Context, f *domain.Food) error
	GetByFDCID(ctx context.Context, fdcID int64) (*domain.Food, error)
	// Touch stamps updated_at, putting (or moving) the food to the front of
	// the history.
	Touch(ctx context.Context, fdcID int64, at time.Time) error
	// History returns foods with non-null updated_at, most recent first,
	// ties broken by FDC id.
	History(ctx context.Context) ([]*domain.Food, error)
	// ClearHistory nulls updated_at without deleting the row; existing food
	// entries keep resolving.
	ClearHistory(ctx context.Context, fdcID int64) error
}
