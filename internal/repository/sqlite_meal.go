package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tnguyen/foodlog/internal/db"
	"github.com/tnguyen/foodlog/internal/domain"
)

// mealColumns is the canonical SELECT column list for meals.
const mealColumns = `id, meal_plan_id, name, position, created_at, updated_at`

// SQLiteMealRepo implements MealRepo using a SQLite database.
type SQLiteMealRepo struct {
	db db.DBTX
}

// NewSQLiteMealRepo creates a new SQLiteMealRepo.
func NewSQLiteMealRepo(conn db.DBTX) *SQLiteMealRepo {
	return &SQLiteMealRepo{db: conn}
}

func (r *SQLiteMealRepo) Create(ctx context.Context, m *domain.Meal) error {
	query := `INSERT INTO meals (id, meal_plan_id, name, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.MealPlanID,
		m.Name,
		m.Index,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meal: %w", err)
	}
	return nil
}

func (r *SQLiteMealRepo) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = ?`
	return r.scanMeal(r.db.QueryRowContext(ctx, query, id))
}

// ListByPlan returns the plan's meals ordered by position, which is the
// manual ordering invariant every caller iterates in.
func (r *SQLiteMealRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE meal_plan_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing meals: %w", err)
	}
	defer rows.Close()

	var meals []*domain.Meal
	for rows.Next() {
		m, err := r.scanMealRow(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meals: %w", err)
	}
	return meals, nil
}

func (r *SQLiteMealRepo) CountByPlan(ctx context.Context, planID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meals WHERE meal_plan_id = ?`, planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting meals: %w", err)
	}
	return count, nil
}

func (r *SQLiteMealRepo) Update(ctx context.Context, m *domain.Meal) error {
	query := `UPDATE meals SET meal_plan_id = ?, name = ?, position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.MealPlanID,
		m.Name,
		m.Index,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating meal: %w", err)
	}
	return nil
}

func (r *SQLiteMealRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting meal: %w", err)
	}
	return nil
}

func (r *SQLiteMealRepo) scanMeal(row *sql.Row) (*domain.Meal, error) {
	var m domain.Meal
	var createdAtStr, updatedAtStr string

	err := row.Scan(&m.ID, &m.MealPlanID, &m.Name, &m.Index, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meal: %w", err)
	}
	return r.populateMeal(&m, createdAtStr, updatedAtStr)
}

func (r *SQLiteMealRepo) scanMealRow(rows *sql.Rows) (*domain.Meal, error) {
	var m domain.Meal
	var createdAtStr, updatedAtStr string

	if err := rows.Scan(&m.ID, &m.MealPlanID, &m.Name, &m.Index, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning meal row: %w", err)
	}
	return r.populateMeal(&m, createdAtStr, updatedAtStr)
}

func (r *SQLiteMealRepo) populateMeal(m *domain.Meal, createdAtStr, updatedAtStr string) (*domain.Meal, error) {
	var err error
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return m, nil
}
