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

// mealPlanColumns is the canonical SELECT column list for meal_plans.
const mealPlanColumns = `id, date, created_at, updated_at`

// SQLiteMealPlanRepo implements MealPlanRepo using a SQLite database.
type SQLiteMealPlanRepo struct {
	db db.DBTX
}

// NewSQLiteMealPlanRepo creates a new SQLiteMealPlanRepo.
func NewSQLiteMealPlanRepo(conn db.DBTX) *SQLiteMealPlanRepo {
	return &SQLiteMealPlanRepo{db: conn}
}

func (r *SQLiteMealPlanRepo) Create(ctx context.Context, p *domain.MealPlan) error {
	query := `INSERT INTO meal_plans (id, date, created_at, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		domain.NormalizeDay(p.Date).Format(dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meal plan: %w", err)
	}
	return nil
}

func (r *SQLiteMealPlanRepo) GetByID(ctx context.Context, id string) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMealPlanRepo) GetByDate(ctx context.Context, day time.Time) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans WHERE date = ?`
	row := r.db.QueryRowContext(ctx, query, domain.NormalizeDay(day).Format(dateLayout))
	return r.scanPlan(row)
}

func (r *SQLiteMealPlanRepo) Latest(ctx context.Context, excludeDay time.Time) (*domain.MealPlan, error) {
	query := `SELECT ` + mealPlanColumns + ` FROM meal_plans
		WHERE date != ?
		ORDER BY date DESC, id
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, domain.NormalizeDay(excludeDay).Format(dateLayout))
	return r.scanPlan(row)
}

func (r *SQLiteMealPlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meal_plans WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting meal plan: %w", err)
	}
	return nil
}

func (r *SQLiteMealPlanRepo) scanPlan(row *sql.Row) (*domain.MealPlan, error) {
	var p domain.MealPlan
	var dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &dateStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning meal plan: %w", err)
	}

	if p.Date, err = parseDay(dateStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
