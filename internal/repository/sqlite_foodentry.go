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

// foodEntryColumns is the canonical SELECT column list for food_entries.
const foodEntryColumns = `id, meal_id, fdc_id, position,
		serving_amount, serving_unit, serving_modifier, serving_gram_weight,
		number_of_servings, created_at, updated_at`

// SQLiteFoodEntryRepo implements FoodEntryRepo using a SQLite database.
type SQLiteFoodEntryRepo struct {
	db db.DBTX
}

// NewSQLiteFoodEntryRepo creates a new SQLiteFoodEntryRepo.
func NewSQLiteFoodEntryRepo(conn db.DBTX) *SQLiteFoodEntryRepo {
	return &SQLiteFoodEntryRepo{db: conn}
}

func (r *SQLiteFoodEntryRepo) Create(ctx context.Context, e *domain.FoodEntry) error {
	query := `INSERT INTO food_entries (id, meal_id, fdc_id, position,
		serving_amount, serving_unit, serving_modifier, serving_gram_weight,
		number_of_servings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.MealID,
		e.FoodID,
		e.Index,
		e.ServingSize.Amount,
		e.ServingSize.Unit,
		e.ServingSize.Modifier,
		e.ServingSize.GramWeight,
		e.NumberOfServings,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting food entry: %w", err)
	}
	return nil
}

func (r *SQLiteFoodEntryRepo) GetByID(ctx context.Context, id string) (*domain.FoodEntry, error) {
	query := `SELECT ` + foodEntryColumns + ` FROM food_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

// ListByMeal returns the meal's entries ordered by position.
func (r *SQLiteFoodEntryRepo) ListByMeal(ctx context.Context, mealID string) ([]*domain.FoodEntry, error) {
	query := `SELECT ` + foodEntryColumns + ` FROM food_entries WHERE meal_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, mealID)
	if err != nil {
		return nil, fmt.Errorf("listing food entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.FoodEntry
	for rows.Next() {
		e, err := r.scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteFoodEntryRepo) CountByMeal(ctx context.Context, mealID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM food_entries WHERE meal_id = ?`, mealID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting food entries: %w", err)
	}
	return count, nil
}

func (r *SQLiteFoodEntryRepo) Update(ctx context.Context, e *domain.FoodEntry) error {
	query := `UPDATE food_entries SET meal_id = ?, fdc_id = ?, position = ?,
		serving_amount = ?, serving_unit = ?, serving_modifier = ?, serving_gram_weight = ?,
		number_of_servings = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.MealID,
		e.FoodID,
		e.Index,
		e.ServingSize.Amount,
		e.ServingSize.Unit,
		e.ServingSize.Modifier,
		e.ServingSize.GramWeight,
		e.NumberOfServings,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating food entry: %w", err)
	}
	return nil
}

func (r *SQLiteFoodEntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting food entry: %w", err)
	}
	return nil
}

func (r *SQLiteFoodEntryRepo) scanEntry(row *sql.Row) (*domain.FoodEntry, error) {
	var e domain.FoodEntry
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&e.ID, &e.MealID, &e.FoodID, &e.Index,
		&e.ServingSize.Amount, &e.ServingSize.Unit, &e.ServingSize.Modifier, &e.ServingSize.GramWeight,
		&e.NumberOfServings, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("food entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning food entry: %w", err)
	}
	return r.populateEntry(&e, createdAtStr, updatedAtStr)
}

func (r *SQLiteFoodEntryRepo) scanEntryRow(rows *sql.Rows) (*domain.FoodEntry, error) {
	var e domain.FoodEntry
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&e.ID, &e.MealID, &e.FoodID, &e.Index,
		&e.ServingSize.Amount, &e.ServingSize.Unit, &e.ServingSize.Modifier, &e.ServingSize.GramWeight,
		&e.NumberOfServings, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning food entry row: %w", err)
	}
	return r.populateEntry(&e, createdAtStr, updatedAtStr)
}

func (r *SQLiteFoodEntryRepo) populateEntry(e *domain.FoodEntry, createdAtStr, updatedAtStr string) (*domain.FoodEntry, error) {
	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return e, nil
}
