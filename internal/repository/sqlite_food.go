package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tnguyen/foodlog/internal/db"
	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/portion"
)

// foodColumns is the canonical SELECT column list for foods.
const foodColumns = `fdc_id, description, portions, nutrients, updated_at`

// SQLiteFoodRepo implements FoodRepo using a SQLite database. Portion lists
// go through the portion codec; decode failures surface unwrapped so
// callers can match portion.ErrCodec.
type SQLiteFoodRepo struct {
	db db.DBTX
}

// NewSQLiteFoodRepo creates a new SQLiteFoodRepo.
func NewSQLiteFoodRepo(conn db.DBTX) *SQLiteFoodRepo {
	return &SQLiteFoodRepo{db: conn}
}

func (r *SQLiteFoodRepo) Upsert(ctx context.Context, f *domain.Food) error {
	portionBlob, err := portion.Encode(f.Portions)
	if err != nil {
		return err
	}
	nutrientsJSON, err := marshalNutrients(f.Nutrients)
	if err != nil {
		return err
	}

	query := `INSERT INTO foods (fdc_id, description, portions, nutrients, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fdc_id) DO UPDATE
		SET description = excluded.description,
		    portions = excluded.portions,
		    nutrients = excluded.nutrients`
	_, err = r.db.ExecContext(ctx, query,
		f.FDCID,
		f.Description,
		portionBlob,
		nutrientsJSON,
		nullableTimeToString(f.UpdatedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting food: %w", err)
	}
	return nil
}

func (r *SQLiteFoodRepo) GetByFDCID(ctx context.Context, fdcID int64) (*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE fdc_id = ?`
	return r.scanFood(r.db.QueryRowContext(ctx, query, fdcID))
}

func (r *SQLiteFoodRepo) Touch(ctx context.Context, fdcID int64, at time.Time) error {
	query := `UPDATE foods SET updated_at = ? WHERE fdc_id = ?`
	res, err := r.db.ExecContext(ctx, query, at.Format(time.RFC3339), fdcID)
	if err != nil {
		return fmt.Errorf("touching food: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("food %d: %w", fdcID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteFoodRepo) History(ctx context.Context) ([]*domain.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods
		WHERE updated_at IS NOT NULL
		ORDER BY updated_at DESC, fdc_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing food history: %w", err)
	}
	defer rows.Close()

	var foods []*domain.Food
	for rows.Next() {
		f, err := r.scanFoodRow(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food history: %w", err)
	}
	return foods, nil
}

func (r *SQLiteFoodRepo) ClearHistory(ctx context.Context, fdcID int64) error {
	query := `UPDATE foods SET updated_at = NULL WHERE fdc_id = ?`
	res, err := r.db.ExecContext(ctx, query, fdcID)
	if err != nil {
		return fmt.Errorf("clearing food history: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("food %d: %w", fdcID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteFoodRepo) scanFood(row *sql.Row) (*domain.Food, error) {
	var f domain.Food
	var portionBlob []byte
	var nutrientsJSON string
	var updatedAt sql.NullString

	err := row.Scan(&f.FDCID, &f.Description, &portionBlob, &nutrientsJSON, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("food: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning food: %w", err)
	}
	return r.populateFood(&f, portionBlob, nutrientsJSON, updatedAt)
}

func (r *SQLiteFoodRepo) scanFoodRow(rows *sql.Rows) (*domain.Food, error) {
	var f domain.Food
	var portionBlob []byte
	var nutrientsJSON string
	var updatedAt sql.NullString

	if err := rows.Scan(&f.FDCID, &f.Description, &portionBlob, &nutrientsJSON, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning food row: %w", err)
	}
	return r.populateFood(&f, portionBlob, nutrientsJSON, updatedAt)
}

func (r *SQLiteFoodRepo) populateFood(f *domain.Food, portionBlob []byte, nutrientsJSON string, updatedAt sql.NullString) (*domain.Food, error) {
	portions, err := portion.Decode(portionBlob)
	if err != nil {
		return nil, fmt.Errorf("food %d portions: %w", f.FDCID, err)
	}
	f.Portions = portions

	if f.Nutrients, err = unmarshalNutrients(nutrientsJSON); err != nil {
		return nil, fmt.Errorf("food %d: %w", f.FDCID, err)
	}

	f.UpdatedAt = parseNullableTime(updatedAt, time.RFC3339)
	return f, nil
}
