package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tnguyen/foodlog/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDay parses a stored day-granular date in the local zone, matching
// the normalization applied before storage.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date: %w", err)
	}
	return t, nil
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nutrientJSON is the stored shape of one per-100g nutrient amount.
type nutrientJSON struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

func marshalNutrients(nutrients []domain.FoodNutrient) (string, error) {
	rows := make([]nutrientJSON, 0, len(nutrients))
	for _, n := range nutrients {
		rows = append(rows, nutrientJSON{ID: int64(n.ID), Amount: n.Amount, Unit: n.Unit})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshaling nutrients: %w", err)
	}
	return string(data), nil
}

func unmarshalNutrients(data string) ([]domain.FoodNutrient, error) {
	var rows []nutrientJSON
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling nutrients: %w", err)
	}
	nutrients := make([]domain.FoodNutrient, 0, len(rows))
	for _, r := range rows {
		nutrients = append(nutrients, domain.FoodNutrient{ID: domain.NutrientID(r.ID), Amount: r.Amount, Unit: r.Unit})
	}
	return nutrients, nil
}
