package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS meal_plans (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meal_plans_date ON meal_plans(date)`,

	// Catalog foods are shared across entries and never cascade-deleted;
	// updated_at is NULL when the food has been removed from history.
	`CREATE TABLE IF NOT EXISTS foods (
		fdc_id      INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		portions    BLOB NOT NULL,
		nutrients   TEXT NOT NULL DEFAULT '[]',
		updated_at  TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_foods_updated ON foods(updated_at) WHERE updated_at IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS meals (
		id           TEXT PRIMARY KEY,
		meal_plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		position     INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meals_plan ON meals(meal_plan_id)`,

	`CREATE TABLE IF NOT EXISTS food_entries (
		id                  TEXT PRIMARY KEY,
		meal_id             TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
		fdc_id              INTEGER NOT NULL REFERENCES foods(fdc_id),
		position            INTEGER NOT NULL DEFAULT 0,
		serving_amount      REAL NOT NULL DEFAULT 0,
		serving_unit        TEXT NOT NULL DEFAULT '',
		serving_modifier    TEXT NOT NULL DEFAULT '',
		serving_gram_weight REAL NOT NULL DEFAULT 0,
		number_of_servings  INTEGER NOT NULL CHECK(number_of_servings > 0),
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_food_entries_meal ON food_entries(meal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_food_entries_food ON food_entries(fdc_id)`,
}
