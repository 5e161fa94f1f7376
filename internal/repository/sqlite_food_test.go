package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/portion"
	"github.com/tnguyen/foodlog/internal/testutil"
)

func TestFoodRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	food := testutil.NewTestFood("Apples, raw, with skin",
		testutil.WithPortions(
			domain.FoodPortion{Amount: 1, Unit: "cup", Modifier: "slices", GramWeight: 109},
			domain.FoodPortion{Amount: 1, Unit: "medium", GramWeight: 182},
		),
		testutil.WithNutrients(
			domain.FoodNutrient{ID: domain.NutrientCalories, Amount: 52, Unit: "kcal"},
			domain.FoodNutrient{ID: domain.NutrientCarbs, Amount: 13.8, Unit: "g"},
		),
	)
	require.NoError(t, repo.Upsert(ctx, food))

	fetched, err := repo.GetByFDCID(ctx, food.FDCID)
	require.NoError(t, err)
	assert.Equal(t, food.Description, fetched.Description)
	assert.Equal(t, food.Portions, fetched.Portions)
	assert.Equal(t, food.Nutrients, fetched.Nutrients)
	assert.Nil(t, fetched.UpdatedAt, "food starts outside history")
}

func TestFoodRepo_Upsert_RefreshesExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	food := testutil.NewTestFood("Bananas, raw")
	require.NoError(t, repo.Upsert(ctx, food))
	require.NoError(t, repo.Touch(ctx, food.FDCID, time.Now().UTC()))

	// Re-upserting the same id updates the payload but preserves history
	// membership.
	food.Description = "Bananas, ripe, raw"
	require.NoError(t, repo.Upsert(ctx, food))

	fetched, err := repo.GetByFDCID(ctx, food.FDCID)
	require.NoError(t, err)
	assert.Equal(t, "Bananas, ripe, raw", fetched.Description)
	assert.NotNil(t, fetched.UpdatedAt)
}

func TestFoodRepo_GetByFDCID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	_, err := repo.GetByFDCID(ctx, 424242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoodRepo_History_OrderAndMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	oldest := testutil.NewTestFood("Oatmeal")
	middle := testutil.NewTestFood("Apples, raw")
	newest := testutil.NewTestFood("Bananas, raw")
	never := testutil.NewTestFood("Salt")

	for _, f := range []*domain.Food{oldest, middle, newest, never} {
		require.NoError(t, repo.Upsert(ctx, f))
	}
	require.NoError(t, repo.Touch(ctx, oldest.FDCID, base))
	require.NoError(t, repo.Touch(ctx, middle.FDCID, base.Add(time.Hour)))
	require.NoError(t, repo.Touch(ctx, newest.FDCID, base.Add(2*time.Hour)))

	history, err := repo.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3, "untouched foods never appear in history")
	assert.Equal(t, newest.FDCID, history[0].FDCID)
	assert.Equal(t, middle.FDCID, history[1].FDCID)
	assert.Equal(t, oldest.FDCID, history[2].FDCID)
}

func TestFoodRepo_History_TiesBrokenByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	at := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
	a := testutil.NewTestFood("First")
	b := testutil.NewTestFood("Second")
	require.NoError(t, repo.Upsert(ctx, a))
	require.NoError(t, repo.Upsert(ctx, b))
	require.NoError(t, repo.Touch(ctx, a.FDCID, at))
	require.NoError(t, repo.Touch(ctx, b.FDCID, at))

	history, err := repo.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Less(t, history[0].FDCID, history[1].FDCID, "equal timestamps fall back to id order")
}

func TestFoodRepo_ClearHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	food := testutil.NewTestFood("Apples, raw")
	require.NoError(t, repo.Upsert(ctx, food))
	require.NoError(t, repo.Touch(ctx, food.FDCID, time.Now().UTC()))
	require.NoError(t, repo.ClearHistory(ctx, food.FDCID))

	history, err := repo.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	// The catalog row itself survives.
	fetched, err := repo.GetByFDCID(ctx, food.FDCID)
	require.NoError(t, err)
	assert.Nil(t, fetched.UpdatedAt)
}

func TestFoodRepo_Touch_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	err := repo.Touch(ctx, 424242, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoodRepo_CorruptPortionBlob(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodRepo(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO foods (fdc_id, description, portions, nutrients)
		VALUES (7, 'Corrupt', X'DEADBEEF', '[]')`)
	require.NoError(t, err)

	_, err = repo.GetByFDCID(ctx, 7)
	assert.ErrorIs(t, err, portion.ErrCodec, "corrupt blobs surface the codec error, never an empty list")
}
