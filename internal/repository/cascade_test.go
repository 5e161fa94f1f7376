package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguyen/foodlog/internal/testutil"
)

// TestCascadeDelete_PlanToMeals verifies that deleting a plan cascades to its meals.
func TestCascadeDelete_PlanToMeals(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLiteMealPlanRepo(db)
	mealRepo := NewSQLiteMealRepo(db)

	plan := testutil.NewTestPlan()
	require.NoError(t, planRepo.Create(ctx, plan))

	meal := testutil.NewTestMeal(plan.ID, "Breakfast")
	require.NoError(t, mealRepo.Create(ctx, meal))

	require.NoError(t, planRepo.Delete(ctx, plan.ID))

	_, err := mealRepo.GetByID(ctx, meal.ID)
	assert.Error(t, err, "meal should be cascade-deleted when plan is deleted")
}

// TestCascadeDelete_MealToEntries verifies meals -> food_entries cascade.
func TestCascadeDelete_MealToEntries(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	mealRepo := NewSQLiteMealRepo(db)
	entryRepo := NewSQLiteFoodEntryRepo(db)

	meal, food := entryFixture(t, db)
	entry := testutil.NewTestEntry(meal.ID, food)
	require.NoError(t, entryRepo.Create(ctx, entry))

	require.NoError(t, mealRepo.Delete(ctx, meal.ID))

	_, err := entryRepo.GetByID(ctx, entry.ID)
	assert.Error(t, err, "entry should be cascade-deleted when meal is deleted")
}

// TestCascadeDelete_FullChain verifies plan -> meals -> food_entries.
func TestCascadeDelete_FullChain(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLiteMealPlanRepo(db)
	mealRepo := NewSQLiteMealRepo(db)
	entryRepo := NewSQLiteFoodEntryRepo(db)

	meal, food := entryFixture(t, db)
	entry := testutil.NewTestEntry(meal.ID, food)
	require.NoError(t, entryRepo.Create(ctx, entry))

	require.NoError(t, planRepo.Delete(ctx, meal.MealPlanID))

	_, err := mealRepo.GetByID(ctx, meal.ID)
	assert.Error(t, err)
	_, err = entryRepo.GetByID(ctx, entry.ID)
	assert.Error(t, err)
}

// TestCascadeDelete_FoodsSurvive verifies the catalog is not touched by graph
// deletes: foods are shared across plans and only leave via their own table.
func TestCascadeDelete_FoodsSurvive(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := NewSQLiteMealPlanRepo(db)
	entryRepo := NewSQLiteFoodEntryRepo(db)
	foodRepo := NewSQLiteFoodRepo(db)

	meal, food := entryFixture(t, db)
	require.NoError(t, foodRepo.Touch(ctx, food.FDCID, time.Now().UTC()))
	entry := testutil.NewTestEntry(meal.ID, food)
	require.NoError(t, entryRepo.Create(ctx, entry))

	require.NoError(t, planRepo.Delete(ctx, meal.MealPlanID))

	fetched, err := foodRepo.GetByFDCID(ctx, food.FDCID)
	require.NoError(t, err)
	assert.Equal(t, food.Description, fetched.Description)
	assert.NotNil(t, fetched.UpdatedAt, "history membership survives plan deletion")
}
