package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguyen/foodlog/internal/testutil"
)

func TestMealRepo_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := NewSQLiteMealPlanRepo(db)
	mealRepo := NewSQLiteMealRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, planRepo.Create(ctx, plan))

	// Insert out of position order; listing must come back position-sorted.
	lunch := testutil.NewTestMeal(plan.ID, "Lunch", testutil.WithMealIndex(1))
	breakfast := testutil.NewTestMeal(plan.ID, "Breakfast", testutil.WithMealIndex(0))
	require.NoError(t, mealRepo.Create(ctx, lunch))
	require.NoError(t, mealRepo.Create(ctx, breakfast))

	meals, err := mealRepo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Breakfast", meals[0].Name)
	assert.Equal(t, "Lunch", meals[1].Name)
	assert.Equal(t, 0, meals[0].Index)
	assert.Equal(t, 1, meals[1].Index)
}

func TestMealRepo_CountByPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := NewSQLiteMealPlanRepo(db)
	mealRepo := NewSQLiteMealRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, planRepo.Create(ctx, plan))

	count, err := mealRepo.CountByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, mealRepo.Create(ctx, testutil.NewTestMeal(plan.ID, "Breakfast")))
	count, err = mealRepo.CountByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMealRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := NewSQLiteMealPlanRepo(db)
	mealRepo := NewSQLiteMealRepo(db)
	ctx := context.Background()

	plan := testutil.NewTestPlan()
	require.NoError(t, planRepo.Create(ctx, plan))

	meal := testutil.NewTestMeal(plan.ID, "Breakfast")
	require.NoError(t, mealRepo.Create(ctx, meal))

	meal.Name = "Brunch"
	meal.Index = 3
	require.NoError(t, mealRepo.Update(ctx, meal))

	fetched, err := mealRepo.GetByID(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brunch", fetched.Name)
	assert.Equal(t, 3, fetched.Index)
}

func TestMealRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	mealRepo := NewSQLiteMealRepo(db)
	ctx := context.Background()

	_, err := mealRepo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealRepo_RequiresExistingPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	mealRepo := NewSQLiteMealRepo(db)
	ctx := context.Background()

	err := mealRepo.Create(ctx, testutil.NewTestMeal("no-such-plan", "Breakfast"))
	assert.Error(t, err, "meal insert must fail the foreign key check")
}
