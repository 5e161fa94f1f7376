package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguyen/foodlog/internal/fdc"
	"github.com/tnguyen/foodlog/internal/repository"
	"github.com/tnguyen/foodlog/internal/service"
	"github.com/tnguyen/foodlog/internal/testutil"
)

const appleSearchBody = `{
	"foods": [
		{
			"fdcId": 171688,
			"description": "Apples, raw, with skin",
			"foodNutrients": [
				{"nutrientId": 1008, "unitName": "kcal", "value": 52},
				{"nutrientId": 1005, "unitName": "g", "value": 13.8}
			],
			"foodPortions": [
				{"amount": 1, "modifier": "slices", "gramWeight": 109, "measureUnit": {"name": "cup"}},
				{"amount": 1, "gramWeight": 182, "measureUnit": {"name": "medium"}}
			]
		}
	]
}`

// testApp wires a full App backed by an in-memory DB and a stub lookup
// server for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	planRepo := repository.NewSQLiteMealPlanRepo(db)
	mealRepo := repository.NewSQLiteMealRepo(db)
	entryRepo := repository.NewSQLiteFoodEntryRepo(db)
	foodRepo := repository.NewSQLiteFoodRepo(db)
	uow := testutil.NewTestUoW(db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(appleSearchBody))
	}))
	t.Cleanup(srv.Close)
	cfg := fdc.DefaultConfig()
	cfg.Endpoint = srv.URL

	return &App{
		Plans:   service.NewPlanService(planRepo, mealRepo, entryRepo, foodRepo, uow),
		Catalog: service.NewCatalogService(foodRepo),
		Lookup:  fdc.NewSearcher(fdc.NewClient(cfg)),
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	require.NoError(t, err)
	return d
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestPlanAddMealAndShow(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(context.Background(), day(t, "2024-03-16"))
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Meals, 1)
	assert.Equal(t, "Breakfast", plan.Meals[0].Name)

	_, err = executeCmd(t, app, "plan", "show", "--date", "2024-03-16")
	require.NoError(t, err)
}

func TestEntryAddByQuery(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "breakfast",
		"--query", "apple", "--portion", "0", "--servings", "2")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(context.Background(), day(t, "2024-03-16"))
	require.NoError(t, err)
	require.Len(t, plan.Meals[0].FoodEntries, 1)
	entry := plan.Meals[0].FoodEntries[0]
	assert.Equal(t, int64(171688), entry.FoodID)
	assert.Equal(t, 2, entry.NumberOfServings)
	assert.Equal(t, 109.0, entry.ServingSize.GramWeight)
}

func TestEntryAddByCatalogID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "Breakfast", "--query", "apple")
	require.NoError(t, err)

	// Second add resolves from the local catalog without a query.
	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "Breakfast", "--fdc", "171688")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(context.Background(), day(t, "2024-03-16"))
	require.NoError(t, err)
	assert.Len(t, plan.Meals[0].FoodEntries, 2)
}

func TestEntryAdd_UnknownMeal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "Elevenses", "--query", "apple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Elevenses")
}

func TestEntryRemoveByPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "Breakfast", "--query", "apple")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(ctx, day(t, "2024-03-16"))
	require.NoError(t, err)
	entryID := plan.Meals[0].FoodEntries[0].ID

	_, err = executeCmd(t, app, "entry", "remove", entryID[:8], "--date", "2024-03-16")
	require.NoError(t, err)

	plan, err = app.Plans.GetMealPlan(ctx, day(t, "2024-03-16"))
	require.NoError(t, err)
	assert.Empty(t, plan.Meals[0].FoodEntries)
}

func TestPlanCopyCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-15", "--name", "Breakfast")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-15", "--meal", "Breakfast", "--query", "apple")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "plan", "copy", "--from", "2024-03-15", "--to", "2024-03-16")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(context.Background(), day(t, "2024-03-16"))
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Meals, 1)
	assert.Len(t, plan.Meals[0].FoodEntries, 1)
}

func TestFoodHistoryAndForget(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "entry", "add",
		"--date", "2024-03-16", "--meal", "Breakfast", "--query", "apple")
	require.NoError(t, err)

	history, err := app.Catalog.FoodHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = executeCmd(t, app, "food", "forget", "171688")
	require.NoError(t, err)

	history, err = app.Catalog.FoodHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlanPruneCommand(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "plan", "add-meal", "--date", "2024-03-16", "--name", "Breakfast")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "plan", "prune", "--date", "2024-03-16")
	require.NoError(t, err)

	plan, err := app.Plans.GetMealPlan(ctx, day(t, "2024-03-16"))
	require.NoError(t, err)
	assert.Nil(t, plan)
}
