package domain

import "time"

// MealPlan is the ordered set of meals eaten on one calendar day.
// At most one plan exists per normalized day.
type MealPlan struct {
	ID        string
	Date      time.Time
	Meals     []*Meal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeDay truncates t to local midnight. Every date comparison and
// every stored plan date goes through this first.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsEmpty reports whether the plan has no food entries at all. Empty plans
// are discarded on day navigation.
func (p *MealPlan) IsEmpty() bool {
	for _, m := range p.Meals {
		if len(m.FoodEntries) > 0 {
			return false
		}
	}
	return true
}

// Meal lookup by ID; nil when absent.
func (p *MealPlan) Meal(id string) *Meal {
	for _, m := range p.Meals {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// TotalNutrient sums the nutrient across every food entry of every meal.
func (p *MealPlan) TotalNutrient(id NutrientID) float64 {
	var total float64
	for _, m := range p.Meals {
		total += m.TotalNutrient(id)
	}
	return total
}

// Meal is a named, manually ordered group of food entries within a plan.
// Index values are dense 0..n-1 among siblings.
type Meal struct {
	ID          string
	MealPlanID  string
	Name        string
	Index       int
	FoodEntries []*FoodEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalNutrient sums the nutrient across the meal's food entries. Entries
// whose food lacks the nutrient contribute zero.
func (m *Meal) TotalNutrient(id NutrientID) float64 {
	var total float64
	for _, e := range m.FoodEntries {
		total += e.Nutrient(id)
	}
	return total
}

// FoodEntry records one food eaten as part of a meal: which catalog food,
// which serving-size option, and how many servings. Index values are dense
// 0..n-1 within the meal.
type FoodEntry struct {
	ID               string
	MealID           string
	FoodID           int64
	Index            int
	ServingSize      FoodPortion
	NumberOfServings int
	Food             *Food
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Nutrient returns the entry's total amount for the nutrient:
// per-100g amount scaled to the serving gram weight, times the number of
// servings. Zero when the catalog food is absent or lacks the nutrient.
func (e *FoodEntry) Nutrient(id NutrientID) float64 {
	if e.Food == nil {
		return 0
	}
	n := e.Food.Nutrient(id)
	if n == nil {
		return 0
	}
	return PerServing(n.Amount, e.ServingSize.GramWeight) * float64(e.NumberOfServings)
}
