package domain

// NutrientID identifies a nutrient using its FoodData Central nutrient number.
type NutrientID int64

const (
	NutrientCalories      NutrientID = 1008
	NutrientProtein       NutrientID = 1003
	NutrientTotalFat      NutrientID = 1004
	NutrientCarbs         NutrientID = 1005
	NutrientFiber         NutrientID = 1079
	NutrientTotalSugars   NutrientID = 2000
	NutrientCholesterol   NutrientID = 1253
	NutrientSaturatedFat  NutrientID = 1258
	NutrientVitaminA      NutrientID = 1106
	NutrientVitaminC      NutrientID = 1162
	NutrientVitaminD      NutrientID = 1114
	NutrientVitaminB6     NutrientID = 1175
	NutrientVitaminB12    NutrientID = 1178
	NutrientVitaminE      NutrientID = 1109
	NutrientVitaminK      NutrientID = 1185
	NutrientFolate        NutrientID = 1177
	NutrientCalcium       NutrientID = 1087
	NutrientIron          NutrientID = 1089
	NutrientMagnesium     NutrientID = 1090
	NutrientPotassium     NutrientID = 1092
	NutrientSodium        NutrientID = 1093
	NutrientZinc          NutrientID = 1095
)

// MainNutrients is the display order for the core nutrition panel.
var MainNutrients = []NutrientID{
	NutrientCalories, NutrientCarbs, NutrientProtein, NutrientTotalFat,
	NutrientFiber, NutrientTotalSugars, NutrientSaturatedFat, NutrientCholesterol,
}

var Vitamins = []NutrientID{
	NutrientVitaminA, NutrientVitaminC, NutrientVitaminD, NutrientVitaminE,
	NutrientVitaminK, NutrientVitaminB6, NutrientVitaminB12, NutrientFolate,
}

var Minerals = []NutrientID{
	NutrientCalcium, NutrientIron, NutrientMagnesium, NutrientPotassium,
	NutrientSodium, NutrientZinc,
}

var nutrientNames = map[NutrientID]string{
	NutrientCalories:     "Calories",
	NutrientProtein:      "Protein",
	NutrientTotalFat:     "Total Fat",
	NutrientCarbs:        "Carbohydrates",
	NutrientFiber:        "Fiber",
	NutrientTotalSugars:  "Total Sugars",
	NutrientCholesterol:  "Cholesterol",
	NutrientSaturatedFat: "Saturated Fat",
	NutrientVitaminA:     "Vitamin A",
	NutrientVitaminC:     "Vitamin C",
	NutrientVitaminD:     "Vitamin D",
	NutrientVitaminB6:    "Vitamin B6",
	NutrientVitaminB12:   "Vitamin B12",
	NutrientVitaminE:     "Vitamin E",
	NutrientVitaminK:     "Vitamin K",
	NutrientFolate:       "Folate",
	NutrientCalcium:      "Calcium",
	NutrientIron:         "Iron",
	NutrientMagnesium:    "Magnesium",
	NutrientPotassium:    "Potassium",
	NutrientSodium:       "Sodium",
	NutrientZinc:         "Zinc",
}

var nutrientUnits = map[NutrientID]string{
	NutrientCalories:     "kcal",
	NutrientProtein:      "g",
	NutrientTotalFat:     "g",
	NutrientCarbs:        "g",
	NutrientFiber:        "g",
	NutrientTotalSugars:  "g",
	NutrientCholesterol:  "mg",
	NutrientSaturatedFat: "g",
	NutrientVitaminA:     "µg",
	NutrientVitaminC:     "mg",
	NutrientVitaminD:     "µg",
	NutrientVitaminB6:    "mg",
	NutrientVitaminB12:   "µg",
	NutrientVitaminE:     "mg",
	NutrientVitaminK:     "µg",
	NutrientFolate:       "µg",
	NutrientCalcium:      "mg",
	NutrientIron:         "mg",
	NutrientMagnesium:    "mg",
	NutrientPotassium:    "mg",
	NutrientSodium:       "mg",
	NutrientZinc:         "mg",
}

// Name returns the display name of the nutrient, or "" if unknown.
func (id NutrientID) Name() string {
	return nutrientNames[id]
}

// Unit returns the canonical unit for the nutrient, or "" if unknown.
func (id NutrientID) Unit() string {
	return nutrientUnits[id]
}

// FoodNutrient is a nutrient amount per 100 grams of a food.
type FoodNutrient struct {
	ID     NutrientID
	Amount float64
	Unit   string
}

// PerServing scales a per-100g nutrient amount to a single serving of the
// given gram weight.
func PerServing(amountPer100g, gramWeight float64) float64 {
	return amountPer100g / 100 * gramWeight
}
