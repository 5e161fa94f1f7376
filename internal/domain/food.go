package domain

import (
	"fmt"
	"strings"
	"time"
)

// FoodPortion is one serving-size option of a food: a quantity plus the
// gram weight it converts to. Value type, copied into food entries.
type FoodPortion struct {
	Amount     float64
	Unit       string
	Modifier   string
	GramWeight float64
}

// Label renders the human-readable serving size, e.g. "1 cup, sliced (150 g)".
func (p FoodPortion) Label() string {
	var b strings.Builder
	if p.Amount > 0 {
		fmt.Fprintf(&b, "%s %s", trimFloat(p.Amount), p.Unit)
	} else if p.Unit != "" {
		b.WriteString(p.Unit)
	}
	if p.Modifier != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Modifier)
	}
	if b.Len() > 0 {
		fmt.Fprintf(&b, " (%s g)", trimFloat(p.GramWeight))
	} else {
		fmt.Fprintf(&b, "%s g", trimFloat(p.GramWeight))
	}
	return b.String()
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Food is a catalog entry keyed by its FoodData Central identifier.
// Rows are shared: any number of food entries across meals and days may
// reference the same Food. A non-nil UpdatedAt means the food appears in
// the user's history, ordered most-recent-first.
type Food struct {
	FDCID       int64
	Description string
	Portions    []FoodPortion
	Nutrients   []FoodNutrient
	UpdatedAt   *time.Time
}

// Nutrient returns the per-100g amount for the given nutrient, or nil if
// the food's nutrient table does not carry it.
func (f *Food) Nutrient(id NutrientID) *FoodNutrient {
	for i := range f.Nutrients {
		if f.Nutrients[i].ID == id {
			return &f.Nutrients[i]
		}
	}
	return nil
}

// HasPortion reports whether p is one of the food's available serving-size
// options.
func (f *Food) HasPortion(p FoodPortion) bool {
	for _, candidate := range f.Portions {
		if candidate == p {
			return true
		}
	}
	return false
}

// DefaultPortion returns the middle serving-size option, the one the
// original picker preselects. Returns the zero value if the food has no
// portions.
func (f *Food) DefaultPortion() FoodPortion {
	if len(f.Portions) == 0 {
		return FoodPortion{}
	}
	return f.Portions[(len(f.Portions)-1)/2]
}
