// ABOUTME: Quantity to grams conversion and per-100g scaling.
// ABOUTME: Calories round to whole numbers; macros round to one decimal.
package recipe

import (
	"fmt"
	"math"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/units"
)

// GramsPerUnit maps an entry unit to its weight in grams.
var GramsPerUnit = map[string]float64{
	"g":     1,
	"kg":    1000,
	"ml":    1,
	"l":     1000,
	"cup":   240,
	"tbsp":  15,
	"tsp":   5,
	"piece": 100,
	"slice": 30,
}

// Units lists entry units in display order.
var Units = []string{"g", "kg", "ml", "l", "cup", "tbsp", "tsp", "piece", "slice"}

// ToGrams converts quantity in unit to grams.
func ToGrams(quantity float64, unit string) (float64, error) {
	factor, ok := GramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
	return quantity * factor, nil
}

// Round applies display precision: whole calories, 1-decimal macros.
func Round(n models.Nutrition) models.Nutrition {
	return models.Nutrition{
		Calories: math.Round(n.Calories),
		Protein:  units.Round1(n.Protein),
		Carbs:    units.Round1(n.Carbs),
		Fats:     units.Round1(n.Fats),
	}
}

// Scale computes nutrition for quantity of unit from a per-100g basis.
func Scale(per100g models.Nutrition, quantity float64, unit string) (models.Nutrition, error) {
	grams, err := ToGrams(quantity, unit)
	if err != nil {
		return models.Nutrition{}, err
	}
	return Round(per100g.Scale(grams / 100)), nil
}
