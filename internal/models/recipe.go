// ABOUTME: Recipe, ingredient, and nutrition models shared by the builder and API.
// ABOUTME: Ingredient rows carry a client-only ID that is never persisted as identity.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Nutrition is a calorie and macro bundle. Macros are grams.
type Nutrition struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fats     float64 `json:"fats" yaml:"fats"`
}

// Add returns the field-wise sum.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fats:     n.Fats + o.Fats,
	}
}

// Scale multiplies every field by f.
func (n Nutrition) Scale(f float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * f,
		Protein:  n.Protein * f,
		Carbs:    n.Carbs * f,
		Fats:     n.Fats * f,
	}
}

// RecipeCategory groups recipes by meal.
type RecipeCategory string

const (
	CategoryBreakfast RecipeCategory = "breakfast"
	CategoryLunch     RecipeCategory = "lunch"
	CategoryDinner    RecipeCategory = "dinner"
	CategorySnack     RecipeCategory = "snack"
	CategoryDessert   RecipeCategory = "dessert"
	CategoryBeverage  RecipeCategory = "beverage"
)

// AllRecipeCategories lists valid categories in display order.
var AllRecipeCategories = []RecipeCategory{
	CategoryBreakfast, CategoryLunch, CategoryDinner,
	CategorySnack, CategoryDessert, CategoryBeverage,
}

// IsValidRecipeCategory reports whether s names a category.
func IsValidRecipeCategory(s string) bool {
	return contains(AllRecipeCategories, RecipeCategory(s))
}

// Ingredient is one row of a recipe. Nutrition fields are scaled to the
// entered quantity; Per100g keeps the reference basis they came from.
type Ingredient struct {
	ID       uuid.UUID  `json:"-" yaml:"-"`
	Name     string     `json:"name" yaml:"name"`
	Quantity float64    `json:"quantity" yaml:"quantity"`
	Unit     string     `json:"unit" yaml:"unit"`
	Calories float64    `json:"calories" yaml:"calories"`
	Protein  float64    `json:"protein" yaml:"protein"`
	Carbs    float64    `json:"carbs" yaml:"carbs"`
	Fats     float64    `json:"fats" yaml:"fats"`
	Per100g  *Nutrition `json:"per100g,omitempty" yaml:"per100g,omitempty"`
}

// Nutrition returns the scaled nutrition stored on the row.
func (i Ingredient) Nutrition() Nutrition {
	return Nutrition{Calories: i.Calories, Protein: i.Protein, Carbs: i.Carbs, Fats: i.Fats}
}

// Recipe is a saved recipe as exchanged with the API.
type Recipe struct {
	ID           string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string         `json:"name" yaml:"name"`
	Servings     int            `json:"servings" yaml:"servings"`
	Category     RecipeCategory `json:"category" yaml:"category"`
	Ingredients  []Ingredient   `json:"ingredients" yaml:"ingredients"`
	Instructions string         `json:"instructions" yaml:"instructions"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}
