// ABOUTME: Recipe draft editing: servings, ingredient rows, totals, per-serving values.
// ABOUTME: Rows get fresh client IDs whenever a saved recipe is loaded.
package recipe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitforge/internal/models"
)

// Draft is a recipe being edited.
type Draft struct {
	Name         string
	Servings     int
	Category     models.RecipeCategory
	Ingredients  []models.Ingredient
	Instructions string
}

// NewDraft returns an empty draft with one serving.
func NewDraft() *Draft {
	return &Draft{Servings: 1, Category: models.CategoryLunch}
}

// FromSaved rebuilds a draft from a saved recipe. Persisted rows carry no
// stable client id, so each row gets a new one.
func FromSaved(r models.Recipe) *Draft {
	d := &Draft{
		Name:         r.Name,
		Category:     r.Category,
		Instructions: r.Instructions,
		Ingredients:  make([]models.Ingredient, len(r.Ingredients)),
	}
	d.SetServings(r.Servings)
	for i, ing := range r.Ingredients {
		ing.ID = uuid.New()
		if ing.Per100g != nil {
			basis := *ing.Per100g
			ing.Per100g = &basis
		}
		d.Ingredients[i] = ing
	}
	return d
}

// SetServings sets servings, clamped to at least 1.
func (d *Draft) SetServings(n int) {
	if n < 1 {
		n = 1
	}
	d.Servings = n
}

// AddFromReference appends a row scaled from a reference-table entry.
func (d *Draft) AddFromReference(ref Reference, quantity float64, unit string) (uuid.UUID, error) {
	basis := ref.Per100g()
	scaled, err := Scale(basis, quantity, unit)
	if err != nil {
		return uuid.Nil, err
	}
	row := models.Ingredient{
		ID:       uuid.New(),
		Name:     ref.Name,
		Quantity: quantity,
		Unit:     unit,
		Per100g:  &basis,
	}
	setNutrition(&row, scaled)
	d.Ingredients = append(d.Ingredients, row)
	return row.ID, nil
}

// AddManual appends a row with nutrition typed in by the user.
func (d *Draft) AddManual(name string, quantity float64, unit string, n models.Nutrition) uuid.UUID {
	row := models.Ingredient{
		ID:       uuid.New(),
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	}
	setNutrition(&row, n)
	d.Ingredients = append(d.Ingredients, row)
	return row.ID
}

// UpdateQuantity changes a row's quantity and unit and rescales it when the
// row has a reference basis.
func (d *Draft) UpdateQuantity(id uuid.UUID, quantity float64, unit string) error {
	row := d.find(id)
	if row == nil {
		return fmt.Errorf("ingredient %s not in draft", id)
	}
	if row.Per100g != nil {
		scaled, err := Scale(*row.Per100g, quantity, unit)
		if err != nil {
			return err
		}
		setNutrition(row, scaled)
	} else if _, err := ToGrams(quantity, unit); err != nil {
		return err
	}
	row.Quantity = quantity
	row.Unit = unit
	return nil
}

// Remove deletes a row. It reports whether the row existed.
func (d *Draft) Remove(id uuid.UUID) bool {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			d.Ingredients = append(d.Ingredients[:i], d.Ingredients[i+1:]...)
			return true
		}
	}
	return false
}

// Totals sums per100g * quantity / 100 over every row. Quantity is taken in
// its entry unit without conversion. Rows without a basis contribute their
// stored values.
func (d *Draft) Totals() models.Nutrition {
	return Round(d.sum())
}

// PerServing divides the totals by servings.
func (d *Draft) PerServing() models.Nutrition {
	servings := d.Servings
	if servings < 1 {
		servings = 1
	}
	return Round(d.sum().Scale(1 / float64(servings)))
}

func (d *Draft) sum() models.Nutrition {
	var total models.Nutrition
	for _, ing := range d.Ingredients {
		if ing.Per100g != nil {
			total = total.Add(ing.Per100g.Scale(ing.Quantity / 100))
		} else {
			total = total.Add(ing.Nutrition())
		}
	}
	return total
}

// Validate checks the draft before it is saved.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return models.Invalid("name", "is required")
	}
	if !models.IsValidRecipeCategory(string(d.Category)) {
		return models.Invalid("category", fmt.Sprintf("must be one of %v", models.AllRecipeCategories))
	}
	if len(d.Ingredients) == 0 {
		return models.Invalid("ingredients", "needs at least one row")
	}
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return models.Invalid("ingredients", "every row needs a name")
		}
		if ing.Quantity <= 0 {
			return models.Invalid("ingredients", fmt.Sprintf("%s needs a positive quantity", ing.Name))
		}
	}
	return nil
}

// Recipe converts the draft into the API shape.
func (d *Draft) Recipe() models.Recipe {
	ings := make([]models.Ingredient, len(d.Ingredients))
	copy(ings, d.Ingredients)
	return models.Recipe{
		Name:         strings.TrimSpace(d.Name),
		Servings:     d.Servings,
		Category:     d.Category,
		Ingredients:  ings,
		Instructions: d.Instructions,
	}
}

func (d *Draft) find(id uuid.UUID) *models.Ingredient {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			return &d.Ingredients[i]
		}
	}
	return nil
}

func setNutrition(row *models.Ingredient, n models.Nutrition) {
	row.Calories = n.Calories
	row.Protein = n.Protein
	row.Carbs = n.Carbs
	row.Fats = n.Fats
}
