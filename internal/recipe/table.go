// ABOUTME: Ingredient reference table with per-100g nutrition values.
// ABOUTME: The built-in table is embedded JSON; a JSON or YAML file can replace it.
package recipe

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed ingredients.json
var defaultIngredients []byte

// Reference is one reference-table row. Values are per 100 g.
type Reference struct {
	Name     string  `json:"name" yaml:"name"`
	Alias    string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fats     float64 `json:"fats" yaml:"fats"`
}

// Per100g returns the reference values as a Nutrition bundle.
func (r Reference) Per100g() models.Nutrition {
	return models.Nutrition{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fats: r.Fats}
}

// Table supplies reference rows in their natural order.
type Table interface {
	Entries() []Reference
}

// StaticTable is a Table backed by a slice.
type StaticTable []Reference

// Entries returns the rows.
func (t StaticTable) Entries() []Reference {
	return t
}

// DefaultTable returns the built-in reference table.
func DefaultTable() Table {
	t, err := ParseTable(defaultIngredients, "json")
	if err != nil {
		panic(fmt.Sprintf("embedded ingredient table: %v", err))
	}
	return t
}

// LoadTableFile reads a reference table from a .json, .yaml or .yml file.
func LoadTableFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ingredient table: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	t, err := ParseTable(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a table in the given format ("json", "yaml" or "yml").
func ParseTable(data []byte, format string) (StaticTable, error) {
	var rows []Reference
	switch format {
	case "json":
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
	for i, r := range rows {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("row %d: name is required", i+1)
		}
	}
	return StaticTable(rows), nil
}

// Find returns the row whose name or alias equals name, ignoring case.
func Find(t Table, name string) (Reference, bool) {
	name = strings.TrimSpace(name)
	for _, r := range t.Entries() {
		if strings.EqualFold(r.Name, name) || (r.Alias != "" && strings.EqualFold(r.Alias, name)) {
			return r, true
		}
	}
	return Reference{}, false
}
