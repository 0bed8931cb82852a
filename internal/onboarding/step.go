// ABOUTME: Step contract shared by the fourteen onboarding steps.
// ABOUTME: Field descriptors let a front end render and fill any step generically.
package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/units"
)

// Step is one page of the wizard. View state lives in the step until Commit
// writes canonical metric values into the record.
type Step interface {
	Index() int
	Title() string
	// Seed loads view state from the record, keeping local defaults for
	// fields the record has not set.
	Seed(r models.Record)
	Fields() []Field
	// Set assigns a view field from user input.
	Set(field, value string) error
	// Validate is the can-proceed predicate.
	Validate() error
	Commit(u Updater) error
}

// Skipper is implemented by optional steps.
type Skipper interface {
	Skip(u Updater) error
}

// UnitToggler is implemented by steps that offer metric/imperial entry.
type UnitToggler interface {
	Units() units.System
	// ToggleUnits flips the system and converts every view value in place,
	// rounding to one decimal.
	ToggleUnits()
}

// resetToMetric converts any imperial view values back before a reseed, so
// values typed in imperial are never read as metric.
func resetToMetric(s UnitToggler) {
	if s.Units() == units.Imperial {
		s.ToggleUnits()
	}
}

// FieldKind tells a front end how to collect a field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindSelect
	KindMulti
)

// Field describes one input of a step.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Unit     string
	Options  []string
	Value    string
	Optional bool
}

// Steps builds the fourteen steps in order.
func Steps() []Step {
	return []Step{
		NewGenderStep(),
		NewBasicsStep(),
		NewTargetsStep(),
		NewGoalStep(),
		&FocusStep{},
		NewLevelStep(),
		NewStrengthStep(),
		&FrequencyStep{},
		&EquipmentStep{},
		NewLocationStep(),
		NewMeasurementsStep(),
		&HealthStep{},
		NewNutritionStep(),
		&SummaryStep{},
	}
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// requirePositive validates a mandatory numeric view value.
func requirePositive(field, s string) error {
	if _, ok := parsePositive(s); !ok {
		return models.Invalid(field, "must be a positive number")
	}
	return nil
}

// optionalPositive validates an optional numeric view value.
func optionalPositive(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return requirePositive(field, s)
}

// convertView converts a view string with conv, leaving blanks and junk alone.
func convertView(s string, conv func(float64) float64) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return units.FormatValue(conv(v))
}

// toMetric normalises a view value for storage.
func toMetric(s string, conv func(float64) float64, system units.System) string {
	s = strings.TrimSpace(s)
	if system == units.Metric || s == "" {
		return s
	}
	return convertView(s, conv)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func unknownField(step int, field string) error {
	return fmt.Errorf("step %d has no field %q", step, field)
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
