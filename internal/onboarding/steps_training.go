// ABOUTME: Training steps: focus areas (5), strength (7), frequency (8), and equipment (9).
// ABOUTME: Strength accepts "weight x reps" and estimates a one-rep max with the Epley formula.
package onboarding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/units"
)

// FocusStep is step 5: at least one focus area.
type FocusStep struct {
	areas []models.FocusArea
}

func (s *FocusStep) Index() int    { return 5 }
func (s *FocusStep) Title() string { return "Which areas do you want to focus on?" }

func (s *FocusStep) Seed(r models.Record) {
	if len(r.FocusAreas) > 0 {
		s.areas = append([]models.FocusArea(nil), r.FocusAreas...)
	}
}

func (s *FocusStep) Fields() []Field {
	return []Field{{
		Name:    FieldFocusAreas,
		Label:   "Focus areas",
		Kind:    KindMulti,
		Options: stringsOf(models.AllFocusAreas),
		Value:   strings.Join(stringsOf(s.areas), ","),
	}}
}

func (s *FocusStep) Set(field, value string) error {
	if field != FieldFocusAreas {
		return unknownField(5, field)
	}
	var areas []models.FocusArea
	for _, v := range splitList(value) {
		if !models.IsValidFocusArea(v) {
			return models.Invalid(FieldFocusAreas, fmt.Sprintf("%q is not a focus area", v))
		}
		areas = append(areas, models.FocusArea(v))
	}
	s.areas = areas
	return nil
}

// Toggle adds or removes one area.
func (s *FocusStep) Toggle(area models.FocusArea) {
	for i, a := range s.areas {
		if a == area {
			s.areas = append(s.areas[:i], s.areas[i+1:]...)
			return
		}
	}
	s.areas = append(s.areas, area)
}

func (s *FocusStep) Validate() error {
	if len(s.areas) == 0 {
		return models.Invalid(FieldFocusAreas, "pick at least one")
	}
	return nil
}

func (s *FocusStep) Commit(u Updater) error {
	return u.UpdateData(FieldFocusAreas, append([]models.FocusArea(nil), s.areas...))
}

// StrengthStep is step 7: optional one-rep maxes.
type StrengthStep struct {
	system   units.System
	bench    string
	squat    string
	deadlift string
}

// NewStrengthStep starts in metric.
func NewStrengthStep() *StrengthStep {
	return &StrengthStep{system: units.Metric}
}

func (s *StrengthStep) Index() int          { return 7 }
func (s *StrengthStep) Title() string       { return "How strong are you today?" }
func (s *StrengthStep) Units() units.System { return s.system }

func (s *StrengthStep) Seed(r models.Record) {
	resetToMetric(s)
	if r.OneRM != nil {
		s.bench, s.squat, s.deadlift = r.OneRM.Bench, r.OneRM.Squat, r.OneRM.Deadlift
	}
}

func (s *StrengthStep) Fields() []Field {
	unit := s.system.MassUnit()
	return []Field{
		{Name: "bench", Label: "Bench press (weight or weight x reps)", Kind: KindText, Unit: unit, Value: s.bench, Optional: true},
		{Name: "squat", Label: "Squat (weight or weight x reps)", Kind: KindText, Unit: unit, Value: s.squat, Optional: true},
		{Name: "deadlift", Label: "Deadlift (weight or weight x reps)", Kind: KindText, Unit: unit, Value: s.deadlift, Optional: true},
	}
}

func (s *StrengthStep) Set(field, value string) error {
	switch field {
	case "bench":
		s.bench = value
	case "squat":
		s.squat = value
	case "deadlift":
		s.deadlift = value
	default:
		return unknownField(7, field)
	}
	return nil
}

func (s *StrengthStep) ToggleUnits() {
	conv := units.KgToLbs
	if s.system == units.Imperial {
		conv = units.LbsToKg
	}
	for _, lift := range []*string{&s.bench, &s.squat, &s.deadlift} {
		*lift = convertLift(*lift, conv)
	}
	s.system = s.system.Toggle()
}

func (s *StrengthStep) Validate() error {
	lifts := []struct{ name, value string }{
		{"bench", s.bench}, {"squat", s.squat}, {"deadlift", s.deadlift},
	}
	for _, lift := range lifts {
		if strings.TrimSpace(lift.value) == "" {
			continue
		}
		if _, ok := EstimateOneRM(lift.value); !ok {
			return models.Invalid(lift.name, "must be a weight or weight x reps")
		}
	}
	return nil
}

func (s *StrengthStep) Commit(u Updater) error {
	return u.UpdateData(FieldOneRM, &models.OneRM{
		Bench:    s.metricLift(s.bench),
		Squat:    s.metricLift(s.squat),
		Deadlift: s.metricLift(s.deadlift),
	})
}

// Skip records that no lifts were given.
func (s *StrengthStep) Skip(u Updater) error {
	s.bench, s.squat, s.deadlift = "", "", ""
	return u.UpdateData(FieldOneRM, &models.OneRM{})
}

func (s *StrengthStep) metricLift(lift string) string {
	v, ok := EstimateOneRM(lift)
	if !ok {
		return ""
	}
	if s.system == units.Imperial {
		v = units.LbsToKg(v)
	}
	return units.FormatValue(v)
}

var setPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*[x×*]\s*(\d+)\s*$`)

// EstimateOneRM reads a lift as either a plain weight or "weight x reps" and
// returns the estimated one-rep max, rounded to one decimal.
func EstimateOneRM(lift string) (float64, bool) {
	if v, ok := parsePositive(lift); ok {
		return units.Round1(v), true
	}
	m := setPattern.FindStringSubmatch(strings.ToLower(lift))
	if m == nil {
		return 0, false
	}
	w, _ := strconv.ParseFloat(m[1], 64)
	reps, _ := strconv.Atoi(m[2])
	if w <= 0 || reps <= 0 {
		return 0, false
	}
	return Epley(w, reps), true
}

// Epley estimates a one-rep max from a set of reps at weight w.
func Epley(w float64, reps int) float64 {
	if reps == 1 {
		return units.Round1(w)
	}
	return units.Round1(w * (1 + float64(reps)/30))
}

// convertLift converts the weight part of a lift and keeps any rep count.
func convertLift(lift string, conv func(float64) float64) string {
	if m := setPattern.FindStringSubmatch(strings.ToLower(lift)); m != nil {
		w, _ := strconv.ParseFloat(m[1], 64)
		return units.FormatValue(conv(w)) + " x " + m[2]
	}
	return convertView(lift, conv)
}

// FrequencyStep is step 8: workout days per week.
type FrequencyStep struct {
	days string
}

func (s *FrequencyStep) Index() int    { return 8 }
func (s *FrequencyStep) Title() string { return "How many days a week can you train?" }

func (s *FrequencyStep) Seed(r models.Record) {
	if r.WorkoutFrequency != "" {
		s.days = r.WorkoutFrequency
	}
}

func (s *FrequencyStep) Fields() []Field {
	return []Field{{
		Name:    FieldWorkoutFrequency,
		Label:   "Days per week",
		Kind:    KindSelect,
		Options: []string{"1", "2", "3", "4", "5", "6", "7"},
		Value:   s.days,
	}}
}

func (s *FrequencyStep) Set(field, value string) error {
	if field != FieldWorkoutFrequency {
		return unknownField(8, field)
	}
	s.days = strings.TrimSpace(value)
	return nil
}

func (s *FrequencyStep) Validate() error {
	n, err := strconv.Atoi(s.days)
	if err != nil || n < 1 || n > 7 {
		return models.Invalid(FieldWorkoutFrequency, "must be between 1 and 7")
	}
	return nil
}

func (s *FrequencyStep) Commit(u Updater) error {
	return u.UpdateData(FieldWorkoutFrequency, s.days)
}

// EquipmentStep is step 9. "none" excludes every specific item.
type EquipmentStep struct {
	choice models.Choice[models.Equipment]
}

func (s *EquipmentStep) Index() int    { return 9 }
func (s *EquipmentStep) Title() string { return "What equipment do you have?" }

func (s *EquipmentStep) Seed(r models.Record) {
	if !r.Equipment.IsEmpty() {
		s.choice = r.Equipment
	}
}

// Choice returns the current selection.
func (s *EquipmentStep) Choice() models.Choice[models.Equipment] {
	return s.choice
}

func (s *EquipmentStep) Fields() []Field {
	return []Field{{
		Name:    FieldEquipment,
		Label:   "Equipment",
		Kind:    KindMulti,
		Options: append([]string{models.EquipmentNone}, stringsOf(models.AllEquipment)...),
		Value:   strings.Join(s.choice.Strings(models.EquipmentNone), ","),
	}}
}

// Set replaces the selection by toggling each listed option in order.
func (s *EquipmentStep) Set(field, value string) error {
	if field != FieldEquipment {
		return unknownField(9, field)
	}
	s.choice = models.Choice[models.Equipment]{}
	for _, v := range splitList(value) {
		if err := s.Toggle(v); err != nil {
			return err
		}
	}
	return nil
}

// Toggle applies one click on an option.
func (s *EquipmentStep) Toggle(option string) error {
	if strings.EqualFold(option, models.EquipmentNone) {
		s.choice = s.choice.SelectNone()
		return nil
	}
	if !models.IsValidEquipment(option) {
		return models.Invalid(FieldEquipment, fmt.Sprintf("%q is not an equipment option", option))
	}
	s.choice = s.choice.Toggle(models.Equipment(option))
	return nil
}

func (s *EquipmentStep) Validate() error {
	if s.choice.IsEmpty() {
		return models.Invalid(FieldEquipment, "pick at least one option, or none")
	}
	return nil
}

func (s *EquipmentStep) Commit(u Updater) error {
	return u.UpdateData(FieldEquipment, s.choice)
}
