// ABOUTME: Health steps: measurements (11), medical history (12), nutrition (13), and summary (14).
// ABOUTME: Nutrition is skippable and falls back to its defaults.
package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/units"
)

// MeasurementsStep is step 11: optional circumferences and body fat.
type MeasurementsStep struct {
	system  units.System
	values  [5]string // chest, waist, hips, arms, thighs
	bodyFat string
}

var measurementNames = [5]string{"chest", "waist", "hips", "arms", "thighs"}

// NewMeasurementsStep starts in metric.
func NewMeasurementsStep() *MeasurementsStep {
	return &MeasurementsStep{system: units.Metric}
}

func (s *MeasurementsStep) Index() int          { return 11 }
func (s *MeasurementsStep) Title() string       { return "Body measurements" }
func (s *MeasurementsStep) Units() units.System { return s.system }

func (s *MeasurementsStep) Seed(r models.Record) {
	resetToMetric(s)
	if m := r.BodyMeasurements; m != nil {
		s.values = [5]string{m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs}
	}
	if r.BodyFatPercentage != "" {
		s.bodyFat = r.BodyFatPercentage
	}
}

func (s *MeasurementsStep) Fields() []Field {
	fields := make([]Field, 0, len(measurementNames)+1)
	for i, name := range measurementNames {
		fields = append(fields, Field{
			Name:     name,
			Label:    strings.ToUpper(name[:1]) + name[1:],
			Kind:     KindNumber,
			Unit:     s.system.LengthUnit(),
			Value:    s.values[i],
			Optional: true,
		})
	}
	return append(fields, Field{
		Name: FieldBodyFatPercentage, Label: "Body fat", Kind: KindNumber, Unit: "%",
		Value: s.bodyFat, Optional: true,
	})
}

func (s *MeasurementsStep) Set(field, value string) error {
	if field == FieldBodyFatPercentage {
		s.bodyFat = value
		return nil
	}
	for i, name := range measurementNames {
		if name == field {
			s.values[i] = value
			return nil
		}
	}
	return unknownField(11, field)
}

func (s *MeasurementsStep) ToggleUnits() {
	conv := units.CmToIn
	if s.system == units.Imperial {
		conv = units.InToCm
	}
	for i := range s.values {
		s.values[i] = convertView(s.values[i], conv)
	}
	s.system = s.system.Toggle()
}

func (s *MeasurementsStep) Validate() error {
	for i, name := range measurementNames {
		if err := optionalPositive(name, s.values[i]); err != nil {
			return err
		}
	}
	if strings.TrimSpace(s.bodyFat) == "" {
		return nil
	}
	if v, ok := parsePositive(s.bodyFat); !ok || v >= 100 {
		return models.Invalid(FieldBodyFatPercentage, "must be between 0 and 100")
	}
	return nil
}

func (s *MeasurementsStep) Commit(u Updater) error {
	var cm [5]string
	for i := range s.values {
		cm[i] = toMetric(s.values[i], units.InToCm, s.system)
	}
	m := &models.BodyMeasurements{Chest: cm[0], Waist: cm[1], Hips: cm[2], Arms: cm[3], Thighs: cm[4]}
	if err := u.UpdateData(FieldBodyMeasurements, m); err != nil {
		return err
	}
	return u.UpdateData(FieldBodyFatPercentage, strings.TrimSpace(s.bodyFat))
}

// HealthStep is step 12: medical conditions, injuries, and preferences.
type HealthStep struct {
	conditions models.Choice[models.MedicalCondition]
	injuries   string
	timePref   string
	motivation string
}

// WorkoutTimes are the suggested workout time preferences.
var WorkoutTimes = []string{"early_morning", "morning", "afternoon", "evening", "night", "flexible"}

func (s *HealthStep) Index() int    { return 12 }
func (s *HealthStep) Title() string { return "Health and lifestyle" }

func (s *HealthStep) Seed(r models.Record) {
	if !r.MedicalConditions.IsEmpty() {
		s.conditions = r.MedicalConditions
	}
	if r.Injuries != "" {
		s.injuries = r.Injuries
	}
	if r.WorkoutTimePreference != "" {
		s.timePref = r.WorkoutTimePreference
	}
	if r.Motivation != "" {
		s.motivation = r.Motivation
	}
}

// Conditions returns the current selection.
func (s *HealthStep) Conditions() models.Choice[models.MedicalCondition] {
	return s.conditions
}

func (s *HealthStep) Fields() []Field {
	options := []string{models.MedicalConditionNone}
	options = append(options, stringsOf(models.SuggestedMedicalConditions)...)
	return []Field{
		{Name: FieldMedicalConditions, Label: "Medical conditions", Kind: KindMulti, Options: options,
			Value: strings.Join(s.conditions.Strings(models.MedicalConditionNone), ","), Optional: true},
		{Name: FieldInjuries, Label: "Injuries", Kind: KindText, Value: s.injuries, Optional: true},
		{Name: FieldWorkoutTimePreference, Label: "Preferred workout time", Kind: KindText, Options: WorkoutTimes,
			Value: s.timePref, Optional: true},
		{Name: FieldMotivation, Label: "What motivates you?", Kind: KindText, Value: s.motivation, Optional: true},
	}
}

func (s *HealthStep) Set(field, value string) error {
	switch field {
	case FieldMedicalConditions:
		s.conditions = models.Choice[models.MedicalCondition]{}
		for _, v := range splitList(value) {
			s.Toggle(v)
		}
	case FieldInjuries:
		s.injuries = value
	case FieldWorkoutTimePreference:
		s.timePref = value
	case FieldMotivation:
		s.motivation = value
	default:
		return unknownField(12, field)
	}
	return nil
}

// Toggle applies one click on a condition. "None" in any case clears the rest.
func (s *HealthStep) Toggle(condition string) {
	if strings.EqualFold(condition, models.MedicalConditionNone) {
		s.conditions = s.conditions.SelectNone()
		return
	}
	s.conditions = s.conditions.Toggle(models.MedicalCondition(condition))
}

func (s *HealthStep) Validate() error {
	return nil
}

func (s *HealthStep) Commit(u Updater) error {
	updates := []struct {
		field string
		value any
	}{
		{FieldMedicalConditions, s.conditions},
		{FieldInjuries, strings.TrimSpace(s.injuries)},
		{FieldWorkoutTimePreference, strings.TrimSpace(s.timePref)},
		{FieldMotivation, strings.TrimSpace(s.motivation)},
	}
	for _, up := range updates {
		if err := u.UpdateData(up.field, up.value); err != nil {
			return err
		}
	}
	return nil
}

// NutritionStep is step 13: diet, allergens, and daily targets.
type NutritionStep struct {
	diet      string
	allergens []models.Allergen
	meals     string
	water     string
	sleep     string
}

// NewNutritionStep starts from the nutrition defaults.
func NewNutritionStep() *NutritionStep {
	s := &NutritionStep{}
	s.reset()
	return s
}

func (s *NutritionStep) reset() {
	s.diet = string(models.DietNone)
	s.allergens = nil
	s.meals = strconv.Itoa(models.DefaultMealsPerDay)
	s.water = strconv.Itoa(models.DefaultWaterIntakeGoal)
	s.sleep = strconv.Itoa(models.DefaultSleepGoal)
}

func (s *NutritionStep) Index() int    { return 13 }
func (s *NutritionStep) Title() string { return "Nutrition and recovery" }

func (s *NutritionStep) Seed(r models.Record) {
	if r.DietaryPreference != "" {
		s.diet = string(r.DietaryPreference)
	}
	if len(r.Allergens) > 0 {
		s.allergens = append([]models.Allergen(nil), r.Allergens...)
	}
	if r.MealsPerDay != "" {
		s.meals = r.MealsPerDay
	}
	if r.WaterIntakeGoal != "" {
		s.water = r.WaterIntakeGoal
	}
	if r.SleepGoal != "" {
		s.sleep = r.SleepGoal
	}
}

func (s *NutritionStep) Fields() []Field {
	return []Field{
		{Name: FieldDietaryPreference, Label: "Diet", Kind: KindSelect, Options: stringsOf(models.AllDietaryPreferences), Value: s.diet},
		{Name: FieldAllergens, Label: "Allergies", Kind: KindMulti, Options: stringsOf(models.AllAllergens),
			Value: strings.Join(stringsOf(s.allergens), ","), Optional: true},
		{Name: FieldMealsPerDay, Label: "Meals per day", Kind: KindNumber, Value: s.meals},
		{Name: FieldWaterIntakeGoal, Label: "Water per day", Kind: KindNumber, Unit: "glasses", Value: s.water},
		{Name: FieldSleepGoal, Label: "Sleep per night", Kind: KindNumber, Unit: "hours", Value: s.sleep},
	}
}

func (s *NutritionStep) Set(field, value string) error {
	switch field {
	case FieldDietaryPreference:
		s.diet = strings.TrimSpace(value)
	case FieldAllergens:
		var list []models.Allergen
		for _, v := range splitList(value) {
			if !models.IsValidAllergen(v) {
				return models.Invalid(FieldAllergens, fmt.Sprintf("%q is not an allergen option", v))
			}
			list = append(list, models.Allergen(v))
		}
		s.allergens = list
	case FieldMealsPerDay:
		s.meals = strings.TrimSpace(value)
	case FieldWaterIntakeGoal:
		s.water = strings.TrimSpace(value)
	case FieldSleepGoal:
		s.sleep = strings.TrimSpace(value)
	default:
		return unknownField(13, field)
	}
	return nil
}

func (s *NutritionStep) Validate() error {
	if !models.IsValidDietaryPreference(s.diet) {
		return models.Invalid(FieldDietaryPreference, "is not one of the options")
	}
	for _, a := range s.allergens {
		if !models.IsValidAllergen(string(a)) {
			return models.Invalid(FieldAllergens, fmt.Sprintf("%q is not an allergen option", a))
		}
	}
	if n, err := strconv.Atoi(s.meals); err != nil || n < 1 || n > 10 {
		return models.Invalid(FieldMealsPerDay, "must be between 1 and 10")
	}
	if err := requirePositive(FieldWaterIntakeGoal, s.water); err != nil {
		return err
	}
	if v, ok := parsePositive(s.sleep); !ok || v > 24 {
		return models.Invalid(FieldSleepGoal, "must be between 0 and 24 hours")
	}
	return nil
}

func (s *NutritionStep) Commit(u Updater) error {
	return s.write(u)
}

// Skip writes the defaults: no diet, no allergens, 3 meals, 8 glasses, 8 hours.
func (s *NutritionStep) Skip(u Updater) error {
	s.reset()
	return s.write(u)
}

func (s *NutritionStep) write(u Updater) error {
	allergens := append([]models.Allergen{}, s.allergens...)
	updates := []struct {
		field string
		value any
	}{
		{FieldDietaryPreference, models.DietaryPreference(s.diet)},
		{FieldAllergens, allergens},
		{FieldMealsPerDay, s.meals},
		{FieldWaterIntakeGoal, s.water},
		{FieldSleepGoal, s.sleep},
	}
	for _, up := range updates {
		if err := u.UpdateData(up.field, up.value); err != nil {
			return err
		}
	}
	return nil
}

// SummaryStep is the terminal step. It shows the answers; saving and the
// dashboard redirect are driven by Completion.
type SummaryStep struct {
	record models.Record
}

func (s *SummaryStep) Index() int    { return TotalSteps }
func (s *SummaryStep) Title() string { return "You're all set!" }

func (s *SummaryStep) Seed(r models.Record) {
	s.record = r.Clone()
}

func (s *SummaryStep) Fields() []Field { return nil }

func (s *SummaryStep) Set(field, _ string) error {
	return unknownField(TotalSteps, field)
}

func (s *SummaryStep) Validate() error { return nil }

func (s *SummaryStep) Commit(Updater) error { return nil }

// Lines renders the key answers for display.
func (s *SummaryStep) Lines() []string {
	r := s.record
	lines := []string{
		fmt.Sprintf("Goal: %s", orDash(string(r.Goal))),
		fmt.Sprintf("Level: %s", orDash(string(r.FitnessLevel))),
		fmt.Sprintf("Height: %s cm, weight: %s kg", orDash(r.Height), orDash(r.Weight)),
		fmt.Sprintf("Focus: %s", orDash(strings.Join(stringsOf(r.FocusAreas), ", "))),
		fmt.Sprintf("Training: %s days a week at %s", orDash(r.WorkoutFrequency), orDash(string(r.Location))),
		fmt.Sprintf("Equipment: %s", orDash(strings.Join(r.Equipment.Strings(models.EquipmentNone), ", "))),
		fmt.Sprintf("Diet: %s", orDash(string(r.DietaryPreference))),
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
