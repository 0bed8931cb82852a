// ABOUTME: Field-level shallow merge into the onboarding record.
// ABOUTME: Field names match the record's JSON names.
package onboarding

import "fmt"

// Record field names accepted by UpdateData.
const (
	FieldGender                = "gender"
	FieldAge                   = "age"
	FieldHeight                = "height"
	FieldWeight                = "weight"
	FieldTargetWeight          = "targetWeight"
	FieldTargetHeight          = "targetHeight"
	FieldGoal                  = "goal"
	FieldFocusAreas            = "focusAreas"
	FieldFitnessLevel          = "fitnessLevel"
	FieldOneRM                 = "oneRM"
	FieldWorkoutFrequency      = "workoutFrequency"
	FieldEquipment             = "equipment"
	FieldLocation              = "location"
	FieldBodyMeasurements      = "bodyMeasurements"
	FieldBodyFatPercentage     = "bodyFatPercentage"
	FieldMedicalConditions     = "medicalConditions"
	FieldInjuries              = "injuries"
	FieldWorkoutTimePreference = "workoutTimePreference"
	FieldMotivation            = "motivation"
	FieldDietaryPreference     = "dietaryPreference"
	FieldAllergens             = "allergens"
	FieldMealsPerDay           = "mealsPerDay"
	FieldWaterIntakeGoal       = "waterIntakeGoal"
	FieldSleepGoal             = "sleepGoal"
)

// UpdateData replaces one top-level field of the record. Other fields are
// left as they are.
func (w *Wizard) UpdateData(field string, value any) error {
	r := &w.record
	switch field {
	case FieldGender:
		return assign(&r.Gender, field, value)
	case FieldAge:
		return assign(&r.Age, field, value)
	case FieldHeight:
		return assign(&r.Height, field, value)
	case FieldWeight:
		return assign(&r.Weight, field, value)
	case FieldTargetWeight:
		return assign(&r.TargetWeight, field, value)
	case FieldTargetHeight:
		return assign(&r.TargetHeight, field, value)
	case FieldGoal:
		return assign(&r.Goal, field, value)
	case FieldFocusAreas:
		return assign(&r.FocusAreas, field, value)
	case FieldFitnessLevel:
		return assign(&r.FitnessLevel, field, value)
	case FieldOneRM:
		return assign(&r.OneRM, field, value)
	case FieldWorkoutFrequency:
		return assign(&r.WorkoutFrequency, field, value)
	case FieldEquipment:
		return assign(&r.Equipment, field, value)
	case FieldLocation:
		return assign(&r.Location, field, value)
	case FieldBodyMeasurements:
		return assign(&r.BodyMeasurements, field, value)
	case FieldBodyFatPercentage:
		return assign(&r.BodyFatPercentage, field, value)
	case FieldMedicalConditions:
		return assign(&r.MedicalConditions, field, value)
	case FieldInjuries:
		return assign(&r.Injuries, field, value)
	case FieldWorkoutTimePreference:
		return assign(&r.WorkoutTimePreference, field, value)
	case FieldMotivation:
		return assign(&r.Motivation, field, value)
	case FieldDietaryPreference:
		return assign(&r.DietaryPreference, field, value)
	case FieldAllergens:
		return assign(&r.Allergens, field, value)
	case FieldMealsPerDay:
		return assign(&r.MealsPerDay, field, value)
	case FieldWaterIntakeGoal:
		return assign(&r.WaterIntakeGoal, field, value)
	case FieldSleepGoal:
		return assign(&r.SleepGoal, field, value)
	default:
		return fmt.Errorf("update %s: unknown field", field)
	}
}

func assign[T any](dst *T, field string, value any) error {
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("update %s: want %T, got %T", field, *dst, value)
	}
	*dst = v
	return nil
}
