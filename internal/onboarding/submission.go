// ABOUTME: Terminal transform from the onboarding record to the API payload.
// ABOUTME: Numeric strings become numbers, blanks become null, unset lists become [].
package onboarding

import (
	"strconv"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
)

// Submission is the body of POST /user/onboarding.
type Submission struct {
	Gender       string   `json:"gender"`
	Age          *float64 `json:"age"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	TargetWeight *float64 `json:"targetWeight"`
	TargetHeight *float64 `json:"targetHeight"`

	Goal         string   `json:"goal"`
	FocusAreas   []string `json:"focusAreas"`
	FitnessLevel string   `json:"fitnessLevel"`

	OneRM *SubmittedOneRM `json:"oneRM"`

	WorkoutFrequency *int     `json:"workoutFrequency"`
	Equipment        []string `json:"equipment"`
	Location         string   `json:"location"`

	BodyMeasurements  *SubmittedMeasurements `json:"bodyMeasurements"`
	BodyFatPercentage *float64               `json:"bodyFatPercentage"`

	MedicalConditions     []string `json:"medicalConditions"`
	Injuries              *string  `json:"injuries"`
	WorkoutTimePreference *string  `json:"workoutTimePreference"`
	Motivation            *string  `json:"motivation"`

	DietaryPreference string   `json:"dietaryPreference"`
	Allergens         []string `json:"allergens"`
	MealsPerDay       int      `json:"mealsPerDay"`
	WaterIntakeGoal   int      `json:"waterIntakeGoal"`
	SleepGoal         int      `json:"sleepGoal"`
}

// SubmittedOneRM holds lifts in kg.
type SubmittedOneRM struct {
	Bench    *float64 `json:"bench"`
	Squat    *float64 `json:"squat"`
	Deadlift *float64 `json:"deadlift"`
}

// SubmittedMeasurements holds circumferences in cm.
type SubmittedMeasurements struct {
	Chest  *float64 `json:"chest"`
	Waist  *float64 `json:"waist"`
	Hips   *float64 `json:"hips"`
	Arms   *float64 `json:"arms"`
	Thighs *float64 `json:"thighs"`
}

// BuildSubmission transforms a finished record into the API payload.
func BuildSubmission(r models.Record) Submission {
	sub := Submission{
		Gender:       string(r.Gender),
		Age:          number(r.Age),
		Height:       number(r.Height),
		Weight:       number(r.Weight),
		TargetWeight: number(r.TargetWeight),
		TargetHeight: number(r.TargetHeight),

		Goal:         string(r.Goal),
		FocusAreas:   listOf(r.FocusAreas),
		FitnessLevel: string(r.FitnessLevel),

		WorkoutFrequency: integer(r.WorkoutFrequency),
		Equipment:        r.Equipment.Strings(models.EquipmentNone),
		Location:         string(r.Location),

		BodyFatPercentage: number(r.BodyFatPercentage),

		MedicalConditions:     r.MedicalConditions.Strings(models.MedicalConditionNone),
		Injuries:              text(r.Injuries),
		WorkoutTimePreference: text(r.WorkoutTimePreference),
		Motivation:            text(r.Motivation),

		DietaryPreference: string(r.DietaryPreference),
		Allergens:         listOf(r.Allergens),
		MealsPerDay:       intOr(r.MealsPerDay, models.DefaultMealsPerDay),
		WaterIntakeGoal:   intOr(r.WaterIntakeGoal, models.DefaultWaterIntakeGoal),
		SleepGoal:         intOr(r.SleepGoal, models.DefaultSleepGoal),
	}
	if sub.DietaryPreference == "" {
		sub.DietaryPreference = string(models.DietNone)
	}
	if m := r.OneRM; m != nil {
		sub.OneRM = &SubmittedOneRM{
			Bench:    number(m.Bench),
			Squat:    number(m.Squat),
			Deadlift: number(m.Deadlift),
		}
	}
	if m := r.BodyMeasurements; m != nil {
		sub.BodyMeasurements = &SubmittedMeasurements{
			Chest:  number(m.Chest),
			Waist:  number(m.Waist),
			Hips:   number(m.Hips),
			Arms:   number(m.Arms),
			Thighs: number(m.Thighs),
		}
	}
	return sub
}

func number(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func integer(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func intOr(s string, def int) int {
	if v := integer(s); v != nil {
		return *v
	}
	return def
}

func text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func listOf[T ~string](values []T) []string {
	return stringsOf(values)
}
