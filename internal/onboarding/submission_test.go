// ABOUTME: Tests for the terminal onboarding transform.
// ABOUTME: Checks numeric parsing, null blanks, sentinel lists, and nutrition defaults.
package onboarding

import (
	"encoding/json"
	"testing"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSubmissionFull(t *testing.T) {
	r := models.Record{
		Gender:            models.Gender("female"),
		Age:               "29",
		Height:            "165.5",
		Weight:            "60",
		Goal:              models.GoalBuildMuscle,
		FocusAreas:        []models.FocusArea{models.FocusLegs, models.FocusGlutes},
		OneRM:             &models.OneRM{Squat: "93.3"},
		WorkoutFrequency:  "4",
		Equipment:         models.SpecificChoice(models.EquipBarbell, models.EquipBench),
		BodyMeasurements:  &models.BodyMeasurements{Waist: "70"},
		MedicalConditions: models.NoneChoice[models.MedicalCondition](),
		Injuries:          "  ",
		Motivation:        "feel strong",
		DietaryPreference: models.DietVegan,
		Allergens:         []models.Allergen{models.AllergenSoy},
		MealsPerDay:       "4",
		WaterIntakeGoal:   "10",
		SleepGoal:         "7",
	}

	sub := BuildSubmission(r)
	require.NotNil(t, sub.Age)
	assert.Equal(t, 29.0, *sub.Age)
	assert.Equal(t, 165.5, *sub.Height)
	assert.Nil(t, sub.TargetWeight)
	assert.Equal(t, []string{"legs", "glutes"}, sub.FocusAreas)
	require.NotNil(t, sub.OneRM)
	assert.Nil(t, sub.OneRM.Bench)
	assert.Equal(t, 93.3, *sub.OneRM.Squat)
	assert.Equal(t, 4, *sub.WorkoutFrequency)
	assert.Equal(t, []string{"barbell", "bench"}, sub.Equipment)
	assert.Equal(t, 70.0, *sub.BodyMeasurements.Waist)
	assert.Nil(t, sub.BodyMeasurements.Chest)
	assert.Equal(t, []string{"None"}, sub.MedicalConditions)
	assert.Nil(t, sub.Injuries)
	assert.Equal(t, "feel strong", *sub.Motivation)
	assert.Equal(t, "vegan", sub.DietaryPreference)
	assert.Equal(t, []string{"soy"}, sub.Allergens)
	assert.Equal(t, 4, sub.MealsPerDay)
	assert.Equal(t, 10, sub.WaterIntakeGoal)
	assert.Equal(t, 7, sub.SleepGoal)
}

func TestBuildSubmissionDefaults(t *testing.T) {
	sub := BuildSubmission(models.Record{})

	assert.Equal(t, "none", sub.DietaryPreference)
	assert.Equal(t, 3, sub.MealsPerDay)
	assert.Equal(t, 8, sub.WaterIntakeGoal)
	assert.Equal(t, 8, sub.SleepGoal)
	assert.Nil(t, sub.OneRM)
	assert.Nil(t, sub.WorkoutFrequency)

	raw, err := json.Marshal(sub)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, []any{}, wire["focusAreas"])
	assert.Equal(t, []any{}, wire["equipment"])
	assert.Equal(t, []any{}, wire["medicalConditions"])
	assert.Equal(t, []any{}, wire["allergens"])
	assert.Nil(t, wire["age"])
	assert.Contains(t, wire, "age")
}

func TestBuildSubmissionEquipmentNone(t *testing.T) {
	sub := BuildSubmission(models.Record{Equipment: models.NoneChoice[models.Equipment]()})
	assert.Equal(t, []string{"none"}, sub.Equipment)
}
