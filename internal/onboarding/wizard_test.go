// ABOUTME: Tests for the wizard controller: transitions, progress, merge, and route guard.
// ABOUTME: Includes the unauthenticated redirect and the steps 1-6 then skip-at-7 scenario.
package onboarding

import (
	"sync"
	"testing"

	"github.com/harperreed/fitforge/internal/appstate"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNav) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNav) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

func wizardAt(step int, nav Navigator) *Wizard {
	w := NewWizard(nav)
	w.step = step
	return w
}

func TestNextStepTransitions(t *testing.T) {
	for s := 1; s <= TotalSteps; s++ {
		nav := &recordingNav{}
		w := wizardAt(s, nav)
		w.NextStep()

		if s < TotalSteps {
			assert.Equal(t, s+1, w.Step(), "next from %d", s)
			assert.Empty(t, nav.Routes(), "next from %d must not navigate", s)
		} else {
			assert.Equal(t, TotalSteps, w.Step(), "terminal step must not advance")
			assert.Equal(t, []string{RouteDashboard}, nav.Routes())
		}
	}
}

func TestPrevStepTransitions(t *testing.T) {
	for s := 1; s <= TotalSteps; s++ {
		w := wizardAt(s, &recordingNav{})
		w.PrevStep()
		want := s - 1
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, w.Step(), "prev from %d", s)
	}
	assert.False(t, NewWizard(&recordingNav{}).CanGoBack())
}

func TestProgress(t *testing.T) {
	w := NewWizard(&recordingNav{})
	assert.InDelta(t, 100.0/14, w.Progress(), 1e-9)
	w.step = TotalSteps
	assert.Equal(t, 100.0, w.Progress())
}

func TestUpdateDataShallowMerge(t *testing.T) {
	w := NewWizard(&recordingNav{})
	require.NoError(t, w.UpdateData(FieldGender, models.GenderOther))
	require.NoError(t, w.UpdateData(FieldAge, "40"))
	require.NoError(t, w.UpdateData(FieldAge, "41"))

	r := w.Record()
	assert.Equal(t, models.GenderOther, r.Gender)
	assert.Equal(t, "41", r.Age)

	assert.Error(t, w.UpdateData(FieldAge, 41))
	assert.Error(t, w.UpdateData("favouriteColour", "blue"))
	assert.Equal(t, "41", w.Record().Age)
}

func TestRecordIsACopy(t *testing.T) {
	w := NewWizard(&recordingNav{})
	require.NoError(t, w.UpdateData(FieldFocusAreas, []models.FocusArea{models.FocusAbs}))

	r := w.Record()
	r.FocusAreas[0] = models.FocusLegs
	assert.Equal(t, models.FocusAbs, w.Record().FocusAreas[0])
}

func TestPrevStepKeepsData(t *testing.T) {
	nav := &recordingNav{}
	w := NewWizard(nav)
	steps := Steps()

	gender := steps[0].(*SelectStep[models.Gender])
	require.NoError(t, gender.Set(FieldGender, "female"))
	require.NoError(t, w.Advance(gender))
	w.PrevStep()

	assert.Equal(t, 1, w.Step())
	assert.Equal(t, models.GenderFemale, w.Record().Gender)

	fresh := NewGenderStep()
	fresh.Seed(w.Record())
	assert.Equal(t, "female", fresh.Fields()[0].Value)
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	w := NewWizard(&recordingNav{})
	err := w.Advance(NewGenderStep())

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldGender, verr.Field)
	assert.Equal(t, 1, w.Step())
}

func TestSkipOnlyOnOptionalSteps(t *testing.T) {
	w := wizardAt(5, &recordingNav{})
	assert.Error(t, w.Skip(&FocusStep{}))
	assert.Equal(t, 5, w.Step())
}

func TestGuardUnauthenticated(t *testing.T) {
	nav := &recordingNav{}
	w := NewWizard(nav)

	ok, stop := w.Mount(appstate.New())
	defer stop()

	assert.False(t, ok)
	assert.Equal(t, []string{RouteHome}, nav.Routes())
	assert.Equal(t, 1, w.Step())
	assert.Empty(t, w.Record().Gender)
}

func TestGuardAlreadyOnboarded(t *testing.T) {
	nav := &recordingNav{}
	state := appstate.New()
	u := models.NewUserProfile("Ada", "ada@example.com")
	u.OnboardingCompleted = true
	state.SetUser(u)

	ok, stop := NewWizard(nav).Mount(state)
	defer stop()

	assert.False(t, ok)
	assert.Equal(t, []string{RouteDashboard}, nav.Routes())
}

func TestGuardReevaluatesOnUserChange(t *testing.T) {
	nav := &recordingNav{}
	state := appstate.New()
	state.SetUser(models.NewUserProfile("Ada", "ada@example.com"))

	ok, stop := NewWizard(nav).Mount(state)
	require.True(t, ok)
	assert.Empty(t, nav.Routes())

	state.SetUser(nil)
	assert.Equal(t, []string{RouteHome}, nav.Routes())

	stop()
	state.SetUser(nil)
	assert.Len(t, nav.Routes(), 1)
}

func TestScenarioFirstSixStepsThenSkipStrength(t *testing.T) {
	w := NewWizard(&recordingNav{})
	steps := Steps()

	inputs := []map[string]string{
		{FieldGender: "male"},
		{FieldAge: "30", FieldHeight: "180", FieldWeight: "80"},
		{},
		{FieldGoal: "build_muscle"},
		{FieldFocusAreas: "chest,arms"},
		{FieldFitnessLevel: "beginner"},
	}
	for i, in := range inputs {
		s := steps[i]
		s.Seed(w.Record())
		for field, value := range in {
			require.NoError(t, s.Set(field, value))
		}
		require.NoError(t, w.Advance(s), "step %d", i+1)
	}
	require.Equal(t, 7, w.Step())

	strength := steps[6]
	strength.Seed(w.Record())
	require.NoError(t, w.Skip(strength))

	assert.Equal(t, 8, w.Step())
	r := w.Record()
	assert.Equal(t, models.GenderMale, r.Gender)
	assert.Equal(t, "30", r.Age)
	assert.Equal(t, "180", r.Height)
	assert.Equal(t, "80", r.Weight)
	assert.Equal(t, "80", r.TargetWeight)
	assert.Equal(t, "180", r.TargetHeight)
	assert.Equal(t, models.GoalBuildMuscle, r.Goal)
	assert.Equal(t, []models.FocusArea{models.FocusChest, models.FocusArms}, r.FocusAreas)
	assert.Equal(t, models.LevelBeginner, r.FitnessLevel)
	require.NotNil(t, r.OneRM)
	assert.Equal(t, models.OneRM{}, *r.OneRM)
}

func TestFillRunsEveryStep(t *testing.T) {
	answers := models.Record{
		Gender: models.GenderFemale, Age: "28", Height: "165", Weight: "60",
		Goal: models.GoalGetFit, FocusAreas: []models.FocusArea{models.FocusCardio},
		FitnessLevel: models.LevelAdvanced, WorkoutFrequency: "4",
		Equipment: models.NoneChoice[models.Equipment](), Location: models.LocationHome,
		OneRM: &models.OneRM{Squat: "80x5"},
	}
	w := NewWizard(&recordingNav{})
	require.NoError(t, w.Fill(Steps(), answers))

	assert.Equal(t, TotalSteps, w.Step())
	r := w.Record()
	assert.Equal(t, "93.3", r.OneRM.Squat)
	assert.Equal(t, models.DietNone, r.DietaryPreference)
	assert.Equal(t, "3", r.MealsPerDay)
	assert.True(t, r.Equipment.IsNone())

	bad := answers
	bad.WorkoutFrequency = "9"
	err := NewWizard(&recordingNav{}).Fill(Steps(), bad)
	assert.ErrorContains(t, err, "step 8")
}
