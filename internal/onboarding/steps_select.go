// ABOUTME: Single-choice steps: gender (1), goal (4), fitness level (6), and location (10).
// ABOUTME: Each requires one value from its enumeration before proceeding.
package onboarding

import (
	"github.com/harperreed/fitforge/internal/models"
)

// SelectStep asks for exactly one value of an enumeration.
type SelectStep[T ~string] struct {
	index   int
	title   string
	field   string
	options []T
	read    func(models.Record) T
	value   string
}

// NewGenderStep is step 1.
func NewGenderStep() *SelectStep[models.Gender] {
	return &SelectStep[models.Gender]{
		index: 1, title: "What is your gender?", field: FieldGender,
		options: models.AllGenders,
		read:    func(r models.Record) models.Gender { return r.Gender },
	}
}

// NewGoalStep is step 4.
func NewGoalStep() *SelectStep[models.Goal] {
	return &SelectStep[models.Goal]{
		index: 4, title: "What is your main goal?", field: FieldGoal,
		options: models.AllGoals,
		read:    func(r models.Record) models.Goal { return r.Goal },
	}
}

// NewLevelStep is step 6.
func NewLevelStep() *SelectStep[models.FitnessLevel] {
	return &SelectStep[models.FitnessLevel]{
		index: 6, title: "How would you rate your fitness?", field: FieldFitnessLevel,
		options: models.AllFitnessLevels,
		read:    func(r models.Record) models.FitnessLevel { return r.FitnessLevel },
	}
}

// NewLocationStep is step 10.
func NewLocationStep() *SelectStep[models.Location] {
	return &SelectStep[models.Location]{
		index: 10, title: "Where do you usually work out?", field: FieldLocation,
		options: models.AllLocations,
		read:    func(r models.Record) models.Location { return r.Location },
	}
}

func (s *SelectStep[T]) Index() int    { return s.index }
func (s *SelectStep[T]) Title() string { return s.title }

func (s *SelectStep[T]) Seed(r models.Record) {
	if v := s.read(r); v != "" {
		s.value = string(v)
	}
}

func (s *SelectStep[T]) Fields() []Field {
	return []Field{{
		Name:    s.field,
		Label:   s.title,
		Kind:    KindSelect,
		Options: stringsOf(s.options),
		Value:   s.value,
	}}
}

func (s *SelectStep[T]) Set(field, value string) error {
	if field != s.field {
		return unknownField(s.index, field)
	}
	s.value = value
	return nil
}

func (s *SelectStep[T]) Validate() error {
	for _, o := range s.options {
		if string(o) == s.value {
			return nil
		}
	}
	if s.value == "" {
		return models.Invalid(s.field, "is required")
	}
	return models.Invalid(s.field, "is not one of the options")
}

func (s *SelectStep[T]) Commit(u Updater) error {
	return u.UpdateData(s.field, T(s.value))
}
