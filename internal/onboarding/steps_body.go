// ABOUTME: Body steps with unit toggles: basics (2) and targets (3).
// ABOUTME: View values convert on every toggle; the record only ever receives cm and kg.
package onboarding

import (
	"strconv"
	"strings"

	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/units"
)

// BasicsStep is step 2: age, height and weight.
type BasicsStep struct {
	system units.System
	age    string
	height string
	feet   string
	inches string
	weight string
}

// NewBasicsStep starts in metric.
func NewBasicsStep() *BasicsStep {
	return &BasicsStep{system: units.Metric}
}

func (s *BasicsStep) Index() int          { return 2 }
func (s *BasicsStep) Title() string       { return "Tell us about yourself" }
func (s *BasicsStep) Units() units.System { return s.system }

func (s *BasicsStep) Seed(r models.Record) {
	resetToMetric(s)
	if r.Age != "" {
		s.age = r.Age
	}
	if r.Height != "" {
		s.height = r.Height
	}
	if r.Weight != "" {
		s.weight = r.Weight
	}
}

func (s *BasicsStep) Fields() []Field {
	age := Field{Name: FieldAge, Label: "Age", Kind: KindNumber, Unit: "years", Value: s.age}
	weight := Field{Name: FieldWeight, Label: "Weight", Kind: KindNumber, Unit: s.system.MassUnit(), Value: s.weight}
	if s.system == units.Imperial {
		return []Field{
			age,
			{Name: "feet", Label: "Height (feet)", Kind: KindNumber, Unit: "ft", Value: s.feet},
			{Name: "inches", Label: "Height (inches)", Kind: KindNumber, Unit: "in", Value: s.inches},
			weight,
		}
	}
	return []Field{
		age,
		{Name: FieldHeight, Label: "Height", Kind: KindNumber, Unit: "cm", Value: s.height},
		weight,
	}
}

func (s *BasicsStep) Set(field, value string) error {
	switch field {
	case FieldAge:
		s.age = value
	case FieldHeight:
		s.height = value
	case "feet":
		s.feet = value
	case "inches":
		s.inches = value
	case FieldWeight:
		s.weight = value
	default:
		return unknownField(2, field)
	}
	return nil
}

func (s *BasicsStep) ToggleUnits() {
	if s.system == units.Metric {
		if cm, err := strconv.ParseFloat(strings.TrimSpace(s.height), 64); err == nil {
			ft, in := units.CmToFeetInches(cm)
			s.feet = strconv.Itoa(ft)
			s.inches = units.FormatValue(in)
		}
		s.weight = convertView(s.weight, units.KgToLbs)
	} else {
		if cm, ok := s.imperialHeightCm(); ok {
			s.height = units.FormatValue(cm)
		}
		s.weight = convertView(s.weight, units.LbsToKg)
	}
	s.system = s.system.Toggle()
}

// imperialHeightCm reads feet and inches, either of which may be blank.
func (s *BasicsStep) imperialHeightCm() (float64, bool) {
	ft, errFt := strconv.ParseFloat(strings.TrimSpace(s.feet), 64)
	in, errIn := strconv.ParseFloat(strings.TrimSpace(s.inches), 64)
	if errFt != nil && errIn != nil {
		return 0, false
	}
	if errFt != nil {
		ft = 0
	}
	if errIn != nil {
		in = 0
	}
	if ft < 0 || in < 0 {
		return 0, false
	}
	return units.FeetInchesToCm(ft, in), true
}

func (s *BasicsStep) heightCm() (float64, bool) {
	if s.system == units.Imperial {
		cm, ok := s.imperialHeightCm()
		return cm, ok && cm > 0
	}
	return parsePositive(s.height)
}

func (s *BasicsStep) Validate() error {
	if err := requirePositive(FieldAge, s.age); err != nil {
		return err
	}
	if _, ok := s.heightCm(); !ok {
		return models.Invalid(FieldHeight, "must be a positive number")
	}
	return requirePositive(FieldWeight, s.weight)
}

func (s *BasicsStep) Commit(u Updater) error {
	cm, _ := s.heightCm()
	if err := u.UpdateData(FieldAge, strings.TrimSpace(s.age)); err != nil {
		return err
	}
	if err := u.UpdateData(FieldHeight, units.FormatValue(cm)); err != nil {
		return err
	}
	return u.UpdateData(FieldWeight, toMetric(s.weight, units.LbsToKg, s.system))
}

// TargetsStep is step 3: optional target weight and height.
type TargetsStep struct {
	system       units.System
	targetWeight string
	targetHeight string
}

// NewTargetsStep starts in metric.
func NewTargetsStep() *TargetsStep {
	return &TargetsStep{system: units.Metric}
}

func (s *TargetsStep) Index() int          { return 3 }
func (s *TargetsStep) Title() string       { return "Where do you want to be?" }
func (s *TargetsStep) Units() units.System { return s.system }

// Seed defaults each target to the current value when it is unset.
func (s *TargetsStep) Seed(r models.Record) {
	resetToMetric(s)
	switch {
	case r.TargetWeight != "":
		s.targetWeight = r.TargetWeight
	case s.targetWeight == "":
		s.targetWeight = r.Weight
	}
	switch {
	case r.TargetHeight != "":
		s.targetHeight = r.TargetHeight
	case s.targetHeight == "":
		s.targetHeight = r.Height
	}
}

func (s *TargetsStep) Fields() []Field {
	return []Field{
		{Name: FieldTargetWeight, Label: "Target weight", Kind: KindNumber, Unit: s.system.MassUnit(), Value: s.targetWeight, Optional: true},
		{Name: FieldTargetHeight, Label: "Target height", Kind: KindNumber, Unit: s.system.LengthUnit(), Value: s.targetHeight, Optional: true},
	}
}

func (s *TargetsStep) Set(field, value string) error {
	switch field {
	case FieldTargetWeight:
		s.targetWeight = value
	case FieldTargetHeight:
		s.targetHeight = value
	default:
		return unknownField(3, field)
	}
	return nil
}

func (s *TargetsStep) ToggleUnits() {
	if s.system == units.Metric {
		s.targetWeight = convertView(s.targetWeight, units.KgToLbs)
		s.targetHeight = convertView(s.targetHeight, units.CmToIn)
	} else {
		s.targetWeight = convertView(s.targetWeight, units.LbsToKg)
		s.targetHeight = convertView(s.targetHeight, units.InToCm)
	}
	s.system = s.system.Toggle()
}

func (s *TargetsStep) Validate() error {
	if err := optionalPositive(FieldTargetWeight, s.targetWeight); err != nil {
		return err
	}
	return optionalPositive(FieldTargetHeight, s.targetHeight)
}

func (s *TargetsStep) Commit(u Updater) error {
	if err := u.UpdateData(FieldTargetWeight, toMetric(s.targetWeight, units.LbsToKg, s.system)); err != nil {
		return err
	}
	return u.UpdateData(FieldTargetHeight, toMetric(s.targetHeight, units.InToCm, s.system))
}
