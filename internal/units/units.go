// ABOUTME: Metric/imperial conversions used by the onboarding steps.
// ABOUTME: Every conversion rounds to one decimal place, so repeated toggling drifts.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Conversion constants.
const (
	CmPerInch   = 2.54
	CmPerFoot   = 30.48
	LbsPerKg    = 2.20462
	KgPerLb     = 0.453592
	InchPerFoot = 12
)

// System is a presentation-only unit preference. It never reaches the
// canonical onboarding record, which is always metric.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// ParseSystem accepts "metric"/"imperial" and the unit names users tend to type.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "m", "cm", "kg":
		return Metric, nil
	case "imperial", "i", "in", "ft", "lbs", "lb":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit system: %q (use metric or imperial)", s)
	}
}

// Toggle returns the other system.
func (s System) Toggle() System {
	if s == Imperial {
		return Metric
	}
	return Imperial
}

// LengthUnit is the display unit for body lengths in this system.
func (s System) LengthUnit() string {
	if s == Imperial {
		return "in"
	}
	return "cm"
}

// MassUnit is the display unit for mass in this system.
func (s System) MassUnit() string {
	if s == Imperial {
		return "lbs"
	}
	return "kg"
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CmToIn converts centimetres to inches.
func CmToIn(cm float64) float64 {
	return Round1(cm / CmPerInch)
}

// InToCm converts inches to centimetres.
func InToCm(in float64) float64 {
	return Round1(in * CmPerInch)
}

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 {
	return Round1(kg * LbsPerKg)
}

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return Round1(lbs * KgPerLb)
}

// FeetInchesToCm converts a feet + inches height to centimetres.
func FeetInchesToCm(feet, inches float64) float64 {
	return Round1(feet*CmPerFoot + inches*CmPerInch)
}

// CmToFeetInches splits a centimetre height into whole feet and remaining inches.
func CmToFeetInches(cm float64) (feet int, inches float64) {
	total := cm / CmPerInch
	feet = int(math.Floor(total / InchPerFoot))
	inches = Round1(total - float64(feet*InchPerFoot))
	if inches >= InchPerFoot {
		feet++
		inches = Round1(inches - InchPerFoot)
	}
	return feet, inches
}

// ConvertLength converts a length between systems.
func ConvertLength(v float64, from, to System) float64 {
	switch {
	case from == to:
		return v
	case to == Imperial:
		return CmToIn(v)
	default:
		return InToCm(v)
	}
}

// ConvertMass converts a mass between systems.
func ConvertMass(v float64, from, to System) float64 {
	switch {
	case from == to:
		return v
	case to == Imperial:
		return KgToLbs(v)
	default:
		return LbsToKg(v)
	}
}

// Convert converts between two named units. Supported: cm, in, ft, kg, lbs.
func Convert(v float64, from, to string) (float64, error) {
	from, to = normalize(from), normalize(to)
	if from == to {
		return v, nil
	}
	switch from + ">" + to {
	case "cm>in":
		return CmToIn(v), nil
	case "in>cm":
		return InToCm(v), nil
	case "ft>cm":
		return FeetInchesToCm(v, 0), nil
	case "cm>ft":
		return Round1(v / CmPerFoot), nil
	case "ft>in":
		return Round1(v * InchPerFoot), nil
	case "in>ft":
		return Round1(v / InchPerFoot), nil
	case "kg>lbs":
		return KgToLbs(v), nil
	case "lbs>kg":
		return LbsToKg(v), nil
	default:
		return 0, fmt.Errorf("cannot convert %s to %s", from, to)
	}
}

func normalize(u string) string {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "cm", "centimeter", "centimeters":
		return "cm"
	case "in", "inch", "inches", "\"":
		return "in"
	case "ft", "foot", "feet", "'":
		return "ft"
	case "kg", "kgs", "kilogram", "kilograms":
		return "kg"
	case "lb", "lbs", "pound", "pounds":
		return "lbs"
	default:
		return strings.ToLower(strings.TrimSpace(u))
	}
}

// FormatValue renders a converted value for a form field: whole numbers lose
// their trailing ".0", everything else keeps one decimal.
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
