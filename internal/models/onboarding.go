// ABOUTME: Onboarding answer record and the enumerations its fields draw from.
// ABOUTME: Numeric answers stay as form strings; lengths and masses are always metric.
package models

// Gender is the step 1 answer.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// AllGenders lists valid genders in display order.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// Goal is the primary fitness goal (step 4).
type Goal string

const (
	GoalLoseWeight          Goal = "lose_weight"
	GoalBuildMuscle         Goal = "build_muscle"
	GoalGetFit              Goal = "get_fit"
	GoalImproveEndurance    Goal = "improve_endurance"
	GoalIncreaseFlexibility Goal = "increase_flexibility"
	GoalMaintainHealth      Goal = "maintain_health"
)

// AllGoals lists valid goals in display order.
var AllGoals = []Goal{
	GoalLoseWeight, GoalBuildMuscle, GoalGetFit,
	GoalImproveEndurance, GoalIncreaseFlexibility, GoalMaintainHealth,
}

// FocusArea is a body area to prioritise (step 5).
type FocusArea string

const (
	FocusAbs       FocusArea = "abs"
	FocusArms      FocusArea = "arms"
	FocusBack      FocusArea = "back"
	FocusChest     FocusArea = "chest"
	FocusLegs      FocusArea = "legs"
	FocusGlutes    FocusArea = "glutes"
	FocusShoulders FocusArea = "shoulders"
	FocusCardio    FocusArea = "cardio"
)

// AllFocusAreas lists valid focus areas in display order.
var AllFocusAreas = []FocusArea{
	FocusAbs, FocusArms, FocusBack, FocusChest,
	FocusLegs, FocusGlutes, FocusShoulders, FocusCardio,
}

// FitnessLevel is the self-assessed experience (step 6).
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// AllFitnessLevels lists valid levels in display order.
var AllFitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Equipment is a piece of available training equipment (step 9).
type Equipment string

// EquipmentNone is the wire sentinel for the "none" arm of the equipment choice.
const EquipmentNone = "none"

const (
	EquipDumbbells       Equipment = "dumbbells"
	EquipBarbell         Equipment = "barbell"
	EquipKettlebell      Equipment = "kettlebell"
	EquipResistanceBands Equipment = "resistance_bands"
	EquipPullUpBar       Equipment = "pull_up_bar"
	EquipBench           Equipment = "bench"
	EquipSquatRack       Equipment = "squat_rack"
	EquipCableMachine    Equipment = "cable_machine"
	EquipTreadmill       Equipment = "treadmill"
	EquipStationaryBike  Equipment = "stationary_bike"
	EquipRowingMachine   Equipment = "rowing_machine"
	EquipJumpRope        Equipment = "jump_rope"
	EquipYogaMat         Equipment = "yoga_mat"
	EquipMedicineBall    Equipment = "medicine_ball"
	EquipSmithMachine    Equipment = "smith_machine"
)

// AllEquipment lists the specific equipment options (the "none" arm is separate).
var AllEquipment = []Equipment{
	EquipDumbbells, EquipBarbell, EquipKettlebell, EquipResistanceBands,
	EquipPullUpBar, EquipBench, EquipSquatRack, EquipCableMachine,
	EquipTreadmill, EquipStationaryBike, EquipRowingMachine, EquipJumpRope,
	EquipYogaMat, EquipMedicineBall, EquipSmithMachine,
}

// Location is where the user trains (step 10).
type Location string

const (
	LocationHome    Location = "home"
	LocationGym     Location = "gym"
	LocationOutdoor Location = "outdoor"
	LocationMixed   Location = "mixed"
)

// AllLocations lists valid locations in display order.
var AllLocations = []Location{LocationHome, LocationGym, LocationOutdoor, LocationMixed}

// MedicalCondition is a free-form condition name (step 12).
type MedicalCondition string

// MedicalConditionNone is the wire sentinel for the "none" arm.
const MedicalConditionNone = "None"

// SuggestedMedicalConditions are offered as options; other values are allowed.
var SuggestedMedicalConditions = []MedicalCondition{
	"Diabetes", "Hypertension", "Asthma", "Heart Condition", "Joint Pain", "Back Pain",
}

// DietaryPreference is the diet style (step 13).
type DietaryPreference string

const (
	DietNone        DietaryPreference = "none"
	DietVegetarian  DietaryPreference = "vegetarian"
	DietVegan       DietaryPreference = "vegan"
	DietPescatarian DietaryPreference = "pescatarian"
	DietKeto        DietaryPreference = "keto"
	DietPaleo       DietaryPreference = "paleo"
	DietGlutenFree  DietaryPreference = "gluten_free"
	DietDairyFree   DietaryPreference = "dairy_free"
	DietHalal       DietaryPreference = "halal"
	DietKosher      DietaryPreference = "kosher"
)

// AllDietaryPreferences lists valid diets in display order.
var AllDietaryPreferences = []DietaryPreference{
	DietNone, DietVegetarian, DietVegan, DietPescatarian, DietKeto,
	DietPaleo, DietGlutenFree, DietDairyFree, DietHalal, DietKosher,
}

// Allergen is a food allergen (step 13).
type Allergen string

const (
	AllergenNuts      Allergen = "nuts"
	AllergenDairy     Allergen = "dairy"
	AllergenGluten    Allergen = "gluten"
	AllergenEggs      Allergen = "eggs"
	AllergenSoy       Allergen = "soy"
	AllergenShellfish Allergen = "shellfish"
)

// AllAllergens lists valid allergens in display order.
var AllAllergens = []Allergen{
	AllergenNuts, AllergenDairy, AllergenGluten, AllergenEggs, AllergenSoy, AllergenShellfish,
}

// Nutrition defaults applied when step 13 is skipped or left untouched.
const (
	DefaultMealsPerDay     = 3
	DefaultWaterIntakeGoal = 8
	DefaultSleepGoal       = 8
)

// OneRM holds one-rep-max answers in kg, as form strings.
type OneRM struct {
	Bench    string `json:"bench" yaml:"bench"`
	Squat    string `json:"squat" yaml:"squat"`
	Deadlift string `json:"deadlift" yaml:"deadlift"`
}

// BodyMeasurements holds circumference answers in cm, as form strings.
type BodyMeasurements struct {
	Chest  string `json:"chest" yaml:"chest"`
	Waist  string `json:"waist" yaml:"waist"`
	Hips   string `json:"hips" yaml:"hips"`
	Arms   string `json:"arms" yaml:"arms"`
	Thighs string `json:"thighs" yaml:"thighs"`
}

// Record accumulates every onboarding answer across the wizard.
type Record struct {
	Gender Gender `json:"gender,omitempty" yaml:"gender,omitempty"`

	Age    string `json:"age,omitempty" yaml:"age,omitempty"`
	Height string `json:"height,omitempty" yaml:"height,omitempty"`
	Weight string `json:"weight,omitempty" yaml:"weight,omitempty"`

	TargetWeight string `json:"targetWeight,omitempty" yaml:"targetWeight,omitempty"`
	TargetHeight string `json:"targetHeight,omitempty" yaml:"targetHeight,omitempty"`

	Goal         Goal         `json:"goal,omitempty" yaml:"goal,omitempty"`
	FocusAreas   []FocusArea  `json:"focusAreas,omitempty" yaml:"focusAreas,omitempty"`
	FitnessLevel FitnessLevel `json:"fitnessLevel,omitempty" yaml:"fitnessLevel,omitempty"`

	OneRM *OneRM `json:"oneRM,omitempty" yaml:"oneRM,omitempty"`

	WorkoutFrequency string            `json:"workoutFrequency,omitempty" yaml:"workoutFrequency,omitempty"`
	Equipment        Choice[Equipment] `json:"equipment" yaml:"equipment"`
	Location         Location          `json:"location,omitempty" yaml:"location,omitempty"`

	BodyMeasurements  *BodyMeasurements `json:"bodyMeasurements,omitempty" yaml:"bodyMeasurements,omitempty"`
	BodyFatPercentage string            `json:"bodyFatPercentage,omitempty" yaml:"bodyFatPercentage,omitempty"`

	MedicalConditions     Choice[MedicalCondition] `json:"medicalConditions" yaml:"medicalConditions"`
	Injuries              string                   `json:"injuries,omitempty" yaml:"injuries,omitempty"`
	WorkoutTimePreference string                   `json:"workoutTimePreference,omitempty" yaml:"workoutTimePreference,omitempty"`
	Motivation            string                   `json:"motivation,omitempty" yaml:"motivation,omitempty"`

	DietaryPreference DietaryPreference `json:"dietaryPreference,omitempty" yaml:"dietaryPreference,omitempty"`
	Allergens         []Allergen        `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	MealsPerDay       string            `json:"mealsPerDay,omitempty" yaml:"mealsPerDay,omitempty"`
	WaterIntakeGoal   string            `json:"waterIntakeGoal,omitempty" yaml:"waterIntakeGoal,omitempty"`
	SleepGoal         string            `json:"sleepGoal,omitempty" yaml:"sleepGoal,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate the wizard's record.
func (r Record) Clone() Record {
	out := r
	out.FocusAreas = append([]FocusArea(nil), r.FocusAreas...)
	out.Allergens = append([]Allergen(nil), r.Allergens...)
	if r.OneRM != nil {
		v := *r.OneRM
		out.OneRM = &v
	}
	if r.BodyMeasurements != nil {
		v := *r.BodyMeasurements
		out.BodyMeasurements = &v
	}
	return out
}

// IsValidGoal reports whether s names a goal.
func IsValidGoal(s string) bool {
	return contains(AllGoals, Goal(s))
}

// IsValidFocusArea reports whether s names a focus area.
func IsValidFocusArea(s string) bool {
	return contains(AllFocusAreas, FocusArea(s))
}

// IsValidEquipment reports whether s names a specific piece of equipment.
func IsValidEquipment(s string) bool {
	return contains(AllEquipment, Equipment(s))
}

// IsValidDietaryPreference reports whether s names a diet.
func IsValidDietaryPreference(s string) bool {
	return contains(AllDietaryPreferences, DietaryPreference(s))
}

// IsValidAllergen reports whether s names an allergen.
func IsValidAllergen(s string) bool {
	return contains(AllAllergens, Allergen(s))
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
