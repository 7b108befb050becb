// Package planner generates rule-based training and nutrition plans from a user profile.
//
// Everything in this package is pure: functions take values and return fresh values,
// and the lookup tables are read-only after init.
package planner

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

// Sex values.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a known sex.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Goal is the user's primary training goal.
type Goal string

// Goal values.
const (
	GoalFatLoss    Goal = "fat_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalEndurance  Goal = "endurance"
	GoalGeneral    Goal = "general"
)

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalFatLoss, GoalMuscleGain, GoalEndurance, GoalGeneral:
		return true
	}
	return false
}

// Experience is the user's training experience tier.
type Experience string

// Experience values.
const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Valid reports whether e is a known experience tier.
func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Equipment is the equipment tier available to the user.
type Equipment string

// Equipment values.
const (
	EquipmentNone      Equipment = "none"
	EquipmentDumbbells Equipment = "dumbbells"
	EquipmentFullGym   Equipment = "full_gym"
)

// Valid reports whether e is a known equipment tier.
func (e Equipment) Valid() bool {
	switch e {
	case EquipmentNone, EquipmentDumbbells, EquipmentFullGym:
		return true
	}
	return false
}

// ActivityLevel describes daily activity outside of training.
type ActivityLevel string

// ActivityLevel values.
const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
)

// Valid reports whether a is a known activity level.
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityHigh:
		return true
	}
	return false
}

// Normalization bounds.
const (
	MinAge            = 10
	MaxAge            = 120
	MinHeightCm       = 120
	MaxHeightCm       = 230
	MinWeightKg       = 35
	MaxWeightKg       = 250
	MinDaysPerWeek    = 2
	MaxDaysPerWeek    = 6
	MinSessionMinutes = 20
	MaxSessionMinutes = 120

	DefaultDaysPerWeek    = 3
	DefaultSessionMinutes = 45
)

// FlexNumber is a numeric input that tolerates JSON numbers, numeric strings,
// empty strings and null. Anything that is not a finite number is absent.
type FlexNumber struct {
	value float64
	valid bool
}

// Num returns a present FlexNumber. Non-finite values are absent.
func Num(v float64) FlexNumber {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FlexNumber{}
	}
	return FlexNumber{value: v, valid: true}
}

// Float returns the value and whether it is present.
func (n FlexNumber) Float() (float64, bool) {
	return n.value, n.valid
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	*n = FlexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Num(v)
		}
		return nil
	}

	// Booleans, objects and arrays are tolerated and treated as absent.
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*n = Num(v)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler with the same leniency as UnmarshalJSON.
func (n *FlexNumber) UnmarshalYAML(node *yaml.Node) error {
	*n = FlexNumber{}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 64); err == nil {
		*n = Num(v)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// RawProfile is a profile as submitted by a client, before normalization.
type RawProfile struct {
	Name           string     `json:"name" yaml:"name"`
	Sex            string     `json:"sex" yaml:"sex"`
	Age            FlexNumber `json:"age" yaml:"age"`
	HeightCm       FlexNumber `json:"heightCm" yaml:"heightCm"`
	WeightKg       FlexNumber `json:"weightKg" yaml:"weightKg"`
	Goal           string     `json:"goal" yaml:"goal"`
	Experience     string     `json:"experience" yaml:"experience"`
	DaysPerWeek    FlexNumber `json:"daysPerWeek" yaml:"daysPerWeek"`
	SessionMinutes FlexNumber `json:"sessionMinutes" yaml:"sessionMinutes"`
	Equipment      string     `json:"equipment" yaml:"equipment"`
	ActivityLevel  string     `json:"activityLevel" yaml:"activityLevel"`
	Injuries       string     `json:"injuries" yaml:"injuries"`
	Preferences    string     `json:"preferences" yaml:"preferences"`
}

// looseString is a text input. Strings decode as-is; numbers, booleans,
// objects and arrays are absent and decode to "".
type looseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = looseString(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Any scalar keeps its text.
func (s *looseString) UnmarshalYAML(node *yaml.Node) error {
	*s = ""
	if node.Kind == yaml.ScalarNode && node.Tag != "!!null" {
		*s = looseString(node.Value)
	}
	return nil
}

// rawProfileInput mirrors RawProfile with lenient text fields.
type rawProfileInput struct {
	Name           looseString `json:"name" yaml:"name"`
	Sex            looseString `json:"sex" yaml:"sex"`
	Age            FlexNumber  `json:"age" yaml:"age"`
	HeightCm       FlexNumber  `json:"heightCm" yaml:"heightCm"`
	WeightKg       FlexNumber  `json:"weightKg" yaml:"weightKg"`
	Goal           looseString `json:"goal" yaml:"goal"`
	Experience     looseString `json:"experience" yaml:"experience"`
	DaysPerWeek    FlexNumber  `json:"daysPerWeek" yaml:"daysPerWeek"`
	SessionMinutes FlexNumber  `json:"sessionMinutes" yaml:"sessionMinutes"`
	Equipment      looseString `json:"equipment" yaml:"equipment"`
	ActivityLevel  looseString `json:"activityLevel" yaml:"activityLevel"`
	Injuries       looseString `json:"injuries" yaml:"injuries"`
	Preferences    looseString `json:"preferences" yaml:"preferences"`
}

func (in rawProfileInput) raw() RawProfile {
	return RawProfile{
		Name:           string(in.Name),
		Sex:            string(in.Sex),
		Age:            in.Age,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		Goal:           string(in.Goal),
		Experience:     string(in.Experience),
		DaysPerWeek:    in.DaysPerWeek,
		SessionMinutes: in.SessionMinutes,
		Equipment:      string(in.Equipment),
		ActivityLevel:  string(in.ActivityLevel),
		Injuries:       string(in.Injuries),
		Preferences:    string(in.Preferences),
	}
}

// UnmarshalJSON decodes a profile object. Fields of the wrong type are
// treated as absent; only malformed JSON or a non-object fails.
func (r *RawProfile) UnmarshalJSON(data []byte) error {
	var in rawProfileInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = in.raw()
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler with the same leniency as UnmarshalJSON.
func (r *RawProfile) UnmarshalYAML(node *yaml.Node) error {
	var in rawProfileInput
	if err := node.Decode(&in); err != nil {
		return err
	}
	*r = in.raw()
	return nil
}

// Profile is the canonical, normalized profile.
// Absent body metrics are nil; every enum holds an allowed value.
type Profile struct {
	Name           string        `json:"name"`
	Sex            Sex           `json:"sex"`
	Age            *int          `json:"age"`
	HeightCm       *int          `json:"heightCm"`
	WeightKg       *int          `json:"weightKg"`
	Goal           Goal          `json:"goal"`
	Experience     Experience    `json:"experience"`
	DaysPerWeek    int           `json:"daysPerWeek"`
	SessionMinutes int           `json:"sessionMinutes"`
	Equipment      Equipment     `json:"equipment"`
	ActivityLevel  ActivityLevel `json:"activityLevel"`
	Injuries       string        `json:"injuries"`
	Preferences    string        `json:"preferences"`
}

// HasBodyMetrics reports whether age, height and weight are all present.
func (p Profile) HasBodyMetrics() bool {
	return p.Age != nil && p.HeightCm != nil && p.WeightKg != nil
}

// Raw converts a canonical profile back into raw input.
func (p Profile) Raw() RawProfile {
	return RawProfile{
		Name:           p.Name,
		Sex:            string(p.Sex),
		Age:            intNum(p.Age),
		HeightCm:       intNum(p.HeightCm),
		WeightKg:       intNum(p.WeightKg),
		Goal:           string(p.Goal),
		Experience:     string(p.Experience),
		DaysPerWeek:    Num(float64(p.DaysPerWeek)),
		SessionMinutes: Num(float64(p.SessionMinutes)),
		Equipment:      string(p.Equipment),
		ActivityLevel:  string(p.ActivityLevel),
		Injuries:       p.Injuries,
		Preferences:    p.Preferences,
	}
}

// Normalize sanitizes a raw profile. It never fails.
func Normalize(raw RawProfile) Profile {
	sex := SexMale
	if strings.TrimSpace(raw.Sex) == string(SexFemale) {
		sex = SexFemale
	}

	return Profile{
		Name:           strings.TrimSpace(raw.Name),
		Sex:            sex,
		Age:            clampOptional(raw.Age, MinAge, MaxAge),
		HeightCm:       clampOptional(raw.HeightCm, MinHeightCm, MaxHeightCm),
		WeightKg:       clampOptional(raw.WeightKg, MinWeightKg, MaxWeightKg),
		Goal:           oneOf(Goal(strings.TrimSpace(raw.Goal)), GoalGeneral),
		Experience:     oneOf(Experience(strings.TrimSpace(raw.Experience)), ExperienceBeginner),
		DaysPerWeek:    clampDefault(raw.DaysPerWeek, MinDaysPerWeek, MaxDaysPerWeek, DefaultDaysPerWeek),
		SessionMinutes: clampDefault(raw.SessionMinutes, MinSessionMinutes, MaxSessionMinutes, DefaultSessionMinutes),
		Equipment:      oneOf(Equipment(strings.TrimSpace(raw.Equipment)), EquipmentNone),
		ActivityLevel:  oneOf(ActivityLevel(strings.TrimSpace(raw.ActivityLevel)), ActivityLight),
		Injuries:       strings.TrimSpace(raw.Injuries),
		Preferences:    strings.TrimSpace(raw.Preferences),
	}
}

type enum interface {
	~string
	Valid() bool
}

func oneOf[T enum](v, fallback T) T {
	if v.Valid() {
		return v
	}
	return fallback
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clampOptional(n FlexNumber, lo, hi int) *int {
	v, ok := n.Float()
	if !ok {
		return nil
	}
	c := clamp(roundInt(v), lo, hi)
	return &c
}

func clampDefault(n FlexNumber, lo, hi, fallback int) int {
	v, ok := n.Float()
	if !ok {
		return fallback
	}
	return clamp(roundInt(v), lo, hi)
}

// roundInt rounds half away from zero, saturating at the int range.
func roundInt(v float64) int {
	r := math.Round(v)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return int(r)
}

func intNum(v *int) FlexNumber {
	if v == nil {
		return FlexNumber{}
	}
	return Num(float64(*v))
}
