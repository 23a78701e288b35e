package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldName identifies one Assessment field.
type FieldName string

const (
	FieldAge               FieldName = "age"
	FieldSex               FieldName = "sex"
	FieldRestingBP         FieldName = "restingBP"
	FieldCholesterol       FieldName = "cholesterol"
	FieldMaxHeartRate      FieldName = "maxHeartRate"
	FieldOldpeak           FieldName = "oldpeak"
	FieldChestPainType     FieldName = "chestPainType"
	FieldRestingECG        FieldName = "restingECG"
	FieldFastingBloodSugar FieldName = "fastingBloodSugarHigh"
	FieldExerciseAngina    FieldName = "exerciseAngina"
	FieldSTSlope           FieldName = "stSlope"
)

type FieldKind int

const (
	KindInt FieldKind = iota
	KindDecimal
	KindEnum
	KindBool
)

// StepCount is the number of wizard steps; the last one is the review step.
const StepCount = 4

// StepTitles are the step indicator labels, indexed by step-1.
var StepTitles = [StepCount]string{"Basic Info", "Metrics", "Clinical", "Review"}

// FieldSpec describes how a field is collected, parsed and sent.
type FieldSpec struct {
	Name     FieldName
	Wire     string // name used by the prediction service
	Flag     string // CLI flag name
	Label    string
	Step     int
	Kind     FieldKind
	Options  []string // enum and bool fields only
	Min      int      // inclusive lower bound for int fields
	Positive bool     // int fields that must be > 0
}

// Fields is the field registry in form order.
var Fields = []FieldSpec{
	{Name: FieldAge, Wire: "age", Flag: "age", Label: "Age (years)", Step: 1, Kind: KindInt, Positive: true},
	{Name: FieldSex, Wire: "sex", Flag: "sex", Label: "Sex", Step: 1, Kind: KindEnum, Options: SexOptions},
	{Name: FieldRestingBP, Wire: "trestbps", Flag: "resting-bp", Label: "Resting BP (mm Hg)", Step: 2, Kind: KindInt},
	{Name: FieldCholesterol, Wire: "chol", Flag: "cholesterol", Label: "Cholesterol (mg/dl)", Step: 2, Kind: KindInt},
	{Name: FieldMaxHeartRate, Wire: "thalach", Flag: "max-hr", Label: "Max Heart Rate", Step: 2, Kind: KindInt},
	{Name: FieldOldpeak, Wire: "oldpeak", Flag: "oldpeak", Label: "Oldpeak (ST Depression)", Step: 2, Kind: KindDecimal},
	{Name: FieldChestPainType, Wire: "cp", Flag: "chest-pain", Label: "Chest Pain Type", Step: 3, Kind: KindEnum, Options: ChestPainOptions},
	{Name: FieldRestingECG, Wire: "restecg", Flag: "resting-ecg", Label: "Resting ECG", Step: 3, Kind: KindEnum, Options: ECGOptions},
	{Name: FieldFastingBloodSugar, Wire: "fbs", Flag: "fasting-bs", Label: "Fasting BS > 120", Step: 3, Kind: KindBool, Options: YesNoOptions},
	{Name: FieldExerciseAngina, Wire: "exang", Flag: "exercise-angina", Label: "Exercise Angina", Step: 3, Kind: KindBool, Options: YesNoOptions},
	{Name: FieldSTSlope, Wire: "slope", Flag: "st-slope", Label: "ST Slope", Step: 3, Kind: KindEnum, Options: SlopeOptions},
}

// LookupField finds a field by its name, wire name or flag name, ignoring case.
func LookupField(name string) (FieldSpec, bool) {
	name = strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(string(f.Name), name) ||
			strings.EqualFold(f.Wire, name) ||
			strings.EqualFold(f.Flag, name) {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// StepFields returns the fields collected on the given step, in form order.
func StepFields(step int) []FieldSpec {
	var out []FieldSpec
	for _, f := range Fields {
		if f.Step == step {
			out = append(out, f)
		}
	}
	return out
}

// FieldValue is a successfully parsed field value. Only the member matching
// the field's kind is meaningful.
type FieldValue struct {
	Field   FieldName
	Int     int
	Decimal float64
	Text    string
	Bool    bool
}

// ParseField parses raw according to the field's declared type. It never
// returns a value outside the field's domain.
func ParseField(name FieldName, raw string) (FieldValue, error) {
	spec, ok := LookupField(string(name))
	if !ok {
		return FieldValue{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return spec.Parse(raw)
}

// Parse parses raw for this field.
func (s FieldSpec) Parse(raw string) (FieldValue, error) {
	v := FieldValue{Field: s.Name}
	trimmed := strings.TrimSpace(raw)
	fail := func(reason string) (FieldValue, error) {
		return FieldValue{}, &FieldError{Field: s.Name, Raw: raw, Reason: reason}
	}
	if trimmed == "" {
		return fail("a value is required")
	}

	switch s.Kind {
	case KindInt:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return fail("enter a whole number")
		}
		if s.Positive && n <= 0 {
			return fail("must be greater than 0")
		}
		if !s.Positive && n < s.Min {
			return fail(fmt.Sprintf("must be at least %d", s.Min))
		}
		v.Int = n
	case KindDecimal:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fail("enter a number")
		}
		v.Decimal = f
	case KindEnum:
		opt, ok := canonicalOption(s.Options, trimmed)
		if !ok {
			return fail("choose one of " + strings.Join(s.Options, ", "))
		}
		v.Text = opt
	case KindBool:
		b, ok := parseYesNo(trimmed)
		if !ok {
			return fail("answer Yes or No")
		}
		v.Bool = b
	}
	return v, nil
}

// ParseWireField parses a text field as sent on the wire: the exact option
// strings and "Yes"/"No", nothing else. Numeric fields are decoded from
// JSON numbers and are not handled here.
func ParseWireField(name FieldName, raw string) (FieldValue, error) {
	spec, ok := LookupField(string(name))
	if !ok {
		return FieldValue{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v := FieldValue{Field: spec.Name}
	switch spec.Kind {
	case KindEnum:
		if !containsOption(spec.Options, raw) {
			return FieldValue{}, &FieldError{Field: spec.Name, Raw: raw, Reason: "must be one of " + strings.Join(spec.Options, ", ")}
		}
		v.Text = raw
	case KindBool:
		if !containsOption(YesNoOptions, raw) {
			return FieldValue{}, &FieldError{Field: spec.Name, Raw: raw, Reason: `must be "Yes" or "No"`}
		}
		v.Bool = raw == YesNo(true)
	default:
		return FieldValue{}, fmt.Errorf("%s is not a text field", spec.Name)
	}
	return v, nil
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}
