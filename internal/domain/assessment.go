// Package domain holds the clinical assessment model shared by the wizard,
// the prediction client and the presentation layer.
package domain

import (
	"fmt"
	"math"
)

// Assessment is the full set of eleven clinical inputs for one patient.
type Assessment struct {
	Age                   int
	Sex                   Sex
	RestingBP             int
	Cholesterol           int
	MaxHeartRate          int
	Oldpeak               float64
	ChestPainType         ChestPainType
	RestingECG            RestingECG
	FastingBloodSugarHigh bool
	ExerciseAngina        bool
	STSlope               STSlope
}

// DefaultAssessment returns the draft a new wizard session starts from.
func DefaultAssessment() Assessment {
	return Assessment{
		Age:           45,
		Sex:           SexMale,
		RestingBP:     120,
		Cholesterol:   200,
		MaxHeartRate:  150,
		Oldpeak:       1.0,
		ChestPainType: ChestPainAtypical,
		RestingECG:    ECGNormal,
		STSlope:       SlopeUp,
	}
}

// Validate reports every field whose value lies outside its declared domain.
func (a Assessment) Validate() error {
	var problems []*FieldError
	add := func(f FieldName, raw, reason string) {
		problems = append(problems, &FieldError{Field: f, Raw: raw, Reason: reason})
	}

	if a.Age <= 0 {
		add(FieldAge, fmt.Sprint(a.Age), "must be greater than 0")
	}
	if !a.Sex.Valid() {
		add(FieldSex, string(a.Sex), "unknown option")
	}
	if a.RestingBP < 0 {
		add(FieldRestingBP, fmt.Sprint(a.RestingBP), "must not be negative")
	}
	if a.Cholesterol < 0 {
		add(FieldCholesterol, fmt.Sprint(a.Cholesterol), "must not be negative")
	}
	if a.MaxHeartRate < 0 {
		add(FieldMaxHeartRate, fmt.Sprint(a.MaxHeartRate), "must not be negative")
	}
	if math.IsNaN(a.Oldpeak) || math.IsInf(a.Oldpeak, 0) {
		add(FieldOldpeak, fmt.Sprint(a.Oldpeak), "must be a finite number")
	}
	if !a.ChestPainType.Valid() {
		add(FieldChestPainType, string(a.ChestPainType), "unknown option")
	}
	if !a.RestingECG.Valid() {
		add(FieldRestingECG, string(a.RestingECG), "unknown option")
	}
	if !a.STSlope.Valid() {
		add(FieldSTSlope, string(a.STSlope), "unknown option")
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// Apply stores an already-parsed value. Values produced by ParseField are
// always in domain, so Apply cannot fail for them.
func (a *Assessment) Apply(v FieldValue) {
	switch v.Field {
	case FieldAge:
		a.Age = v.Int
	case FieldSex:
		a.Sex = Sex(v.Text)
	case FieldRestingBP:
		a.RestingBP = v.Int
	case FieldCholesterol:
		a.Cholesterol = v.Int
	case FieldMaxHeartRate:
		a.MaxHeartRate = v.Int
	case FieldOldpeak:
		a.Oldpeak = v.Decimal
	case FieldChestPainType:
		a.ChestPainType = ChestPainType(v.Text)
	case FieldRestingECG:
		a.RestingECG = RestingECG(v.Text)
	case FieldFastingBloodSugar:
		a.FastingBloodSugarHigh = v.Bool
	case FieldExerciseAngina:
		a.ExerciseAngina = v.Bool
	case FieldSTSlope:
		a.STSlope = STSlope(v.Text)
	}
}

// Raw renders the current value of a field as the text a form input would
// show for it.
func (a Assessment) Raw(f FieldName) string {
	switch f {
	case FieldAge:
		return fmt.Sprint(a.Age)
	case FieldSex:
		return string(a.Sex)
	case FieldRestingBP:
		return fmt.Sprint(a.RestingBP)
	case FieldCholesterol:
		return fmt.Sprint(a.Cholesterol)
	case FieldMaxHeartRate:
		return fmt.Sprint(a.MaxHeartRate)
	case FieldOldpeak:
		return formatDecimal(a.Oldpeak)
	case FieldChestPainType:
		return string(a.ChestPainType)
	case FieldRestingECG:
		return string(a.RestingECG)
	case FieldFastingBloodSugar:
		return YesNo(a.FastingBloodSugarHigh)
	case FieldExerciseAngina:
		return YesNo(a.ExerciseAngina)
	case FieldSTSlope:
		return string(a.STSlope)
	}
	return ""
}

func formatDecimal(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%.1f", f)
	}
	return fmt.Sprint(f)
}
