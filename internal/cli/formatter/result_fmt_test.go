package formatter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/testutil"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestFormatResult_HighRisk(t *testing.T) {
	out := FormatResult(domain.Result{RiskDetected: true, ProbabilityPercent: 73.4, Message: "High Risk"}, 80)
	assert.Contains(t, out, "High Risk Detected")
	assert.Contains(t, out, "73.4%")
	assert.Contains(t, out, "cardiologist")
	assert.Contains(t, out, "Medical Disclaimer")
	assert.NotContains(t, out, "Service:")
}

func TestFormatResult_LowRiskShowsServiceMessage(t *testing.T) {
	out := FormatResult(domain.Result{ProbabilityPercent: 12, Message: "calibrated v2"}, 80)
	assert.Contains(t, out, "Low Risk Profile")
	assert.Contains(t, out, "12.0%")
	assert.Contains(t, out, "Service: calibrated v2")
}

func TestFormatResultPlain(t *testing.T) {
	out := FormatResultPlain(domain.Result{RiskDetected: true, ProbabilityPercent: 50})
	assert.Contains(t, out, "HIGH RISK")
	assert.Contains(t, out, "Probability: 50.0%")
}

func TestFormatSubmitFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", errors.New("connection refused"), "Failed to connect"},
		{"timeout", fmt.Errorf("%w: deadline", predict.ErrTimeout), "Failed to connect"},
		{"not submittable", fmt.Errorf("%w: step 4 has invalid fields", wizard.ErrNotSubmittable), "Some answers need fixing"},
		{"bad status", &predict.StatusError{Code: 500}, "returned an error"},
		{"invalid response", fmt.Errorf("%w: probability out of range", predict.ErrInvalidResponse), "returned an error"},
		{"panic", fmt.Errorf("%w: boom", wizard.ErrPredictorPanic), "could not be completed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatSubmitFailure(tt.err)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, tt.err.Error())
		})
	}
}

func TestFormatReviewSummary(t *testing.T) {
	a := testutil.NewTestAssessment(testutil.WithAge(61), testutil.WithSex(domain.SexFemale))
	out := FormatReviewSummary(a)
	assert.Contains(t, out, "61 / Female")
	assert.Contains(t, out, "Resting BP")
	assert.Contains(t, out, "Cholesterol")
	assert.Contains(t, out, "Max HR")
}

func TestFormatAssessment_ListsWireNames(t *testing.T) {
	out := FormatAssessment(testutil.NewTestAssessment())
	for _, f := range domain.Fields {
		assert.Contains(t, out, f.Label)
		assert.Contains(t, out, f.Wire)
	}
}

func TestFormatFieldErrors(t *testing.T) {
	assert.Empty(t, FormatFieldErrors(nil))
	out := FormatFieldErrors([]*domain.FieldError{
		{Field: domain.FieldAge, Raw: "abc", Reason: "enter a whole number"},
	})
	assert.Contains(t, out, "Age (years)")
	assert.Contains(t, out, "enter a whole number")
}

func TestFormatRanges(t *testing.T) {
	out := FormatRanges(domain.NormalRanges)
	assert.Contains(t, out, "NORMAL HEALTH PARAMETERS")
	assert.Contains(t, out, "< 200 mg/dL")
}
