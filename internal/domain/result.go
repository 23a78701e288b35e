package domain

import (
	"fmt"
	"math"
)

// Result is the prediction service's verdict for one Assessment.
type Result struct {
	RiskDetected       bool
	ProbabilityPercent float64
	Message            string
}

// Validate checks that the probability is a finite percentage.
func (r Result) Validate() error {
	p := r.ProbabilityPercent
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 100 {
		return fmt.Errorf("probability %v outside [0,100]", p)
	}
	return nil
}

// ProbabilityText formats the probability with one decimal, e.g. "73.4%".
func (r Result) ProbabilityText() string {
	return fmt.Sprintf("%.1f%%", r.ProbabilityPercent)
}

// Narrative is the user-facing interpretation of a Result.
type Narrative struct {
	Label    string
	Headline string
	Advice   string
}

var (
	highRiskNarrative = Narrative{
		Label:    "High Risk",
		Headline: "High Risk Detected",
		Advice: "The model indicates a significant likelihood of heart disease presence. " +
			"We strongly recommend consulting a cardiologist for clinical evaluation.",
	}
	lowRiskNarrative = Narrative{
		Label:    "Low Risk",
		Headline: "Low Risk Profile",
		Advice: "The model indicates a low likelihood of heart disease presence based on " +
			"the provided metrics. Maintain a healthy lifestyle.",
	}
)

// Narrative maps the binary verdict to its narrative.
func (r Result) Narrative() Narrative {
	if r.RiskDetected {
		return highRiskNarrative
	}
	return lowRiskNarrative
}

// Disclaimer is shown next to every result.
const Disclaimer = "Medical Disclaimer: This application is for educational and informational purposes only. " +
	"It is not intended to provide medical advice, diagnosis, or treatment. " +
	"Always consult with a qualified healthcare professional."
