package predictserver

import (
	"math"

	"github.com/alexanderramin/dilsehat/internal/domain"
)

// Scorer maps an assessment onto a risk probability in percent.
type Scorer interface {
	Score(a domain.Assessment) float64
}

// LinearScorer is a fixed logistic model over the same one-hot encoding the
// trained service uses. It is a transparent stand-in, not a clinical model.
type LinearScorer struct {
	Intercept float64
	Weights   Weights
}

// Weights are the per-feature coefficients of LinearScorer.
type Weights struct {
	Age, Male, RestingBP, Cholesterol, FastingBS, MaxHeartRate, ExerciseAngina, Oldpeak float64
	ChestPainATA, ChestPainNAP, ChestPainASY                                            float64
	ECGST, ECGLVH                                                                       float64
	SlopeFlat, SlopeDown                                                                float64
}

// DefaultScorer returns the stand-in model used by serve-stub.
func DefaultScorer() LinearScorer {
	return LinearScorer{
		Intercept: -5.0,
		Weights: Weights{
			Age:            0.04,
			Male:           0.8,
			RestingBP:      0.01,
			Cholesterol:    0.003,
			FastingBS:      0.5,
			MaxHeartRate:   -0.02,
			ExerciseAngina: 1.0,
			Oldpeak:        0.6,
			ChestPainATA:   -1.0,
			ChestPainNAP:   -0.6,
			ChestPainASY:   1.2,
			ECGST:          0.3,
			ECGLVH:         0.2,
			SlopeFlat:      1.2,
			SlopeDown:      1.0,
		},
	}
}

func (s LinearScorer) Score(a domain.Assessment) float64 {
	w := s.Weights
	z := s.Intercept +
		w.Age*float64(a.Age) +
		w.Male*indicator(a.Sex == domain.SexMale) +
		w.RestingBP*float64(a.RestingBP) +
		w.Cholesterol*float64(a.Cholesterol) +
		w.FastingBS*indicator(a.FastingBloodSugarHigh) +
		w.MaxHeartRate*float64(a.MaxHeartRate) +
		w.ExerciseAngina*indicator(a.ExerciseAngina) +
		w.Oldpeak*a.Oldpeak +
		w.ChestPainATA*indicator(a.ChestPainType == domain.ChestPainAtypical) +
		w.ChestPainNAP*indicator(a.ChestPainType == domain.ChestPainNonAnginal) +
		w.ChestPainASY*indicator(a.ChestPainType == domain.ChestPainAsymptomatic) +
		w.ECGST*indicator(a.RestingECG == domain.ECGST) +
		w.ECGLVH*indicator(a.RestingECG == domain.ECGLVH) +
		w.SlopeFlat*indicator(a.STSlope == domain.SlopeFlat) +
		w.SlopeDown*indicator(a.STSlope == domain.SlopeDown)

	p := 100 / (1 + math.Exp(-z))
	return math.Max(0, math.Min(100, p))
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
