package predict

import (
	"errors"

	"github.com/alexanderramin/dilsehat/internal/domain"
)

// PredictRequest is the JSON body of POST /predict. Field names follow the
// prediction service's schema.
type PredictRequest struct {
	Age          int     `json:"age"`
	Sex          string  `json:"sex"`
	RestingBP    int     `json:"trestbps"`
	Cholesterol  int     `json:"chol"`
	MaxHeartRate int     `json:"thalach"`
	Oldpeak      float64 `json:"oldpeak"`
	ChestPain    string  `json:"cp"`
	RestingECG   string  `json:"restecg"`
	FastingBS    string  `json:"fbs"`
	ExerciseAng  string  `json:"exang"`
	STSlope      string  `json:"slope"`
}

// NewPredictRequest encodes an Assessment for the wire.
func NewPredictRequest(a domain.Assessment) PredictRequest {
	return PredictRequest{
		Age:          a.Age,
		Sex:          string(a.Sex),
		RestingBP:    a.RestingBP,
		Cholesterol:  a.Cholesterol,
		MaxHeartRate: a.MaxHeartRate,
		Oldpeak:      a.Oldpeak,
		ChestPain:    string(a.ChestPainType),
		RestingECG:   string(a.RestingECG),
		FastingBS:    domain.YesNo(a.FastingBloodSugarHigh),
		ExerciseAng:  domain.YesNo(a.ExerciseAngina),
		STSlope:      string(a.STSlope),
	}
}

// Assessment decodes the request back into a well-formed Assessment. Text
// fields must carry the exact option strings; anything else is rejected.
func (r PredictRequest) Assessment() (domain.Assessment, error) {
	a := domain.Assessment{
		Age:          r.Age,
		RestingBP:    r.RestingBP,
		Cholesterol:  r.Cholesterol,
		MaxHeartRate: r.MaxHeartRate,
		Oldpeak:      r.Oldpeak,
	}

	text := []struct {
		field domain.FieldName
		raw   string
	}{
		{domain.FieldSex, r.Sex},
		{domain.FieldChestPainType, r.ChestPain},
		{domain.FieldRestingECG, r.RestingECG},
		{domain.FieldFastingBloodSugar, r.FastingBS},
		{domain.FieldExerciseAngina, r.ExerciseAng},
		{domain.FieldSTSlope, r.STSlope},
	}
	var errs []error
	for _, t := range text {
		v, err := domain.ParseWireField(t.field, t.raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a.Apply(v)
	}
	if err := errors.Join(errs...); err != nil {
		return domain.Assessment{}, err
	}
	if err := a.Validate(); err != nil {
		return domain.Assessment{}, err
	}
	return a, nil
}

// PredictResponse is the JSON body returned by POST /predict. Pointer fields
// let the client tell a missing key from a zero value.
type PredictResponse struct {
	RiskDetected *bool    `json:"risk_detected"`
	Probability  *float64 `json:"probability"`
	Message      string   `json:"message,omitempty"`
}

// NewPredictResponse encodes a Result for the wire.
func NewPredictResponse(r domain.Result) PredictResponse {
	risk := r.RiskDetected
	prob := r.ProbabilityPercent
	return PredictResponse{RiskDetected: &risk, Probability: &prob, Message: r.Message}
}

// Result converts a decoded response into a domain Result.
func (p PredictResponse) Result() (domain.Result, error) {
	if p.RiskDetected == nil || p.Probability == nil {
		return domain.Result{}, errors.New("response is missing risk_detected or probability")
	}
	r := domain.Result{
		RiskDetected:       *p.RiskDetected,
		ProbabilityPercent: *p.Probability,
		Message:            p.Message,
	}
	if err := r.Validate(); err != nil {
		return domain.Result{}, err
	}
	return r, nil
}

// HealthResponse is the JSON body returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
