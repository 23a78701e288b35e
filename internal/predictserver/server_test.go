package predictserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(DefaultScorer(), opts...).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url+"/predict", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	client := predict.NewClient(predict.Config{Endpoint: srv.URL}, nil)

	h, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.True(t, h.ModelLoaded)
}

func TestPredict_ThroughClient(t *testing.T) {
	srv := newTestServer(t)
	client := predict.NewClient(predict.Config{Endpoint: srv.URL}, nil)

	low, err := client.Predict(context.Background(), domain.DefaultAssessment())
	require.NoError(t, err)
	assert.False(t, low.RiskDetected)
	assert.Equal(t, "Low Risk", low.Message)

	high, err := client.Predict(context.Background(), testutil.NewTestAssessment(
		testutil.WithAge(67),
		testutil.WithChestPain(domain.ChestPainAsymptomatic),
		testutil.WithExerciseAngina(true),
		testutil.WithOldpeak(3.0),
		testutil.WithSlope(domain.SlopeFlat),
	))
	require.NoError(t, err)
	assert.True(t, high.RiskDetected)
	assert.Equal(t, "High Risk", high.Message)
	assert.Greater(t, high.ProbabilityPercent, low.ProbabilityPercent)
}

func TestPredict_MissingFieldIs422(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postJSON(t, srv.URL, `{"age": 45, "sex": "Male"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out["detail"], "trestbps: field required")
}

func TestPredict_InvalidBodiesAre422(t *testing.T) {
	srv := newTestServer(t)
	valid := predict.NewPredictRequest(domain.DefaultAssessment())

	mutate := func(f func(m map[string]any)) string {
		data, _ := json.Marshal(valid)
		var m map[string]any
		_ = json.Unmarshal(data, &m)
		f(m)
		out, _ := json.Marshal(m)
		return string(out)
	}

	bodies := map[string]string{
		"not json":      `{"age": `,
		"array":         `[1, 2, 3]`,
		"age as string": mutate(func(m map[string]any) { m["age"] = "45" }),
		"unknown cp":    mutate(func(m map[string]any) { m["cp"] = "XYZ" }),
		"fbs not yes":   mutate(func(m map[string]any) { m["fbs"] = "1" }),
		"exang true":    mutate(func(m map[string]any) { m["exang"] = "true" }),
		"sex lowercase": mutate(func(m map[string]any) { m["sex"] = "male" }),
		"zero age":      mutate(func(m map[string]any) { m["age"] = 0 }),
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			resp, out := postJSON(t, srv.URL, body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.NotEmpty(t, out["detail"])
		})
	}
}

func TestPredict_WithoutModel(t *testing.T) {
	srv := newTestServer(t, WithoutModel())
	client := predict.NewClient(predict.Config{Endpoint: srv.URL}, nil)

	_, err := client.Predict(context.Background(), domain.DefaultAssessment())
	var se *predict.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)

	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.False(t, h.ModelLoaded)
}

func TestLinearScorer_ProbabilityInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	scorer := DefaultScorer()

	for trial := 0; trial < 500; trial++ {
		a := domain.Assessment{
			Age:                   rng.Intn(120) + 1,
			Sex:                   domain.Sex(domain.SexOptions[rng.Intn(len(domain.SexOptions))]),
			RestingBP:             rng.Intn(300),
			Cholesterol:           rng.Intn(700),
			MaxHeartRate:          rng.Intn(250),
			Oldpeak:               rng.Float64()*12 - 4,
			ChestPainType:         domain.ChestPainType(domain.ChestPainOptions[rng.Intn(4)]),
			RestingECG:            domain.RestingECG(domain.ECGOptions[rng.Intn(3)]),
			FastingBloodSugarHigh: rng.Intn(2) == 1,
			ExerciseAngina:        rng.Intn(2) == 1,
			STSlope:               domain.STSlope(domain.SlopeOptions[rng.Intn(3)]),
		}
		p := scorer.Score(a)
		assert.GreaterOrEqual(t, p, 0.0, "trial %d", trial)
		assert.LessOrEqual(t, p, 100.0, "trial %d", trial)
	}
}
