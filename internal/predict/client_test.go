package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() CallEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &recordingObserver{}
	return NewClient(Config{Endpoint: srv.URL, Timeout: time.Second}, obs), obs
}

func TestClient_Predict_Success(t *testing.T) {
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Len(t, raw, 11)
		assert.Equal(t, float64(45), raw["age"])
		assert.Equal(t, "Male", raw["sex"])
		assert.Equal(t, float64(120), raw["trestbps"])
		assert.Equal(t, float64(200), raw["chol"])
		assert.Equal(t, float64(150), raw["thalach"])
		assert.Equal(t, 1.0, raw["oldpeak"])
		assert.Equal(t, "ATA", raw["cp"])
		assert.Equal(t, "Normal", raw["restecg"])
		assert.Equal(t, "No", raw["fbs"])
		assert.Equal(t, "No", raw["exang"])
		assert.Equal(t, "Up", raw["slope"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"risk_detected": true, "probability": 87.5, "message": "High Risk"}`))
	})

	res, err := client.Predict(context.Background(), domain.DefaultAssessment())

	require.NoError(t, err)
	assert.True(t, res.RiskDetected)
	assert.InDelta(t, 87.5, res.ProbabilityPercent, 1e-9)
	assert.Equal(t, "High Risk", res.Message)

	ev := obs.last()
	assert.True(t, ev.Success)
	assert.Equal(t, "/predict", ev.Path)
	assert.Equal(t, http.StatusOK, ev.StatusCode)
}

func TestClient_Predict_Unavailable(t *testing.T) {
	obs := &recordingObserver{}
	client := NewClient(Config{Endpoint: "http://127.0.0.1:1", Timeout: time.Second}, obs)

	_, err := client.Predict(context.Background(), domain.DefaultAssessment())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "UNAVAILABLE", obs.last().ErrorCode)
}

func TestClient_Predict_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, NoopObserver{})
	start := time.Now()
	_, err := client.Predict(context.Background(), domain.DefaultAssessment())

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Predict_BadStatus(t *testing.T) {
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"Model not loaded"}`))
	})

	_, err := client.Predict(context.Background(), domain.DefaultAssessment())

	require.ErrorIs(t, err, ErrBadStatus)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Contains(t, se.Body, "Model not loaded")
	assert.Equal(t, "BAD_STATUS", obs.last().ErrorCode)
}

func TestClient_Predict_InvalidResponses(t *testing.T) {
	bodies := map[string]string{
		"malformed":         `{"risk_detected": tru`,
		"missing risk":      `{"probability": 40}`,
		"missing prob":      `{"risk_detected": false}`,
		"probability > 100": `{"risk_detected": true, "probability": 140}`,
		"probability < 0":   `{"risk_detected": false, "probability": -3}`,
		"wrong type":        `{"risk_detected": "yes", "probability": 40}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := client.Predict(context.Background(), domain.DefaultAssessment())
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestClient_Predict_DoesNotRetry(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Predict(context.Background(), domain.DefaultAssessment())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Health(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","model_loaded":false}`))
	})

	h, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.False(t, h.ModelLoaded)
}

func TestClient_EndpointTrailingSlashTrimmed(t *testing.T) {
	c := NewClient(Config{Endpoint: "http://localhost:8000/"}, nil)
	assert.Equal(t, "http://localhost:8000", c.Endpoint())
}
