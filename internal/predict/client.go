// Package predict is the client side of the prediction service contract:
// POST /predict with an Assessment, GET /health.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/google/uuid"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Predictor turns an Assessment into a risk Result.
type Predictor interface {
	Predict(ctx context.Context, a domain.Assessment) (domain.Result, error)
}

// Config holds the client settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Client talks to the prediction service over HTTP. It never retries; the
// caller decides whether to resubmit.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the service at cfg.Endpoint.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Endpoint returns the base URL the client talks to.
func (c *Client) Endpoint() string { return c.cfg.Endpoint }

// Predict sends the assessment to POST /predict and decodes the result.
func (c *Client) Predict(ctx context.Context, a domain.Assessment) (domain.Result, error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var payload PredictResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/predict", requestID, NewPredictRequest(a), &payload)

	var result domain.Result
	if err == nil {
		result, err = payload.Result()
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	err = classify(ctx, err)

	c.observer.OnCallComplete(CallEvent{
		Path:       "/predict",
		RequestID:  requestID,
		LatencyMs:  time.Since(start).Milliseconds(),
		StatusCode: status,
		Success:    err == nil,
		ErrorCode:  errorCode(err),
		Err:        err,
	})
	if err != nil {
		return domain.Result{}, err
	}
	return result, nil
}

// Health queries GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var h HealthResponse
	status, err := c.doJSON(ctx, http.MethodGet, "/health", requestID, nil, &h)
	err = classify(ctx, err)

	c.observer.OnCallComplete(CallEvent{
		Path:       "/health",
		RequestID:  requestID,
		LatencyMs:  time.Since(start).Milliseconds(),
		StatusCode: status,
		Success:    err == nil,
		ErrorCode:  errorCode(err),
		Err:        err,
	})
	return h, err
}

func (c *Client) doJSON(ctx context.Context, method, path, requestID string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: excerpt(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding body: %v", ErrInvalidResponse, err)
	}
	return resp.StatusCode, nil
}

// classify maps transport-level failures onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBadStatus), errors.Is(err, ErrInvalidResponse):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadStatus):
		return "BAD_STATUS"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
