package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the prediction service could not be reached.
	ErrUnavailable = errors.New("prediction service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("prediction request timed out")

	// ErrBadStatus indicates the service answered with a non-2xx status.
	ErrBadStatus = errors.New("prediction service returned an error status")

	// ErrInvalidResponse indicates the response body could not be decoded
	// into a usable result.
	ErrInvalidResponse = errors.New("invalid prediction response")
)

// StatusError carries the status code and a body excerpt of a non-2xx reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("prediction service returned status %d", e.Code)
	}
	return fmt.Sprintf("prediction service returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrBadStatus }
