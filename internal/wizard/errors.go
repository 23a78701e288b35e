package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/domain"
)

var (
	// ErrUnknownField is returned by SetField for names outside the field registry.
	ErrUnknownField = domain.ErrUnknownField

	// ErrSubmissionInFlight rejects any mutation or second submit while a
	// prediction request is outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrResulted rejects edits once a result is shown; Restart clears it.
	ErrResulted = errors.New("assessment already has a result")

	// ErrNotAtReview is returned by Submit outside the review step.
	ErrNotAtReview = errors.New("submit is only available on the review step")

	// ErrNotSubmittable wraps the reason the draft cannot be sent.
	ErrNotSubmittable = errors.New("assessment is not submittable")

	// ErrPredictorPanic is recorded when the predictor panics mid-call.
	ErrPredictorPanic = errors.New("predictor panicked")
)

// StepInvalidError blocks Advance when the current step still has rejected edits.
type StepInvalidError struct {
	Step   int
	Fields []domain.FieldName
}

func (e *StepInvalidError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("step %d has invalid fields: %s", e.Step, strings.Join(names, ", "))
}

func (e *StepInvalidError) Unwrap() error { return domain.ErrInvalidField }
