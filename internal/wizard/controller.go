// Package wizard drives the four-step assessment form: field edits, step
// navigation, and the single prediction round-trip.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
)

// Phase is the coarse controller state.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseSubmitting
	PhaseResulted
)

func (p Phase) String() string {
	switch p {
	case PhaseStep:
		return "step"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResulted:
		return "resulted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SubmissionStatus tracks the prediction round-trip.
type SubmissionStatus int

const (
	SubmissionIdle SubmissionStatus = iota
	SubmissionInFlight
	SubmissionSucceeded
	SubmissionFailed
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionIdle:
		return "idle"
	case SubmissionInFlight:
		return "in_flight"
	case SubmissionSucceeded:
		return "succeeded"
	case SubmissionFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Submission is the outcome of the latest submit. Result is set only when
// Status is SubmissionSucceeded, Err only when it is SubmissionFailed.
type Submission struct {
	Status SubmissionStatus
	Result domain.Result
	Err    error
}

// Pending identifies one outstanding submit started by BeginSubmit.
type Pending struct {
	Attempt    int
	Assessment domain.Assessment
}

// Option configures a Controller.
type Option func(*Controller)

// WithStrictSteps toggles gating Advance on rejected edits.
func WithStrictSteps(strict bool) Option {
	return func(c *Controller) { c.strict = strict }
}

// WithLenientSteps lets Advance move past steps with rejected edits.
func WithLenientSteps() Option { return WithStrictSteps(false) }

// WithLogger sets the logger used for submission diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the draft Assessment and the wizard state. It is safe for
// concurrent use.
type Controller struct {
	predictor predict.Predictor
	strict    bool
	log       *slog.Logger

	mu         sync.Mutex
	step       int
	phase      Phase
	draft      domain.Assessment
	rejected   map[domain.FieldName]*domain.FieldError
	submission Submission
	attempt    int
}

// New creates a Controller at step 1 with the default draft.
func New(p predict.Predictor, opts ...Option) *Controller {
	c := &Controller{
		predictor: p,
		strict:    true,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.step = 1
	c.phase = PhaseStep
	c.draft = domain.DefaultAssessment()
	c.rejected = make(map[domain.FieldName]*domain.FieldError)
	c.submission = Submission{}
}

// SetField parses raw for the named field and stores it in the draft. A value
// that fails to parse leaves the draft untouched and marks the field rejected.
func (c *Controller) SetField(name, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	spec, ok := domain.LookupField(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v, err := spec.Parse(raw)
	if err != nil {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			c.rejected[spec.Name] = fe
		}
		return err
	}
	c.draft.Apply(v)
	delete(c.rejected, spec.Name)
	return nil
}

func (c *Controller) editableLocked() error {
	switch c.phase {
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseResulted:
		return ErrResulted
	}
	return nil
}

// Advance moves to the next step. It is a no-op on the review step.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step >= domain.StepCount || c.phase != PhaseStep {
		return nil
	}
	if c.strict {
		var bad []domain.FieldName
		for _, f := range domain.StepFields(c.step) {
			if _, ok := c.rejected[f.Name]; ok {
				bad = append(bad, f.Name)
			}
		}
		if len(bad) > 0 {
			return &StepInvalidError{Step: c.step, Fields: bad}
		}
	}
	c.step++
	return nil
}

// Retreat moves to the previous step. It is a no-op on step 1 and while a
// submission is in flight or a result is shown.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step <= 1 || c.phase != PhaseStep {
		return
	}
	c.step--
}

// Submittable reports why the draft cannot be submitted, or nil.
func (c *Controller) Submittable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submittableLocked()
}

// In lenient mode rejected edits are kept for display only; the draft still
// holds the last valid value for each of them.
func (c *Controller) submittableLocked() error {
	if c.strict && len(c.rejected) > 0 {
		return &StepInvalidError{Step: c.step, Fields: c.rejectedNamesLocked()}
	}
	return c.draft.Validate()
}

func (c *Controller) rejectedNamesLocked() []domain.FieldName {
	var names []domain.FieldName
	for _, f := range domain.Fields {
		if _, ok := c.rejected[f.Name]; ok {
			names = append(names, f.Name)
		}
	}
	return names
}

// BeginSubmit marks the submission in flight and returns the draft to send.
// The caller must hand the outcome back through CompleteSubmit.
func (c *Controller) BeginSubmit() (Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.phase == PhaseSubmitting:
		return Pending{}, ErrSubmissionInFlight
	case c.phase == PhaseResulted:
		return Pending{}, ErrResulted
	case c.step != domain.StepCount:
		return Pending{}, ErrNotAtReview
	}
	if err := c.submittableLocked(); err != nil {
		return Pending{}, fmt.Errorf("%w: %w", ErrNotSubmittable, err)
	}

	c.attempt++
	c.phase = PhaseSubmitting
	c.submission = Submission{Status: SubmissionInFlight}
	return Pending{Attempt: c.attempt, Assessment: c.draft}, nil
}

// CompleteSubmit resolves the submission started by p. It reports false when
// p is stale, for example after a Restart during the request.
func (c *Controller) CompleteSubmit(p Pending, res domain.Result, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseSubmitting || p.Attempt != c.attempt {
		c.log.Debug("discarding stale submission", "attempt", p.Attempt, "current", c.attempt)
		return false
	}
	if err == nil {
		err = res.Validate()
	}
	if err != nil {
		c.log.Warn("prediction failed", "attempt", p.Attempt, "error", err)
		c.phase = PhaseStep
		c.submission = Submission{Status: SubmissionFailed, Err: err}
		return true
	}
	c.log.Info("prediction succeeded", "attempt", p.Attempt,
		"risk_detected", res.RiskDetected, "probability", res.ProbabilityPercent)
	c.phase = PhaseResulted
	c.submission = Submission{Status: SubmissionSucceeded, Result: res}
	return true
}

// Submit sends the draft to the predictor and blocks until it answers. The
// in-flight state is always resolved, even if the predictor panics.
func (c *Controller) Submit(ctx context.Context) (res domain.Result, err error) {
	p, err := c.BeginSubmit()
	if err != nil {
		return domain.Result{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPredictorPanic, r)
		}
		if err == nil {
			err = res.Validate()
		}
		if err != nil {
			res = domain.Result{}
		}
		c.CompleteSubmit(p, res, err)
	}()
	return c.predictor.Predict(ctx, p.Assessment)
}

// Restart discards the draft and returns to step 1 from any state.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Draft() domain.Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Submission() Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submission
}

// Rejected returns the fields whose last edit failed to parse, in form order.
func (c *Controller) Rejected() []*domain.FieldError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.FieldError, 0, len(c.rejected))
	for _, name := range c.rejectedNamesLocked() {
		out = append(out, c.rejected[name])
	}
	return out
}

// StepFields lists the fields collected on step.
func (c *Controller) StepFields(step int) []domain.FieldSpec {
	return domain.StepFields(step)
}
