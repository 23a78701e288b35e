package wizard

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var highRisk = domain.Result{RiskDetected: true, ProbabilityPercent: 82.4}

func toReview(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < domain.StepCount-1; i++ {
		require.NoError(t, c.Advance())
	}
	require.Equal(t, domain.StepCount, c.Step())
}

func TestNew_StartsAtStepOneWithDefaults(t *testing.T) {
	c := New(&testutil.StubPredictor{})

	assert.Equal(t, 1, c.Step())
	assert.Equal(t, PhaseStep, c.Phase())
	assert.Equal(t, domain.DefaultAssessment(), c.Draft())
	assert.Equal(t, SubmissionIdle, c.Submission().Status)
}

func TestAdvanceRetreat_StepStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		c := New(&testutil.StubPredictor{})
		for op := 0; op < 50; op++ {
			before := c.Step()
			if rng.Intn(2) == 0 {
				require.NoError(t, c.Advance())
			} else {
				c.Retreat()
			}
			after := c.Step()

			assert.GreaterOrEqual(t, after, 1, "trial %d op %d", trial, op)
			assert.LessOrEqual(t, after, domain.StepCount, "trial %d op %d", trial, op)
			diff := after - before
			assert.True(t, diff >= -1 && diff <= 1, "trial %d op %d jumped %d", trial, op, diff)
		}
	}
}

func TestAdvance_NoOpAtReview(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	toReview(t, c)

	require.NoError(t, c.Advance())
	assert.Equal(t, domain.StepCount, c.Step())
}

func TestRetreat_NoOpAtStepOne(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	c.Retreat()
	assert.Equal(t, 1, c.Step())
}

func TestSetField_StoresParsedValue(t *testing.T) {
	c := New(&testutil.StubPredictor{})

	require.NoError(t, c.SetField("age", "61"))
	require.NoError(t, c.SetField("sex", "female"))
	require.NoError(t, c.SetField("oldpeak", "2.3"))
	require.NoError(t, c.SetField("exerciseAngina", "Yes"))
	require.NoError(t, c.SetField("cp", "ASY"))

	d := c.Draft()
	assert.Equal(t, 61, d.Age)
	assert.Equal(t, domain.SexFemale, d.Sex)
	assert.InDelta(t, 2.3, d.Oldpeak, 1e-9)
	assert.True(t, d.ExerciseAngina)
	assert.Equal(t, domain.ChestPainAsymptomatic, d.ChestPainType)
}

func TestSetField_UnparsableLeavesDraftUnchanged(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	before := c.Draft()

	for _, tc := range []struct{ field, raw string }{
		{"age", ""},
		{"age", "forty"},
		{"age", "0"},
		{"restingBP", "-5"},
		{"oldpeak", "NaN"},
		{"sex", "Other"},
		{"stSlope", "sideways"},
		{"fastingBloodSugarHigh", "maybe"},
	} {
		err := c.SetField(tc.field, tc.raw)
		var fe *domain.FieldError
		require.ErrorAs(t, err, &fe, "%s=%q", tc.field, tc.raw)
		assert.ErrorIs(t, err, domain.ErrInvalidField)
	}

	assert.Equal(t, before, c.Draft())
}

func TestSetField_UnknownField(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	err := c.SetField("bloodType", "O+")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestStrictSteps_BlockAdvancePastRejectedEdit(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	require.Error(t, c.SetField("age", ""))

	err := c.Advance()

	var sie *StepInvalidError
	require.ErrorAs(t, err, &sie)
	assert.Equal(t, 1, sie.Step)
	assert.Equal(t, []domain.FieldName{domain.FieldAge}, sie.Fields)
	assert.Equal(t, 1, c.Step())

	require.NoError(t, c.SetField("age", "50"))
	require.NoError(t, c.Advance())
	assert.Equal(t, 2, c.Step())
}

func TestLenientSteps_SubmitKeepsLastValidValue(t *testing.T) {
	p := &testutil.StubPredictor{Result: highRisk}
	c := New(p, WithLenientSteps())
	require.Error(t, c.SetField("cholesterol", "abc"))

	toReview(t, c)
	require.NoError(t, c.Submittable())

	res, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, highRisk, res)
	assert.Equal(t, 1, p.Calls())
	assert.Equal(t, domain.DefaultAssessment().Cholesterol, p.Last().Cholesterol)
	assert.Len(t, c.Rejected(), 1, "rejections stay visible")
}

func TestStrictSteps_RejectedEditBlocksSubmit(t *testing.T) {
	p := &testutil.StubPredictor{Result: highRisk}
	c := New(p)
	toReview(t, c)
	require.Error(t, c.SetField("cholesterol", "abc"))

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotSubmittable)
	assert.Zero(t, p.Calls())
}

func TestSubmit_OnlyAtReview(t *testing.T) {
	p := &testutil.StubPredictor{Result: highRisk}
	c := New(p)

	_, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNotAtReview)
	assert.Equal(t, 0, p.Calls())
}

func TestSubmit_SuccessMovesToResulted(t *testing.T) {
	p := &testutil.StubPredictor{Result: highRisk}
	c := New(p)
	require.NoError(t, c.SetField("age", "58"))
	toReview(t, c)

	res, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, highRisk, res)
	assert.Equal(t, PhaseResulted, c.Phase())
	sub := c.Submission()
	assert.Equal(t, SubmissionSucceeded, sub.Status)
	assert.Equal(t, highRisk, sub.Result)
	assert.Equal(t, 58, p.Last().Age)
	assert.Equal(t, 1, p.Calls())

	assert.ErrorIs(t, c.SetField("age", "30"), ErrResulted)
	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrResulted)
}

func TestSubmit_FailurePreservesDraftAndAllowsRetry(t *testing.T) {
	p := &testutil.StubPredictor{Err: predict.ErrUnavailable}
	c := New(p)
	require.NoError(t, c.SetField("cholesterol", "289"))
	toReview(t, c)

	_, err := c.Submit(context.Background())

	require.ErrorIs(t, err, predict.ErrUnavailable)
	assert.Equal(t, domain.StepCount, c.Step())
	assert.Equal(t, PhaseStep, c.Phase())
	sub := c.Submission()
	assert.Equal(t, SubmissionFailed, sub.Status)
	assert.ErrorIs(t, sub.Err, predict.ErrUnavailable)
	assert.Equal(t, 289, c.Draft().Cholesterol)

	p.Err = nil
	p.Result = domain.Result{ProbabilityPercent: 12}
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.Calls())
	assert.Equal(t, SubmissionSucceeded, c.Submission().Status)
}

func TestSubmit_OutOfRangeResultIsFailure(t *testing.T) {
	c := New(&testutil.StubPredictor{Result: domain.Result{ProbabilityPercent: 130}})
	toReview(t, c)

	_, err := c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, SubmissionFailed, c.Submission().Status)
}

func TestSubmit_PanicResolvesInFlight(t *testing.T) {
	c := New(&testutil.StubPredictor{Panic: "boom"})
	toReview(t, c)

	_, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, ErrPredictorPanic)
	assert.Equal(t, SubmissionFailed, c.Submission().Status)
	assert.Equal(t, PhaseStep, c.Phase())
}

func TestSubmit_RejectedWhileInFlight(t *testing.T) {
	p := testutil.NewBlockingPredictor(highRisk)
	c := New(p)
	toReview(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-p.Started

	assert.Equal(t, SubmissionInFlight, c.Submission().Status)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.ErrorIs(t, c.SetField("age", "70"), ErrSubmissionInFlight)
	c.Retreat()
	assert.Equal(t, domain.StepCount, c.Step())

	close(p.Release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, p.Calls())
}

func TestSubmit_ConcurrentCallsIssueOneRequest(t *testing.T) {
	p := testutil.NewBlockingPredictor(highRisk)
	c := New(p)
	toReview(t, c)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Submit(context.Background())
			errs <- err
		}()
	}
	<-p.Started
	close(p.Release)
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrResulted):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, rejected)
	assert.Equal(t, 1, p.Calls())
}

func TestBeginComplete_StaleCompletionIgnored(t *testing.T) {
	c := New(&testutil.StubPredictor{})
	toReview(t, c)

	pending, err := c.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, PhaseSubmitting, c.Phase())

	c.Restart()
	assert.False(t, c.CompleteSubmit(pending, highRisk, nil))
	assert.Equal(t, SubmissionIdle, c.Submission().Status)
	assert.Equal(t, 1, c.Step())
}

func TestRestart_AlwaysYieldsDefaults(t *testing.T) {
	states := map[string]func(c *Controller){
		"fresh": func(*Controller) {},
		"mid-form": func(c *Controller) {
			_ = c.SetField("age", "77")
			_ = c.Advance()
			_ = c.SetField("restingBP", "x")
		},
		"resulted": func(c *Controller) {
			_ = c.SetField("sex", "Female")
			toReview(t, c)
			_, _ = c.Submit(context.Background())
		},
	}
	for name, setup := range states {
		t.Run(name, func(t *testing.T) {
			c := New(&testutil.StubPredictor{Result: highRisk})
			setup(c)

			c.Restart()

			assert.Equal(t, 1, c.Step())
			assert.Equal(t, PhaseStep, c.Phase())
			assert.Equal(t, domain.DefaultAssessment(), c.Draft())
			assert.Equal(t, Submission{}, c.Submission())
			assert.Empty(t, c.Rejected())
		})
	}
}
