package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/dilsehat/internal/domain"
)

// StubPredictor returns a fixed result or error and counts calls.
type StubPredictor struct {
	Result domain.Result
	Err    error
	Panic  any

	calls atomic.Int32
	mu    sync.Mutex
	last  domain.Assessment
}

func (p *StubPredictor) Predict(_ context.Context, a domain.Assessment) (domain.Result, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.last = a
	p.mu.Unlock()
	if p.Panic != nil {
		panic(p.Panic)
	}
	return p.Result, p.Err
}

// Calls returns how many times Predict ran.
func (p *StubPredictor) Calls() int { return int(p.calls.Load()) }

// Last returns the assessment passed to the most recent call.
func (p *StubPredictor) Last() domain.Assessment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// BlockingPredictor holds every call until Release is closed. Started is
// signalled once per call so tests can observe the in-flight window.
type BlockingPredictor struct {
	Result  domain.Result
	Err     error
	Started chan struct{}
	Release chan struct{}

	calls atomic.Int32
}

func NewBlockingPredictor(res domain.Result) *BlockingPredictor {
	return &BlockingPredictor{
		Result:  res,
		Started: make(chan struct{}, 16),
		Release: make(chan struct{}),
	}
}

func (p *BlockingPredictor) Predict(ctx context.Context, _ domain.Assessment) (domain.Result, error) {
	p.calls.Add(1)
	p.Started <- struct{}{}
	select {
	case <-p.Release:
		return p.Result, p.Err
	case <-ctx.Done():
		return domain.Result{}, ctx.Err()
	}
}

func (p *BlockingPredictor) Calls() int { return int(p.calls.Load()) }
