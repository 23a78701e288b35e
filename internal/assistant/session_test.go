package assistant

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues callbacks until Fire is called.
type manualScheduler struct {
	mu     sync.Mutex
	queued []*manualTimer
}

type manualTimer struct {
	f       func()
	d       time.Duration
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{f: f, d: d}
	s.queued = append(s.queued, t)
	return t
}

// Fire runs every queued callback, including stopped ones, to mimic a timer
// that already started firing when Stop was called.
func (s *manualScheduler) Fire() {
	s.mu.Lock()
	q := s.queued
	s.queued = nil
	s.mu.Unlock()
	for _, t := range q {
		t.f()
	}
}

func fakeClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestSession(t *testing.T) (*ChatSession, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	cs := NewChatSession(Builtin(), WithScheduler(sched), WithClock(fakeClock()))
	t.Cleanup(cs.Close)
	return cs, sched
}

func TestNewChatSession_StartsWithGreeting(t *testing.T) {
	cs, _ := newTestSession(t)

	h := cs.History()
	require.Len(t, h, 1)
	assert.Equal(t, SpeakerAssistant, h[0].Speaker)
	assert.Equal(t, Greeting, h[0].Text)
	assert.NotEmpty(t, cs.ID())
}

func TestAsk_EmptyInputNeverAppends(t *testing.T) {
	cs, sched := newTestSession(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := cs.Ask(q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, EmptyQueryNotice, cs.Notice())
	}
	sched.Fire()

	assert.Len(t, cs.History(), 1)
	assert.Equal(t, 0, cs.Pending())
}

func TestAsk_ReturnsAnswerImmediatelyAndRepliesLater(t *testing.T) {
	cs, sched := newTestSession(t)

	answer, err := cs.Ask("Tell me about Cholesterol")
	require.NoError(t, err)
	assert.Contains(t, answer, "Cholesterol (Khoon mein Charbi)")

	h := cs.History()
	require.Len(t, h, 2)
	assert.Equal(t, SpeakerUser, h[1].Speaker)
	assert.Equal(t, "Tell me about Cholesterol", h[1].Text)
	assert.Equal(t, 1, cs.Pending())
	assert.Equal(t, DefaultReplyDelay, sched.queued[0].d)

	sched.Fire()

	h = cs.History()
	require.Len(t, h, 3)
	assert.Equal(t, SpeakerAssistant, h[2].Speaker)
	assert.Equal(t, answer, h[2].Text)
	assert.True(t, h[1].At.Before(h[2].At))
	assert.Equal(t, -1, h[1].ID.Compare(h[2].ID))
}

func TestAsk_ValidInputClearsNotice(t *testing.T) {
	cs, _ := newTestSession(t)

	_, _ = cs.Ask(" ")
	require.NotEmpty(t, cs.Notice())

	_, err := cs.Ask("diet")
	require.NoError(t, err)
	assert.Empty(t, cs.Notice())
}

func TestDismissNotice(t *testing.T) {
	cs, _ := newTestSession(t)
	_, _ = cs.Ask("")
	cs.DismissNotice()
	assert.Empty(t, cs.Notice())
}

func TestSend_UsesAndClearsBuffer(t *testing.T) {
	cs, _ := newTestSession(t)

	cs.SetInput("what is oldpeak")
	assert.Equal(t, "what is oldpeak", cs.PendingInput())

	answer, err := cs.Send()
	require.NoError(t, err)
	assert.Contains(t, answer, "ST Depression")
	assert.Empty(t, cs.PendingInput())
}

func TestSend_EmptyBufferKeepsInput(t *testing.T) {
	cs, _ := newTestSession(t)
	cs.SetInput("   ")

	_, err := cs.Send()

	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, "   ", cs.PendingInput())
}

func TestSuggest(t *testing.T) {
	cs, _ := newTestSession(t)

	for _, label := range Suggestions {
		answer, err := cs.Suggest(label)
		require.NoError(t, err, label)
		assert.NotEqual(t, cs.KnowledgeBase().Default(), answer, label)
	}

	_, err := cs.Suggest("Horoscope")
	assert.ErrorIs(t, err, ErrUnknownSuggestion)
}

func TestClose_DropsPendingReplies(t *testing.T) {
	cs, sched := newTestSession(t)
	_, err := cs.Ask("bp")
	require.NoError(t, err)

	cs.Close()
	sched.Fire()

	assert.Len(t, cs.History(), 2)
	assert.True(t, sched.queued == nil)
	_, err = cs.Ask("bp")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestOnReply_CalledPerAssistantTurn(t *testing.T) {
	sched := &manualScheduler{}
	var got []string
	cs := NewChatSession(Builtin(), WithScheduler(sched), OnReply(func(turn Turn) {
		got = append(got, turn.Text)
	}))
	defer cs.Close()

	_, _ = cs.Ask("diet")
	_, _ = cs.Ask("risk")
	sched.Fire()

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Diet (Khoraak)")
	assert.Contains(t, got[1], "Risk Factors")
}

func TestRealTimer_ReplyArrives(t *testing.T) {
	cs := NewChatSession(Builtin(), WithReplyDelay(5*time.Millisecond))
	defer cs.Close()

	_, err := cs.Ask("ecg")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(cs.History()) == 3 }, time.Second, 5*time.Millisecond)
}
