package assistant

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Greeting is the first assistant turn of every session.
const Greeting = "Salam! I am Dil Sehat Assistant. How can I help your heart health today?"

// EmptyQueryNotice is the retained message shown after an empty question.
const EmptyQueryNotice = "Please type a question or select a topic."

// DefaultReplyDelay is how long the assistant turn waits before it appears.
const DefaultReplyDelay = 500 * time.Millisecond

// Speaker identifies who produced a turn.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerAssistant
)

func (s Speaker) String() string {
	if s == SpeakerUser {
		return "user"
	}
	return "assistant"
}

// Turn is one chat message.
type Turn struct {
	ID      ulid.ULID
	Speaker Speaker
	Text    string
	At      time.Time
}

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. The production scheduler is time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SessionOption configures a ChatSession.
type SessionOption func(*ChatSession)

func WithScheduler(s Scheduler) SessionOption {
	return func(cs *ChatSession) { cs.sched = s }
}

func WithReplyDelay(d time.Duration) SessionOption {
	return func(cs *ChatSession) { cs.delay = d }
}

func WithClock(now func() time.Time) SessionOption {
	return func(cs *ChatSession) { cs.now = now }
}

// OnReply registers a callback run after each assistant turn lands. It runs
// without the session lock held.
func OnReply(f func(Turn)) SessionOption {
	return func(cs *ChatSession) { cs.onReply = f }
}

func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(cs *ChatSession) {
		if l != nil {
			cs.log = l
		}
	}
}

// ChatSession holds the chat history for one user. It is safe for
// concurrent use; scheduled replies fire on timer goroutines.
type ChatSession struct {
	id      string
	kb      *KnowledgeBase
	sched   Scheduler
	delay   time.Duration
	now     func() time.Time
	onReply func(Turn)
	log     *slog.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	history []Turn
	input   string
	notice  string
	pending map[uint64]Timer
	nextTok uint64
	closed  bool
}

// NewChatSession starts a session over kb with the greeting turn in place.
func NewChatSession(kb *KnowledgeBase, opts ...SessionOption) *ChatSession {
	cs := &ChatSession{
		id:      uuid.NewString(),
		kb:      kb,
		sched:   timerScheduler{},
		delay:   DefaultReplyDelay,
		now:     time.Now,
		log:     slog.New(slog.DiscardHandler),
		pending: make(map[uint64]Timer),
	}
	for _, opt := range opts {
		opt(cs)
	}
	cs.entropy = ulid.Monotonic(rand.New(rand.NewSource(cs.now().UnixNano())), 0)
	cs.history = append(cs.history, cs.newTurnLocked(SpeakerAssistant, Greeting))
	return cs
}

// ID identifies the session in logs.
func (cs *ChatSession) ID() string { return cs.id }

func (cs *ChatSession) KnowledgeBase() *KnowledgeBase { return cs.kb }

func (cs *ChatSession) newTurnLocked(s Speaker, text string) Turn {
	at := cs.now()
	return Turn{
		ID:      ulid.MustNew(ulid.Timestamp(at), cs.entropy),
		Speaker: s,
		Text:    text,
		At:      at,
	}
}

// Ask records the question, resolves it, and schedules the assistant turn.
// The answer is returned immediately; it appears in History after the reply
// delay. Empty input sets the notice and leaves history untouched.
func (cs *ChatSession) Ask(text string) (string, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.askLocked(text)
}

func (cs *ChatSession) askLocked(text string) (string, error) {
	if cs.closed {
		return "", ErrSessionClosed
	}
	if Normalize(text) == "" {
		cs.notice = EmptyQueryNotice
		return "", ErrEmptyQuery
	}
	cs.notice = ""
	cs.input = ""
	cs.history = append(cs.history, cs.newTurnLocked(SpeakerUser, text))

	m := Resolve(cs.kb, text)
	cs.log.Debug("resolved question", "session", cs.id, "key", m.Key, "default", m.Default)
	cs.scheduleLocked(m.Answer)
	return m.Answer, nil
}

func (cs *ChatSession) scheduleLocked(answer string) {
	tok := cs.nextTok
	cs.nextTok++
	cs.pending[tok] = cs.sched.AfterFunc(cs.delay, func() { cs.deliver(tok, answer) })
}

func (cs *ChatSession) deliver(tok uint64, answer string) {
	cs.mu.Lock()
	if _, ok := cs.pending[tok]; !ok || cs.closed {
		cs.mu.Unlock()
		return
	}
	delete(cs.pending, tok)
	turn := cs.newTurnLocked(SpeakerAssistant, answer)
	cs.history = append(cs.history, turn)
	cb := cs.onReply
	cs.mu.Unlock()

	if cb != nil {
		cb(turn)
	}
}

// Suggest asks one of the curated Suggestions.
func (cs *ChatSession) Suggest(label string) (string, error) {
	if !IsSuggestion(label) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSuggestion, label)
	}
	return cs.Ask(label)
}

// SetInput replaces the pending input buffer.
func (cs *ChatSession) SetInput(text string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.input = text
}

func (cs *ChatSession) PendingInput() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.input
}

// Send asks the pending input. On ErrEmptyQuery the buffer is kept.
func (cs *ChatSession) Send() (string, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.askLocked(cs.input)
}

// Notice returns the retained validation message, if any.
func (cs *ChatSession) Notice() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.notice
}

func (cs *ChatSession) DismissNotice() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.notice = ""
}

// History returns a snapshot of the turns so far.
func (cs *ChatSession) History() []Turn {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]Turn, len(cs.history))
	copy(out, cs.history)
	return out
}

// Pending is the number of assistant turns not yet delivered.
func (cs *ChatSession) Pending() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.pending)
}

// Close cancels every scheduled reply. Replies that fire afterwards are
// dropped. Close is idempotent.
func (cs *ChatSession) Close() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.closed {
		return
	}
	cs.closed = true
	for tok, t := range cs.pending {
		t.Stop()
		delete(cs.pending, tok)
	}
	cs.log.Debug("chat session closed", "session", cs.id, "turns", len(cs.history))
}
