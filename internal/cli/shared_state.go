package cli

import (
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/wizard"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Wizard *wizard.Controller

	// Chat is created on first use and lives for the whole TUI run.
	chat    *assistant.ChatSession
	chatErr error
	sched   *tickScheduler

	// ServiceNotice is set when the startup health check fails.
	ServiceNotice string

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App, ctrl *wizard.Controller) *SharedState {
	return &SharedState{
		App:    app,
		Wizard: ctrl,
		sched:  &tickScheduler{},
	}
}

// Chat returns the session, creating it on first call. The error is the
// knowledge base load failure, if any.
func (s *SharedState) Chat() (*assistant.ChatSession, error) {
	if s.chat != nil || s.chatErr != nil {
		return s.chat, s.chatErr
	}
	kb, err := s.App.knowledge()
	if err != nil {
		s.chatErr = fmt.Errorf("assistant unavailable: %w", err)
		return nil, s.chatErr
	}
	s.chat = assistant.NewChatSession(kb,
		assistant.WithScheduler(s.sched),
		assistant.WithReplyDelay(s.App.Config.ReplyDelay()),
		assistant.WithSessionLogger(s.App.logger()),
	)
	return s.chat, nil
}

// Close cancels pending assistant replies.
func (s *SharedState) Close() {
	if s.chat != nil {
		s.chat.Close()
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}

// ContentWidth is the terminal width with a sane fallback before the first
// WindowSizeMsg.
func (s *SharedState) ContentWidth() int {
	if s.Width <= 0 {
		return 80
	}
	return s.Width
}
