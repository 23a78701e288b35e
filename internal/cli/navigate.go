package cli

import (
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// quitMsg asks the app to close the chat session and exit.
type quitMsg struct{}

// submitDoneMsg carries the prediction outcome for a pending submission.
type submitDoneMsg struct {
	pending wizard.Pending
	result  domain.Result
	err     error
}

// healthMsg reports the startup health check of the prediction service.
type healthMsg struct {
	endpoint string
	health   predict.HealthResponse
	err      error
}

// chatReplyDueMsg fires when a scheduled assistant reply is due.
type chatReplyDueMsg struct {
	timer *tickTimer
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func quit() tea.Cmd {
	return func() tea.Msg { return quitMsg{} }
}
