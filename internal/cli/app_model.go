package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack; the wizard always lives at the bottom.
type appModel struct {
	state     *SharedState
	viewStack []View
	start     startMode
	quitting  bool
}

func newAppModel(app *App, ctrl *wizard.Controller, start startMode) appModel {
	state := newSharedState(app, ctrl)
	m := appModel{state: state, start: start}

	switch start {
	case startChat:
		m.viewStack = []View{newChatView(state, true)}
	default:
		m.viewStack = []View{newWizardView(state)}
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	if m.start == startWizard {
		cmds = append(cmds, healthCmd(m.state.App.Health))
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Navigation messages from views
	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, m.refreshActive()

	case replaceViewMsg:
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case submitDoneMsg:
		return m, m.completeSubmit(msg)

	case chatReplyDueMsg:
		// Deliver even when the assistant panel is closed.
		msg.timer.fire()

	case healthMsg:
		if msg.err != nil {
			m.state.ServiceNotice = "prediction service unreachable"
			m.state.App.logger().Warn("prediction service health check failed",
				"endpoint", msg.endpoint, "error", msg.err)
		} else if !msg.health.ModelLoaded {
			m.state.ServiceNotice = "prediction model not loaded"
		}
		return m, nil

	case quitMsg:
		return m.quit()
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// completeSubmit resolves a finished prediction and rebuilds the wizard view
// at the bottom of the stack, so a result lands even under the assistant.
func (m *appModel) completeSubmit(msg submitDoneMsg) tea.Cmd {
	if !m.state.Wizard.CompleteSubmit(msg.pending, msg.result, msg.err) {
		return nil
	}
	if len(m.viewStack) == 0 || !isWizardView(m.viewStack[0]) {
		return nil
	}
	v := newWizardView(m.state)
	m.viewStack[0] = v
	return v.Init()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys that work everywhere.
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyCtrlT:
		return m.toggleAssistant()
	}

	// Views with their own inputs receive every other key.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		return m.quit()
	case msg.String() == "?":
		return m.toggleAssistant()
	case msg.Type == tea.KeyEsc && len(m.viewStack) > 1:
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, m.refreshActive()
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// toggleAssistant opens the assistant over the wizard, or closes it.
func (m appModel) toggleAssistant() (tea.Model, tea.Cmd) {
	v := m.activeView()
	if v != nil && v.ID() == ViewChat {
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}
	chat := newChatView(m.state, false)
	m.viewStack = append(m.viewStack, chat)
	return m, chat.Init()
}

// refreshActive lets the view revealed by a pop pick up size changes and
// state that moved while it was covered.
func (m *appModel) refreshActive() tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height})
	m.setActiveView(updated.(View))
	return cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.state.Close()
	return m, tea.Quit
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("dil sehat")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	if m.state.ServiceNotice != "" {
		header += "  " + formatter.StyleRed.Render(fmt.Sprintf("[%s]", m.state.ServiceNotice))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	if v := m.activeView(); v == nil || v.ID() != ViewChat {
		hints = append(hints, formatter.Dim("ctrl+t: assistant"))
	}
	hints = append(hints, formatter.Dim("ctrl+c: quit"))

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/?/Esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewStep, ViewChat:
		return true
	}
	return false
}

func isWizardView(v View) bool {
	switch v.ID() {
	case ViewStep, ViewReview, ViewResult:
		return true
	}
	return false
}
