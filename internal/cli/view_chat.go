package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chatFooterLines is the space below the transcript: notice, suggestions,
// blank line and the input.
const chatFooterLines = 4

// chatView is the assistant panel. It reads the transcript from the shared
// ChatSession on every update, so replies that arrive while the view is
// closed show up when it reopens.
type chatView struct {
	state   *SharedState
	session *assistant.ChatSession
	err     error

	input    textinput.Model
	vp       viewport.Model
	selected int // highlighted suggestion, -1 for none
	root     bool
}

func newChatView(state *SharedState, root bool) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about BP, cholesterol, chest pain..."
	ti.CharLimit = 300

	v := &chatView{
		state:    state,
		input:    ti,
		vp:       viewport.New(0, 0),
		selected: -1,
		root:     root,
	}
	v.session, v.err = state.Chat()
	v.refresh()
	return v
}

func (v *chatView) refresh() {
	v.vp.Width = v.state.ContentWidth()
	v.vp.Height = max(v.state.ContentHeight()-chatFooterLines, 3)
	if v.session == nil {
		return
	}
	turns := v.session.History()
	v.vp.SetContent(formatter.FormatTranscript(turns, v.session.Pending(), v.state.ContentWidth()))
	v.vp.GotoBottom()
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			if v.root {
				return v, quit()
			}
			return v, popView()
		case tea.KeyTab:
			v.cycleSuggestion(1)
			return v, nil
		case tea.KeyShiftTab:
			v.cycleSuggestion(-1)
			return v, nil
		case tea.KeyEnter:
			cmd := v.send()
			v.refresh()
			return v, cmd
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
		if v.session == nil {
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		v.session.SetInput(v.input.Value())
		if msg.Type == tea.KeyRunes {
			v.selected = -1
		}
		return v, cmd

	case tea.WindowSizeMsg, chatReplyDueMsg:
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) cycleSuggestion(step int) {
	n := len(assistant.Suggestions)
	if v.session == nil || n == 0 {
		return
	}
	if v.selected < 0 && step < 0 {
		v.selected = n - 1
		return
	}
	v.selected = ((v.selected+step)%n + n) % n
}

// send asks the typed question, or the highlighted suggestion when the
// input is blank. Empty input leaves the session's notice in place.
func (v *chatView) send() tea.Cmd {
	if v.session == nil {
		return nil
	}

	var err error
	if v.selected >= 0 && strings.TrimSpace(v.input.Value()) == "" {
		label := assistant.Suggestions[v.selected]
		v.selected = -1
		_, err = v.session.Suggest(label)
	} else {
		v.session.SetInput(v.input.Value())
		_, err = v.session.Send()
	}

	switch {
	case errors.Is(err, assistant.ErrEmptyQuery):
		return nil
	case err != nil:
		v.state.App.logger().Warn("chat send failed", "session", v.session.ID(), "error", err)
		v.err = err
		return nil
	}
	v.input.Reset()
	return v.state.sched.Flush()
}

func (v *chatView) View() string {
	if v.session == nil {
		return formatter.RenderBox("Assistant", formatter.ErrorLine(v.err.Error())+"\n\n"+
			formatter.Dim("The assessment still works. Press esc to go back."))
	}

	var b strings.Builder
	b.WriteString(v.vp.View())
	b.WriteString("\n")
	switch {
	case v.session.Notice() != "":
		b.WriteString(formatter.StyleYellow.Render(v.session.Notice()))
	case v.err != nil:
		b.WriteString(formatter.ErrorLine(v.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(formatter.FormatSuggestions(assistant.Suggestions, v.selected))
	b.WriteString("\n\n")
	b.WriteString(formatter.StylePurple.Render("ask") + formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}

func (v *chatView) ID() ViewID    { return ViewChat }
func (v *chatView) Title() string { return "Assistant" }
func (v *chatView) ShortHelp() []key.Binding {
	back := "back"
	if v.root {
		back = "quit"
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "topics")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", back)),
	}
}
