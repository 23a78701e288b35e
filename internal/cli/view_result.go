package cli

import (
	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// resultView shows the verdict card. It scrolls when the terminal is short.
type resultView struct {
	state *SharedState
	vp    viewport.Model
}

func newResultView(state *SharedState) *resultView {
	v := &resultView{state: state, vp: viewport.New(0, 0)}
	v.layout()
	return v
}

func (v *resultView) layout() {
	v.vp.Width = v.state.ContentWidth()
	v.vp.Height = v.state.ContentHeight()
	res := v.state.Wizard.Submission().Result
	v.vp.SetContent(formatter.FormatResult(res, v.state.ContentWidth()))
}

func (v *resultView) Init() tea.Cmd { return nil }

func (v *resultView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.layout()
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r", "n":
			v.state.Wizard.Restart()
			return v, replaceView(newWizardView(v.state))
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *resultView) View() string {
	if v.state.Height <= 0 {
		res := v.state.Wizard.Submission().Result
		return formatter.FormatResult(res, v.state.ContentWidth())
	}
	return v.vp.View()
}

func (v *resultView) ID() ViewID    { return ViewResult }
func (v *resultView) Title() string { return "Result" }
func (v *resultView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new assessment")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}
