package cli

import (
	"strings"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// reviewView is the last wizard step: a summary of the draft and the submit
// action. The submission outcome is read back from the controller.
type reviewView struct {
	state   *SharedState
	spinner spinner.Model
	notice  string
}

func newReviewView(state *SharedState) *reviewView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &reviewView{state: state, spinner: sp}
}

func (v *reviewView) Init() tea.Cmd {
	if v.state.Wizard.Phase() == wizard.PhaseSubmitting {
		return v.spinner.Tick
	}
	return nil
}

func (v *reviewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctrl := v.state.Wizard
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ctrl.Phase() == wizard.PhaseSubmitting {
			return v, nil
		}
		switch msg.String() {
		case "enter", "s":
			return v, v.submit()
		case "esc", "b":
			ctrl.Retreat()
			return v, replaceView(newWizardView(v.state))
		}

	case spinner.TickMsg:
		if ctrl.Phase() != wizard.PhaseSubmitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *reviewView) submit() tea.Cmd {
	pending, err := v.state.Wizard.BeginSubmit()
	if err != nil {
		v.notice = formatter.ErrorLine(err.Error())
		return nil
	}
	v.notice = ""
	v.state.App.logger().Info("submitting assessment", "attempt", pending.Attempt)
	return tea.Batch(v.spinner.Tick, submitCmd(v.state.App.Predictor, pending))
}

func (v *reviewView) View() string {
	ctrl := v.state.Wizard
	var b strings.Builder
	b.WriteString(formatter.RenderSteps(domain.StepTitles[:], domain.StepCount))
	b.WriteString("\n\n")
	b.WriteString(formatter.RenderBox("Review", formatter.FormatReviewSummary(ctrl.Draft())))
	b.WriteString("\n\n")
	b.WriteString(formatter.FormatAssessment(ctrl.Draft()))

	if rejected := ctrl.Rejected(); len(rejected) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.FormatFieldErrors(rejected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch sub := ctrl.Submission(); {
	case ctrl.Phase() == wizard.PhaseSubmitting:
		b.WriteString(v.spinner.View() + " " + formatter.Dim("Analyzing..."))
	case v.notice != "":
		b.WriteString(v.notice)
	case sub.Status == wizard.SubmissionFailed:
		b.WriteString(formatter.FormatSubmitFailure(sub.Err))
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Your answers are kept. Press enter to try again."))
	default:
		b.WriteString(formatter.Bold("Press enter to analyze."))
	}
	return b.String()
}

func (v *reviewView) ID() ViewID    { return ViewReview }
func (v *reviewView) Title() string { return domain.StepTitles[domain.StepCount-1] }
func (v *reviewView) ShortHelp() []key.Binding {
	if v.state.Wizard.Phase() == wizard.PhaseSubmitting {
		return nil
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous step")),
	}
}
