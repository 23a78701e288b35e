package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// stepView collects the fields of one data-entry step with a huh form.
// Completing the form commits the values and advances the wizard.
type stepView struct {
	state   *SharedState
	step    int
	values  map[domain.FieldName]*string
	form    *huh.Form
	problem string
}

func newStepView(state *SharedState) *stepView {
	v := &stepView{
		state: state,
		step:  state.Wizard.Step(),
	}
	v.values = stepValues(state.Wizard.Draft(), v.step)
	v.form = v.buildForm()
	if rejected := state.Wizard.Rejected(); len(rejected) > 0 {
		v.problem = formatter.FormatFieldErrors(rejected)
	}
	return v
}

func (v *stepView) buildForm() *huh.Form {
	strict := v.state.App.Config.StrictSteps
	return buildStepForm(v.step, v.values, strict, v.state.Width)
}

func (v *stepView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *stepView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape goes back one step, keeping what was typed here.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if v.step == 1 {
			return v, nil
		}
		if _, err := applyValues(v.state.Wizard, v.values); err != nil {
			v.state.App.logger().Warn("keeping step values", "step", v.step, "error", err)
		}
		v.state.Wizard.Retreat()
		return v, replaceView(newWizardView(v.state))
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, v.complete()
	}
	return v, cmd
}

func (v *stepView) complete() tea.Cmd {
	err := applyStep(v.state.Wizard, v.values)
	if err == nil {
		return replaceView(newWizardView(v.state))
	}

	var stepErr *wizard.StepInvalidError
	if errors.As(err, &stepErr) {
		v.problem = formatter.FormatFieldErrors(v.state.Wizard.Rejected())
	} else {
		v.problem = formatter.ErrorLine(err.Error())
	}
	v.values = stepValues(v.state.Wizard.Draft(), v.step)
	v.form = v.buildForm()
	return v.form.Init()
}

func (v *stepView) View() string {
	var b strings.Builder
	b.WriteString(formatter.RenderSteps(domain.StepTitles[:], v.step))
	b.WriteString("\n\n")
	if v.problem != "" {
		b.WriteString(v.problem)
		b.WriteString("\n\n")
	}
	b.WriteString(v.form.View())
	return b.String()
}

func (v *stepView) ID() ViewID    { return ViewStep }
func (v *stepView) Title() string { return domain.StepTitles[v.step-1] }
func (v *stepView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
	}
	if v.step > 1 {
		bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "previous step")))
	}
	return bindings
}
