package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxFormWidth = 72

// dilsehatHuhTheme returns a huh theme using the gruvbox palette.
func dilsehatHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// stepValues seeds the form buffers for step from the draft.
func stepValues(draft domain.Assessment, step int) map[domain.FieldName]*string {
	values := make(map[domain.FieldName]*string)
	for _, spec := range domain.StepFields(step) {
		raw := draft.Raw(spec.Name)
		values[spec.Name] = &raw
	}
	return values
}

// buildStepForm creates the huh form for one data-entry step. In strict mode
// text inputs validate inline with the same parser the controller uses.
func buildStepForm(step int, values map[domain.FieldName]*string, strict bool, width int) *huh.Form {
	specs := domain.StepFields(step)
	fields := make([]huh.Field, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, stepField(spec, values[spec.Name], strict))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(dilsehatHuhTheme()).
		WithShowHelp(false)
	if width > 0 {
		form = form.WithWidth(min(width-4, maxFormWidth))
	}
	return form
}

func stepField(spec domain.FieldSpec, value *string, strict bool) huh.Field {
	switch spec.Kind {
	case domain.KindEnum, domain.KindBool:
		return huh.NewSelect[string]().
			Key(string(spec.Name)).
			Title(spec.Label).
			Options(huh.NewOptions(spec.Options...)...).
			Value(value)
	}

	input := huh.NewInput().
		Key(string(spec.Name)).
		Title(spec.Label).
		Value(value)
	if strict {
		input = input.Validate(func(s string) error {
			var fe *domain.FieldError
			if _, err := spec.Parse(s); errors.As(err, &fe) {
				return errors.New(fe.Reason)
			}
			return nil
		})
	}
	return input
}

// applyValues writes every buffered value through the controller and
// returns the fields it rejected.
func applyValues(ctrl *wizard.Controller, values map[domain.FieldName]*string) ([]*domain.FieldError, error) {
	var rejected []*domain.FieldError
	for _, spec := range domain.Fields {
		raw, ok := values[spec.Name]
		if !ok || raw == nil {
			continue
		}
		if err := ctrl.SetField(string(spec.Name), *raw); err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				rejected = append(rejected, fe)
				continue
			}
			return rejected, err
		}
	}
	return rejected, nil
}

// applyStep commits a completed step form and advances the wizard.
func applyStep(ctrl *wizard.Controller, values map[domain.FieldName]*string) error {
	if _, err := applyValues(ctrl, values); err != nil {
		return err
	}
	return ctrl.Advance()
}

// newWizardView builds the view matching the controller's current state.
func newWizardView(state *SharedState) View {
	ctrl := state.Wizard
	switch {
	case ctrl.Phase() == wizard.PhaseResulted:
		return newResultView(state)
	case ctrl.Step() == domain.StepCount:
		return newReviewView(state)
	default:
		return newStepView(state)
	}
}

// submitCmd runs the prediction off the UI loop. A panicking predictor is
// reported as a failed submission.
func submitCmd(p predict.Predictor, pending wizard.Pending) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = submitDoneMsg{pending: pending, err: fmt.Errorf("%w: %v", wizard.ErrPredictorPanic, r)}
			}
		}()
		res, err := p.Predict(context.Background(), pending.Assessment)
		return submitDoneMsg{pending: pending, result: res, err: err}
	}
}

// healthCmd probes the prediction service once at startup.
func healthCmd(hc HealthChecker) tea.Cmd {
	if hc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		h, err := hc.Health(ctx)
		return healthMsg{endpoint: hc.Endpoint(), health: h, err: err}
	}
}
