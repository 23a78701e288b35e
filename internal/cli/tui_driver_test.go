package cli

import (
	"testing"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/config"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/teatest"
	"github.com/alexanderramin/dilsehat/internal/wizard"
)

// testApp wires an App around pred with the built-in knowledge base and
// instant assistant replies.
func testApp(t *testing.T, pred predict.Predictor) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ReplyDelayMs = 0
	return &App{
		Config:          cfg,
		Predictor:       pred,
		Knowledge:       assistant.Builtin(),
		KnowledgeSource: "built-in table",
	}
}

// TestDriver wraps teatest.Driver with access to the appModel internals
// (view stack, wizard controller, chat session) the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the TUI in wizard mode.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newTestDriver(t, app, startWizard)
}

// NewChatTestDriver starts the TUI with only the assistant.
func NewChatTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newTestDriver(t, app, startChat)
}

func newTestDriver(t *testing.T, app *App, start startMode) *TestDriver {
	t.Helper()
	m := newAppModel(app, app.newController(app.Config.StrictSteps), start)
	d := teatest.New(t, m, teatest.WithSize(100, 60))
	d.DrainInit()
	t.Cleanup(m.state.Close)
	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// AcceptStep presses Enter once per field of the current data-entry step,
// keeping the prefilled values.
func (d *TestDriver) AcceptStep() {
	d.T.Helper()
	step := d.Wizard().Step()
	d.PressEnterN(len(d.Wizard().StepFields(step)))
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// IsQuitting reports whether the app asked to exit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}

// State returns the shared state.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Wizard returns the controller behind the wizard views.
func (d *TestDriver) Wizard() *wizard.Controller {
	return d.State().Wizard
}
