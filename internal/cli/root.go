package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/config"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// HealthChecker reports whether the prediction service is up.
type HealthChecker interface {
	Endpoint() string
	Health(ctx context.Context) (predict.HealthResponse, error)
}

// App holds the collaborators used by CLI commands and the TUI.
type App struct {
	Config    config.Config
	Predictor predict.Predictor
	Health    HealthChecker
	Observer  predict.Observer

	// Knowledge is nil when KnowledgeErr is set; the assistant is then
	// disabled while the wizard keeps working.
	Knowledge       *assistant.KnowledgeBase
	KnowledgeSource string
	KnowledgeErr    error

	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) knowledge() (*assistant.KnowledgeBase, error) {
	if a.KnowledgeErr != nil {
		return nil, a.KnowledgeErr
	}
	if a.Knowledge == nil {
		return assistant.Builtin(), nil
	}
	return a.Knowledge, nil
}

func (a *App) knowledgeSource() string {
	if a.KnowledgeSource == "" {
		return "built-in table"
	}
	return a.KnowledgeSource
}

func (a *App) newController(strict bool) *wizard.Controller {
	return wizard.New(a.Predictor,
		wizard.WithStrictSteps(strict),
		wizard.WithLogger(a.logger()),
	)
}

// withEndpoint returns a copy of the app talking to a different prediction
// service. Empty or zero arguments keep the configured values.
func (a *App) withEndpoint(url string, timeout time.Duration) *App {
	if url == "" && timeout == 0 {
		return a
	}
	cfg := predict.Config{Endpoint: a.Config.PredictURL, Timeout: a.Config.PredictTimeout()}
	if url != "" {
		cfg.Endpoint = url
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	client := predict.NewClient(cfg, a.Observer)
	clone := *a
	clone.Predictor = client
	clone.Health = client
	return &clone
}

// predictFlagSet holds the flags shared by commands that call the
// prediction service.
func predictFlagSet(url *string, timeout *time.Duration) *pflag.FlagSet {
	fs := pflag.NewFlagSet("predict", pflag.ContinueOnError)
	fs.StringVar(url, "predict-url", "", "prediction service base URL (overrides DILSEHAT_PREDICT_URL)")
	fs.DurationVar(timeout, "timeout", 0, "prediction request timeout, e.g. 5s")
	return fs
}

// NewRootCmd creates the top-level "dilsehat" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dilsehat",
		Short: "Heart disease risk assessment with a built-in health assistant",
		Long: `Dil Sehat walks you through a four-step clinical form, sends it to a
prediction service and explains the result. A keyword assistant answers
questions about the form fields along the way.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), guidance())
				return nil
			}
			return runTUI(app, app.newController(app.Config.StrictSteps), startWizard)
		},
	}

	root.AddCommand(
		newAssessCmd(app),
		newAskCmd(app),
		newChatCmd(app),
		newKBCmd(app),
		newHealthCmd(app),
		newServeStubCmd(app),
		newRangesCmd(app),
	)

	return root
}

func guidance() string {
	return formatter.Header("Dil Sehat") + "\n" +
		"Not running in a terminal, so the interactive assessment is unavailable.\n\n" +
		formatter.Dim("Try:") + "\n" +
		"  dilsehat assess --no-tui --age 54 --sex Female --resting-bp 130 ...\n" +
		"  dilsehat ask \"what is oldpeak\"\n" +
		"  dilsehat ranges\n"
}

// runTUI runs the full-screen app until the user quits.
func runTUI(app *App, ctrl *wizard.Controller, start startMode) error {
	m := newAppModel(app, ctrl, start)
	defer m.state.Close()
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
