package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/predictserver"
	"github.com/spf13/cobra"
)

func newServeStubCmd(app *App) *cobra.Command {
	var (
		addr    string
		noModel bool
	)

	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Run a stand-in prediction service for local use",
		Long: `Serve GET /health and POST /predict with a fixed, transparent scoring
heuristic. It answers in the same shape as the real service so the wizard can
be exercised end to end. It is not a clinical model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.Config.StubAddr
			}
			opts := []predictserver.Option{predictserver.WithLogger(app.logger())}
			if noModel {
				opts = append(opts, predictserver.WithoutModel())
			}
			srv := predictserver.New(predictserver.DefaultScorer(), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "%s stand-in prediction service on %s\n",
				formatter.StyleGreen.Render("●"), addr)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Press Ctrl+C to stop."))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from DILSEHAT_STUB_ADDR)")
	cmd.Flags().BoolVar(&noModel, "no-model", false, "answer /predict with 503 as if the model failed to load")
	return cmd
}
