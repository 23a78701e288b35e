package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const healthTimeout = 3 * time.Second

func newHealthCmd(app *App) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the prediction service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app.withEndpoint(url, timeout)
			if a.Health == nil {
				return errors.New("no prediction service configured")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()
			h, err := a.Health.Health(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHealth(a.Health.Endpoint(), h, err))
			if err != nil {
				return fmt.Errorf("prediction service unavailable: %w", err)
			}
			if !h.ModelLoaded {
				return errors.New("prediction service has no model loaded")
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(predictFlagSet(&url, &timeout))
	return cmd
}
