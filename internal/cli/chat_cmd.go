package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the health assistant on its own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				return errors.New("chat needs an interactive terminal; use 'dilsehat ask' instead")
			}
			if _, err := app.knowledge(); err != nil {
				return err
			}
			return runTUI(app, app.newController(app.Config.StrictSteps), startChat)
		},
	}
}
