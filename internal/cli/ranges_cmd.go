package cli

import (
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/spf13/cobra"
)

func newRangesCmd(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ranges",
		Short: "Show normal health parameter ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRanges(domain.NormalRanges))
			return nil
		},
	}
}
