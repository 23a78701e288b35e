package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var answerOnly bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the health assistant one question",
		Example: `  dilsehat ask "what is oldpeak"
  dilsehat ask bp kia hai`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := app.knowledge()
			if err != nil {
				return fmt.Errorf("assistant unavailable: %w", err)
			}
			question := strings.Join(args, " ")
			if assistant.Normalize(question) == "" {
				return fmt.Errorf("%w: %s", assistant.ErrEmptyQuery, assistant.EmptyQueryNotice)
			}

			m := assistant.Resolve(kb, question)
			if answerOnly {
				fmt.Fprintln(cmd.OutOrStdout(), m.Answer)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnswer(question, m))
			return nil
		},
	}

	cmd.Flags().BoolVar(&answerOnly, "answer-only", false, "print only the answer text")
	return cmd
}
