package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newKBCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect and manage the assistant's knowledge base",
	}
	cmd.AddCommand(
		newKBListCmd(app),
		newKBCheckCmd(app),
		newKBSeedCmd(app),
	)
	return cmd
}

// resolveKB returns the knowledge base from path when given, otherwise the
// one the app was started with.
func resolveKB(cmd *cobra.Command, app *App, path string) (*assistant.KnowledgeBase, string, error) {
	if path != "" {
		kb, err := LoadKnowledge(cmd.Context(), path)
		return kb, path, err
	}
	kb, err := app.knowledge()
	return kb, app.knowledgeSource(), err
}

func newKBListCmd(app *App) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, source, err := resolveKB(cmd, app, path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatKnowledgeBase(kb, source))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "kb-db", "", "SQLite knowledge store to read instead of the active one")
	return cmd
}

func newKBCheckCmd(app *App) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report keys that can never match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, _, err := resolveKB(cmd, app, path)
			if err != nil {
				return err
			}
			shadows := kb.Shadowed()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShadows(shadows))
			if len(shadows) > 0 {
				return fmt.Errorf("%d unreachable key(s)", len(shadows))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "kb-db", "", "SQLite knowledge store to check instead of the active one")
	return cmd
}

func newKBSeedCmd(app *App) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in table into a SQLite knowledge store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = app.Config.KnowledgeDB
			}
			if path == "" {
				return errors.New("no knowledge store: pass --kb-db or set DILSEHAT_KB_DB")
			}
			kb := assistant.Builtin()
			if err := SeedKnowledge(cmd.Context(), path, kb, "builtin"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d entries into %s\n",
				formatter.StyleGreen.Render("✔"), kb.Len(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "kb-db", "", "SQLite knowledge store to write (default DILSEHAT_KB_DB)")
	return cmd
}
