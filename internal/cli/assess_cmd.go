package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/dilsehat/internal/cli/formatter"
	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/wizard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAssessCmd(app *App) *cobra.Command {
	var (
		noTUI   bool
		lenient bool
		url     string
		timeout time.Duration
	)
	fields := make(map[string]*string, len(domain.Fields))

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the four-step heart risk assessment",
		Long: `Collect the clinical inputs, send them to the prediction service and
show the verdict. In a terminal this opens the interactive wizard; with
--no-tui (or any field flag) the values come from flags and unset fields keep
their defaults.`,
		Example: `  dilsehat assess
  dilsehat assess --no-tui --age 54 --sex Female --resting-bp 130 --cholesterol 245 \
    --max-hr 140 --oldpeak 1.5 --chest-pain ASY --resting-ecg Normal \
    --fasting-bs No --exercise-angina Yes --st-slope Flat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app.withEndpoint(url, timeout)
			ctrl := a.newController(a.Config.StrictSteps && !lenient)

			set := changedFields(cmd.Flags(), fields)
			if !noTUI && len(set) == 0 && a.interactive() {
				return runTUI(a, ctrl, startWizard)
			}
			return runAssessOneShot(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), ctrl, set, a.interactive())
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "read values from flags and print the result")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "continue past rejected values instead of stopping")
	cmd.Flags().AddFlagSet(fieldFlagSet(fields))
	cmd.Flags().AddFlagSet(predictFlagSet(&url, &timeout))
	return cmd
}

// fieldFlagSet declares one string flag per assessment field. Values are
// parsed by the wizard, not by pflag, so errors read the same everywhere.
func fieldFlagSet(values map[string]*string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("fields", pflag.ContinueOnError)
	fs.SortFlags = false
	for _, spec := range domain.Fields {
		usage := spec.Label
		if len(spec.Options) > 0 {
			usage += " (" + strings.Join(spec.Options, "|") + ")"
		}
		values[spec.Flag] = fs.String(spec.Flag, "", usage)
	}
	return fs
}

func changedFields(fs *pflag.FlagSet, values map[string]*string) map[string]string {
	set := make(map[string]string)
	for flag, v := range values {
		if fs.Changed(flag) {
			set[flag] = *v
		}
	}
	return set
}

// runAssessOneShot drives the same controller the TUI uses: set fields,
// walk the steps, submit once.
func runAssessOneShot(ctx context.Context, out, errOut io.Writer, ctrl *wizard.Controller, set map[string]string, spin bool) error {
	var rejected []*domain.FieldError
	for _, spec := range domain.Fields {
		raw, ok := set[spec.Flag]
		if !ok {
			continue
		}
		if err := ctrl.SetField(spec.Flag, raw); err != nil {
			var fe *domain.FieldError
			if !errors.As(err, &fe) {
				return err
			}
			rejected = append(rejected, fe)
		}
	}

	for ctrl.Step() < domain.StepCount {
		if err := ctrl.Advance(); err != nil {
			fmt.Fprintln(out, formatter.FormatFieldErrors(rejected))
			return fmt.Errorf("%d invalid field value(s)", len(rejected))
		}
	}
	if len(rejected) > 0 {
		fmt.Fprintln(errOut, formatter.StyleYellow.Render("Ignoring rejected values, defaults kept:"))
		fmt.Fprintln(errOut, formatter.FormatFieldErrors(rejected))
	}

	fmt.Fprintln(out, formatter.FormatAssessment(ctrl.Draft()))

	stop := func() {}
	if spin {
		stop = formatter.StartSpinner(errOut, "Analyzing...")
	}
	res, err := ctrl.Submit(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(out, formatter.FormatSubmitFailure(err))
		return fmt.Errorf("prediction failed: %w", err)
	}

	fmt.Fprint(out, formatter.FormatResultPlain(res))
	return nil
}
