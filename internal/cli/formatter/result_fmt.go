package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/domain"
	"github.com/alexanderramin/dilsehat/internal/predict"
	"github.com/alexanderramin/dilsehat/internal/wizard"
)

const meterWidth = 30

// FormatResult renders the verdict card shown after a successful prediction.
func FormatResult(res domain.Result, width int) string {
	n := res.Narrative()
	style := RiskStyle(res.RiskDetected)
	textWidth := max(width-8, 20)

	var b strings.Builder
	b.WriteString(style.Bold(true).Render(n.Headline))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Probability:"), Bold(res.ProbabilityText())))
	b.WriteString(RenderRiskMeter(res.ProbabilityPercent, meterWidth))
	b.WriteString("\n\n")
	b.WriteString(Wrap(n.Advice, textWidth))
	if res.Message != "" && res.Message != n.Label {
		b.WriteString("\n\n")
		b.WriteString(Dim("Service: " + res.Message))
	}

	border := ColorGreen
	if res.RiskDetected {
		border = ColorRed
	}
	card := RenderAccentBox("Assessment Result", b.String(), border)
	return card + "\n\n" + Dim(Wrap(domain.Disclaimer, max(width-2, 20)))
}

// FormatResultPlain renders the verdict for non-interactive output.
func FormatResultPlain(res domain.Result) string {
	n := res.Narrative()
	var b strings.Builder
	b.WriteString(RiskIndicator(res.RiskDetected) + "  " + Bold(n.Headline) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Probability:"), res.ProbabilityText()))
	b.WriteString(RenderRiskMeter(res.ProbabilityPercent, meterWidth) + "\n\n")
	b.WriteString(Wrap(n.Advice, 76) + "\n\n")
	b.WriteString(Dim(Wrap(domain.Disclaimer, 76)) + "\n")
	return b.String()
}

// FormatSubmitFailure renders why a prediction could not be obtained. Local
// validation problems and service-side errors get their own headline;
// everything else is treated as a connection failure.
func FormatSubmitFailure(err error) string {
	msg := StyleRed.Render(failureHeadline(err))
	if err == nil {
		return msg
	}
	return msg + "\n" + Dim(err.Error())
}

func failureHeadline(err error) string {
	switch {
	case errors.Is(err, wizard.ErrNotSubmittable), errors.Is(err, domain.ErrInvalidField):
		return "Some answers need fixing before the analysis can run."
	case errors.Is(err, predict.ErrBadStatus), errors.Is(err, predict.ErrInvalidResponse):
		return "The prediction service returned an error."
	case errors.Is(err, wizard.ErrPredictorPanic):
		return "The prediction could not be completed."
	default:
		return "Failed to connect to the prediction service."
	}
}
