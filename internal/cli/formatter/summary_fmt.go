package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/domain"
)

// FormatReviewSummary renders the headline figures shown on the review step.
func FormatReviewSummary(a domain.Assessment) string {
	rows := [][]string{
		{Dim("Age/Sex"), fmt.Sprintf("%d / %s", a.Age, a.Sex)},
		{Dim("Resting BP"), fmt.Sprintf("%d mm Hg", a.RestingBP)},
		{Dim("Cholesterol"), fmt.Sprintf("%d mg/dl", a.Cholesterol)},
		{Dim("Max HR"), fmt.Sprintf("%d bpm", a.MaxHeartRate)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-14s %s\n", r[0], StyleFg.Render(r[1])))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAssessment renders every field of a, in form order.
func FormatAssessment(a domain.Assessment) string {
	rows := make([][]string, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		rows = append(rows, []string{f.Label, a.Raw(f.Name), Dim(f.Wire)})
	}
	return RenderTable([]string{"FIELD", "VALUE", "SENT AS"}, rows)
}

// FormatFieldErrors renders one line per rejected field.
func FormatFieldErrors(errs []*domain.FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, fe := range errs {
		label := string(fe.Field)
		if spec, ok := domain.LookupField(string(fe.Field)); ok {
			label = spec.Label
		}
		lines = append(lines, StyleRed.Render("✖ ")+label+Dim(": "+fe.Reason))
	}
	return strings.Join(lines, "\n")
}
