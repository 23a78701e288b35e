package formatter

import "github.com/alexanderramin/dilsehat/internal/domain"

// FormatRanges renders the normal health parameter reference list.
func FormatRanges(ranges []domain.ReferenceRange) string {
	rows := make([][]string, len(ranges))
	for i, r := range ranges {
		rows[i] = []string{r.Label, StyleGreen.Render(r.Value)}
	}
	return Header("Normal Health Parameters") + "\n" +
		Dim("General reference ranges for a healthy adult.") + "\n\n" +
		RenderTable([]string{"PARAMETER", "NORMAL RANGE"}, rows)
}
