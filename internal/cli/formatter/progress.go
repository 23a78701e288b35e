package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRiskMeter renders a probability bar like [████░░░░] 45.0%.
// pct is a percentage in [0,100]. The bar is green below 33, yellow below 66
// and red above; a higher probability is worse.
func RenderRiskMeter(pct float64, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case pct < 33:
		style = StyleGreen
	case pct < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %5.1f%%", style.Render(bar), pct)
}

// RenderSteps renders the wizard step indicator, e.g.
// "● Basic Info ─ ● Metrics ─ ○ Clinical ─ ○ Review". current is 1-based.
func RenderSteps(titles []string, current int) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		step := i + 1
		switch {
		case step < current:
			parts[i] = StyleGreen.Render("✔ " + t)
		case step == current:
			parts[i] = StyleHeader.Render("● " + t)
		default:
			parts[i] = StyleDim.Render("○ " + t)
		}
	}
	return strings.Join(parts, Dim(" ─ "))
}
