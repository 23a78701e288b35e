package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestWrap_RespectsWidth(t *testing.T) {
	text := "The model indicates a low likelihood of heart disease presence based on the provided metrics."
	out := Wrap(text, 30)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30, line)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(out))
}

func TestWrap_KeepsNewlines(t *testing.T) {
	out := Wrap("first line\nsecond line", 40)
	assert.Equal(t, "first line\nsecond line", out)
}

func TestWrap_NarrowWidthDisabled(t *testing.T) {
	assert.Equal(t, "a b c", Wrap("a b c", 3))
}

func TestIndent_SkipsBlankLines(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", 2))
}

func TestRenderBox_IncludesTitle(t *testing.T) {
	out := RenderBox("result", "body")
	assert.Contains(t, out, "RESULT")
	assert.Contains(t, out, "body")
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("01J9ZK3V2Q8Y"), "01J9ZK3V")
	assert.NotContains(t, TruncID("01J9ZK3V2Q8Y"), "2Q8Y")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"KEY", "ANSWER"}, [][]string{
		{"age", "short"},
		{"resting bp", "longer answer"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	col := strings.Index(lines[0], "ANSWER")
	assert.Equal(t, col, strings.Index(lines[2], "short"))
	assert.Equal(t, col, strings.Index(lines[3], "longer answer"))
}
