package formatter

import (
	"strings"

	"github.com/alexanderramin/dilsehat/internal/assistant"
)

// FormatTurn renders one chat turn with a speaker label.
func FormatTurn(t assistant.Turn, width int) string {
	textWidth := max(width-4, 20)
	if t.Speaker == assistant.SpeakerUser {
		return StyleBlue.Render("You") + "\n" + Indent(Wrap(t.Text, textWidth), 2)
	}
	return StylePurple.Render("Dil Sehat") + "\n" + Indent(Wrap(t.Text, textWidth), 2)
}

// FormatTranscript renders turns separated by blank lines. When pending is
// positive a typing indicator follows the last turn.
func FormatTranscript(turns []assistant.Turn, pending, width int) string {
	parts := make([]string, 0, len(turns)+1)
	for _, t := range turns {
		parts = append(parts, FormatTurn(t, width))
	}
	if pending > 0 {
		parts = append(parts, Dim("Dil Sehat is typing..."))
	}
	return strings.Join(parts, "\n\n")
}

// FormatSuggestions renders the topic chips. selected is the highlighted
// index, or -1 for none.
func FormatSuggestions(labels []string, selected int) string {
	chips := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			chips[i] = StyleHeader.Render("[" + l + "]")
			continue
		}
		chips[i] = Dim("[" + l + "]")
	}
	return strings.Join(chips, " ")
}

// FormatAnswer renders a one-shot answer for the ask command.
func FormatAnswer(question string, m assistant.Match) string {
	var b strings.Builder
	b.WriteString(Dim("Q: ") + question + "\n")
	label := "matched " + StyleGreen.Render(m.Key)
	if m.Default {
		label = StyleYellow.Render("no topic matched")
	}
	b.WriteString(Dim("   (") + label + Dim(")") + "\n\n")
	b.WriteString(Wrap(m.Answer, 76) + "\n")
	return b.String()
}
