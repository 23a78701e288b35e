package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/predict"
)

const answerPreview = 56

// FormatKnowledgeBase renders the entries in match order.
func FormatKnowledgeBase(kb *assistant.KnowledgeBase, source string) string {
	entries := kb.Entries()
	rows := make([][]string, 0, len(entries)+1)
	for i, e := range entries {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%2d", i+1)),
			StyleGreen.Render(e.Key),
			preview(e.Answer),
		})
	}
	rows = append(rows, []string{Dim(" *"), StyleYellow.Render(assistant.DefaultKey), preview(kb.Default())})

	return Header("Knowledge Base") + "\n" +
		Dim(fmt.Sprintf("%d entries from %s, first match wins", kb.Len(), source)) + "\n\n" +
		RenderTable([]string{"#", "KEY", "ANSWER"}, rows)
}

// FormatShadows reports keys that can never match.
func FormatShadows(shadows []assistant.Shadow) string {
	if len(shadows) == 0 {
		return StyleGreen.Render("✔ ") + "Every key is reachable."
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d unreachable key(s):", len(shadows))) + "\n")
	for _, s := range shadows {
		b.WriteString(fmt.Sprintf("  %s %q is always matched first by %q\n", StyleRed.Render("✖"), s.Later, s.Earlier))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHealth renders the result of a prediction service health check.
func FormatHealth(endpoint string, h predict.HealthResponse, err error) string {
	target := Dim(endpoint)
	if err != nil {
		return StyleRed.Render("● unreachable ") + target + "\n" + Dim(err.Error())
	}
	if !h.ModelLoaded {
		return StyleYellow.Render("● "+h.Status+", model not loaded ") + target
	}
	return StyleGreen.Render("● "+h.Status+", model loaded ") + target
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > answerPreview {
		return string(r[:answerPreview-1]) + "…"
	}
	return s
}
