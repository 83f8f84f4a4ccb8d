package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
)

// RenderSubjects lists every playable subject with its parts, numbered the
// way -part expects them.
func RenderSubjects(subjects []storage.SubjectCount, parts func(subject string) []game.Part, noColor bool) string {
	if len(subjects) == 0 {
		return "No active subjects.\n"
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	if noColor {
		title = lipgloss.NewStyle()
		dim = lipgloss.NewStyle()
	}

	var b strings.Builder
	for _, s := range subjects {
		b.WriteString(title.Render(fmt.Sprintf("%s (%d)", s.Subject, s.Count)))
		b.WriteString("\n")
		for _, p := range parts(s.Subject) {
			b.WriteString(dim.Render(fmt.Sprintf("  part %d: questions %d-%d", p.Index+1, p.Start, p.End)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
