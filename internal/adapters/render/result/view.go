package result

import (
	"fmt"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

// Render formats a generation result for the terminal. location is the artifact URL of
// binary results and is ignored for text.
func Render(title string, result domain.GenerationResult, location string) string {
	lines := []string{titleStyle.Render(title)}

	switch r := result.(type) {
	case domain.TextResult:
		if r.Empty() {
			lines = append(lines, emptyStyle.Render("(empty result)"))
			break
		}
		lines = append(lines, r.Text)
	case domain.TextListResult:
		if r.Empty() {
			lines = append(lines, emptyStyle.Render("(no variants)"))
			break
		}
		variants := make([]string, 0, len(r.Items))
		for i, item := range r.Items {
			variants = append(variants, indexStyle.Render(fmt.Sprintf("%d.", i+1))+" "+item)
		}
		lines = append(lines, strings.Join(variants, "\n\n"))
	case domain.BinaryResult:
		lines = append(lines, detailStyle.Render(r.String()))
		if location != "" {
			lines = append(lines, detailStyle.Render("location: "+location))
		}
	default:
		lines = append(lines, emptyStyle.Render("(no result)"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
