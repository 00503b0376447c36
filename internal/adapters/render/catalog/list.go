package catalog

import (
	"fmt"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const bookmarkMark = "★"

// RenderList formats a tool listing under heading.
func RenderList(heading string, tools []domain.Tool) string {
	s := newStyles()
	lines := []string{
		s.title.Render(heading),
		s.header.Render(fmt.Sprintf("tools: %d", len(tools))),
	}

	if len(tools) == 0 {
		lines = append(lines, s.empty.Render("No tools found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, tool := range tools {
		lines = append(lines, renderTool(tool, "  ", s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTool(tool domain.Tool, prefix string, s styles) string {
	mark := " "
	if tool.IsBookmarked {
		mark = s.bookmark.Render(bookmarkMark)
	}

	line := fmt.Sprintf("%s%s %s %s", prefix, mark, s.name.Render(tool.Name), s.labels.Render("("+string(tool.ID)+")"))
	if tagLine := strings.TrimSpace(tool.TagLine); tagLine != "" {
		line += "\n" + prefix + "  " + s.tagLine.Render(tagLine)
	}
	if len(tool.CategoryLabels) > 0 {
		line += "\n" + prefix + "  " + s.labels.Render(strings.Join(tool.CategoryLabels, ", "))
	}

	return line
}
