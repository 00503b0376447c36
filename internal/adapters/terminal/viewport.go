package terminal

import (
	"fmt"
	"io"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

var sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8D99AE")).Bold(true)

// Viewport brings a region into view by printing its section header. A line-oriented
// terminal has nothing to scroll, so the header is the visible equivalent.
type Viewport struct {
	out io.Writer
}

var _ ports.Viewport = (*Viewport)(nil)

func NewViewport(out io.Writer) *Viewport {
	return &Viewport{out: out}
}

func (v *Viewport) ScrollTo(region domain.Region) {
	if v.out == nil {
		return
	}

	var title string
	switch region {
	case domain.RegionLoading:
		title = "Generating"
	case domain.RegionResults:
		title = "Result"
	default:
		title = string(region)
	}

	_, _ = fmt.Fprintln(v.out, sectionStyle.Render("── "+title+" ──"))
}
