package credits

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/contentkit-cli/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

func renderView(status application.CreditStatus, s styles) string {
	balance := status.Balance
	lines := []string{
		s.title.Render("ContentKit Credits"),
		s.account.Render(accountTitle(status)),
	}

	if plan := strings.TrimSpace(balance.Plan); plan != "" {
		lines = append(lines, s.detail.Render("plan: "+plan))
	}

	left := balance.RemainingPercent()
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(left, 0, 100))
	lines = append(lines, lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render("credits:"),
		" ",
		renderProgressBar(left, barWidth, s),
		" ",
		percentStyle.Render(creditSummary(balance.Current, balance.Max, left)),
	))

	if !balance.Available() {
		lines = append(lines, s.warning.Render("No credits left. Upgrade your plan to keep generating."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func accountTitle(status application.CreditStatus) string {
	if email := strings.TrimSpace(status.Session.Email); email != "" {
		return fmt.Sprintf("Account: %s (%s)", email, status.Session.AccountID)
	}

	return fmt.Sprintf("Account: %s", status.Session.AccountID)
}

func creditSummary(current, maximum int, left float64) string {
	if maximum <= 0 {
		return fmt.Sprintf("%d left", current)
	}

	return fmt.Sprintf("%d / %d (%2.0f%% left)", current, maximum, left)
}

func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100))
	filled = max(0, min(filled, width))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the ANSI greyscale ramp, faded at lo and bright at hi.
func interpolateColor(value, lo, hi float64) lipgloss.Color {
	if hi == lo {
		return lipgloss.Color("255")
	}

	normalized := (value - lo) / (hi - lo)
	normalized = math.Max(0, math.Min(1, normalized))

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
