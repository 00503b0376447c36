package catalog

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	name      lipgloss.Style
	tagLine   lipgloss.Style
	labels    lipgloss.Style
	bookmark  lipgloss.Style
	cursor    lipgloss.Style
	category  lipgloss.Style
	activeTab lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
	help      lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		tagLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		labels:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		bookmark:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		category:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		activeTab: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		help:      lipgloss.NewStyle().Faint(true),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
