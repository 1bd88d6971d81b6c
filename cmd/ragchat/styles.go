package main

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles used for terminal output.
type styles struct {
	banner  lipgloss.Style
	label   lipgloss.Style
	user    lipgloss.Style
	success lipgloss.Style
	errTxt  lipgloss.Style
	source  lipgloss.Style
	dim     lipgloss.Style
}

func newStyles() styles {
	return styles{
		banner:  lipgloss.NewStyle().Foreground(lipgloss.Color("#38bdf8")).Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")).Bold(true),
		user:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		errTxt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
		source:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
	}
}
