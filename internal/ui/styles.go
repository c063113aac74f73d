package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	LabelActive lipgloss.Style
	FileHeader  lipgloss.Style
	LineNumber  lipgloss.Style
	MatchLine   lipgloss.Style
	Selected    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Toggle      lipgloss.Style
	ToggleOn    lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		LabelActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		FileHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		MatchLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Toggle:   lipgloss.NewStyle().Faint(true),
		ToggleOn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}
