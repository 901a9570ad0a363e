// Package tui renders the game in a terminal and serves it over SSH.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are built per renderer so every SSH session gets its own color profile.
type Styles struct {
	Title  lipgloss.Style
	HUD    lipgloss.Style
	Score  lipgloss.Style
	Red    lipgloss.Style
	Green  lipgloss.Style
	Bold   lipgloss.Style
	Subtle lipgloss.Style
	Help   lipgloss.Style
	Reveal lipgloss.Style
	Popup  lipgloss.Style
	Box    lipgloss.Style
	Error  lipgloss.Style
	Locked lipgloss.Style
	Unlock lipgloss.Style

	// Cards
	CardBack     lipgloss.Style
	CardFace     lipgloss.Style
	CardSelected lipgloss.Style
	CardMatched  lipgloss.Style
	CardCursor   lipgloss.Style
}

// NewStyles creates the style set for renderer r.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	card := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Align(lipgloss.Center, lipgloss.Center)

	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		HUD:    r.NewStyle().Foreground(lipgloss.Color("252")),
		Score:  r.NewStyle().Foreground(lipgloss.Color("11")),
		Red:    r.NewStyle().Foreground(lipgloss.Color("9")),
		Green:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Bold:   r.NewStyle().Bold(true),
		Subtle: r.NewStyle().Foreground(lipgloss.Color("241")),
		Help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Reveal: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		Popup:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Padding(0, 1),
		Box: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		Error:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Locked: r.NewStyle().Foreground(lipgloss.Color("241")),
		Unlock: r.NewStyle().Foreground(lipgloss.Color("220")),

		CardBack:     card.BorderForeground(lipgloss.Color("63")).Foreground(lipgloss.Color("63")),
		CardFace:     card.BorderForeground(lipgloss.Color("252")).Bold(true),
		CardSelected: card.BorderForeground(lipgloss.Color("11")).Foreground(lipgloss.Color("11")).Bold(true),
		CardMatched:  card.BorderForeground(lipgloss.Color("22")).Foreground(lipgloss.Color("10")),
		CardCursor:   card.BorderForeground(lipgloss.Color("229")).Border(lipgloss.DoubleBorder()),
	}
}
