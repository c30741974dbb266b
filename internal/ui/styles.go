package ui

import (
	"github.com/charmbracelet/lipgloss"

	"dbexplorer/internal/browse"
	"dbexplorer/internal/theme"
)

// stylesFor applies the accent override, or the theme accent when empty.
func stylesFor(r *lipgloss.Renderer, th theme.Theme, accent string) browse.Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if accent == "" {
		accent = th.Accent()
	}
	return browse.NewStyles(r, accent)
}
