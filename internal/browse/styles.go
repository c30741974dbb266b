package browse

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles controls emphasis in rendered frames.
type Styles struct {
	Emphasis lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
}

// NewStyles builds bold emphasis on r; accent, when set, colours the
// selected row.
func NewStyles(r *lipgloss.Renderer, accent string) Styles {
	st := Styles{
		Emphasis: r.NewStyle().Bold(true),
		Selected: r.NewStyle().Bold(true),
		Hint:     r.NewStyle().Faint(true),
	}
	if accent != "" {
		st.Selected = st.Selected.Foreground(lipgloss.Color(accent))
	}
	return st
}

// PlainStyles renders without any escape sequences.
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewStyles(r, "")
}
