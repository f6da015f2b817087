package prompt

import "github.com/charmbracelet/lipgloss"

// Styles controls how prompts are rendered.
type Styles struct {
	Question  lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Separator lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Question:  lipgloss.NewStyle().Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Separator: lipgloss.NewStyle().Faint(true),
		Hint:      lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// PlainStyles renders without any color or emphasis.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Question:  plain,
		Cursor:    plain,
		Selected:  plain,
		Separator: plain,
		Hint:      plain,
		Error:     plain,
	}
}
