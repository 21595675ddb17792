package repl

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette shared with the history browser.
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#94A3B8") // Slate 400
)

// Styles controls how session output is decorated. The zero value prints
// plain text.
type Styles struct {
	Banner  lipgloss.Style
	Prompt  lipgloss.Style
	Result  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style

	enabled bool
}

// DefaultStyles returns the colored terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Banner:  lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(ColorPrimary),
		Result:  lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		enabled: true,
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	return Styles{}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}
