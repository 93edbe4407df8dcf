package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var currentTheme = DefaultTheme()

// GetTheme returns the active UI theme.
func GetTheme() Theme {
	return currentTheme
}

// Theme is the color scheme of the interface. Every color adapts to light
// and dark terminals.
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	VeryMuted lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	// Verse tints the Qur'an verse frame and glyph
	Verse lipgloss.AdaptiveColor
	// Arabic is used for standalone Arabic text blocks
	Arabic lipgloss.AdaptiveColor
}

// DefaultTheme is the green-on-slate palette of the assistant. The dark
// variants are the chat colors; the light variants are darker shades that
// stay readable on white.
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{
			Light: "#0e906f",
			Dark:  "#10a37f",
		},
		Secondary: lipgloss.AdaptiveColor{
			Light: "#0b6e55",
			Dark:  "#0e906f",
		},
		Error: lipgloss.AdaptiveColor{
			Light: "#c53030",
			Dark:  "#ef4444",
		},
		Warning: lipgloss.AdaptiveColor{
			Light: "#b7791f",
			Dark:  "#f6c453",
		},
		Text: lipgloss.AdaptiveColor{
			Light: "#343541",
			Dark:  "#ECECF1",
		},
		Muted: lipgloss.AdaptiveColor{
			Light: "#6e6e80",
			Dark:  "#9FA6B3",
		},
		VeryMuted: lipgloss.AdaptiveColor{
			Light: "#8e8ea0",
			Dark:  "#6b6c7b",
		},
		Border: lipgloss.AdaptiveColor{
			Light: "#c5c5d2",
			Dark:  "#4E4F60",
		},
		Verse: lipgloss.AdaptiveColor{
			Light: "#0e906f",
			Dark:  "#10a37f",
		},
		Arabic: lipgloss.AdaptiveColor{
			Light: "#202123",
			Dark:  "#FFFFFF",
		},
	}
}

// StyleHeader is bold primary text.
func StyleHeader(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
}

// StyleMuted is de-emphasized italic text.
func StyleMuted(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)
}

// StyleError is bold error text.
func StyleError(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true)
}

// CreateSeparator returns a horizontal rule of width cells drawn with char.
func CreateSeparator(width int, char string, color lipgloss.AdaptiveColor) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(char, width))
}

// StyleCompactLabel is a fixed-width bold label used in compact mode.
func StyleCompactLabel(color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Width(8)
}

// FormatCompactLine assembles one compact mode line: a symbol, a
// fixed-width label and the content.
func FormatCompactLine(symbol, label, content string, symbolColor, labelColor, contentColor lipgloss.AdaptiveColor) string {
	styledSymbol := lipgloss.NewStyle().Foreground(symbolColor).Bold(true).Render(symbol)
	styledLabel := StyleCompactLabel(labelColor).Render(label)
	styledContent := lipgloss.NewStyle().Foreground(contentColor).Render(content)

	return fmt.Sprintf("%s  %s %s", styledSymbol, styledLabel, styledContent)
}
