package ui

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/session"
)

// CompactRenderer renders each message as a single line.
type CompactRenderer struct {
	width int
}

// NewCompactRenderer creates a compact renderer for the given width.
func NewCompactRenderer(width int) *CompactRenderer {
	return &CompactRenderer{width: width}
}

// SetWidth updates the renderer width.
func (r *CompactRenderer) SetWidth(width int) {
	r.width = width
}

// RenderUserMessage renders a question.
func (r *CompactRenderer) RenderUserMessage(msg session.Message) UIMessage {
	theme := GetTheme()
	line := FormatCompactLine(">", "You", r.formatCompactContent(msg.Text),
		theme.Secondary, theme.Muted, theme.Text)
	return UIMessage{Type: UserMessage, Content: line, Height: 1, Timestamp: msg.Timestamp}
}

// RenderAssistantMessage renders a reply with its markers removed.
func (r *CompactRenderer) RenderAssistantMessage(msg session.Message, modelName string) UIMessage {
	theme := GetTheme()
	if modelName == "" {
		modelName = "Assistant"
	}

	content := r.formatCompactContent(format.Plain(format.Format(msg.Text, msg.Language)))
	if content == "" {
		content = StyleMuted(theme).Render("(no output)")
	}

	line := FormatCompactLine("<", modelName, content, theme.Primary, theme.Muted, theme.Text)
	return UIMessage{Type: AssistantMessage, Content: line, Height: 1, Timestamp: msg.Timestamp}
}

// RenderSystemMessage renders command output.
func (r *CompactRenderer) RenderSystemMessage(content string, timestamp time.Time) UIMessage {
	theme := GetTheme()
	line := FormatCompactLine("*", "System", r.formatCompactContent(content),
		theme.Muted, theme.Muted, theme.Text)
	return UIMessage{Type: SystemMessage, Content: line, Height: 1, Timestamp: timestamp}
}

// RenderErrorMessage renders an error.
func (r *CompactRenderer) RenderErrorMessage(errorMsg string, timestamp time.Time) UIMessage {
	theme := GetTheme()
	line := FormatCompactLine("!", "Error", r.formatCompactContent(errorMsg),
		theme.Error, theme.Error, theme.Error)
	return UIMessage{Type: ErrorMessage, Content: line, Height: 1, Timestamp: timestamp}
}

// formatCompactContent collapses whitespace and truncates to the cells
// left after the symbol and label.
func (r *CompactRenderer) formatCompactContent(content string) string {
	content = strings.Join(strings.Fields(content), " ")

	maxWidth := max(r.width-20, 10)
	return runewidth.Truncate(content, maxWidth, "...")
}
