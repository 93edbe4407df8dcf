package ui

import (
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/session"
)

// MessageType is the category of a displayed message.
type MessageType int

const (
	UserMessage MessageType = iota
	AssistantMessage
	SystemMessage // help, about and other command output
	ErrorMessage
)

// UIMessage is a rendered message ready to be printed.
type UIMessage struct {
	Type      MessageType
	Height    int
	Content   string
	Timestamp time.Time
}

func newUIMessage(t MessageType, content string, timestamp time.Time) UIMessage {
	return UIMessage{
		Type:      t,
		Content:   content,
		Height:    lipgloss.Height(content),
		Timestamp: timestamp,
	}
}

// MessageRenderer renders messages as bordered blocks: questions on the
// right, replies and system output on the left.
type MessageRenderer struct {
	width int
	plain bool
}

// getSystemUsername returns the current system username, fallback to "User"
func getSystemUsername() string {
	if currentUser, err := user.Current(); err == nil && currentUser.Username != "" {
		return currentUser.Username
	}
	if username := os.Getenv("USER"); username != "" {
		return username
	}
	if username := os.Getenv("USERNAME"); username != "" {
		return username
	}
	return "User"
}

// NewMessageRenderer creates a renderer for the given terminal width. In
// plain mode reply segments are printed without typographic styling.
func NewMessageRenderer(width int, plain bool) *MessageRenderer {
	return &MessageRenderer{
		width: width,
		plain: plain,
	}
}

// SetWidth updates the terminal width.
func (r *MessageRenderer) SetWidth(width int) {
	r.width = width
}

func (r *MessageRenderer) infoLine(label string, timestamp time.Time) string {
	info := fmt.Sprintf(" %s (%s)", label, timestamp.Local().Format("15:04"))
	return lipgloss.NewStyle().Foreground(GetTheme().VeryMuted).Render(info)
}

// RenderUserMessage renders a question right-aligned with the username and
// time. Questions in right-to-left languages are aligned to the right
// inside the block as well.
func (r *MessageRenderer) RenderUserMessage(msg session.Message) UIMessage {
	theme := GetTheme()

	text := lipgloss.NewStyle().
		MaxWidth(r.width - 8).
		Align(leading(msg.Language.IsRTL())).
		Render(msg.Text)
	fullContent := text + "\n" + r.infoLine(getSystemUsername(), msg.Timestamp)

	rendered := renderContentBlock(
		fullContent,
		r.width,
		WithAlign(lipgloss.Right),
		WithBorderColor(theme.Secondary),
		WithMarginBottom(1),
	)
	return newUIMessage(UserMessage, rendered, msg.Timestamp)
}

// RenderAssistantMessage formats the reply in its language and renders the
// segments left-aligned with the model name and time.
func (r *MessageRenderer) RenderAssistantMessage(msg session.Message, modelName string) UIMessage {
	if modelName == "" {
		modelName = "Assistant"
	}
	theme := GetTheme()

	var body string
	if strings.TrimSpace(msg.Text) == "" {
		body = lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted).
			Render("Finished without output")
	} else {
		segments := format.Format(msg.Text, msg.Language)
		body = NewSegmentRenderer(r.width-8, r.plain).Render(segments)
	}
	fullContent := body + "\n" + r.infoLine(modelName, msg.Timestamp)

	rendered := renderContentBlock(
		fullContent,
		r.width,
		WithAlign(lipgloss.Left),
		WithBorderColor(theme.Primary),
		WithMarginBottom(1),
	)
	return newUIMessage(AssistantMessage, rendered, msg.Timestamp)
}

// RenderSystemMessage renders markdown command output such as /help.
func (r *MessageRenderer) RenderSystemMessage(content string, timestamp time.Time) UIMessage {
	theme := GetTheme()

	var body string
	if strings.TrimSpace(content) == "" {
		body = lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted).
			Render("No content available")
	} else if r.plain {
		body = content
	} else {
		body = toMarkdown(content, r.width-8)
	}
	fullContent := body + "\n" + r.infoLine("Islamic AI", timestamp)

	rendered := renderContentBlock(
		fullContent,
		r.width,
		WithAlign(lipgloss.Left),
		WithBorderColor(theme.Muted),
		WithSingleBorder(),
		WithMarginBottom(1),
	)
	return newUIMessage(SystemMessage, rendered, timestamp)
}

// RenderErrorMessage renders an error in bold error color.
func (r *MessageRenderer) RenderErrorMessage(errorMsg string, timestamp time.Time) UIMessage {
	theme := GetTheme()

	fullContent := StyleError(theme).Render(errorMsg) + "\n" + r.infoLine("Error", timestamp)
	rendered := renderContentBlock(
		fullContent,
		r.width,
		WithAlign(lipgloss.Left),
		WithBorderColor(theme.Error),
		WithFullWidth(),
		WithMarginBottom(1),
	)
	return newUIMessage(ErrorMessage, rendered, timestamp)
}
