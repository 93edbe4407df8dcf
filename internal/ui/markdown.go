package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
)

// toMarkdown renders markdown for help and informational messages. The
// source is returned unchanged when glamour cannot render it.
func toMarkdown(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		log.Debug("markdown renderer unavailable", "err", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		log.Debug("failed to render markdown", "err", err)
		return content
	}
	return strings.Trim(rendered, "\n")
}
