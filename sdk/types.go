package sdk

import (
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/session"
	"github.com/ramizpolic/islamicai/internal/tokens"
)

// Message is an alias for session.Message: one question or reply in the
// conversation.
type Message = session.Message

// Segment is an alias for format.Segment: one typed block of a formatted
// reply such as a verse, a hadith or a bullet list.
type Segment = format.Segment

// Language is an alias for language.Tag.
type Language = language.Tag

// Usage is an alias for tokens.Usage.
type Usage = tokens.Usage

// Reply is the answer to one question.
type Reply struct {
	// Text is the raw reply with its formatting markers
	Text string
	// Language is the language the question was detected in and answered in
	Language Language
	// Segments is Text formatted for display
	Segments []Segment
	Usage    Usage
	// Err is the provider error when Text is the apology message
	Err error
}

// Plain returns the reply as unstyled text.
func (r *Reply) Plain() string {
	return format.Plain(r.Segments)
}
