package session

import (
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/ramizpolic/islamicai/internal/language"
)

// Message is a single entry in the conversation log. Messages are never
// modified once appended; the formatted view of an assistant reply is
// derived from Text every time it is rendered.
type Message struct {
	// ID uniquely identifies the message, assigned on append when empty
	ID string `json:"id"`
	// Text is the raw message text as typed or as returned by the model
	Text string `json:"text"`
	// IsUser is true for user input and false for assistant replies
	IsUser bool `json:"is_user"`
	// Language is the language detected for the user input that produced
	// this message. The welcome message carries the session language.
	Language language.Tag `json:"language,omitempty"`
	// Timestamp is when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// UserMessage creates a message typed by the user.
func UserMessage(text string, tag language.Tag) Message {
	return Message{Text: text, IsUser: true, Language: tag}
}

// AssistantMessage creates a reply message.
func AssistantMessage(text string, tag language.Tag) Message {
	return Message{Text: text, Language: tag}
}

// WelcomeMessage creates the greeting that seeds a new session.
func WelcomeMessage(tag language.Tag) Message {
	return AssistantMessage(language.WelcomeMessage(tag), tag)
}

// Role returns the chat role of the message.
func (m Message) Role() schema.RoleType {
	if m.IsUser {
		return schema.User
	}
	return schema.Assistant
}

// ToSchemaMessage converts the message to the eino representation used by
// the model layer.
func (m Message) ToSchemaMessage() *schema.Message {
	return &schema.Message{
		Role:    m.Role(),
		Content: m.Text,
	}
}

// FromSchemaMessage converts a model response into a log message tagged
// with the language of the request that produced it.
func FromSchemaMessage(msg *schema.Message, tag language.Tag) Message {
	return Message{
		Text:      msg.Content,
		IsUser:    msg.Role == schema.User,
		Language:  tag,
		Timestamp: time.Now(),
	}
}

func generateMessageID() string {
	return "msg_" + uuid.NewString()
}
