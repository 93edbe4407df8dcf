// Package mock provides an offline chat model that answers with canned,
// marker-formatted replies. It is used by the "mock:" provider and by tests.
package mock

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ramizpolic/islamicai/internal/language"
)

var introductions = map[language.Tag]string{
	language.English: "Patience (sabr) holds a central place in Islam.",
	language.Arabic:  "للصبر مكانة عظيمة في الإسلام.",
	language.Urdu:    "اسلام میں صبر کا بہت بلند مقام ہے۔",
	language.Bengali: "ইসলামে ধৈর্যের (সবর) স্থান অত্যন্ত উঁচু।",
}

const body = `[arabic-text]إِنَّ اللَّهَ مَعَ الصَّابِرِينَ[/arabic-text]

[translation]Indeed, Allah is with the patient.[/translation]

[verse-section]O you who have believed, seek help through patience and prayer. Indeed, Allah is with the patient. (Surah Al-Baqarah 2:153)[/verse-section]

[hadith]No one has been given a gift better and more comprehensive than patience.
Sahih al-Bukhari 1469[/hadith]

• Patience in obeying Allah
• Patience in refraining from sin
• Patience with hardship

> If uncertain, consult a qualified scholar.`

// ChatModel is a deterministic offline model. It is safe for concurrent use.
type ChatModel struct {
	// Reply, when set, is returned instead of the canned answer
	Reply string
	// Err, when set, is returned from every call
	Err error

	mu       sync.Mutex
	requests [][]*schema.Message
}

// New creates a mock model with the canned answers.
func New() *ChatModel {
	return &ChatModel{}
}

// Generate returns the configured reply or error. The canned answer's
// introduction follows the language whose system prompt opens the input.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	m.requests = append(m.requests, input)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}

	reply := m.Reply
	if reply == "" {
		reply = introductions[languageOf(input)] + "\n\n" + body
	}
	return schema.AssistantMessage(reply, nil), nil
}

// Requests returns the inputs received so far.
func (m *ChatModel) Requests() [][]*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]*schema.Message(nil), m.requests...)
}

func languageOf(input []*schema.Message) language.Tag {
	for _, msg := range input {
		if msg.Role != schema.System {
			continue
		}
		for _, tag := range language.All() {
			if msg.Content == language.SystemPrompt(tag) {
				return tag
			}
		}
	}
	return language.English
}
