package mock

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/ramizpolic/islamicai/internal/language"
)

func TestGenerateFollowsSystemPrompt(t *testing.T) {
	m := New()
	for _, tag := range language.All() {
		t.Run(string(tag), func(t *testing.T) {
			reply, err := m.Generate(context.Background(), []*schema.Message{
				schema.SystemMessage(language.SystemPrompt(tag)),
				schema.UserMessage("question"),
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if !strings.HasPrefix(reply.Content, introductions[tag]) {
				t.Errorf("reply does not start with the %s introduction: %q", tag, reply.Content)
			}
			if !strings.Contains(reply.Content, "[verse-section]") {
				t.Error("reply should use the marker vocabulary")
			}
		})
	}

	if got := len(m.Requests()); got != len(language.All()) {
		t.Errorf("recorded %d requests, want %d", got, len(language.All()))
	}
}

func TestGenerateOverrides(t *testing.T) {
	m := &ChatModel{Reply: "fixed"}
	reply, err := m.Generate(context.Background(), nil)
	if err != nil || reply.Content != "fixed" {
		t.Errorf("Generate = %v, %v", reply, err)
	}

	boom := errors.New("boom")
	m = &ChatModel{Err: boom}
	if _, err := m.Generate(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
