package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/ramizpolic/islamicai/internal/language"
)

func TestNewLogSeedsWelcome(t *testing.T) {
	l := NewLog(language.English)

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	msg, _ := l.Last()
	if msg.IsUser {
		t.Error("welcome message should be an assistant message")
	}
	if msg.Text != language.WelcomeMessage(language.English) {
		t.Errorf("welcome text = %q", msg.Text)
	}
	if msg.ID == "" || msg.Timestamp.IsZero() {
		t.Error("welcome message should have an ID and timestamp")
	}
}

func TestAppendPreservesOrderAndAssignsIDs(t *testing.T) {
	l := NewLog(language.English)

	first := l.Append(UserMessage("first", language.English))
	second := l.Append(AssistantMessage("second", language.English))

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Errorf("expected distinct IDs, got %q and %q", first.ID, second.ID)
	}

	messages := l.Messages()
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[1].Text != "first" || messages[2].Text != "second" {
		t.Errorf("unexpected order: %q, %q", messages[1].Text, messages[2].Text)
	}
}

func TestAppendKeepsExplicitID(t *testing.T) {
	l := NewLog(language.English)
	msg := l.Append(Message{ID: "custom", Text: "hi", IsUser: true})
	if msg.ID != "custom" {
		t.Errorf("ID = %q, want custom", msg.ID)
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := NewLog(language.English)
	messages := l.Messages()
	messages[0].Text = "changed"

	if msg, _ := l.Last(); msg.Text == "changed" {
		t.Error("mutating the returned slice changed the log")
	}
}

func TestReset(t *testing.T) {
	l := NewLog(language.English)
	l.Append(UserMessage("hello", language.English))
	l.Reset(WelcomeMessage(language.Urdu))

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	msg, _ := l.Last()
	if msg.Language != language.Urdu || msg.Text != language.WelcomeMessage(language.Urdu) {
		t.Errorf("unexpected welcome after reset: %+v", msg)
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := NewLog(language.English)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(UserMessage(fmt.Sprintf("message %d", i), language.English))
			_ = l.Messages()
		}()
	}
	wg.Wait()

	if l.Len() != 51 {
		t.Errorf("Len() = %d, want 51", l.Len())
	}
}

func TestSchemaConversion(t *testing.T) {
	user := UserMessage("What is zakat?", language.English).ToSchemaMessage()
	if user.Role != schema.User || user.Content != "What is zakat?" {
		t.Errorf("unexpected user schema message: %+v", user)
	}

	reply := FromSchemaMessage(&schema.Message{Role: schema.Assistant, Content: "Zakat is..."}, language.Bengali)
	if reply.IsUser || reply.Language != language.Bengali || reply.Text != "Zakat is..." {
		t.Errorf("unexpected converted reply: %+v", reply)
	}
	if reply.Role() != schema.Assistant {
		t.Errorf("Role() = %v, want assistant", reply.Role())
	}
}
