package session

import (
	"sync"
	"time"

	"github.com/ramizpolic/islamicai/internal/language"
)

// Log is the ordered, append-only message log of one conversation. It lives
// only in memory; Reset starts a new conversation in place.
//
// Log is safe for concurrent use. Readers receive copies and never observe
// a partially appended message.
type Log struct {
	messages []Message
	mutex    sync.RWMutex
}

// NewLog creates a log seeded with the welcome message for tag.
func NewLog(tag language.Tag) *Log {
	l := &Log{}
	l.Reset(WelcomeMessage(tag))
	return l
}

// Append adds msg to the end of the log, filling in the ID and timestamp
// when they are missing, and returns the stored message.
func (l *Log) Append(msg Message) Message {
	if msg.ID == "" {
		msg.ID = generateMessageID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of the log in display order.
func (l *Log) Messages() []Message {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.messages)
}

// Last returns the most recent message.
func (l *Log) Last() (Message, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// Reset discards every message and starts over with welcome as the only
// entry.
func (l *Log) Reset(welcome Message) {
	if welcome.ID == "" {
		welcome.ID = generateMessageID()
	}
	if welcome.Timestamp.IsZero() {
		welcome.Timestamp = time.Now()
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.messages = []Message{welcome}
}
