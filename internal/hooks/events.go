package hooks

// HookEvent is a point in a conversation where hooks run.
type HookEvent string

const (
	// UserPromptSubmit fires when a question is submitted, before it is sent
	// to the model. Hooks can block the question.
	UserPromptSubmit HookEvent = "UserPromptSubmit"

	// Stop fires after the reply, or the apology, has been recorded.
	Stop HookEvent = "Stop"

	// SessionClear fires when the conversation is reset.
	SessionClear HookEvent = "SessionClear"
)

// IsValid reports whether e is a known event.
func (e HookEvent) IsValid() bool {
	switch e {
	case UserPromptSubmit, Stop, SessionClear:
		return true
	}
	return false
}

// CanBlock reports whether hooks for e may stop the conversation from going
// ahead.
func (e HookEvent) CanBlock() bool {
	return e == UserPromptSubmit
}
