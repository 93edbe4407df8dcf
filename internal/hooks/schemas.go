package hooks

// CommonInput is sent to every hook.
type CommonInput struct {
	SessionID     string    `json:"session_id"`
	CWD           string    `json:"cwd"`
	HookEventName HookEvent `json:"hook_event_name"`
	Timestamp     int64     `json:"timestamp"`
	Model         string    `json:"model"`
	// Language is the language the question was detected in
	Language string `json:"language"`
}

// UserPromptSubmitInput is sent to UserPromptSubmit hooks.
type UserPromptSubmitInput struct {
	CommonInput
	Prompt string `json:"prompt"`
}

// StopInput is sent to Stop hooks.
type StopInput struct {
	CommonInput
	Prompt     string `json:"prompt"`
	Response   string `json:"response"`
	StopReason string `json:"stop_reason"` // "completed" or "error"
	Error      string `json:"error,omitempty"`
	// Usage holds input and output token counts
	Usage map[string]int `json:"usage,omitempty"`
}

// SessionClearInput is sent to SessionClear hooks.
type SessionClearInput struct {
	CommonInput
	MessageCount int `json:"message_count"`
}

// HookOutput is the optional JSON a hook prints on stdout. Decision is
// "approve", "block" or empty.
type HookOutput struct {
	Continue       *bool  `json:"continue,omitempty"`
	StopReason     string `json:"stopReason,omitempty"`
	SuppressOutput bool   `json:"suppressOutput,omitempty"`
	Decision       string `json:"decision,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// Blocked reports whether the hooks asked to stop.
func (o *HookOutput) Blocked() bool {
	if o == nil {
		return false
	}
	return o.Decision == "block" || (o.Continue != nil && !*o.Continue)
}

// BlockReason returns the reason given for blocking.
func (o *HookOutput) BlockReason() string {
	if o == nil {
		return ""
	}
	if o.Reason != "" {
		return o.Reason
	}
	return o.StopReason
}
