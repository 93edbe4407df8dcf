package tokens

import (
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// EstimateTokens estimates the number of tokens in text using a rough
// approximation of 4 characters per token. Any non-empty text counts as at
// least one token.
//
// Example:
//
//	count := EstimateTokens("Hello, world!")  // Returns 3
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return max(n/4, 1)
}

// Usage is the token count of a single request and its reply.
type Usage struct {
	InputTokens  int
	OutputTokens int
	// Estimated is true when the provider did not report usage
	Estimated bool
}

// CountUsage returns the usage reported in reply, or an estimate from the
// request messages and the reply text when the provider reported none.
func CountUsage(input []*schema.Message, reply *schema.Message) Usage {
	if reply != nil && reply.ResponseMeta != nil && reply.ResponseMeta.Usage != nil {
		usage := reply.ResponseMeta.Usage
		if usage.PromptTokens > 0 || usage.CompletionTokens > 0 {
			return Usage{
				InputTokens:  usage.PromptTokens,
				OutputTokens: usage.CompletionTokens,
			}
		}
	}

	var u Usage
	u.Estimated = true
	for _, msg := range input {
		u.InputTokens += EstimateTokens(msg.Content)
	}
	if reply != nil {
		u.OutputTokens = EstimateTokens(reply.Content)
	}
	return u
}
