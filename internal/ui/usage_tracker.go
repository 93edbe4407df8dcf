package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/ramizpolic/islamicai/internal/tokens"
)

// UsageStats is the token usage and cost of one request.
type UsageStats struct {
	InputTokens  int
	OutputTokens int
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
	Estimated    bool
}

// SessionStats accumulates usage across the conversation.
type SessionStats struct {
	TotalInputTokens  int
	TotalOutputTokens int
	TotalCost         float64
	RequestCount      int
	// EstimatedCount is how many requests had estimated token counts
	EstimatedCount int
}

// UsageTracker accumulates token usage and cost for a session. Costs are
// only computed when the model's pricing is known; local providers are free.
type UsageTracker struct {
	mu           sync.RWMutex
	modelInfo    *models.ModelInfo
	provider     string
	sessionStats SessionStats
	lastRequest  *UsageStats
	width        int
}

// NewUsageTracker creates a tracker. modelInfo may be nil.
func NewUsageTracker(modelInfo *models.ModelInfo, provider string, width int) *UsageTracker {
	return &UsageTracker{
		modelInfo: modelInfo,
		provider:  provider,
		width:     width,
	}
}

// Record adds the usage of one request.
func (ut *UsageTracker) Record(usage tokens.Usage) {
	ut.mu.Lock()
	defer ut.mu.Unlock()

	stats := UsageStats{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		Estimated:    usage.Estimated,
	}
	if ut.modelInfo != nil {
		// pricing is per million tokens
		stats.InputCost = float64(usage.InputTokens) * ut.modelInfo.Cost.Input / 1000000
		stats.OutputCost = float64(usage.OutputTokens) * ut.modelInfo.Cost.Output / 1000000
		stats.TotalCost = stats.InputCost + stats.OutputCost
	}
	ut.lastRequest = &stats

	ut.sessionStats.TotalInputTokens += stats.InputTokens
	ut.sessionStats.TotalOutputTokens += stats.OutputTokens
	ut.sessionStats.TotalCost += stats.TotalCost
	ut.sessionStats.RequestCount++
	if usage.Estimated {
		ut.sessionStats.EstimatedCount++
	}
}

// RenderUsageInfo returns a one-line summary: total tokens, share of the
// context window when known, and cost when pricing is known.
func (ut *UsageTracker) RenderUsageInfo() string {
	ut.mu.RLock()
	defer ut.mu.RUnlock()

	theme := GetTheme()
	baseStyle := lipgloss.NewStyle()

	totalTokens := ut.sessionStats.TotalInputTokens + ut.sessionStats.TotalOutputTokens
	tokenStr := formatTokenCount(totalTokens)
	if ut.sessionStats.EstimatedCount > 0 {
		tokenStr = "~" + tokenStr
	}

	var percentageStr string
	if ut.modelInfo != nil && ut.modelInfo.Limit.Context > 0 {
		percentage := float64(totalTokens) / float64(ut.modelInfo.Limit.Context) * 100

		color := theme.Primary
		if percentage >= 80 {
			color = theme.Error
		} else if percentage >= 60 {
			color = theme.Warning
		}
		percentageStr = baseStyle.Foreground(color).Render(fmt.Sprintf(" (%.0f%%)", percentage))
	}

	costStr := baseStyle.Foreground(theme.Muted).Render("n/a")
	switch {
	case ut.provider == "ollama" || ut.provider == "mock":
		costStr = baseStyle.Foreground(theme.Primary).Render("free")
	case ut.modelInfo != nil:
		costStr = baseStyle.Foreground(theme.Primary).Render(fmt.Sprintf("$%.4f", ut.sessionStats.TotalCost))
	}

	line := fmt.Sprintf("%s%s%s%s%s",
		baseStyle.Foreground(theme.Muted).Render("Tokens: "),
		baseStyle.Foreground(theme.Text).Bold(true).Render(tokenStr),
		percentageStr,
		baseStyle.Foreground(theme.Muted).Render(" | Cost: "),
		costStr)
	if ut.width > 0 {
		line = baseStyle.MaxWidth(ut.width).Render(line)
	}
	return line
}

func formatTokenCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// GetSessionStats returns a copy of the session totals.
func (ut *UsageTracker) GetSessionStats() SessionStats {
	ut.mu.RLock()
	defer ut.mu.RUnlock()
	return ut.sessionStats
}

// GetLastRequestStats returns a copy of the most recent request's usage, or
// nil before the first request.
func (ut *UsageTracker) GetLastRequestStats() *UsageStats {
	ut.mu.RLock()
	defer ut.mu.RUnlock()
	if ut.lastRequest == nil {
		return nil
	}
	stats := *ut.lastRequest
	return &stats
}

// Reset clears all statistics.
func (ut *UsageTracker) Reset() {
	ut.mu.Lock()
	defer ut.mu.Unlock()
	ut.sessionStats = SessionStats{}
	ut.lastRequest = nil
}

// SetWidth updates the display width.
func (ut *UsageTracker) SetWidth(width int) {
	ut.mu.Lock()
	defer ut.mu.Unlock()
	ut.width = width
}
