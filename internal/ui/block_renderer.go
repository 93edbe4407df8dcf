package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// blockRenderer holds the options of a bordered content block.
type blockRenderer struct {
	align         lipgloss.Position
	borderColor   lipgloss.AdaptiveColor
	singleBorder  bool
	fullWidth     bool
	paddingTop    int
	paddingBottom int
	paddingLeft   int
	paddingRight  int
	marginBottom  int
	width         int
}

type renderingOption func(*blockRenderer)

// WithFullWidth stretches the block to the container width.
func WithFullWidth() renderingOption {
	return func(c *blockRenderer) {
		c.fullWidth = true
	}
}

// WithAlign places the block, and its colored border, on the given side.
// Left-aligned blocks carry the border on the left, right-aligned blocks on
// the right.
func WithAlign(align lipgloss.Position) renderingOption {
	return func(c *blockRenderer) {
		c.align = align
	}
}

// WithBorderColor sets the color of the leading border.
func WithBorderColor(color lipgloss.AdaptiveColor) renderingOption {
	return func(c *blockRenderer) {
		c.borderColor = color
	}
}

// WithSingleBorder drops the faint border on the trailing side.
func WithSingleBorder() renderingOption {
	return func(c *blockRenderer) {
		c.singleBorder = true
	}
}

// WithMarginBottom adds empty lines below the block.
func WithMarginBottom(margin int) renderingOption {
	return func(c *blockRenderer) {
		c.marginBottom = margin
	}
}

// renderContentBlock draws content inside thick side borders and places it
// within containerWidth.
func renderContentBlock(content string, containerWidth int, options ...renderingOption) string {
	renderer := &blockRenderer{
		align:         lipgloss.Left,
		paddingTop:    1,
		paddingBottom: 1,
		paddingLeft:   2,
		paddingRight:  2,
		width:         containerWidth,
	}
	for _, option := range options {
		option(renderer)
	}

	theme := GetTheme()
	style := lipgloss.NewStyle().
		PaddingTop(renderer.paddingTop).
		PaddingBottom(renderer.paddingBottom).
		PaddingLeft(renderer.paddingLeft).
		PaddingRight(renderer.paddingRight).
		Foreground(theme.Text).
		BorderStyle(lipgloss.ThickBorder()).
		AlignHorizontal(renderer.align)

	// barely visible on either background
	faint := lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

	leadingLeft := renderer.align != lipgloss.Right
	style = style.BorderLeft(leadingLeft || !renderer.singleBorder).
		BorderRight(!leadingLeft || !renderer.singleBorder)
	if leadingLeft {
		style = style.BorderLeftForeground(renderer.borderColor).BorderRightForeground(faint)
	} else {
		style = style.BorderRightForeground(renderer.borderColor).BorderLeftForeground(faint)
	}

	if renderer.fullWidth {
		// borders are drawn outside the width
		style = style.Width(renderer.width - 2)
	}

	content = lipgloss.PlaceHorizontal(renderer.width, renderer.align, style.Render(content))
	if renderer.marginBottom > 0 {
		content += strings.Repeat("\n", renderer.marginBottom)
	}
	return content
}
