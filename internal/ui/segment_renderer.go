package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramizpolic/islamicai/internal/format"
)

// verseGlyph heads every rendered Qur'an verse block.
const verseGlyph = "۞"

// SegmentRenderer draws formatted reply segments for the terminal. Styled
// output mirrors the chat typography: framed verses, bordered quotes and
// hadith, right-aligned Arabic. Plain output is the segments' text only.
type SegmentRenderer struct {
	width int
	plain bool
}

// NewSegmentRenderer creates a renderer for the given width. With plain set
// no styling is applied.
func NewSegmentRenderer(width int, plain bool) *SegmentRenderer {
	if width < 20 {
		width = 20
	}
	return &SegmentRenderer{width: width, plain: plain}
}

// Render draws segments in order separated by blank lines. Empty paragraphs,
// which come from leading or trailing blank lines in a reply, are skipped in
// styled output.
func (r *SegmentRenderer) Render(segments []format.Segment) string {
	if r.plain {
		return format.Plain(segments)
	}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Kind == format.Paragraph && strings.TrimSpace(s.Text) == "" {
			continue
		}
		parts = append(parts, r.RenderSegment(s))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSegment draws a single segment.
func (r *SegmentRenderer) RenderSegment(s format.Segment) string {
	if r.plain {
		return s.Plain()
	}

	theme := GetTheme()
	switch s.Kind {
	case format.ArabicText:
		return lipgloss.NewStyle().
			Width(r.width).
			Align(lipgloss.Right).
			Bold(true).
			Foreground(theme.Arabic).
			Render(s.Text)

	case format.Verse:
		return r.renderVerse(s, theme)

	case format.Quote, format.Hadith:
		return r.renderBordered(s, theme)

	case format.HadithReference:
		return lipgloss.NewStyle().
			Width(r.width).
			Align(leading(s.RTL)).
			Italic(true).
			Foreground(theme.Muted).
			Render(s.Text)

	case format.Translation:
		separator := CreateSeparator(r.width, "─", theme.Border)
		text := lipgloss.NewStyle().
			Width(r.width).
			Align(leading(s.RTL)).
			Foreground(theme.Text).
			Render(s.Text)
		return separator + "\n" + text

	case format.BulletList:
		bullet := lipgloss.NewStyle().Foreground(theme.Primary).Render(format.Bullet)
		lines := make([]string, len(s.Items))
		for i, item := range s.Items {
			if s.RTL {
				lines[i] = item + " " + bullet
			} else {
				lines[i] = bullet + " " + item
			}
		}
		return lipgloss.NewStyle().
			Width(r.width).
			Align(leading(s.RTL)).
			Render(strings.Join(lines, "\n"))

	default:
		return lipgloss.NewStyle().
			Width(r.width).
			Align(leading(s.RTL)).
			Foreground(theme.Text).
			Render(s.Text)
	}
}

// renderBordered draws quotes and hadith in italics with a thick border on
// the side the text starts from.
func (r *SegmentRenderer) renderBordered(s format.Segment, theme Theme) string {
	style := lipgloss.NewStyle().
		Width(r.width-1).
		Align(leading(s.RTL)).
		Italic(true).
		Foreground(theme.Text).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(theme.Primary)

	if s.RTL {
		style = style.BorderRight(true).PaddingRight(1)
	} else {
		style = style.BorderLeft(true).PaddingLeft(1)
	}
	return style.Render(s.Text)
}

// renderVerse draws the verse inside a rounded frame headed by the verse
// glyph, with the reference under a rule on the trailing side.
func (r *SegmentRenderer) renderVerse(s format.Segment, theme Theme) string {
	inner := r.width - 4

	header := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Verse).
		Render(verseGlyph)
	body := lipgloss.NewStyle().
		Width(inner).
		Align(leading(s.RTL)).
		Foreground(theme.Text).
		Render(s.Text)

	content := header + "\n" + body
	if s.Reference != "" {
		reference := lipgloss.NewStyle().
			Width(inner).
			Align(trailing(s.RTL)).
			Italic(true).
			Foreground(theme.Muted).
			Render(s.Reference)
		content += "\n" + CreateSeparator(inner, "─", theme.Border) + "\n" + reference
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Verse).
		Padding(0, 1).
		Render(content)
}

func leading(rtl bool) lipgloss.Position {
	if rtl {
		return lipgloss.Right
	}
	return lipgloss.Left
}

func trailing(rtl bool) lipgloss.Position {
	if rtl {
		return lipgloss.Left
	}
	return lipgloss.Right
}
