package ui

import (
	"strings"
	"testing"

	"github.com/ramizpolic/islamicai/internal/format"
)

func TestSegmentRendererPlain(t *testing.T) {
	segments := []format.Segment{
		{Kind: format.Paragraph, Text: "Intro"},
		{Kind: format.Verse, Text: "Indeed, with hardship comes ease.", Reference: "Quran 94:6"},
		{Kind: format.BulletList, Items: []string{"first", "second"}},
	}

	got := NewSegmentRenderer(60, true).Render(segments)
	if got != format.Plain(segments) {
		t.Errorf("plain render = %q, want %q", got, format.Plain(segments))
	}
}

func TestSegmentRendererStyled(t *testing.T) {
	r := NewSegmentRenderer(60, false)

	tests := []struct {
		name    string
		segment format.Segment
		want    []string
	}{
		{
			name:    "verse has glyph and reference",
			segment: format.Segment{Kind: format.Verse, Text: "Indeed, with hardship comes ease.", Reference: "Quran 94:6"},
			want:    []string{verseGlyph, "Indeed, with hardship comes ease.", "Quran 94:6"},
		},
		{
			name:    "bullets use the normalized glyph",
			segment: format.Segment{Kind: format.BulletList, Items: []string{"Prayer", "Charity"}},
			want:    []string{"• Prayer", "• Charity"},
		},
		{
			name:    "hadith keeps its text",
			segment: format.Segment{Kind: format.Hadith, Text: "Actions are by intentions"},
			want:    []string{"Actions are by intentions"},
		},
		{
			name:    "translation under a rule",
			segment: format.Segment{Kind: format.Translation, Text: "In the name of Allah"},
			want:    []string{"─", "In the name of Allah"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RenderSegment(tt.segment)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("rendered %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestSegmentRendererAlignment(t *testing.T) {
	r := NewSegmentRenderer(40, false)

	ltr := r.RenderSegment(format.Segment{Kind: format.Paragraph, Text: "Hello"})
	if strings.HasPrefix(ltr, " ") {
		t.Errorf("left-to-right paragraph should start at the left edge, got %q", ltr)
	}

	rtl := r.RenderSegment(format.Segment{Kind: format.Paragraph, Text: "السلام عليكم", RTL: true})
	if !strings.HasPrefix(rtl, " ") || !strings.HasSuffix(strings.TrimRight(rtl, "\n"), "السلام عليكم") {
		t.Errorf("right-to-left paragraph should be right aligned, got %q", rtl)
	}

	arabic := r.RenderSegment(format.Segment{Kind: format.ArabicText, Text: "بسم الله"})
	if !strings.HasPrefix(arabic, " ") {
		t.Errorf("arabic text should always be right aligned, got %q", arabic)
	}
}

func TestSegmentRendererSkipsEmptyParagraphs(t *testing.T) {
	segments := []format.Segment{
		{Kind: format.Paragraph, Text: ""},
		{Kind: format.Paragraph, Text: "Body"},
		{Kind: format.Paragraph, Text: "  "},
	}

	got := NewSegmentRenderer(40, false).Render(segments)
	if strings.Contains(got, "\n\n") {
		t.Errorf("empty paragraphs should not add blank lines, got %q", got)
	}
	if !strings.Contains(got, "Body") {
		t.Errorf("missing body in %q", got)
	}
}

func TestNewSegmentRendererMinimumWidth(t *testing.T) {
	if r := NewSegmentRenderer(5, false); r.width != 20 {
		t.Errorf("width = %d, want 20", r.width)
	}
}
