package format

import (
	"fmt"
	"strings"
)

// Kind is the type of a content segment.
type Kind int

const (
	Paragraph Kind = iota
	Quote
	Verse
	Hadith
	HadithReference
	Translation
	ArabicText
	BulletList
)

var kindNames = map[Kind]string{
	Paragraph:       "paragraph",
	Quote:           "quote",
	Verse:           "verse",
	Hadith:          "hadith",
	HadithReference: "hadith_reference",
	Translation:     "translation",
	ArabicText:      "arabic_text",
	BulletList:      "bullet_list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown segment kind %q", text)
}

// Bullet is the glyph every list item is rendered with.
const Bullet = "•"

// Segment is one typed block of a formatted reply.
//
// Text holds the body for every kind except BulletList, whose entries are in
// Items without their bullet glyph. Reference is only set on Verse segments;
// a hadith's reference travels in a separate HadithReference segment.
type Segment struct {
	Kind      Kind     `json:"kind"`
	Text      string   `json:"text,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Items     []string `json:"items,omitempty"`
	RTL       bool     `json:"rtl"`
}

// Lines returns the display lines of a bullet list, each prefixed with the
// normalized bullet glyph. Other kinds yield their text as a single line.
func (s Segment) Lines() []string {
	if s.Kind != BulletList {
		return []string{s.Text}
	}
	lines := make([]string, len(s.Items))
	for i, item := range s.Items {
		lines[i] = Bullet + " " + item
	}
	return lines
}

// Plain renders the segment as unstyled display text.
func (s Segment) Plain() string {
	switch s.Kind {
	case BulletList:
		return strings.Join(s.Lines(), "\n")
	case Verse:
		if s.Reference == "" {
			return s.Text
		}
		return s.Text + "\n(" + s.Reference + ")"
	default:
		return s.Text
	}
}

// Plain renders a whole segment sequence as unstyled text, one blank line
// between segments.
func Plain(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Plain())
	}
	return strings.Join(parts, "\n\n")
}
