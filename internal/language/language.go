// Package language selects the reply language for a piece of user text and
// exposes the per-language presentation metadata, greeting and system
// instruction used when talking to the model.
//
// The supported set is closed: arabic, urdu, bengali and english. Every
// lookup in this package is total. Anything outside the set, including the
// output of a misbehaving detector, resolves to english.
package language

import "strings"

// Tag identifies one of the supported reply languages.
type Tag string

const (
	English Tag = "english"
	Arabic  Tag = "arabic"
	Urdu    Tag = "urdu"
	Bengali Tag = "bengali"
)

// All returns the supported tags, english first.
func All() []Tag {
	return []Tag{English, Arabic, Urdu, Bengali}
}

// Parse maps an arbitrary identifier onto a supported tag. Matching is
// case-insensitive; unknown or empty identifiers yield English.
func Parse(s string) Tag {
	switch tag := Tag(strings.ToLower(strings.TrimSpace(s))); tag {
	case English, Arabic, Urdu, Bengali:
		return tag
	default:
		return English
	}
}

// String returns the tag identifier.
func (t Tag) String() string {
	return string(t)
}

// Supported reports whether t is one of the four tags without falling back.
func (t Tag) Supported() bool {
	switch t {
	case English, Arabic, Urdu, Bengali:
		return true
	}
	return false
}

// IsRTL reports whether text in this language is laid out right-to-left.
func (t Tag) IsRTL() bool {
	return ConfigFor(t).Direction == RightToLeft
}
