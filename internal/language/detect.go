package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/charmbracelet/log"
)

// Detector guesses the language of a text and returns the identifier of its
// single best guess, for example "Urdu". An empty string means no guess.
type Detector interface {
	Detect(text string) string
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(text string) string

// Detect calls f(text).
func (f DetectorFunc) Detect(text string) string {
	return f(text)
}

// trigramDetector is the default Detector, backed by whatlanggo.
type trigramDetector struct{}

func (trigramDetector) Detect(text string) string {
	info := whatlanggo.Detect(text)
	return info.Lang.String()
}

// Selector turns detector guesses into supported tags.
type Selector struct {
	detector Detector
}

// NewSelector creates a Selector around d. A nil detector selects the
// built-in trigram detector.
func NewSelector(d Detector) *Selector {
	if d == nil {
		d = trigramDetector{}
	}
	return &Selector{detector: d}
}

// Detect returns the language the reply should be written in. Blank input
// never reaches the detector. Whatever the detector does, including
// panicking, the result is one of the supported tags.
func (s *Selector) Detect(text string) (tag Tag) {
	if strings.TrimSpace(text) == "" {
		return English
	}

	defer func() {
		if r := recover(); r != nil {
			log.Debug("language detector failed, using english", "panic", r)
			tag = English
		}
	}()

	guess := s.detector.Detect(text)
	tag = Parse(guess)
	log.Debug("detected language", "guess", guess, "tag", tag)
	return tag
}

var defaultSelector = NewSelector(nil)

// Detect selects a language for text using the default detector.
func Detect(text string) Tag {
	return defaultSelector.Detect(text)
}
