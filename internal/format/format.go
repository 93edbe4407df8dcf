// Package format splits a model reply into typed content segments.
//
// Replies are divided into sections at blank lines. Each section is then
// classified by the block markers the system prompts ask the model to use:
// [arabic-text], [verse-section], [hadith] and [translation] pairs, bullet
// lines starting with • or -, and quotes starting with >. Anything else is a
// paragraph. Classification never fails.
package format

import (
	"regexp"
	"strings"

	"github.com/ramizpolic/islamicai/internal/language"
)

const (
	arabicTextMarker  = "[arabic-text]"
	verseMarker       = "[verse-section]"
	hadithMarker      = "[hadith]"
	translationMarker = "[translation]"
)

var (
	sectionBreak      = regexp.MustCompile(`\n\s*\n`)
	arabicTextTokens  = regexp.MustCompile(`\[arabic-text\]|\[/arabic-text\]`)
	verseTokens       = regexp.MustCompile(`\[verse-section\]|\[/verse-section\]`)
	hadithTokens      = regexp.MustCompile(`\[hadith\]|\[/hadith\]`)
	translationTokens = regexp.MustCompile(`\[translation\]|\[/translation\]`)
	verseReference    = regexp.MustCompile(`(?s)\((.*?)\)$`)
	bulletPrefix      = regexp.MustCompile(`^[•-]\s*`)
	quotePrefix       = regexp.MustCompile(`^>\s*`)
)

// Format splits text into segments in source order. Every segment is laid
// out right-to-left when tag is an RTL language, except ArabicText which is
// always right-to-left.
func Format(text string, tag language.Tag) []Segment {
	rtl := tag.IsRTL()
	sections := sectionBreak.Split(text, -1)

	segments := make([]Segment, 0, len(sections))
	for _, section := range sections {
		segments = append(segments, classify(section, rtl)...)
	}
	return segments
}

// classify applies the first matching rule to a section. Only the hadith
// rule can yield more than one segment.
func classify(section string, rtl bool) []Segment {
	switch {
	case strings.Contains(section, arabicTextMarker):
		return []Segment{{
			Kind: ArabicText,
			Text: strings.TrimSpace(arabicTextTokens.ReplaceAllString(section, "")),
			RTL:  true,
		}}

	case strings.Contains(section, verseMarker):
		return []Segment{verse(verseTokens.ReplaceAllString(section, ""), rtl)}

	case strings.Contains(section, hadithMarker):
		return hadith(hadithTokens.ReplaceAllString(section, ""), rtl)

	case strings.Contains(section, translationMarker):
		return []Segment{{
			Kind: Translation,
			Text: strings.TrimSpace(translationTokens.ReplaceAllString(section, "")),
			RTL:  rtl,
		}}

	case strings.HasPrefix(section, Bullet), strings.HasPrefix(section, "-"):
		return []Segment{bulletList(section, rtl)}

	case strings.HasPrefix(section, ">"):
		return []Segment{{
			Kind: Quote,
			Text: quotePrefix.ReplaceAllString(section, ""),
			RTL:  rtl,
		}}

	default:
		return []Segment{{Kind: Paragraph, Text: section, RTL: rtl}}
	}
}

// verse extracts a trailing parenthesized reference. Without one the body is
// kept exactly as stripped.
func verse(content string, rtl bool) Segment {
	loc := verseReference.FindStringSubmatchIndex(content)
	if loc == nil {
		return Segment{Kind: Verse, Text: content, RTL: rtl}
	}
	return Segment{
		Kind:      Verse,
		Text:      strings.TrimSpace(content[:loc[0]] + content[loc[1]:]),
		Reference: content[loc[2]:loc[3]],
		RTL:       rtl,
	}
}

// hadith treats the first line as the narration and everything after it as
// the citation.
func hadith(content string, rtl bool) []Segment {
	body, rest, _ := strings.Cut(content, "\n")
	segments := []Segment{{Kind: Hadith, Text: body, RTL: rtl}}

	if reference := strings.TrimSpace(rest); reference != "" {
		segments = append(segments, Segment{Kind: HadithReference, Text: reference, RTL: rtl})
	}
	return segments
}

func bulletList(section string, rtl bool) Segment {
	var items []string
	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, bulletPrefix.ReplaceAllString(line, ""))
	}
	return Segment{Kind: BulletList, Items: items, RTL: rtl}
}
