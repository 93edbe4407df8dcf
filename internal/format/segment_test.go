package format

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/ramizpolic/islamicai/internal/language"
)

func TestSegmentPlain(t *testing.T) {
	tests := []struct {
		name    string
		segment Segment
		want    string
	}{
		{
			name:    "bullet list",
			segment: Segment{Kind: BulletList, Items: []string{"first", "second"}},
			want:    "• first\n• second",
		},
		{
			name:    "verse with reference",
			segment: Segment{Kind: Verse, Text: "Indeed, Allah is with the patient.", Reference: "Quran 2:153"},
			want:    "Indeed, Allah is with the patient.\n(Quran 2:153)",
		},
		{
			name:    "verse without reference",
			segment: Segment{Kind: Verse, Text: "Say, He is Allah, the One."},
			want:    "Say, He is Allah, the One.",
		},
		{
			name:    "hadith reference",
			segment: Segment{Kind: HadithReference, Text: "Bukhari 1:1"},
			want:    "Bukhari 1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.segment.Plain(); got != tt.want {
				t.Errorf("Plain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBulletsAreNotDoubled(t *testing.T) {
	segments := Format("• first\n• second", language.English)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}

	lines := segments[0].Lines()
	want := []string{"• first", "• second"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPlainJoinsSegments(t *testing.T) {
	reply := "Intro\n\n[hadith]Actions are judged by intentions.\nBukhari 1:1[/hadith]"
	want := "Intro\n\nActions are judged by intentions.\n\nBukhari 1:1"

	if got := Plain(Format(reply, language.English)); got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
}

func TestKindText(t *testing.T) {
	for kind := range kindNames {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", kind, err)
		}
		var decoded Kind
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if decoded != kind {
			t.Errorf("round trip of %v gave %v", kind, decoded)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("sermon")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSegmentJSON(t *testing.T) {
	data, err := sonic.Marshal(Segment{Kind: Verse, Text: "body", Reference: "ref", RTL: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"verse","text":"body","reference":"ref","rtl":true}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
