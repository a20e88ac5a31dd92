package studio

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMemoPreviewShortPassthrough(t *testing.T) {
	if got := memoPreview("see you at the premiere"); got != "see you at the premiere" {
		t.Fatalf("short memo should pass through, got %q", got)
	}
}

func TestMemoPreviewTruncatesOnRunes(t *testing.T) {
	memo := strings.Repeat("né", 40)
	got := memoPreview(memo)
	if !utf8.ValidString(got) {
		t.Fatalf("preview split a multi-byte rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 30 {
		t.Fatalf("preview length: got %d runes want 30", n)
	}
	if !strings.HasPrefix(memo, got) {
		t.Fatalf("preview is not a prefix of the memo: %q", got)
	}
}
