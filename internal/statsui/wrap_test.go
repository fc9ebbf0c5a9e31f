package statsui

import "testing"

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("great job on the home row", 10)
	want := "great job\non the\nhome row"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	if got != "abcd\nefgh\nij" {
		t.Fatalf("unexpected split %q", got)
	}
}

func TestWrapTextKeepsExistingLines(t *testing.T) {
	got := wrapText("a b\nc d", 10)
	if got != "a b\nc d" {
		t.Fatalf("expected lines to be preserved, got %q", got)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	got := wrapText("日本語", 4)
	if got != "日本\n語" {
		t.Fatalf("expected wide runes to count double, got %q", got)
	}
}
