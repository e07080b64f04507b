package tui

import "testing"

func TestWrapTextBreaksAtWords(t *testing.T) {
	got := wrapText("the quick brown fox", 10)
	if got != "the quick\nbrown fox" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	if got != "abcd\nefgh\nij" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextKeepsParagraphs(t *testing.T) {
	got := wrapText("a\n\nb", 10)
	if got != "a\n\nb" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("日記日記", 4)
	if got != "日記\n日記" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	if got := wrapText("left as is", 0); got != "left as is" {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}
