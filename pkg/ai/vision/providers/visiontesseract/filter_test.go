package visiontesseract

import "testing"

func TestFilterLines_KeepsMatchingLines(t *testing.T) {
	text := "会社名: サンプル株式会社\n住所: 東京都\n売上高: 1,200千円"

	got := FilterLines(text, []string{"会社名", "売上高"})
	want := "会社名: サンプル株式会社\n売上高: 1,200千円"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFilterLines_NoMatches(t *testing.T) {
	got := FilterLines("住所: 東京都", []string{"会社名"})
	if got != NoMatchPlaceholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestFilterLines_NoKeywords(t *testing.T) {
	text := "line one\nline two"
	if got := FilterLines(text, nil); got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	if got := FilterLines(text, []string{" ", ""}); got != text {
		t.Fatalf("expected unchanged text for blank keywords, got %q", got)
	}
}
