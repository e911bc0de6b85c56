package vtcore

import "testing"

func TestSanitizePasteBracketed(t *testing.T) {
	got := SanitizePaste("echo 'hello'; rm -rf /", true)
	want := "\x1b[200~echo 'hello'; rm -rf /\x1b[201~"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSanitizePasteUnbracketedStripsEscapesAndBackspace(t *testing.T) {
	got := SanitizePaste("echo 'hello'\x1b[31mred\x08text", false)
	want := "echo 'hello'retext"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSanitizePasteUnbracketedKeepsNewlinesAndTabs(t *testing.T) {
	got := SanitizePaste("a\nb\tc", false)
	if got != "a\nb\tc" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizePasteUnbracketedDropsOtherControls(t *testing.T) {
	got := SanitizePaste("a\x00\x01b", false)
	if got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
}
