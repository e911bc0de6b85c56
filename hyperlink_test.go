package vtcore

import "testing"

func TestHyperlinkInternReusesID(t *testing.T) {
	tbl := newHyperlinkTable()
	a := tbl.Intern(Hyperlink{URI: "http://example.com"})
	b := tbl.Intern(Hyperlink{URI: "http://example.com"})
	if a != b {
		t.Fatalf("expected identical interning, got %d and %d", a, b)
	}
}

func TestHyperlinkEmptyURIIsZero(t *testing.T) {
	tbl := newHyperlinkTable()
	if id := tbl.Intern(Hyperlink{}); id != 0 {
		t.Fatalf("expected id 0 for empty URI, got %d", id)
	}
}

func TestHyperlinkReclaimedAfterRelease(t *testing.T) {
	tbl := newHyperlinkTable()
	id := tbl.Intern(Hyperlink{URI: "http://example.com"})
	tbl.Release(id)
	if link := tbl.Lookup(id); link.URI != "" {
		t.Fatalf("expected reclaimed link, got %#v", link)
	}
	id2 := tbl.Intern(Hyperlink{URI: "http://example.com"})
	if id2 == 0 {
		t.Fatal("expected re-interning to work after reclaim")
	}
}
