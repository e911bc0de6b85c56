package vtcore

import "testing"

func TestBlankCellCarriesPen(t *testing.T) {
	pen := Attrs{FG: Indexed(1), Bold: true}
	c := BlankCell(pen)
	if c.Grapheme != " " || c.Width != 1 {
		t.Fatalf("expected blank space cell, got %#v", c)
	}
	if c.Attrs != pen {
		t.Fatalf("expected pen carried through, got %#v", c.Attrs)
	}
}

func TestCellIsContinuation(t *testing.T) {
	lead := Cell{Grapheme: "世", Width: 2}
	cont := Cell{Grapheme: "", Width: 0}
	if lead.IsContinuation() {
		t.Fatal("leading wide cell must not report as continuation")
	}
	if !cont.IsContinuation() {
		t.Fatal("zero-width cell must report as continuation")
	}
}

func TestAttrsUnderline(t *testing.T) {
	a := DefaultAttrs
	if a.Underline() {
		t.Fatal("default attrs should have no underline")
	}
	a.UnderlineStyle = UnderlineCurly
	if !a.Underline() {
		t.Fatal("expected Underline() true once a style is set")
	}
}
