package vtcore

import (
	"testing"
	"time"
)

func newTestEngine(rows, cols int) (*Engine, *Grid) {
	e := NewEngine(rows, cols, NopSink{})
	return e, e.Grid()
}

func cellText(g *Grid, row, col int) string {
	return g.Cell(row, col).Grapheme
}

func TestEnginePrintAdvancesCursor(t *testing.T) {
	e, g := newTestEngine(5, 10)
	e.Feed([]byte("AB"))
	if cellText(g, 0, 0) != "A" || cellText(g, 0, 1) != "B" {
		t.Fatalf("unexpected cells: %q %q", cellText(g, 0, 0), cellText(g, 0, 1))
	}
	row, col := g.Cursor()
	if row != 0 || col != 2 {
		t.Fatalf("cursor at (%d,%d), want (0,2)", row, col)
	}
}

func TestEngineAutoWrap(t *testing.T) {
	e, g := newTestEngine(3, 3)
	e.Feed([]byte("ABCD"))
	if cellText(g, 0, 2) != "C" || cellText(g, 1, 0) != "D" {
		t.Fatalf("unexpected wrap result: row0=%q row1=%q", cellText(g, 0, 2), cellText(g, 1, 0))
	}
}

func TestEngineScrollsIntoScrollback(t *testing.T) {
	e, g := newTestEngine(2, 5)
	e.Feed([]byte("line1\r\nline2\r\nline3"))
	if g.ScrollbackLen() == 0 {
		t.Fatal("expected scrollback to have received the scrolled-off line")
	}
}

func TestEngineAltScreenIsolatesContent(t *testing.T) {
	e, g := newTestEngine(3, 10)
	e.Feed([]byte("primary"))
	e.Feed([]byte("\x1b[?1049h"))
	e.Feed([]byte("alt"))
	if cellText(g, 0, 0) != "a" {
		t.Fatalf("alt screen content missing: %q", cellText(g, 0, 0))
	}
	e.Feed([]byte("\x1b[?1049l"))
	if cellText(g, 0, 0) != "p" {
		t.Fatalf("primary screen content should be untouched: %q", cellText(g, 0, 0))
	}
}

func TestEngineSGRColorsApplied(t *testing.T) {
	e, g := newTestEngine(1, 10)
	e.Feed([]byte("\x1b[31mX"))
	cell := g.Cell(0, 0)
	if cell.Attrs.FG.Kind != ColorIndexed || cell.Attrs.FG.Index != 1 {
		t.Fatalf("unexpected fg color %#v", cell.Attrs.FG)
	}
}

func TestEngineSGRTrueColor(t *testing.T) {
	e, g := newTestEngine(1, 10)
	e.Feed([]byte("\x1b[38;2;10;20;30mX"))
	cell := g.Cell(0, 0)
	if cell.Attrs.FG.Kind != ColorTrueColor || cell.Attrs.FG.R != 10 || cell.Attrs.FG.G != 20 || cell.Attrs.FG.B != 30 {
		t.Fatalf("unexpected fg color %#v", cell.Attrs.FG)
	}
}

func TestEngineWideCharacterContinuation(t *testing.T) {
	e, g := newTestEngine(1, 10)
	e.Feed([]byte("\xe4\xb8\x96")) // 世, East Asian wide
	cell := g.Cell(0, 0)
	if cell.Width != 2 {
		t.Fatalf("expected width 2 wide cell, got %d", cell.Width)
	}
	cont := g.Cell(0, 1)
	if !cont.IsContinuation() {
		t.Fatal("expected continuation cell at column 1")
	}
}

func TestEngineEraseInLine(t *testing.T) {
	e, g := newTestEngine(1, 5)
	e.Feed([]byte("ABCDE\x1b[1;1H\x1b[0K"))
	for c := 0; c < 5; c++ {
		if cellText(g, 0, c) != " " {
			t.Fatalf("column %d not erased: %q", c, cellText(g, 0, c))
		}
	}
}

func TestEngineDECRequestCursorPosition(t *testing.T) {
	var written []byte
	sink := &captureSink{NopSink{}, &written}
	e := NewEngine(5, 5, sink)
	e.Feed([]byte("\x1b[3;4H\x1b[6n"))
	want := "\x1b[3;4R"
	if string(*sink.buf) != want {
		t.Fatalf("got %q, want %q", string(*sink.buf), want)
	}
}

type captureSink struct {
	NopSink
	buf *[]byte
}

func (c *captureSink) WriteHost(p []byte) {
	*c.buf = append(*c.buf, p...)
}

func TestEngineHyperlinkRoundtrip(t *testing.T) {
	e, g := newTestEngine(1, 10)
	e.Feed([]byte("\x1b]8;;http://example.com\x1b\\link\x1b]8;;\x1b\\"))
	cell := g.Cell(0, 0)
	if cell.Attrs.HyperlinkID == 0 {
		t.Fatal("expected hyperlink id on printed cell")
	}
	link := g.Hyperlink(cell.Attrs.HyperlinkID)
	if link.URI != "http://example.com" {
		t.Fatalf("unexpected link %#v", link)
	}
}

func TestGridResizePreservesTopLeft(t *testing.T) {
	e, g := newTestEngine(5, 10)
	e.Feed([]byte("hello"))
	e.Resize(3, 6)
	if cellText(g, 0, 0) != "h" {
		t.Fatalf("resize lost content: %q", cellText(g, 0, 0))
	}
}

func TestEngineSelectionText(t *testing.T) {
	e, g := newTestEngine(1, 10)
	e.Feed([]byte("hello"))
	g.StartSelection(0, 0, SelectPlain)
	g.ExtendSelection(0, 4)
	if got := g.SelectionText(); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestGridQuickClickClearsSelection(t *testing.T) {
	_, g := newTestEngine(5, 10)
	t0 := time.Now()
	g.PressSelection(0, 2, SelectPlain, t0)
	created := g.ReleaseSelection(0, 2, t0.Add(50*time.Millisecond))
	if created || g.HasSelection() {
		t.Fatal("expected a quick click to clear any selection")
	}
}

func TestGridLongPressCreatesSingleCellSelection(t *testing.T) {
	_, g := newTestEngine(5, 10)
	t0 := time.Now()
	g.PressSelection(0, 2, SelectPlain, t0)
	created := g.ReleaseSelection(0, 2, t0.Add(300*time.Millisecond))
	if !created || !g.HasSelection() {
		t.Fatal("expected a long press to create a single-cell selection")
	}
}

func TestGridDragCreatesRangeSelection(t *testing.T) {
	e, g := newTestEngine(5, 10)
	e.Feed([]byte("hello world"))
	t0 := time.Now()
	g.PressSelection(0, 0, SelectPlain, t0)
	g.DragSelection(0, 4)
	if !g.IsSelecting() {
		t.Fatal("expected IsSelecting to be true while dragging")
	}
	created := g.ReleaseSelection(0, 4, t0.Add(10*time.Millisecond))
	if !created || !g.HasSelection() {
		t.Fatal("expected a drag to create a selection")
	}
	if got := g.SelectionText(); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestEngineShellZoneMarkersRecorded(t *testing.T) {
	e, g := newTestEngine(5, 10)
	e.Feed([]byte("\x1b]133;A\x07$ \x1b]133;B\x07"))
	zones := g.ShellZones()
	if len(zones) != 2 {
		t.Fatalf("expected 2 recorded zones, got %d: %#v", len(zones), zones)
	}
	if zones[0].Kind != ShellZonePromptStart || zones[1].Kind != ShellZonePromptEnd {
		t.Fatalf("unexpected zone kinds: %#v", zones)
	}
}
