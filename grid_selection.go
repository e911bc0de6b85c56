package vtcore

import (
	"strings"
	"time"
)

// SelectionClickTimeout bounds how long a mouse button may be held at the
// same cell for ReleaseSelection to still treat it as a plain click rather
// than a long-press single-cell selection.
const SelectionClickTimeout = 200 * time.Millisecond

// selectionPressState tracks the press/drag/release lifecycle of a
// mouse-driven selection, kept separate from whether a selection has
// actually been completed (see selection.active).
type selectionPressState uint8

const (
	pressIdle selectionPressState = iota
	pressPressed
	pressDragging
)

// SelectionGranularity controls how a selection's endpoints snap when
// extended (plain click-drag, double-click word selection, triple-click
// line selection).
type SelectionGranularity uint8

const (
	SelectPlain SelectionGranularity = iota
	SelectWord
	SelectLine
)

// selectionPoint addresses a cell in the combined scrollback+screen
// coordinate space used by VisibleLine.
type selectionPoint struct {
	line, col int
}

// selection holds the current text selection, if any, in the same
// coordinate space as VisibleLine so it survives scrolling without
// translation as long as the grid itself isn't mutated.
type selection struct {
	active      bool
	anchor, ext selectionPoint
	granularity SelectionGranularity

	pressState selectionPressState
	pressPoint selectionPoint
	pressTime  time.Time
}

// StartSelection begins a new selection at (line, col) in VisibleLine
// coordinates, with the given granularity.
func (g *Grid) StartSelection(line, col int, gran SelectionGranularity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := selectionPoint{line, col}
	g.sel = selection{active: true, anchor: p, ext: p, granularity: gran}
}

// ExtendSelection moves the selection's extent endpoint.
func (g *Grid) ExtendSelection(line, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.sel.active {
		return
	}
	g.sel.ext = selectionPoint{line, col}
}

// ClearSelection drops the current selection.
func (g *Grid) ClearSelection() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sel = selection{}
}

// HasSelection reports whether a selection is currently active.
func (g *Grid) HasSelection() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sel.active
}

// PressSelection records a mouse-button press at (line, col) as the
// tentative start of a click-or-drag selection. A press alone does not
// create a selection — whether it becomes a click (cleared), a long-press
// single-cell selection, or a drag range is decided in ReleaseSelection,
// same as a host distinguishing a click from a drag by watching for
// movement and timing out a motionless press.
func (g *Grid) PressSelection(line, col int, gran SelectionGranularity, ts time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := selectionPoint{line, col}
	g.sel = selection{pressState: pressPressed, pressPoint: p, pressTime: ts, granularity: gran}
}

// DragSelection extends a press into a drag once the pointer moves while
// the button is held. No-op if there is no press in progress.
func (g *Grid) DragSelection(line, col int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sel.pressState == pressIdle {
		return
	}
	g.sel.pressState = pressDragging
	g.sel.anchor = g.sel.pressPoint
	g.sel.ext = selectionPoint{line, col}
	g.sel.active = true
}

// ReleaseSelection ends a press or drag on mouse-button release. A release
// within SelectionClickTimeout of the press, with no intervening drag, is a
// plain click and clears any selection. A longer press without movement
// creates a single-cell selection. A drag completes using the release point
// as its extent. Reports whether a selection exists after the release.
func (g *Grid) ReleaseSelection(line, col int, ts time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.sel.pressState {
	case pressPressed:
		if ts.Sub(g.sel.pressTime) < SelectionClickTimeout {
			g.sel = selection{}
			return false
		}
		g.sel.anchor = g.sel.pressPoint
		g.sel.ext = g.sel.pressPoint
		g.sel.active = true
		g.sel.pressState = pressIdle
		return true
	case pressDragging:
		g.sel.ext = selectionPoint{line, col}
		g.sel.active = true
		g.sel.pressState = pressIdle
		return true
	default:
		return false
	}
}

// IsSelecting reports whether a press or drag is currently in progress
// (button still held), as distinct from HasSelection reporting a completed
// selection.
func (g *Grid) IsSelecting() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sel.pressState != pressIdle
}

// SelectionText extracts the selected text in logical (reading) order,
// collapsing each line's trailing run of default-background blank cells
// so a selection that ends mid-line doesn't carry a tail of spaces, and
// joining lines with "\n". Wide-character continuation cells are skipped
// since their leading cell already carries the full grapheme.
func (g *Grid) SelectionText() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.sel.active {
		return ""
	}

	start, end := g.sel.anchor, g.sel.ext
	if start.line > end.line || (start.line == end.line && start.col > end.col) {
		start, end = end, start
	}

	switch g.sel.granularity {
	case SelectLine:
		start.col = 0
		end.col = g.cols - 1
	case SelectWord:
		start = g.wordBoundary(start, false)
		end = g.wordBoundary(end, true)
	}

	var b strings.Builder
	total := g.scrollback.Len() + g.rows
	for line := start.line; line <= end.line && line < total; line++ {
		row := g.visibleLineLocked(line)
		colStart, colEnd := 0, len(row)-1
		if line == start.line {
			colStart = start.col
		}
		if line == end.line {
			colEnd = end.col
		}
		colEnd = trimTrailingBlank(row, colEnd)
		for c := colStart; c <= colEnd && c < len(row); c++ {
			if row[c].IsContinuation() {
				continue
			}
			if row[c].Grapheme == "" {
				b.WriteByte(' ')
			} else {
				b.WriteString(row[c].Grapheme)
			}
		}
		if line != end.line {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (g *Grid) visibleLineLocked(i int) []Cell {
	sbLen := g.scrollback.Len()
	if i < sbLen {
		return g.scrollback.Line(i)
	}
	row := i - sbLen
	m := g.active()
	return m.cells[m.at(row, 0) : m.at(row, 0)+m.cols]
}

// trimTrailingBlank walks colEnd left past any trailing default-background
// space cells, returning the new (possibly smaller) colEnd.
func trimTrailingBlank(row []Cell, colEnd int) int {
	for colEnd >= 0 && colEnd < len(row) {
		c := row[colEnd]
		if (c.Grapheme == " " || c.Grapheme == "") && c.Attrs.BG.IsDefault() {
			colEnd--
			continue
		}
		break
	}
	return colEnd
}

// wordBoundary expands p to the start (forward=false) or end (forward=true)
// of the word it falls within, treating runs of non-space characters as a
// word.
func (g *Grid) wordBoundary(p selectionPoint, forward bool) selectionPoint {
	row := g.visibleLineLocked(p.line)
	isSpace := func(c int) bool {
		if c < 0 || c >= len(row) {
			return true
		}
		return row[c].Grapheme == " " || row[c].Grapheme == ""
	}
	col := p.col
	if forward {
		for col < len(row)-1 && !isSpace(col+1) {
			col++
		}
	} else {
		for col > 0 && !isSpace(col-1) {
			col--
		}
	}
	return selectionPoint{p.line, col}
}
