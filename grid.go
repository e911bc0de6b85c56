package vtcore

import "sync"

// matrix is one screen buffer (primary or alternate): a flat array of
// rows*cols cells plus the state that travels with a screen rather than
// with the terminal as a whole — cursor, pending wrap, pen, saved cursor,
// scroll region, and charset state. Keeping these per-matrix means
// switching to the alternate screen and back restores exactly what was
// there before, with no cross-talk (spec invariant: alt-screen entry/exit
// never perturbs the other screen's state).
type matrix struct {
	cols, rows int
	cells      []Cell

	cursorRow, cursorCol int
	pendingWrap          bool
	pen                  Attrs

	savedCursorRow, savedCursorCol int
	savedPen                       Attrs
	savedOriginMode                bool
	savedAutoWrap                  bool
	savedWrapPending               bool
	savedCharset                   CharsetState
	hasSavedCursor                 bool

	scrollTop, scrollBottom int // inclusive, 0-based

	charset CharsetState

	lineAttrs []LineAttr
}

func newMatrix(rows, cols int) *matrix {
	m := &matrix{
		cols:          cols,
		rows:          rows,
		cells:         make([]Cell, rows*cols),
		scrollBottom:  rows - 1,
		charset:       DefaultCharsetState(),
		lineAttrs:     make([]LineAttr, rows),
	}
	m.fillDefault()
	return m
}

func (m *matrix) fillDefault() {
	blank := BlankCell(DefaultAttrs)
	for i := range m.cells {
		m.cells[i] = blank
	}
}

func (m *matrix) at(row, col int) int {
	return row*m.cols + col
}

func (m *matrix) cell(row, col int) Cell {
	return m.cells[m.at(row, col)]
}

func (m *matrix) setCell(row, col int, c Cell) {
	m.cells[m.at(row, col)] = c
}

// scrollbackRing is a byte-capped FIFO of scrolled-off primary-screen rows.
type scrollbackRing struct {
	lines    [][]Cell
	byteSize []int
	total    int
	cap      int
}

func newScrollbackRing(capBytes int) *scrollbackRing {
	return &scrollbackRing{cap: capBytes}
}

func cellBytes(row []Cell) int {
	n := 0
	for _, c := range row {
		n += len(c.Grapheme) + 1 // +1 for a rough fixed per-cell attr overhead
	}
	return n
}

// Push appends a scrolled-off row, evicting the oldest rows as needed to
// stay within the byte cap. Returns the hyperlink ids that were released
// as a result of eviction, so the caller can drop table references.
func (r *scrollbackRing) Push(row []Cell, onError ErrorCallback) (evictedIDs []uint32) {
	sz := cellBytes(row)
	r.lines = append(r.lines, row)
	r.byteSize = append(r.byteSize, sz)
	r.total += sz
	for r.total > r.cap && len(r.lines) > 0 {
		old := r.lines[0]
		for _, c := range old {
			if c.Attrs.HyperlinkID != 0 {
				evictedIDs = append(evictedIDs, c.Attrs.HyperlinkID)
			}
		}
		r.total -= r.byteSize[0]
		r.lines = r.lines[1:]
		r.byteSize = r.byteSize[1:]
		if onError != nil {
			onError(ResourceLimit, ErrorContext{Detail: "scrollback byte cap evicted oldest line"})
		}
	}
	return evictedIDs
}

// Len returns the number of scrollback lines currently retained.
func (r *scrollbackRing) Len() int {
	return len(r.lines)
}

// Line returns scrollback line i (0 = oldest).
func (r *scrollbackRing) Line(i int) []Cell {
	return r.lines[i]
}

// Clear discards all scrollback content.
func (r *scrollbackRing) Clear() {
	r.lines = nil
	r.byteSize = nil
	r.total = 0
}

// Grid is the full screen model: primary and alternate matrices, the
// shared scrollback (fed only from the primary screen, per spec), the
// hyperlink table, palette, mode set, and the mutex that guards every
// mutation. One Grid backs one terminal session.
type Grid struct {
	mu sync.RWMutex

	cols, rows int

	primary *matrix
	alt     *matrix
	onAlt   bool

	scrollback *scrollbackRing
	hyperlinks *hyperlinkTable
	palette    *Palette
	modes      Modes

	cwd string

	shellZones []ShellZoneMark

	sel selection

	onError ErrorCallback
}

// ShellZoneKind tags an OSC 133 shell-integration marker.
type ShellZoneKind byte

const (
	ShellZonePromptStart  ShellZoneKind = 'A'
	ShellZonePromptEnd    ShellZoneKind = 'B'
	ShellZoneCommandStart ShellZoneKind = 'C'
	ShellZoneCommandEnd   ShellZoneKind = 'D'
)

// ShellZoneMark is one recorded OSC 133 marker: its kind and the cursor row
// it was emitted on at the time.
type ShellZoneMark struct {
	Kind ShellZoneKind
	Row  int
}

// maxShellZones bounds the marker history so a runaway shell doesn't grow
// this slice without limit; oldest markers are dropped first.
const maxShellZones = 1000

// recordShellZone appends an OSC 133 marker for the given kind at the
// cursor's current row. Callers must already hold the write lease (it is
// called from inside Executor.Apply, same as the direct cwd assignment for
// OSC 7). Unrecognized kind bytes are ignored.
func (g *Grid) recordShellZone(kind byte) {
	switch ShellZoneKind(kind) {
	case ShellZonePromptStart, ShellZonePromptEnd, ShellZoneCommandStart, ShellZoneCommandEnd:
	default:
		return
	}
	m := g.active()
	g.shellZones = append(g.shellZones, ShellZoneMark{Kind: ShellZoneKind(kind), Row: m.cursorRow})
	if len(g.shellZones) > maxShellZones {
		g.shellZones = g.shellZones[len(g.shellZones)-maxShellZones:]
	}
}

// ShellZones returns a copy of the recorded OSC 133 markers.
func (g *Grid) ShellZones() []ShellZoneMark {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ShellZoneMark, len(g.shellZones))
	copy(out, g.shellZones)
	return out
}

// NewGrid creates a Grid of the given dimensions with default modes, a
// fresh hyperlink table, and the default palette. scrollbackCapBytes of 0
// selects the spec default (50 MiB).
func NewGrid(rows, cols, scrollbackCapBytes int) *Grid {
	if scrollbackCapBytes <= 0 {
		scrollbackCapBytes = 50 * 1024 * 1024
	}
	return &Grid{
		cols:       cols,
		rows:       rows,
		primary:    newMatrix(rows, cols),
		alt:        newMatrix(rows, cols),
		scrollback: newScrollbackRing(scrollbackCapBytes),
		hyperlinks: newHyperlinkTable(),
		palette:    DefaultPalette(),
		modes:      DefaultModes(),
	}
}

// SetErrorCallback installs the callback used to report recoverable
// runtime errors (malformed semantics, resource limits) observed while
// applying actions.
func (g *Grid) SetErrorCallback(cb ErrorCallback) {
	g.onError = cb
}

// active returns the matrix currently displayed (primary or alternate).
func (g *Grid) active() *matrix {
	if g.onAlt {
		return g.alt
	}
	return g.primary
}

// Dimensions returns the current grid size.
func (g *Grid) Dimensions() (rows, cols int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rows, g.cols
}

// Cursor returns the cursor position of the active screen, 0-based.
func (g *Grid) Cursor() (row, col int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m := g.active()
	return m.cursorRow, m.cursorCol
}

// Cell returns a copy of the cell at (row, col) on the active screen.
func (g *Grid) Cell(row, col int) Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active().cell(row, col)
}

// Hyperlink resolves a hyperlink id to its target, for renderer use.
func (g *Grid) Hyperlink(id uint32) Hyperlink {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.hyperlinks.Lookup(id)
}

// Modes returns a copy of the current mode set.
func (g *Grid) Modes() Modes {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.modes
}

// ScrollbackLen returns the number of retained scrollback lines.
func (g *Grid) ScrollbackLen() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scrollback.Len()
}

// Resize changes the grid dimensions, growing/shrinking both matrices.
// Content is preserved top-left-anchored; rows beyond the new height are
// dropped (not pushed to scrollback — a live resize is not a scroll, per
// spec Open Questions resolution recorded in DESIGN.md) and the cursor is
// clamped into the new bounds.
func (g *Grid) Resize(rows, cols int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g.primary = resizeMatrix(g.primary, rows, cols)
	g.alt = resizeMatrix(g.alt, rows, cols)
	g.rows, g.cols = rows, cols
}

func resizeMatrix(old *matrix, rows, cols int) *matrix {
	m := newMatrix(rows, cols)
	m.pen = old.pen
	m.charset = old.charset
	m.scrollTop, m.scrollBottom = 0, rows-1
	copyRows := min(rows, old.rows)
	copyCols := min(cols, old.cols)
	for r := 0; r < copyRows; r++ {
		for c := 0; c < copyCols; c++ {
			m.setCell(r, c, old.cell(r, c))
		}
		if r < len(old.lineAttrs) {
			m.lineAttrs[r] = old.lineAttrs[r]
		}
	}
	m.cursorRow = min(old.cursorRow, rows-1)
	m.cursorCol = min(old.cursorCol, cols-1)
	m.pendingWrap = old.pendingWrap && m.cursorCol == m.cols-1

	m.hasSavedCursor = old.hasSavedCursor
	m.savedCursorRow = min(old.savedCursorRow, rows-1)
	m.savedCursorCol = min(old.savedCursorCol, cols-1)
	m.savedPen = old.savedPen
	m.savedOriginMode = old.savedOriginMode
	m.savedAutoWrap = old.savedAutoWrap
	m.savedWrapPending = old.savedWrapPending && m.savedCursorCol == m.cols-1
	m.savedCharset = old.savedCharset
	return m
}
