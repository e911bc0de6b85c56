package vtcore

// moveCursorTo sets the cursor to (row, col) on the active matrix, clamped
// to grid bounds. row/col are 0-based absolute screen coordinates on input;
// origin-mode translation, where applied, is done beforehand by the caller
// (see cursorTargetCUP).
func (g *Grid) moveCursorTo(row, col int) {
	m := g.active()
	m.cursorRow = clamp(row, 0, m.rows-1)
	m.cursorCol = clamp(col, 0, m.cols-1)
	m.pendingWrap = false
	g.collapseIfOnContinuation(m)
}

// moveCursorBy moves the cursor relative to its current position, without
// wrapping at line boundaries (CUU/CUD/CUF/CUB semantics — they clamp at
// the edge rather than moving to an adjacent line).
func (g *Grid) moveCursorBy(dRow, dCol int) {
	m := g.active()
	m.cursorRow = clamp(m.cursorRow+dRow, 0, m.rows-1)
	m.cursorCol = clamp(m.cursorCol+dCol, 0, m.cols-1)
	m.pendingWrap = false
	g.collapseIfOnContinuation(m)
}

// cursorTargetCUP translates a CUP/HVP target through DECOM: when
// origin mode is set, row/col 1 addresses the top-left of the scroll
// region rather than the screen.
func (g *Grid) cursorTargetCUP(row, col int) (int, int) {
	m := g.active()
	if g.modes.OriginMode {
		return m.scrollTop + row, col
	}
	return row, col
}

// collapseIfOnContinuation moves the cursor one column left when it lands
// exactly on the trailing half of a wide grapheme, per the resolution that
// a cursor move into a continuation cell collapses onto the cluster's
// leading cell rather than splitting it.
func (g *Grid) collapseIfOnContinuation(m *matrix) {
	if m.cursorCol > 0 && m.cell(m.cursorRow, m.cursorCol).IsContinuation() {
		m.cursorCol--
	}
}

// saveCursor implements DECSC / SCO CSI s: stash position, pen, origin
// mode, wrap mode, pending-wrap state, and the active character set
// designators into the active matrix's single saved-cursor slot.
func (g *Grid) saveCursor() {
	m := g.active()
	m.savedCursorRow = m.cursorRow
	m.savedCursorCol = m.cursorCol
	m.savedPen = m.pen
	m.savedOriginMode = g.modes.OriginMode
	m.savedAutoWrap = g.modes.AutoWrap
	m.savedWrapPending = m.pendingWrap
	m.savedCharset = m.charset
	m.hasSavedCursor = true
}

// restoreCursor implements DECRC / SCO CSI u. If nothing was ever saved,
// this resets to home with default pen, matching real terminal behavior
// rather than doing nothing.
func (g *Grid) restoreCursor() {
	m := g.active()
	if !m.hasSavedCursor {
		m.cursorRow, m.cursorCol = 0, 0
		m.pen = DefaultAttrs
		return
	}
	m.cursorRow = clamp(m.savedCursorRow, 0, m.rows-1)
	m.cursorCol = clamp(m.savedCursorCol, 0, m.cols-1)
	m.pen = m.savedPen
	g.modes.OriginMode = m.savedOriginMode
	g.modes.AutoWrap = m.savedAutoWrap
	m.pendingWrap = m.savedWrapPending
	m.charset = m.savedCharset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
