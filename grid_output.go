package vtcore

// Print writes one grapheme cluster at the cursor, applying auto-wrap,
// insert-mode shifting, and wide-character continuation-cell bookkeeping.
// text has already been through charset translation by the caller.
func (g *Grid) Print(text string, width int) {
	m := g.active()
	if width <= 0 {
		width = 1
	}

	if m.pendingWrap {
		if g.modes.AutoWrap {
			g.lineFeedCursorOnly(m)
			m.cursorCol = 0
		}
		m.pendingWrap = false
	}

	if m.cursorCol+width > m.cols {
		if g.modes.AutoWrap {
			g.lineFeedCursorOnly(m)
			m.cursorCol = 0
		} else {
			// no-wrap: clamp into the last column, overwriting it
			m.cursorCol = m.cols - width
			if m.cursorCol < 0 {
				m.cursorCol = 0
			}
		}
	}

	if g.modes.InsertMode {
		g.shiftRightForInsert(m, m.cursorRow, m.cursorCol, width)
	} else {
		g.releaseOverwritten(m, m.cursorRow, m.cursorCol, width)
	}

	id := m.pen.HyperlinkID
	if id != 0 {
		g.hyperlinks.Acquire(id)
	}
	m.setCell(m.cursorRow, m.cursorCol, Cell{Grapheme: text, Width: uint8(width), Attrs: m.pen})
	for i := 1; i < width; i++ {
		col := m.cursorCol + i
		if col >= m.cols {
			break
		}
		m.setCell(m.cursorRow, col, Cell{Width: 0, Attrs: m.pen})
	}

	m.cursorCol += width
	if m.cursorCol >= m.cols {
		m.cursorCol = m.cols - 1
		m.pendingWrap = true
	}
}

// releaseOverwritten drops hyperlink references held by cells about to be
// overwritten by a Print or insert, so the table does not leak.
func (g *Grid) releaseOverwritten(m *matrix, row, col, width int) {
	for i := 0; i < width && col+i < m.cols; i++ {
		c := m.cell(row, col+i)
		if c.Attrs.HyperlinkID != 0 {
			g.hyperlinks.Release(c.Attrs.HyperlinkID)
		}
	}
}

// shiftRightForInsert implements IRM: shift cells from col to the end of
// line right by width before writing, discarding whatever falls off the
// right edge (releasing its hyperlinks).
func (g *Grid) shiftRightForInsert(m *matrix, row, col, width int) {
	dropFrom := m.cols - width
	if dropFrom < col {
		dropFrom = col
	}
	for c := dropFrom; c < m.cols; c++ {
		if id := m.cell(row, c).Attrs.HyperlinkID; id != 0 {
			g.hyperlinks.Release(id)
		}
	}
	for c := m.cols - 1; c >= col+width; c-- {
		m.setCell(row, c, m.cell(row, c-width))
	}
}

// lineFeedCursorOnly advances to the next row without touching the column,
// scrolling the region if already on the bottom line. Used by Print's
// auto-wrap path, distinct from the LF control (grid_scroll.go) which also
// honors CR-on-LF linefeed-newline mode if ever added.
func (g *Grid) lineFeedCursorOnly(m *matrix) {
	if m.cursorRow == m.scrollBottom {
		g.scrollUp(m, 1)
	} else if m.cursorRow < m.rows-1 {
		m.cursorRow++
	}
}
