package vtcore

// InsertChars implements ICH: insert n blank cells at the cursor, shifting
// the rest of the line right and discarding what falls off the edge.
func (g *Grid) InsertChars(n int) {
	m := g.active()
	g.splitContinuationAt(m, m.cursorRow, m.cursorCol)
	g.shiftRightForInsert(m, m.cursorRow, m.cursorCol, n)
	blank := BlankCell(m.pen)
	for c := m.cursorCol; c < m.cursorCol+n && c < m.cols; c++ {
		m.setCell(m.cursorRow, c, blank)
	}
}

// DeleteChars implements DCH: remove n cells at the cursor, shifting the
// remainder of the line left and filling the vacated end with blanks.
func (g *Grid) DeleteChars(n int) {
	m := g.active()
	row, col := m.cursorRow, m.cursorCol
	g.splitContinuationAt(m, row, col)
	for c := col; c < col+n && c < m.cols; c++ {
		cell := m.cell(row, c)
		if cell.Attrs.HyperlinkID != 0 {
			g.hyperlinks.Release(cell.Attrs.HyperlinkID)
		}
	}
	remaining := m.cols - col - n
	if remaining > 0 {
		copy(m.cells[m.at(row, col):m.at(row, col)+remaining], m.cells[m.at(row, col+n):m.at(row, col+n)+remaining])
	}
	blank := BlankCell(m.pen)
	start := col + remaining
	if start < col {
		start = col
	}
	for c := start; c < m.cols; c++ {
		m.setCell(row, c, blank)
	}
}

// EraseChars implements ECH: blank n cells at the cursor in place, without
// shifting anything.
func (g *Grid) EraseChars(n int) {
	m := g.active()
	g.eraseRange(m, m.cursorRow, m.cursorCol, m.cursorCol+n)
}

// InsertLines implements IL: insert n blank lines at the cursor row within
// the scroll region, pushing lines below down and off the bottom margin.
func (g *Grid) InsertLines(n int) {
	m := g.active()
	if m.cursorRow < m.scrollTop || m.cursorRow > m.scrollBottom {
		return
	}
	savedTop := m.scrollTop
	m.scrollTop = m.cursorRow
	g.scrollDown(m, n)
	m.scrollTop = savedTop
}

// DeleteLines implements DL: remove n lines at the cursor row within the
// scroll region, pulling lines below up and blanking the bottom margin.
func (g *Grid) DeleteLines(n int) {
	m := g.active()
	if m.cursorRow < m.scrollTop || m.cursorRow > m.scrollBottom {
		return
	}
	savedTop := m.scrollTop
	m.scrollTop = m.cursorRow
	g.scrollUp(m, n)
	m.scrollTop = savedTop
}

// splitContinuationAt ensures col does not land inside a wide grapheme's
// continuation cell before an edit that shifts content; it blanks the
// whole cluster rather than leaving an orphaned continuation cell, since
// continuation cells are only ever meaningful immediately after their
// leader.
func (g *Grid) splitContinuationAt(m *matrix, row, col int) {
	if col <= 0 || col >= m.cols {
		return
	}
	if m.cell(row, col).IsContinuation() {
		lead := m.cell(row, col-1)
		if lead.Attrs.HyperlinkID != 0 {
			g.hyperlinks.Release(lead.Attrs.HyperlinkID)
		}
		blank := BlankCell(m.pen)
		m.setCell(row, col-1, blank)
		m.setCell(row, col, blank)
	}
}
