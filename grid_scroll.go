package vtcore

// SetScrollRegion implements DECSTBM. top/bottom are 1-based inclusive as
// given on the wire; 0 for either means "use the default edge."
func (g *Grid) SetScrollRegion(top, bottom int) {
	m := g.active()
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > m.rows {
		bottom = m.rows
	}
	if top >= bottom {
		top, bottom = 1, m.rows
	}
	m.scrollTop = top - 1
	m.scrollBottom = bottom - 1
	m.cursorRow, m.cursorCol = m.scrollTop, 0
	if g.modes.OriginMode {
		m.cursorRow = m.scrollTop
	}
}

// scrollUp shifts the scroll region up by n rows, moving rows that leave
// the top of the region into the scrollback — but only when the primary
// screen is active and the scroll region spans the whole screen, matching
// real terminal behavior (a partial scroll region's content never enters
// scrollback, and the alternate screen never feeds it at all).
func (g *Grid) scrollUp(m *matrix, n int) {
	top, bottom := m.scrollTop, m.scrollBottom
	feedScrollback := !g.onAlt && top == 0 && bottom == m.rows-1
	for i := 0; i < n; i++ {
		if feedScrollback {
			row := make([]Cell, m.cols)
			copy(row, m.cells[m.at(top, 0):m.at(top, 0)+m.cols])
			evicted := g.scrollback.Push(row, g.onError)
			for _, id := range evicted {
				g.hyperlinks.Release(id)
			}
		} else {
			for c := 0; c < m.cols; c++ {
				cell := m.cell(top, c)
				if cell.Attrs.HyperlinkID != 0 {
					g.hyperlinks.Release(cell.Attrs.HyperlinkID)
				}
			}
		}
		for r := top; r < bottom; r++ {
			copy(m.cells[m.at(r, 0):m.at(r, 0)+m.cols], m.cells[m.at(r+1, 0):m.at(r+1, 0)+m.cols])
			m.lineAttrs[r] = m.lineAttrs[r+1]
		}
		blank := BlankCell(m.pen)
		for c := 0; c < m.cols; c++ {
			m.setCell(bottom, c, blank)
		}
		m.lineAttrs[bottom] = LineSingle
	}
}

// scrollDown shifts the scroll region down by n rows (SD / RI at the top
// margin), discarding rows that leave the bottom. Scrollback is never fed
// by a downward scroll.
func (g *Grid) scrollDown(m *matrix, n int) {
	top, bottom := m.scrollTop, m.scrollBottom
	for i := 0; i < n; i++ {
		for c := 0; c < m.cols; c++ {
			cell := m.cell(bottom, c)
			if cell.Attrs.HyperlinkID != 0 {
				g.hyperlinks.Release(cell.Attrs.HyperlinkID)
			}
		}
		for r := bottom; r > top; r-- {
			copy(m.cells[m.at(r, 0):m.at(r, 0)+m.cols], m.cells[m.at(r-1, 0):m.at(r-1, 0)+m.cols])
			m.lineAttrs[r] = m.lineAttrs[r-1]
		}
		blank := BlankCell(m.pen)
		for c := 0; c < m.cols; c++ {
			m.setCell(top, c, blank)
		}
		m.lineAttrs[top] = LineSingle
	}
}

// Index implements IND (ESC D): move down one line, scrolling if already
// at the bottom margin.
func (g *Grid) Index() {
	m := g.active()
	if m.cursorRow == m.scrollBottom {
		g.scrollUp(m, 1)
	} else if m.cursorRow < m.rows-1 {
		m.cursorRow++
	}
	m.pendingWrap = false
}

// ReverseIndex implements RI (ESC M): move up one line, scrolling down if
// already at the top margin.
func (g *Grid) ReverseIndex() {
	m := g.active()
	if m.cursorRow == m.scrollTop {
		g.scrollDown(m, 1)
	} else if m.cursorRow > 0 {
		m.cursorRow--
	}
	m.pendingWrap = false
}

// NextLine implements NEL (ESC E): CR followed by IND.
func (g *Grid) NextLine() {
	m := g.active()
	m.cursorCol = 0
	g.Index()
	_ = m
}

// ScrollUpN implements SU: scroll the whole region up n lines regardless
// of cursor position.
func (g *Grid) ScrollUpN(n int) {
	g.scrollUp(g.active(), n)
}

// ScrollDownN implements SD.
func (g *Grid) ScrollDownN(n int) {
	g.scrollDown(g.active(), n)
}

// CarriageReturn implements CR.
func (g *Grid) CarriageReturn() {
	m := g.active()
	m.cursorCol = 0
	m.pendingWrap = false
}

// LineFeed implements LF.
func (g *Grid) LineFeed() {
	g.Index()
}
