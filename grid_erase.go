package vtcore

// eraseRange blanks cells [startCol, endCol) on row with the current pen's
// background, releasing any hyperlinks those cells held.
func (g *Grid) eraseRange(m *matrix, row, startCol, endCol int) {
	blank := BlankCell(m.pen)
	for c := startCol; c < endCol && c < m.cols; c++ {
		if c < 0 {
			continue
		}
		cell := m.cell(row, c)
		if cell.Attrs.HyperlinkID != 0 {
			g.hyperlinks.Release(cell.Attrs.HyperlinkID)
		}
		m.setCell(row, c, blank)
	}
}

// EraseInLine implements EL. mode: 0 = cursor to end, 1 = start to cursor
// inclusive, 2 = whole line.
func (g *Grid) EraseInLine(mode int) {
	m := g.active()
	switch mode {
	case 0:
		g.eraseRange(m, m.cursorRow, m.cursorCol, m.cols)
	case 1:
		g.eraseRange(m, m.cursorRow, 0, m.cursorCol+1)
	case 2:
		g.eraseRange(m, m.cursorRow, 0, m.cols)
	}
}

// EraseInDisplay implements ED. mode: 0 = cursor to end of screen,
// 1 = start of screen to cursor inclusive, 2 = whole screen,
// 3 = whole screen and scrollback.
func (g *Grid) EraseInDisplay(mode int) {
	m := g.active()
	switch mode {
	case 0:
		g.eraseRange(m, m.cursorRow, m.cursorCol, m.cols)
		for r := m.cursorRow + 1; r < m.rows; r++ {
			g.eraseRange(m, r, 0, m.cols)
		}
	case 1:
		for r := 0; r < m.cursorRow; r++ {
			g.eraseRange(m, r, 0, m.cols)
		}
		g.eraseRange(m, m.cursorRow, 0, m.cursorCol+1)
	case 2:
		for r := 0; r < m.rows; r++ {
			g.eraseRange(m, r, 0, m.cols)
		}
	case 3:
		for r := 0; r < m.rows; r++ {
			g.eraseRange(m, r, 0, m.cols)
		}
		for i := 0; i < g.scrollback.Len(); i++ {
			for _, c := range g.scrollback.Line(i) {
				if c.Attrs.HyperlinkID != 0 {
					g.hyperlinks.Release(c.Attrs.HyperlinkID)
				}
			}
		}
		g.scrollback.Clear()
	}
}
