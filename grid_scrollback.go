package vtcore

// ScrollbackLine returns a copy of scrollback line i (0 = oldest). It
// panics on an out-of-range index; callers should check ScrollbackLen
// first, matching the convention used by the active-screen Cell accessor.
func (g *Grid) ScrollbackLine(i int) []Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	line := g.scrollback.Line(i)
	out := make([]Cell, len(line))
	copy(out, line)
	return out
}

// ClearScrollback discards all retained scrollback content and releases
// any hyperlinks it held.
func (g *Grid) ClearScrollback() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < g.scrollback.Len(); i++ {
		for _, c := range g.scrollback.Line(i) {
			if c.Attrs.HyperlinkID != 0 {
				g.hyperlinks.Release(c.Attrs.HyperlinkID)
			}
		}
	}
	g.scrollback.Clear()
}

// VisibleLine returns one row of the combined scrollback+screen view, as
// addressed by a renderer/selection: index 0 is the oldest scrollback
// line, and indices ScrollbackLen()..ScrollbackLen()+rows-1 are the
// on-screen rows (regardless of which matrix is active).
func (g *Grid) VisibleLine(i int) []Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	sbLen := g.scrollback.Len()
	if i < sbLen {
		line := g.scrollback.Line(i)
		out := make([]Cell, len(line))
		copy(out, line)
		return out
	}
	row := i - sbLen
	m := g.active()
	out := make([]Cell, m.cols)
	copy(out, m.cells[m.at(row, 0):m.at(row, 0)+m.cols])
	return out
}

// VisibleLineCount returns the total number of addressable rows via
// VisibleLine: scrollback plus the current screen height.
func (g *Grid) VisibleLineCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scrollback.Len() + g.rows
}
