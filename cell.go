package vtcore

// UnderlineStyle distinguishes the SGR 4:x sub-parameter underline forms.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Attrs is the SGR attribute state applied to a cell: the "pen" a grid
// carries between writes, and the value stamped into every cell printed
// under it.
type Attrs struct {
	FG                Color
	BG                Color
	Bold              bool
	Dim               bool
	Italic            bool
	UnderlineStyle    UnderlineStyle
	UnderlineColor    Color
	HasUnderlineColor bool
	Blink             bool
	Reverse           bool
	Strikethrough     bool
	Hidden            bool
	HyperlinkID       uint32 // 0 means "no active hyperlink"
}

// DefaultAttrs is the attribute state after RIS or a cleared SGR list.
var DefaultAttrs = Attrs{FG: DefaultColor, BG: DefaultColor}

// Underline reports whether any underline style is active; kept for callers
// that only care about the legacy boolean meaning of SGR 4.
func (a Attrs) Underline() bool {
	return a.UnderlineStyle != UnderlineNone
}

// LineAttr tags a row with a DEC line-attribute state (DECDWL/DECDHL/
// DECSWL, set via ESC # 3/4/5/6, and DECALN via ESC # 8). Rendering of
// double-width/height is a host/renderer concern; the grid only carries
// the tag so a renderer can honor it.
type LineAttr uint8

const (
	LineSingle     LineAttr = iota // DECSWL: single-width, single-height
	LineDoubleTop                  // DECDHL top half
	LineDoubleBot                  // DECDHL bottom half
	LineDoubleWide                 // DECDWL: double-width, single-height
)

// Cell is one position in a Grid matrix. A grapheme cluster wider than one
// column occupies Width columns; the leading cell holds Grapheme and the
// full Width, and the trailing continuation cells carry Width == 0 and an
// empty Grapheme so cursor math can skip or collapse them without special
// casing every caller.
type Cell struct {
	Grapheme string
	Width    uint8
	Attrs    Attrs
}

// IsContinuation reports whether c is the trailing half of a wide grapheme.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// BlankCell returns an empty, single-width cell carrying the given pen
// attributes — what erase operations write and what a new row is
// initialized with.
func BlankCell(pen Attrs) Cell {
	return Cell{Grapheme: " ", Width: 1, Attrs: pen}
}
