package vtcore

// MouseDiscipline selects which mouse events are reported.
type MouseDiscipline uint8

const (
	MouseOff MouseDiscipline = iota
	MouseX10                 // button-press only, no modifiers
	MouseButtonEvent         // press + release
	MouseAnyEvent            // press + release + motion
)

// MouseEncoding selects how a mouse report is formatted on the wire.
type MouseEncoding uint8

const (
	MouseEncodingDefault MouseEncoding = iota // legacy X10 byte encoding
	MouseEncodingSGR
	MouseEncodingUTF8
)

// CursorShape is the DECSCUSR cursor rendering style.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Modes holds the boolean/enum terminal modes that are not per-cell state:
// DEC private modes, mouse reporting configuration, and cursor appearance.
// These live on the Grid rather than per-matrix, since most (mouse, focus,
// bracketed paste) describe host/UI behavior rather than screen content —
// the exceptions (origin mode, auto-wrap, insert mode) are tracked here too
// for simplicity, so they are shared by both screens and are not reset on
// alt-screen entry; origin mode and auto-wrap travel with the saved cursor
// (grid_cursor.go) instead.
type Modes struct {
	OriginMode            bool // DECOM
	AutoWrap              bool // DECAWM, default true
	InsertMode            bool // IRM
	ApplicationCursorKeys bool // DECCKM
	ApplicationKeypad     bool // DECNKM / DECKPAM
	ShowCursor            bool // DECTCEM, default true
	BracketedPaste        bool // mode 2004
	FocusReporting        bool // mode 1004
	ReverseVideo          bool // DECSCNM

	Mouse         MouseDiscipline
	MouseEncoding MouseEncoding

	CursorShape CursorShape
	CursorBlink bool

	AmbiguousWidth ambiguousWidthMode
}

// DefaultModes returns the mode set in effect after RIS.
func DefaultModes() Modes {
	return Modes{
		AutoWrap:    true,
		ShowCursor:  true,
		CursorBlink: true,
	}
}

// Charset identifies one of the designatable character sets relevant to a
// terminal emulator core (the rest — national replacement sets a real VT
// supported — are accepted as designations but rendered as ASCII, since
// this implementation stores UTF-8 graphemes rather than a legacy 8-bit
// code page).
type Charset byte

const (
	CharsetASCII      Charset = 'B'
	CharsetDECSpecial Charset = '0' // DEC Special Graphics (line drawing)
	CharsetUK         Charset = 'A'
)

// CharsetState tracks the four designatable slots (G0-G3) and which one is
// currently invoked into GL by SI/SO (and, for G2/G3, SS2/SS3 single
// shifts).
type CharsetState struct {
	G           [4]Charset
	GL          int // index 0-3 of the slot currently invoked via SI/SO
	SingleShift int // -1 normally; 2 or 3 immediately after SS2/SS3, consumed by the next Print
}

// DefaultCharsetState returns the state in effect after RIS: all slots
// ASCII, G0 invoked.
func DefaultCharsetState() CharsetState {
	return CharsetState{G: [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}, SingleShift: -1}
}

// Active returns the charset currently in effect for the next printed
// grapheme, consuming any pending single shift.
func (c *CharsetState) Active() Charset {
	if c.SingleShift >= 0 {
		cs := c.G[c.SingleShift]
		c.SingleShift = -1
		return cs
	}
	return c.G[c.GL]
}

// decSpecialGraphics maps ASCII bytes 0x5f-0x7e to their DEC Special
// Graphics line-drawing glyphs, used when CharsetDECSpecial is invoked.
var decSpecialGraphics = map[byte]rune{
	'_': ' ',
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌',
	'd': '␍', 'e': '␊', 'f': '°', 'g': '±',
	'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺',
	'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π',
	'|': '≠', '}': '£', '~': '·',
}

// translateCharset maps a printed grapheme through the active charset's
// substitution table. Only single-rune ASCII clusters are substituted;
// anything wider (already-decoded UTF-8 text, combining sequences) passes
// through unchanged, since the DEC special graphics set only remaps the
// 7-bit ASCII range.
func translateCharset(cs Charset, text string) string {
	if cs != CharsetDECSpecial || len(text) != 1 {
		return text
	}
	if g, ok := decSpecialGraphics[text[0]]; ok {
		return string(g)
	}
	return text
}
