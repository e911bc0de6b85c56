package vtcore

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Executor applies Actions produced by a Parser to a Grid, owning all
// clamping, origin-mode translation, and error-callback invocation. It is
// the only component that holds both a Grid and a Sink.
type Executor struct {
	grid    *Grid
	sink    Sink
	onError ErrorCallback
}

// NewExecutor creates an Executor bound to grid and sink.
func NewExecutor(grid *Grid, sink Sink) *Executor {
	if sink == nil {
		sink = NopSink{}
	}
	return &Executor{grid: grid, sink: sink}
}

// SetErrorCallback installs the callback used to report recoverable
// semantic errors (malformed SGR, unknown final bytes).
func (e *Executor) SetErrorCallback(cb ErrorCallback) {
	e.onError = cb
	e.grid.SetErrorCallback(cb)
}

func (e *Executor) reportError(kind ErrorKind, detail string) {
	if e.onError != nil {
		e.onError(kind, ErrorContext{Detail: detail})
	}
}

// Apply runs one Action against the grid, taking the write lease for its
// duration.
func (e *Executor) Apply(a Action) {
	e.grid.mu.Lock()
	defer e.grid.mu.Unlock()

	switch act := a.(type) {
	case PrintAction:
		e.applyPrint(act)
	case ExecuteAction:
		e.applyExecute(act)
	case CSIAction:
		e.applyCSI(act)
	case ESCAction:
		e.applyESC(act)
	case OSCAction:
		e.applyOSC(act)
	case DCSAction:
		e.applyDCS(act)
	case CharsetDesignateAction:
		e.grid.active().charset.G[act.Slot] = Charset(act.Charset)
	case ApcAction:
		// not interpreted; parsed and discarded per spec.
	}
}

func (e *Executor) applyPrint(act PrintAction) {
	m := e.grid.active()
	text := translateCharset(m.charset.Active(), act.Text)
	e.grid.Print(text, act.Width)
}

func (e *Executor) applyExecute(act ExecuteAction) {
	g := e.grid
	switch act.Code {
	case 0x07: // BEL
		e.sink.Bell()
	case 0x08: // BS
		g.moveCursorBy(0, -1)
	case 0x09: // HT
		e.tabForward()
	case 0x0a: // LF
		g.LineFeed()
	case 0x0b: // VT -- treated as LF
		g.LineFeed()
	case 0x0c: // FF -- treated as LF
		g.LineFeed()
	case 0x0d: // CR
		g.CarriageReturn()
	case 0x0e: // SO -- invoke G1 into GL
		g.active().charset.GL = 1
	case 0x0f: // SI -- invoke G0 into GL
		g.active().charset.GL = 0
	case 0x84: // IND (C1 form)
		g.Index()
	case 0x85: // NEL (C1 form)
		g.NextLine()
	case 0x88: // HTS -- tab stop set; tab stops not modeled, no-op
	case 0x8d: // RI (C1 form)
		g.ReverseIndex()
	default:
		// other C0/C1 controls have no effect in this model
	}
}

func (e *Executor) tabForward() {
	m := e.grid.active()
	next := ((m.cursorCol / 8) + 1) * 8
	if next >= m.cols {
		next = m.cols - 1
	}
	m.cursorCol = next
	m.pendingWrap = false
}

// applyESC dispatches non-CSI escape sequences: DEC line attributes
// (ESC # n), character-set shortcuts handled already by the parser as
// CharsetDesignateAction, and the remaining single/double-byte forms.
func (e *Executor) applyESC(act ESCAction) {
	g := e.grid
	if len(act.Intermediates) == 1 && act.Intermediates[0] == '#' {
		e.applyDECLineAttr(act.Final)
		return
	}
	switch act.Final {
	case '7': // DECSC
		g.saveCursor()
	case '8': // DECRC
		g.restoreCursor()
	case '=': // DECKPAM
		g.modes.ApplicationKeypad = true
	case '>': // DECKPNM
		g.modes.ApplicationKeypad = false
	case 'c': // RIS
		e.reset()
	case 'D': // IND
		g.Index()
	case 'E': // NEL
		g.NextLine()
	case 'M': // RI
		g.ReverseIndex()
	case 'N': // SS2
		g.active().charset.SingleShift = 2
	case 'O': // SS3
		g.active().charset.SingleShift = 3
	default:
		e.reportError(UnknownSequence, fmt.Sprintf("unrecognized ESC %q %c", act.Intermediates, act.Final))
	}
}

func (e *Executor) applyDECLineAttr(final byte) {
	m := e.grid.active()
	row := m.cursorRow
	switch final {
	case '3':
		m.lineAttrs[row] = LineDoubleTop
	case '4':
		m.lineAttrs[row] = LineDoubleBot
	case '5':
		m.lineAttrs[row] = LineSingle
	case '6':
		m.lineAttrs[row] = LineDoubleWide
	case '8': // DECALN: fill screen with 'E'
		for r := 0; r < m.rows; r++ {
			for c := 0; c < m.cols; c++ {
				m.setCell(r, c, Cell{Grapheme: "E", Width: 1, Attrs: DefaultAttrs})
			}
		}
	}
}

// reset implements RIS: reinitialize the grid to power-on defaults without
// reallocating the matrices (dimensions are preserved).
func (e *Executor) reset() {
	g := e.grid
	rows, cols := g.rows, g.cols
	g.primary = newMatrix(rows, cols)
	g.alt = newMatrix(rows, cols)
	g.onAlt = false
	g.scrollback.Clear()
	g.hyperlinks = newHyperlinkTable()
	g.palette = DefaultPalette()
	g.modes = DefaultModes()
	g.sel = selection{}
}

func (e *Executor) param(act CSIAction, idx, def int) int {
	if idx >= len(act.Params) || act.Params[idx] == 0 {
		return def
	}
	return act.Params[idx]
}

func (e *Executor) applyCSI(act CSIAction) {
	g := e.grid
	p := func(idx, def int) int { return e.param(act, idx, def) }

	if act.Prefix == '?' {
		e.applyPrivateCSI(act)
		return
	}
	if act.Prefix == '>' && act.Final == 'c' {
		e.sink.WriteHost([]byte("\x1b[>0;0;0c"))
		return
	}

	switch act.Final {
	case 'A': // CUU
		g.moveCursorBy(-max1(p(0, 1)), 0)
	case 'B': // CUD
		g.moveCursorBy(max1(p(0, 1)), 0)
	case 'C': // CUF
		g.moveCursorBy(0, max1(p(0, 1)))
	case 'D': // CUB
		g.moveCursorBy(0, -max1(p(0, 1)))
	case 'E': // CNL
		g.moveCursorBy(max1(p(0, 1)), 0)
		g.active().cursorCol = 0
	case 'F': // CPL
		g.moveCursorBy(-max1(p(0, 1)), 0)
		g.active().cursorCol = 0
	case 'G': // CHA
		row := g.active().cursorRow
		g.moveCursorTo(row, p(0, 1)-1)
	case 'H', 'f': // CUP / HVP
		row, col := p(0, 1)-1, p(1, 1)-1
		tr, tc := g.cursorTargetCUP(row, col)
		g.moveCursorTo(tr, tc)
	case 'I': // CHT
		for i := 0; i < max1(p(0, 1)); i++ {
			e.tabForward()
		}
	case 'J': // ED
		g.EraseInDisplay(p(0, 0))
	case 'K': // EL
		g.EraseInLine(p(0, 0))
	case 'L': // IL
		g.InsertLines(max1(p(0, 1)))
	case 'M': // DL
		g.DeleteLines(max1(p(0, 1)))
	case 'P': // DCH
		g.DeleteChars(max1(p(0, 1)))
	case 'S': // SU
		g.ScrollUpN(max1(p(0, 1)))
	case 'T': // SD
		g.ScrollDownN(max1(p(0, 1)))
	case 'X': // ECH
		g.EraseChars(max1(p(0, 1)))
	case 'Z': // CBT
		m := g.active()
		for i := 0; i < max1(p(0, 1)); i++ {
			prev := ((m.cursorCol - 1) / 8) * 8
			if prev < 0 {
				prev = 0
			}
			m.cursorCol = prev
		}
	case '@': // ICH
		g.InsertChars(max1(p(0, 1)))
	case '`': // HPA (same as CHA)
		row := g.active().cursorRow
		g.moveCursorTo(row, p(0, 1)-1)
	case 'a': // HPR
		g.moveCursorBy(0, max1(p(0, 1)))
	case 'd': // VPA
		col := g.active().cursorCol
		g.moveCursorTo(p(0, 1)-1, col)
	case 'e': // VPR
		g.moveCursorBy(max1(p(0, 1)), 0)
	case 'c': // DA
		e.sink.WriteHost([]byte("\x1b[?62c"))
	case 'n': // DSR
		e.applyDSR(p(0, 0))
	case 'r': // DECSTBM
		g.SetScrollRegion(p(0, 1), p(1, 0))
	case 's': // SCO save cursor (no private prefix form)
		g.saveCursor()
	case 'u': // SCO restore cursor
		g.restoreCursor()
	case 'm': // SGR
		e.applySGR(act)
	case 'q':
		if len(act.Intermediates) == 1 && act.Intermediates[0] == ' ' {
			e.applyDECSCUSR(p(0, 0))
		}
	case 't':
		e.applyWindowManipulation(act, p)
	default:
		e.reportError(UnknownSequence, fmt.Sprintf("unrecognized CSI final %q", act.Final))
	}
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func (e *Executor) applyDSR(n int) {
	switch n {
	case 5:
		e.sink.WriteHost([]byte("\x1b[0n"))
	case 6:
		m := e.grid.active()
		e.sink.WriteHost([]byte(fmt.Sprintf("\x1b[%d;%dR", m.cursorRow+1, m.cursorCol+1)))
	}
}

func (e *Executor) applyDECSCUSR(n int) {
	m := &e.grid.modes
	switch n {
	case 0, 1:
		m.CursorShape, m.CursorBlink = CursorBlock, true
	case 2:
		m.CursorShape, m.CursorBlink = CursorBlock, false
	case 3:
		m.CursorShape, m.CursorBlink = CursorUnderline, true
	case 4:
		m.CursorShape, m.CursorBlink = CursorUnderline, false
	case 5:
		m.CursorShape, m.CursorBlink = CursorBar, true
	case 6:
		m.CursorShape, m.CursorBlink = CursorBar, false
	}
}

// applyWindowManipulation implements the CSI 8;rows;cols t resize request;
// other window-manipulation ops are accepted and ignored since they refer
// to windowing-toolkit state outside this package's scope.
func (e *Executor) applyWindowManipulation(act CSIAction, p func(int, int) int) {
	if p(0, 0) == 8 {
		e.sink.ResizeRequest(p(1, 0), p(2, 0))
	}
}

// --- private-mode CSI (DEC ?-prefixed) ---

func (e *Executor) applyPrivateCSI(act CSIAction) {
	g := e.grid
	switch act.Final {
	case 'h':
		for _, p := range act.Params {
			e.setPrivateMode(p, true)
		}
	case 'l':
		for _, p := range act.Params {
			e.setPrivateMode(p, false)
		}
	case 's': // DECSC alias with '?' prefix not standard, but some emit it
		g.saveCursor()
	case 'u':
		g.restoreCursor()
	default:
		e.reportError(UnknownSequence, fmt.Sprintf("unrecognized private CSI final %q", act.Final))
	}
}

func (e *Executor) setPrivateMode(mode int, on bool) {
	g := e.grid
	switch mode {
	case 1: // DECCKM
		g.modes.ApplicationCursorKeys = on
	case 6: // DECOM
		g.modes.OriginMode = on
		m := g.active()
		if on {
			m.cursorRow, m.cursorCol = m.scrollTop, 0
		} else {
			m.cursorRow, m.cursorCol = 0, 0
		}
	case 7: // DECAWM
		g.modes.AutoWrap = on
	case 12: // att610 cursor blink (legacy alias)
		g.modes.CursorBlink = on
	case 25: // DECTCEM
		g.modes.ShowCursor = on
	case 47: // alt screen, no clear/save
		if on {
			g.EnterAltScreen(false, false)
		} else {
			g.ExitAltScreen(false)
		}
	case 1000: // X10 mouse
		g.modes.Mouse = condMouse(on, MouseX10)
	case 1002: // button-event mouse
		g.modes.Mouse = condMouse(on, MouseButtonEvent)
	case 1003: // any-event mouse
		g.modes.Mouse = condMouse(on, MouseAnyEvent)
	case 1004: // focus reporting
		g.modes.FocusReporting = on
	case 1006: // SGR mouse encoding
		if on {
			g.modes.MouseEncoding = MouseEncodingSGR
		} else if g.modes.MouseEncoding == MouseEncodingSGR {
			g.modes.MouseEncoding = MouseEncodingDefault
		}
	case 1005: // UTF-8 mouse encoding
		if on {
			g.modes.MouseEncoding = MouseEncodingUTF8
		} else if g.modes.MouseEncoding == MouseEncodingUTF8 {
			g.modes.MouseEncoding = MouseEncodingDefault
		}
	case 1047: // alt screen, clear on entry, no save/restore
		if on {
			g.EnterAltScreen(false, true)
		} else {
			g.ExitAltScreen(false)
		}
	case 1048: // save/restore cursor only
		if on {
			g.saveCursor()
		} else {
			g.restoreCursor()
		}
	case 1049: // alt screen, save+clear on entry, restore on exit
		if on {
			g.EnterAltScreen(true, true)
		} else {
			g.ExitAltScreen(true)
		}
	case 2004: // bracketed paste
		g.modes.BracketedPaste = on
	case 5: // DECSCNM reverse video
		g.modes.ReverseVideo = on
	default:
		e.reportError(UnknownSequence, fmt.Sprintf("unrecognized private mode %d", mode))
	}
}

func condMouse(on bool, disc MouseDiscipline) MouseDiscipline {
	if on {
		return disc
	}
	return MouseOff
}

// --- SGR ---

// resetPen restores a matrix's pen to defaults, releasing any hyperlink it
// held first so SGR 0 (or an empty SGR) doesn't leak a refcount in
// hyperlinkTable for a link closed implicitly rather than via OSC 8.
func (e *Executor) resetPen(m *matrix) {
	if m.pen.HyperlinkID != 0 {
		e.grid.hyperlinks.Release(m.pen.HyperlinkID)
	}
	m.pen = DefaultAttrs
}

func (e *Executor) applySGR(act CSIAction) {
	m := e.grid.active()
	params := act.Params
	if len(params) == 0 {
		e.resetPen(m)
		return
	}
	for i := 0; i < len(params); i++ {
		n := params[i]
		switch {
		case n == 0:
			e.resetPen(m)
		case n == 1:
			m.pen.Bold = true
		case n == 2:
			m.pen.Dim = true
		case n == 3:
			m.pen.Italic = true
		case n == 4:
			m.pen.UnderlineStyle = e.underlineStyleFromSGR(act, i)
		case n == 5:
			m.pen.Blink = true
		case n == 7:
			m.pen.Reverse = true
		case n == 8:
			m.pen.Hidden = true
		case n == 9:
			m.pen.Strikethrough = true
		case n == 21:
			m.pen.UnderlineStyle = UnderlineDouble
		case n == 22:
			m.pen.Bold, m.pen.Dim = false, false
		case n == 23:
			m.pen.Italic = false
		case n == 24:
			m.pen.UnderlineStyle = UnderlineNone
		case n == 25:
			m.pen.Blink = false
		case n == 27:
			m.pen.Reverse = false
		case n == 28:
			m.pen.Hidden = false
		case n == 29:
			m.pen.Strikethrough = false
		case n >= 30 && n <= 37:
			m.pen.FG = Indexed(n - 30)
		case n == 38:
			col, consumed := e.parseSGRColor(act, i)
			m.pen.FG = col
			i += consumed
		case n == 39:
			m.pen.FG = DefaultColor
		case n >= 40 && n <= 47:
			m.pen.BG = Indexed(n - 40)
		case n == 48:
			col, consumed := e.parseSGRColor(act, i)
			m.pen.BG = col
			i += consumed
		case n == 49:
			m.pen.BG = DefaultColor
		case n == 58:
			col, consumed := e.parseSGRColor(act, i)
			m.pen.UnderlineColor = col
			m.pen.HasUnderlineColor = true
			i += consumed
		case n == 59:
			m.pen.HasUnderlineColor = false
		case n >= 90 && n <= 97:
			m.pen.FG = Indexed(n - 90 + 8)
		case n >= 100 && n <= 107:
			m.pen.BG = Indexed(n - 100 + 8)
		default:
			e.reportError(MalformedSemantics, fmt.Sprintf("unrecognized SGR parameter %d", n))
		}
	}
}

// underlineStyleFromSGR resolves SGR 4 with a colon sub-parameter (4:0
// none .. 4:5 dashed) if present, else plain single underline.
func (e *Executor) underlineStyleFromSGR(act CSIAction, idx int) UnderlineStyle {
	if idx < len(act.SubParams) && len(act.SubParams[idx]) > 1 {
		switch act.SubParams[idx][1] {
		case 0:
			return UnderlineNone
		case 2:
			return UnderlineDouble
		case 3:
			return UnderlineCurly
		case 4:
			return UnderlineDotted
		case 5:
			return UnderlineDashed
		default:
			return UnderlineSingle
		}
	}
	return UnderlineSingle
}

// parseSGRColor handles both the semicolon form (38;5;N or 38;2;R;G;B)
// and the colon sub-parameter form (38:5:N, 38:2:R:G:B, or 38:2:CS:R:G:B
// with a possibly empty colour-space slot, e.g. 38:2::R:G:B) of extended SGR
// colors. Returns the resolved color and how many additional semicolon
// params (beyond idx itself) were consumed, so the caller can skip them.
func (e *Executor) parseSGRColor(act CSIAction, idx int) (Color, int) {
	if idx < len(act.SubParams) && len(act.SubParams[idx]) > 1 {
		sub := act.SubParams[idx]
		switch sub[1] {
		case 5:
			if len(sub) > 2 {
				return Indexed(sub[2]), 0
			}
		case 2:
			if len(sub) > 5 {
				return TrueColor(uint8(clampByte(sub[3])), uint8(clampByte(sub[4])), uint8(clampByte(sub[5]))), 0
			}
			if len(sub) > 4 {
				return TrueColor(uint8(clampByte(sub[2])), uint8(clampByte(sub[3])), uint8(clampByte(sub[4]))), 0
			}
		}
		e.reportError(MalformedSemantics, "malformed colon-form extended SGR color")
		return DefaultColor, 0
	}

	if idx+1 >= len(act.Params) {
		e.reportError(MalformedSemantics, "truncated extended SGR color")
		return DefaultColor, 0
	}
	switch act.Params[idx+1] {
	case 5:
		if idx+2 < len(act.Params) {
			return Indexed(act.Params[idx+2]), 2
		}
	case 2:
		if idx+4 < len(act.Params) {
			return TrueColor(uint8(clampByte(act.Params[idx+2])), uint8(clampByte(act.Params[idx+3])), uint8(clampByte(act.Params[idx+4]))), 4
		}
	}
	e.reportError(MalformedSemantics, "truncated extended SGR color")
	return DefaultColor, 1
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// --- OSC ---

func (e *Executor) applyOSC(act OSCAction) {
	switch act.Identifier {
	case 0, 1, 2: // icon name / window title / both
		e.sink.SetTitle(act.Payload)
	case 4: // palette set/query
		e.applyOSC4(act.Payload)
	case 7: // CWD
		e.grid.cwd = strings.TrimPrefix(act.Payload, "file://")
		e.sink.CwdChanged(e.grid.cwd)
	case 8: // hyperlink
		e.applyOSC8(act.Payload)
	case 10, 11: // default fg/bg query/set
		e.applyOSC10or11(act.Identifier, act.Payload)
	case 52: // clipboard
		e.applyOSC52(act.Payload)
	case 133: // shell integration zone markers (A/B/C/D); recorded, not interpreted
		if act.Payload != "" {
			e.grid.recordShellZone(act.Payload[0])
		}
	default:
		e.reportError(UnknownSequence, fmt.Sprintf("unrecognized OSC %d", act.Identifier))
	}
}

func (e *Executor) applyOSC4(payload string) {
	parts := strings.Split(payload, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}
		spec := parts[i+1]
		if spec == "?" {
			r, g, b := e.grid.palette.Entries[idx&15].R, e.grid.palette.Entries[idx&15].G, e.grid.palette.Entries[idx&15].B
			e.sink.WriteHost([]byte(fmt.Sprintf("\x1b]4;%d;rgb:%02x/%02x/%02x\x1b\\", idx, r, g, b)))
			continue
		}
		col, ok := parseHexColor(spec)
		if !ok {
			e.reportError(MalformedSemantics, "malformed OSC 4 color spec")
			continue
		}
		e.grid.palette.SetEntry(idx, col.R, col.G, col.B)
	}
}

func (e *Executor) applyOSC8(payload string) {
	// format: params;uri  (params may be empty)
	semi := strings.IndexByte(payload, ';')
	params, uri := "", payload
	if semi >= 0 {
		params, uri = payload[:semi], payload[semi+1:]
	}
	m := e.grid.active()
	if m.pen.HyperlinkID != 0 {
		e.grid.hyperlinks.Release(m.pen.HyperlinkID)
	}
	if uri == "" {
		m.pen.HyperlinkID = 0
		return
	}
	m.pen.HyperlinkID = e.grid.hyperlinks.Intern(Hyperlink{URI: uri, Params: params})
}

func (e *Executor) applyOSC10or11(id int, payload string) {
	if payload == "?" {
		var r, g, b uint8
		if id == 10 {
			r, g, b = e.grid.palette.DefaultFG.R, e.grid.palette.DefaultFG.G, e.grid.palette.DefaultFG.B
		} else {
			r, g, b = e.grid.palette.DefaultBG.R, e.grid.palette.DefaultBG.G, e.grid.palette.DefaultBG.B
		}
		e.sink.WriteHost([]byte(fmt.Sprintf("\x1b]%d;rgb:%02x/%02x/%02x\x1b\\", id, r, g, b)))
		return
	}
	col, ok := parseHexColor(payload)
	if !ok {
		e.reportError(MalformedSemantics, "malformed OSC 10/11 color spec")
		return
	}
	if id == 10 {
		e.grid.palette.DefaultFG = rgb{col.R, col.G, col.B}
	} else {
		e.grid.palette.DefaultBG = rgb{col.R, col.G, col.B}
	}
}

func (e *Executor) applyOSC52(payload string) {
	semi := strings.IndexByte(payload, ';')
	if semi < 0 {
		return
	}
	selection, data := payload[:semi], payload[semi+1:]
	if data == "?" {
		e.sink.ClipboardQuery(selection)
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		e.reportError(MalformedSemantics, "malformed OSC 52 base64 payload")
		return
	}
	e.sink.ClipboardSet(selection, decoded)
}

// --- DCS ---

func (e *Executor) applyDCS(act DCSAction) {
	// No DCS sub-protocol (Sixel, DECRQSS, termcap queries) is implemented
	// against this grid model; DCS strings are parsed cleanly so they
	// cannot desync the state machine, then discarded.
	e.reportError(UnknownSequence, fmt.Sprintf("unhandled DCS %c", act.Final))
}
