package vtcore

// Resource caps enforced while parsing (spec Design Notes).
const (
	maxParams     = 32
	maxParamValue = 9999
	maxOSCLen     = 2048
	maxDCSLen     = 2048
)

// parserState is one state of the explicit VT500-style state machine.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
	stateDCSEntry
	stateDCSParam
	stateDCSIntermediate
	stateDCSPassthrough
	stateDCSIgnore
	stateSOSPMAPCString
	stateCharsetDesignate
)

// Parser turns decoded Unicode scalars into a stream of Actions. It holds
// no reference to a Grid; callers drain Actions from the slice returned by
// Feed. This separation is what lets the state machine be fuzzed and unit
// tested without any grid machinery.
type Parser struct {
	state parserState

	// CSI/DCS accumulation
	private       byte
	params        []int
	curParam      int
	curParamSet   bool
	subParams     [][]int
	curSub        []int
	intermediates []byte
	truncated     bool
	dcsFinal      byte

	// OSC/DCS/APC string accumulation
	strBuf           []byte
	strKind          byte // for SOS/PM/APC: 'X', '^', '_'
	escForDCS        bool // saw ESC while collecting a string, awaiting '\\'
	reportedOverflow bool

	// charset designate
	csiCharsetSlot int
	csiCharsetMult bool

	grapheme *graphemeAccumulator
	onError  ErrorCallback

	actions []Action
}

// NewParser creates a Parser. mode controls ambiguous-width resolution for
// grapheme clusters produced by Print actions.
func NewParser(mode ambiguousWidthMode) *Parser {
	return &Parser{
		state:    stateGround,
		grapheme: newGraphemeAccumulator(mode),
	}
}

// SetErrorCallback installs the callback used to report recoverable
// parsing errors (overflow, unknown sequences, malformed semantics).
func (p *Parser) SetErrorCallback(cb ErrorCallback) {
	p.onError = cb
}

// Feed processes decoded scalar values and returns the Actions produced.
// A text cluster still buffered when the scalars run out is emitted as a
// Print before returning, so a cluster split across two Feed calls prints
// as two cells. The returned slice is only valid until the next call to
// Feed.
func (p *Parser) Feed(scalars []scalar) []Action {
	p.actions = p.actions[:0]
	for _, s := range scalars {
		p.processRune(s.r)
	}
	if p.state == stateGround {
		p.flushGrapheme()
	}
	return p.actions
}

func (p *Parser) emit(a Action) {
	p.actions = append(p.actions, a)
}

func (p *Parser) reportError(kind ErrorKind, detail string) {
	if p.onError != nil {
		p.onError(kind, ErrorContext{Detail: detail})
	}
}

// flushGrapheme emits a Print action for any cluster still buffered,
// matching the rule that any control/escape introduction first closes out
// whatever text run is pending.
func (p *Parser) flushGrapheme() {
	for _, c := range p.grapheme.Flush() {
		p.emit(PrintAction{Text: c.text, Width: c.width})
	}
}

func isC0(r rune) bool {
	return r < 0x20 || r == 0x7f
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}

// processRune advances the state machine by exactly one Unicode scalar.
func (p *Parser) processRune(r rune) {
	// CAN and SUB always abort the current sequence back to ground,
	// regardless of state (VT500 table).
	if r == 0x18 || r == 0x1a {
		p.abortToGround()
		if r == 0x1a {
			p.emit(ExecuteAction{Code: byte(r)})
		}
		return
	}
	// ESC always restarts escape sequence collection except from inside a
	// string state, where it is the first half of the ST terminator and
	// handled by that state directly.
	if r == 0x1b && p.state != stateOSCString && p.state != stateDCSPassthrough &&
		p.state != stateSOSPMAPCString && p.state != stateDCSIgnore {
		p.flushGrapheme()
		p.resetCSI()
		p.state = stateEscape
		return
	}

	switch p.state {
	case stateGround:
		p.handleGround(r)
	case stateEscape:
		p.handleEscape(r)
	case stateEscapeIntermediate:
		p.handleEscapeIntermediate(r)
	case stateCSIEntry, stateCSIParam:
		p.handleCSIParam(r)
	case stateCSIIntermediate:
		p.handleCSIIntermediate(r)
	case stateCSIIgnore:
		p.handleCSIIgnore(r)
	case stateOSCString:
		p.handleOSCString(r)
	case stateDCSEntry, stateDCSParam:
		p.handleDCSParam(r)
	case stateDCSIntermediate:
		p.handleDCSIntermediate(r)
	case stateDCSPassthrough:
		p.handleDCSPassthrough(r)
	case stateDCSIgnore:
		p.handleDCSIgnore(r)
	case stateSOSPMAPCString:
		p.handleSOSPMAPCString(r)
	case stateCharsetDesignate:
		p.handleCharsetDesignate(r)
	}
}

func (p *Parser) abortToGround() {
	p.resetCSI()
	p.strBuf = nil
	p.state = stateGround
}

func (p *Parser) resetCSI() {
	p.private = 0
	p.params = nil
	p.subParams = nil
	p.curSub = nil
	p.curParam = 0
	p.curParamSet = false
	p.intermediates = nil
	p.truncated = false
	p.reportedOverflow = false
}

// --- ground ---

func (p *Parser) handleGround(r rune) {
	if isC0(r) {
		p.flushGrapheme()
		p.emit(ExecuteAction{Code: byte(r)})
		return
	}
	if isC1(r) {
		p.flushGrapheme()
		p.handleC1(r)
		return
	}
	for _, c := range p.grapheme.Feed(r, p.onError) {
		p.emit(PrintAction{Text: c.text, Width: c.width})
	}
}

// handleC1 dispatches 8-bit C1 controls, several of which alias common
// 7-bit ESC sequences (CSI, OSC, DCS, ST, SOS, PM, APC).
func (p *Parser) handleC1(r rune) {
	switch r {
	case 0x9b: // CSI
		p.state = stateCSIEntry
	case 0x9d: // OSC
		p.state = stateOSCString
		p.strBuf = nil
	case 0x90: // DCS
		p.state = stateDCSEntry
	case 0x9c: // ST -- stray terminator in ground, ignore
	case 0x98: // SOS
		p.state = stateSOSPMAPCString
		p.strKind = 'X'
		p.strBuf = nil
	case 0x9e: // PM
		p.state = stateSOSPMAPCString
		p.strKind = '^'
		p.strBuf = nil
	case 0x9f: // APC
		p.state = stateSOSPMAPCString
		p.strKind = '_'
		p.strBuf = nil
	default:
		p.emit(ExecuteAction{Code: byte(r)})
	}
}

// --- escape ---

func (p *Parser) handleEscape(r rune) {
	switch {
	case r == '[':
		p.state = stateCSIEntry
	case r == ']':
		p.state = stateOSCString
		p.strBuf = nil
	case r == 'P':
		p.state = stateDCSEntry
	case r == 'X':
		p.state = stateSOSPMAPCString
		p.strKind = 'X'
		p.strBuf = nil
	case r == '^':
		p.state = stateSOSPMAPCString
		p.strKind = '^'
		p.strBuf = nil
	case r == '_':
		p.state = stateSOSPMAPCString
		p.strKind = '_'
		p.strBuf = nil
	case r == '\\': // stray ST
		p.state = stateGround
	case r == '(' || r == ')' || r == '*' || r == '+':
		p.csiCharsetSlot = map[rune]int{'(': 0, ')': 1, '*': 2, '+': 3}[r]
		p.csiCharsetMult = false
		p.state = stateCharsetDesignate
	case r == '$':
		// multinational designation prefix; next byte picks the slot
		p.csiCharsetMult = true
		p.state = stateCharsetDesignate
	case r >= 0x20 && r <= 0x2f:
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateEscapeIntermediate
	case r >= 0x30 && r <= 0x7e:
		p.dispatchESC(byte(r))
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) handleEscapeIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2f:
		p.intermediates = append(p.intermediates, byte(r))
	case r >= 0x30 && r <= 0x7e:
		p.dispatchESC(byte(r))
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func (p *Parser) dispatchESC(final byte) {
	p.emit(ESCAction{Intermediates: append([]byte{}, p.intermediates...), Final: final})
	p.intermediates = nil
}

// --- charset designate ---

func (p *Parser) handleCharsetDesignate(r rune) {
	if p.csiCharsetMult {
		switch r {
		case '(', ')', '*', '+':
			p.csiCharsetSlot = map[rune]int{'(': 0, ')': 1, '*': 2, '+': 3}[r]
			return
		}
	}
	if r >= 0x20 && r <= 0x7e {
		p.emit(CharsetDesignateAction{Slot: p.csiCharsetSlot, Charset: byte(r), Multi: p.csiCharsetMult})
	}
	p.state = stateGround
}

// --- CSI ---

func (p *Parser) handleCSIParam(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.curParam = p.curParam*10 + int(r-'0')
		if p.curParam > maxParamValue {
			p.curParam = maxParamValue
		}
		p.curParamSet = true
		p.state = stateCSIParam
	case r == ':':
		p.curSub = append(p.curSub, p.curParam)
		p.curParam = 0
		p.curParamSet = false
		p.state = stateCSIParam
	case r == ';':
		p.endCSIParam()
		p.state = stateCSIParam
	case r == '<' || r == '=' || r == '>' || r == '?':
		if len(p.params) == 0 && !p.curParamSet && p.private == 0 {
			p.private = byte(r)
			p.state = stateCSIParam
		} else {
			p.state = stateCSIIgnore
		}
	case r >= 0x20 && r <= 0x2f:
		p.endCSIParam()
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateCSIIntermediate
	case r >= 0x40 && r <= 0x7e:
		p.endCSIParam()
		p.dispatchCSI(byte(r))
		p.state = stateGround
	case r >= 0x00 && r <= 0x1f:
		// execute-while-collecting, per VT500 table: the control is
		// honored immediately and collection continues.
		p.emit(ExecuteAction{Code: byte(r)})
	default:
		p.state = stateCSIIgnore
	}
}

// endCSIParam closes out the parameter currently being collected. A
// parameter list that exceeds maxParams is capped rather than aborting the
// sequence — the sequence still dispatches on its final byte, using the
// capped list, matching how a CSI sequence with too many parameters is
// still executed rather than discarded.
func (p *Parser) endCSIParam() {
	if len(p.curSub) > 0 {
		p.curSub = append(p.curSub, p.curParam)
		p.params = append(p.params, p.curSub[0])
		p.subParams = append(p.subParams, append([]int{}, p.curSub...))
		p.curSub = nil
	} else {
		p.params = append(p.params, p.curParam)
		p.subParams = append(p.subParams, nil)
	}
	p.curParam = 0
	p.curParamSet = false
	if len(p.params) > maxParams {
		p.params = p.params[:maxParams]
		p.subParams = p.subParams[:maxParams]
		p.truncated = true
		if !p.reportedOverflow {
			p.reportError(OverflowIgnored, "CSI parameter list exceeded cap")
			p.reportedOverflow = true
		}
	}
}

func (p *Parser) handleCSIIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2f:
		p.intermediates = append(p.intermediates, byte(r))
	case r >= 0x40 && r <= 0x7e:
		p.dispatchCSI(byte(r))
		p.state = stateGround
	case r >= 0x00 && r <= 0x1f:
		p.emit(ExecuteAction{Code: byte(r)})
	default:
		p.state = stateCSIIgnore
	}
}

func (p *Parser) handleCSIIgnore(r rune) {
	switch {
	case r >= 0x40 && r <= 0x7e:
		p.state = stateGround
		p.resetCSI()
	case r >= 0x00 && r <= 0x1f:
		p.emit(ExecuteAction{Code: byte(r)})
	}
}

func (p *Parser) dispatchCSI(final byte) {
	p.emit(CSIAction{
		Prefix:        p.private,
		Params:        append([]int{}, p.params...),
		SubParams:     p.subParams,
		Intermediates: append([]byte{}, p.intermediates...),
		Final:         final,
		Truncated:     p.truncated,
	})
	p.resetCSI()
	p.reportedOverflow = false
}

// --- OSC ---

func (p *Parser) handleOSCString(r rune) {
	switch {
	case r == 0x07: // BEL terminator
		p.dispatchOSC()
		p.state = stateGround
	case r == 0x1b:
		p.escForDCS = true
		return
	case p.escForDCS:
		p.escForDCS = false
		if r == '\\' {
			p.dispatchOSC()
			p.state = stateGround
			return
		}
		// not a valid ST; treat the ESC as starting a new sequence
		p.dispatchOSC()
		p.handleEscape(r)
		return
	case r < 0x20:
		// other controls abort the string
		p.dispatchOSC()
		p.state = stateGround
	default:
		if len(p.strBuf) >= maxOSCLen {
			if !p.reportedOverflow {
				p.reportError(OverflowIgnored, "OSC string exceeded byte cap")
				p.reportedOverflow = true
			}
			return
		}
		p.strBuf = appendRune(p.strBuf, r)
	}
}

func (p *Parser) dispatchOSC() {
	s := string(p.strBuf)
	id := 0
	payload := s
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			id = parseIntDefault(s[:i], -1)
			payload = s[i+1:]
			break
		}
		if s[i] < '0' || s[i] > '9' {
			id = -1
			payload = s
			break
		}
	}
	if id == 0 && payload == s && len(s) > 0 {
		id = parseIntDefault(s, -1)
		payload = ""
	}
	p.emit(OSCAction{Identifier: id, Payload: payload, Truncated: p.truncated})
	p.strBuf = nil
	p.truncated = false
	p.reportedOverflow = false
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// --- DCS ---

func (p *Parser) handleDCSParam(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.curParam = p.curParam*10 + int(r-'0')
		if p.curParam > maxParamValue {
			p.curParam = maxParamValue
		}
		p.curParamSet = true
		p.state = stateDCSParam
	case r == ';':
		p.params = append(p.params, p.curParam)
		p.curParam = 0
		p.curParamSet = false
		if len(p.params) > maxParams {
			p.params = p.params[:maxParams]
			p.truncated = true
			if !p.reportedOverflow {
				p.reportError(OverflowIgnored, "DCS parameter list exceeded cap")
				p.reportedOverflow = true
			}
		}
	case r == '<' || r == '=' || r == '>' || r == '?':
		if len(p.params) == 0 && !p.curParamSet && p.private == 0 {
			p.private = byte(r)
		} else {
			p.state = stateDCSIgnore
		}
	case r >= 0x20 && r <= 0x2f:
		p.intermediates = append(p.intermediates, byte(r))
		p.state = stateDCSIntermediate
	case r >= 0x40 && r <= 0x7e:
		p.params = append(p.params, p.curParam)
		if len(p.params) > maxParams {
			p.params = p.params[:maxParams]
			p.truncated = true
			if !p.reportedOverflow {
				p.reportError(OverflowIgnored, "DCS parameter list exceeded cap")
				p.reportedOverflow = true
			}
		}
		p.enterDCSPassthrough(byte(r))
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) handleDCSIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2f:
		p.intermediates = append(p.intermediates, byte(r))
	case r >= 0x40 && r <= 0x7e:
		p.enterDCSPassthrough(byte(r))
	default:
		p.state = stateDCSIgnore
	}
}

func (p *Parser) enterDCSPassthrough(final byte) {
	p.dcsFinal = final
	p.strBuf = nil
	p.state = stateDCSPassthrough
}

func (p *Parser) handleDCSPassthrough(r rune) {
	switch {
	case r == 0x1b:
		p.escForDCS = true
	case p.escForDCS:
		p.escForDCS = false
		if r == '\\' {
			p.dispatchDCS()
			p.state = stateGround
			return
		}
		p.dispatchDCS()
		p.handleEscape(r)
	default:
		if len(p.strBuf) >= maxDCSLen {
			if !p.reportedOverflow {
				p.reportError(OverflowIgnored, "DCS string exceeded byte cap")
				p.reportedOverflow = true
			}
			return
		}
		p.strBuf = appendRune(p.strBuf, r)
	}
}

func (p *Parser) handleDCSIgnore(r rune) {
	switch {
	case r == 0x1b:
		p.escForDCS = true
	case p.escForDCS:
		p.escForDCS = false
		if r == '\\' {
			p.state = stateGround
			p.resetCSI()
			return
		}
		p.state = stateGround
		p.resetCSI()
		p.handleEscape(r)
	}
}

func (p *Parser) dispatchDCS() {
	p.emit(DCSAction{
		Prefix:        p.private,
		Params:        append([]int{}, p.params...),
		Intermediates: append([]byte{}, p.intermediates...),
		Final:         p.dcsFinal,
		Data:          string(p.strBuf),
		Truncated:     p.truncated,
	})
	p.resetCSI()
	p.strBuf = nil
	p.reportedOverflow = false
}

// --- SOS/PM/APC ---

func (p *Parser) handleSOSPMAPCString(r rune) {
	switch {
	case r == 0x1b:
		p.escForDCS = true
	case p.escForDCS:
		p.escForDCS = false
		if r == '\\' {
			p.emit(ApcAction{Kind: p.strKind, Data: string(p.strBuf)})
			p.strBuf = nil
			p.state = stateGround
			return
		}
		p.emit(ApcAction{Kind: p.strKind, Data: string(p.strBuf)})
		p.strBuf = nil
		p.handleEscape(r)
	default:
		if len(p.strBuf) < maxOSCLen {
			p.strBuf = appendRune(p.strBuf, r)
		}
	}
}
