package vtcore

import "testing"

func feedString(p *Parser, s string) []Action {
	var scalars []scalar
	for _, r := range s {
		scalars = append(scalars, scalar{r: r})
	}
	return p.Feed(scalars)
}

func TestParserPrintsPlainText(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "hi")
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}
	for i, want := range []string{"h", "i"} {
		pa, ok := actions[i].(PrintAction)
		if !ok || pa.Text != want {
			t.Fatalf("action %d = %#v, want Print(%q)", i, actions[i], want)
		}
	}
}

func TestParserCSICursorMove(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "\x1b[5;10H")
	if len(actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(actions))
	}
	csi, ok := actions[0].(CSIAction)
	if !ok {
		t.Fatalf("got %#v, want CSIAction", actions[0])
	}
	if csi.Final != 'H' || len(csi.Params) != 2 || csi.Params[0] != 5 || csi.Params[1] != 10 {
		t.Fatalf("unexpected CSI %#v", csi)
	}
}

func TestParserPrivateModeCSI(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "\x1b[?1049h")
	csi := actions[0].(CSIAction)
	if csi.Prefix != '?' || csi.Params[0] != 1049 || csi.Final != 'h' {
		t.Fatalf("unexpected CSI %#v", csi)
	}
}

func TestParserOSCTitle(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "\x1b]0;hello world\x07")
	osc, ok := actions[0].(OSCAction)
	if !ok {
		t.Fatalf("got %#v, want OSCAction", actions[0])
	}
	if osc.Identifier != 0 || osc.Payload != "hello world" {
		t.Fatalf("unexpected OSC %#v", osc)
	}
}

func TestParserOSCTerminatedByST(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "\x1b]8;;http://example.com\x1b\\")
	osc := actions[0].(OSCAction)
	if osc.Identifier != 8 || osc.Payload != ";http://example.com" {
		t.Fatalf("unexpected OSC %#v", osc)
	}
}

func TestParserCSIParamOverflowCapsAndStillDispatches(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	var b []byte
	b = append(b, '\x1b', '[')
	for i := 0; i < 40; i++ {
		b = append(b, '1', ';')
	}
	b = append(b, 'm')
	var scalars []scalar
	for _, c := range b {
		scalars = append(scalars, scalar{r: rune(c)})
	}
	actions := p.Feed(scalars)
	if len(actions) != 1 {
		t.Fatalf("expected the overflowed CSI to still dispatch once, got %d actions", len(actions))
	}
	csi, ok := actions[0].(CSIAction)
	if !ok || csi.Final != 'm' {
		t.Fatalf("expected a dispatched SGR CSIAction, got %#v", actions[0])
	}
	if !csi.Truncated {
		t.Fatal("expected Truncated to be set on a capped parameter list")
	}
	if len(csi.Params) != maxParams {
		t.Fatalf("expected params capped at %d, got %d", maxParams, len(csi.Params))
	}
}

func TestParserControlDuringCSIExecutesImmediately(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	// BEL (0x07) arrives mid-CSI-param-collection; VT500 table says it
	// executes immediately without aborting the sequence.
	scalars := []scalar{{r: '\x1b'}, {r: '['}, {r: '1'}, {r: 0x07}, {r: 'm'}}
	actions := p.Feed(scalars)
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2 (Execute + CSI)", len(actions))
	}
	if _, ok := actions[0].(ExecuteAction); !ok {
		t.Fatalf("action 0 = %#v, want ExecuteAction", actions[0])
	}
	csi, ok := actions[1].(CSIAction)
	if !ok || csi.Final != 'm' || csi.Params[0] != 1 {
		t.Fatalf("action 1 = %#v, want CSI 1m", actions[1])
	}
}

func TestParserCANAbortsSequence(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	scalars := []scalar{{r: '\x1b'}, {r: '['}, {r: '1'}, {r: 0x18}, {r: 'x'}}
	actions := p.Feed(scalars)
	// CAN aborts the CSI; 'x' afterwards should be a fresh Print.
	for _, a := range actions {
		if _, ok := a.(CSIAction); ok {
			t.Fatalf("CSI should have been aborted by CAN, got %#v", actions)
		}
	}
}

func TestParserSGRColonSubParams(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	actions := feedString(p, "\x1b[38:2::10:20:30m")
	csi := actions[0].(CSIAction)
	if csi.Final != 'm' || len(csi.SubParams) == 0 || csi.SubParams[0] == nil {
		t.Fatalf("expected colon sub-params to be captured, got %#v", csi)
	}
}

func TestParserDCSParamOverflowCapsAndStillDispatches(t *testing.T) {
	p := NewParser(AmbiguousAuto)
	var s string
	s += "\x1bP"
	for i := 0; i < 40; i++ {
		s += "1;"
	}
	s += "qdata\x1b\\"
	actions := feedString(p, s)
	if len(actions) != 1 {
		t.Fatalf("expected the overflowed DCS to still dispatch once, got %d actions", len(actions))
	}
	dcs, ok := actions[0].(DCSAction)
	if !ok || dcs.Final != 'q' || dcs.Data != "data" {
		t.Fatalf("expected a dispatched DCS action, got %#v", actions[0])
	}
	if !dcs.Truncated {
		t.Fatal("expected Truncated to be set on a capped parameter list")
	}
	if len(dcs.Params) != maxParams {
		t.Fatalf("expected params capped at %d, got %d", maxParams, len(dcs.Params))
	}
}
