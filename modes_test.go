package vtcore

import "testing"

func TestDefaultModes(t *testing.T) {
	m := DefaultModes()
	if !m.AutoWrap || !m.ShowCursor {
		t.Fatalf("expected auto-wrap and cursor visible by default, got %#v", m)
	}
	if m.Mouse != MouseOff || m.InsertMode {
		t.Fatalf("expected mouse off and insert mode off by default, got %#v", m)
	}
}

func TestCharsetStateActiveConsumesSingleShift(t *testing.T) {
	cs := DefaultCharsetState()
	cs.G[2] = CharsetDECSpecial
	cs.SingleShift = 2
	if got := cs.Active(); got != CharsetDECSpecial {
		t.Fatalf("expected single shift to select G2, got %q", got)
	}
	if cs.SingleShift != -1 {
		t.Fatal("expected single shift to be consumed after Active()")
	}
	if got := cs.Active(); got != CharsetASCII {
		t.Fatalf("expected fallback to GL after single shift consumed, got %q", got)
	}
}

func TestTranslateCharsetLineDrawing(t *testing.T) {
	if got := translateCharset(CharsetDECSpecial, "q"); got != "─" {
		t.Fatalf("expected DEC special graphics substitution for 'q', got %q", got)
	}
	if got := translateCharset(CharsetASCII, "q"); got != "q" {
		t.Fatalf("expected ASCII passthrough, got %q", got)
	}
	if got := translateCharset(CharsetDECSpecial, "世"); got != "世" {
		t.Fatalf("expected multi-byte cluster to pass through unchanged, got %q", got)
	}
}
