package vtcore

import "testing"

func TestResolve256Cube(t *testing.T) {
	r, g, b := Resolve256(16) // first cube entry: black
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("got (%d,%d,%d), want (0,0,0)", r, g, b)
	}
	r, g, b = Resolve256(231) // last cube entry: white-ish
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("got (%d,%d,%d), want (255,255,255)", r, g, b)
	}
}

func TestResolve256Grayscale(t *testing.T) {
	r, g, b := Resolve256(232)
	if r != 8 || g != 8 || b != 8 {
		t.Fatalf("got (%d,%d,%d), want (8,8,8)", r, g, b)
	}
}

func TestIndexedClamps(t *testing.T) {
	if Indexed(-5).Index != 0 {
		t.Fatal("expected negative index clamp to 0")
	}
	if Indexed(999).Index != 255 {
		t.Fatal("expected oversized index clamp to 255")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in           string
		r, g, b      uint8
		ok           bool
	}{
		{"#fff", 255, 255, 255, true},
		{"#000000", 0, 0, 0, true},
		{"#ff0080", 255, 0, 128, true},
		{"rgb:ff/00/80", 255, 0, 128, true},
		{"not-a-color", 0, 0, 0, false},
	}
	for _, c := range cases {
		col, ok := parseHexColor(c.in)
		if ok != c.ok {
			t.Fatalf("%q: ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && (col.R != c.r || col.G != c.g || col.B != c.b) {
			t.Fatalf("%q: got (%d,%d,%d), want (%d,%d,%d)", c.in, col.R, col.G, col.B, c.r, c.g, c.b)
		}
	}
}
