package vtcore

import "testing"

// FuzzFeed drives the panic-freedom property: Engine.Feed must never
// panic regardless of what bytes it is given, including truncated UTF-8,
// oversized CSI parameter lists, and deeply nested alt-screen toggles.
func FuzzFeed(f *testing.F) {
	seeds := [][]byte{
		[]byte("hello world\r\n"),
		[]byte("\x1b[31;1mred bold\x1b[0m"),
		[]byte("\x1b[?1049h\x1b[?1049l\x1b[?1049h\x1b[?1049l"),
		{0xff, 0xfe, 0x80, 0x81},
		[]byte("\x1b[" + repeat("9;", 100) + "m"),
		[]byte("\x1b]8;;http://example.com\x1b\\link\x1b]8;;\x1b\\"),
		[]byte("\xe4\xb8\x96\xe7\x95\x8c"),
		[]byte("\x1bP1;2;3|some dcs data\x1b\\"),
		{0x1b, 0x18, 0x1a, 0x1b, '['},
		[]byte("\x1b#8"),
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		e := NewEngine(24, 80, NopSink{})
		e.OnParserError(func(ErrorKind, ErrorContext) {})
		e.Feed(data)
	})
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
