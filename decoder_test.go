package vtcore

import "testing"

func decodeAll(t *testing.T, chunks ...[]byte) []rune {
	t.Helper()
	var d decoder
	var out []scalar
	var runes []rune
	for _, c := range chunks {
		out = d.feed(c, out[:0], nil)
		for _, s := range out {
			runes = append(runes, s.r)
		}
	}
	return runes
}

func TestDecoderASCII(t *testing.T) {
	got := decodeAll(t, []byte("hello"))
	want := "hello"
	if string(got) != want {
		t.Fatalf("got %q want %q", string(got), want)
	}
}

func TestDecoderMultibyteSplitAcrossFeeds(t *testing.T) {
	// "é" = 0xC3 0xA9
	full := []byte("é")
	got := decodeAll(t, full[:1], full[1:])
	if len(got) != 1 || got[0] != 'é' {
		t.Fatalf("got %q, want single rune 'é'", string(got))
	}
}

func TestDecoderInvalidByteResyncs(t *testing.T) {
	// 0xff is never a valid UTF-8 lead byte.
	got := decodeAll(t, []byte{0xff, 'a'})
	if len(got) != 2 {
		t.Fatalf("got %d runes, want 2", len(got))
	}
	if got[0] != '�' {
		t.Fatalf("got %q, want replacement char first", got[0])
	}
	if got[1] != 'a' {
		t.Fatalf("got %q, want 'a' second", got[1])
	}
}

func TestDecoderTruncatedAtEndOfInput(t *testing.T) {
	full := []byte("世") // 3-byte sequence
	got := decodeAll(t, full[:2])
	if len(got) != 0 {
		t.Fatalf("expected no output yet, got %v", got)
	}
}

func TestDecoderReportsErrorOnInvalidByte(t *testing.T) {
	var d decoder
	var reported bool
	d.feed([]byte{0xff}, nil, func(kind ErrorKind, ctx ErrorContext) {
		if kind == DecodingError {
			reported = true
		}
	})
	if !reported {
		t.Fatal("expected DecodingError to be reported")
	}
}
