package vtcore

import "unicode/utf8"

// decoder turns an arbitrary byte stream into a sequence of Unicode scalar
// values, buffering at most a partial UTF-8 sequence (≤ 4 bytes) across
// Feed calls so a rune split across two reads decodes correctly.
//
// Invalid or incomplete sequences resync by emitting U+FFFD and advancing
// past the offending byte only, never past the whole pending buffer at
// once: each byte that cannot start or complete a valid sequence gets its
// own U+FFFD, so a truncated multi-byte sequence yields one replacement
// per byte rather than one per maximal subpart.
type decoder struct {
	pending [4]byte
	n       int
}

// scalar is one decoded rune plus whether it came from a replaced invalid
// sequence (used only for error reporting, not for control flow).
type scalar struct {
	r       rune
	invalid bool
}

// feed decodes all complete runes available from pending+b, appending them
// to out, and returns the extended out. An incomplete sequence at the end
// of the input is kept in the internal pending buffer for the next call.
// onError, if non-nil, is invoked once per invalid byte encountered.
func (d *decoder) feed(b []byte, out []scalar, onError ErrorCallback) []scalar {
	var buf []byte
	if d.n > 0 {
		buf = append(append([]byte{}, d.pending[:d.n]...), b...)
		d.n = 0
	} else {
		buf = b
	}

	i := 0
	for i < len(buf) {
		c := buf[i]
		if c < utf8.RuneSelf {
			out = append(out, scalar{r: rune(c)})
			i++
			continue
		}

		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError {
			if size <= 1 {
				// Could be a genuinely invalid byte, or a valid lead byte
				// whose continuation bytes just haven't arrived yet.
				if i+utf8.UTFMax > len(buf) && maybeIncompleteLead(buf[i:]) {
					break // wait for more bytes
				}
				if onError != nil {
					onError(DecodingError, ErrorContext{Detail: "invalid UTF-8 byte", Bytes: []byte{buf[i]}})
				}
				out = append(out, scalar{r: utf8.RuneError, invalid: true})
				i++
				continue
			}
		}
		out = append(out, scalar{r: r})
		i += size
	}

	if i < len(buf) {
		rest := buf[i:]
		if len(rest) > len(d.pending) {
			// Should never happen given MaxRune is 4 bytes, but stay
			// bounded rather than panic if it somehow does.
			rest = rest[len(rest)-len(d.pending):]
		}
		copy(d.pending[:], rest)
		d.n = len(rest)
	}
	return out
}

// maybeIncompleteLead reports whether b looks like the start of a valid
// multi-byte UTF-8 sequence that is simply missing its continuation bytes,
// as opposed to being an outright invalid lead byte.
func maybeIncompleteLead(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	c := b[0]
	switch {
	case c&0xE0 == 0xC0: // 2-byte lead
		return len(b) < 2 && validContinuations(b[1:])
	case c&0xF0 == 0xE0: // 3-byte lead
		return len(b) < 3 && validContinuations(b[1:])
	case c&0xF8 == 0xF0: // 4-byte lead
		return len(b) < 4 && validContinuations(b[1:])
	default:
		return false
	}
}

func validContinuations(b []byte) bool {
	for _, c := range b {
		if c&0xC0 != 0x80 {
			return false
		}
	}
	return true
}
