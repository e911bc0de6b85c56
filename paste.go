package vtcore

import (
	"strings"
	"unicode/utf8"
)

// SanitizePaste prepares text a host is about to paste into the PTY. With
// bracketed paste enabled it wraps the text in the bracketed-paste markers
// unmodified, since the application is expected to treat everything inside
// them as literal input rather than as sequences to interpret. Without it,
// escape sequences and other control bytes are stripped so pasted text
// cannot smuggle commands the application would otherwise interpret as
// terminal control input.
func SanitizePaste(text string, bracketed bool) string {
	if bracketed {
		return "\x1b[200~" + text + "\x1b[201~"
	}
	return sanitizeUnbracketedPaste(text)
}

func sanitizeUnbracketedPaste(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == 0x1b:
			// Skip the escape sequence: an optional '[' then parameter
			// bytes up to the first letter (or backtick/brace) terminator.
			i++
			if i < len(runes) && runes[i] == '[' {
				i++
			}
			for i < len(runes) {
				c := runes[i]
				if isPasteSeqTerminator(c) {
					break
				}
				i++
			}
		case r == 0x08:
			if b.Len() > 0 {
				s := b.String()
				_, size := utf8.DecodeLastRuneInString(s)
				b.Reset()
				b.WriteString(s[:len(s)-size])
			}
		case r <= 0x07 || r == 0x0b || r == 0x0c || (r >= 0x0e && r <= 0x1f) || r == 0x7f:
			// drop other control characters
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case isPasteSafeRune(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isPasteSeqTerminator(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '`' || r == '{' || r == '}'
}

func isPasteSafeRune(r rune) bool {
	if r > 0x7f {
		return true // printable Unicode text passes through
	}
	if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == ' ' {
		return true
	}
	return strings.ContainsRune(`!"#$%&'()*+,-./:;<=>?@[\]^_`+"`"+`{|}~`, r)
}
