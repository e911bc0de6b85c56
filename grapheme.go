package vtcore

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// maxGraphemeBytes bounds how much UTF-8 a single buffered cluster may
// accumulate before it is force-flushed, defending against a pathological
// stream of combining marks that would otherwise grow the buffer without
// bound (MAX_GRAPHEME_BYTES).
const maxGraphemeBytes = 64

// ambiguousWidthMode controls how East-Asian-ambiguous-width runes are
// measured, mirroring the teacher's AmbiguousWidthMode concept but backed
// by go-runewidth's maintained EastAsianWidth table instead of a
// hand-rolled range list.
type ambiguousWidthMode uint8

const (
	AmbiguousAuto   ambiguousWidthMode = iota // use uniseg's cluster width as-is (ambiguous runes are narrow)
	AmbiguousNarrow                           // force width 1
	AmbiguousWide                             // force width 2
)

// ParseAmbiguousWidthMode parses a config string ("auto", "narrow",
// "wide") into the mode value NewEngineWithOptions expects.
func ParseAmbiguousWidthMode(s string) (ambiguousWidthMode, error) {
	switch s {
	case "", "auto":
		return AmbiguousAuto, nil
	case "narrow":
		return AmbiguousNarrow, nil
	case "wide":
		return AmbiguousWide, nil
	default:
		return AmbiguousAuto, fmt.Errorf("unrecognized ambiguous width mode %q", s)
	}
}

func widthCondition(mode ambiguousWidthMode) *runewidth.Condition {
	c := runewidth.NewCondition()
	switch mode {
	case AmbiguousWide:
		c.EastAsianWidth = true
	default:
		c.EastAsianWidth = false
	}
	return c
}

// graphemeAccumulator buffers decoded runes until they form a complete
// Unicode grapheme cluster, using uniseg's streaming state machine so
// combining marks, ZWJ emoji sequences, and regional indicators group
// correctly instead of printing as separate cells.
type graphemeAccumulator struct {
	buf   []byte
	state int // uniseg streaming state, -1 before the first rune
	mode  ambiguousWidthMode
	cond  *runewidth.Condition
}

func newGraphemeAccumulator(mode ambiguousWidthMode) *graphemeAccumulator {
	return &graphemeAccumulator{state: -1, mode: mode, cond: widthCondition(mode)}
}

// clusterResult is a complete grapheme cluster ready to be written to a
// cell, with its resolved display width.
type clusterResult struct {
	text  string
	width int
}

// Feed appends r and returns any clusters that became complete as a
// result. Most calls return zero or one cluster; a forced flush at the
// maxGraphemeBytes cap can return exactly one (the overlong cluster,
// flushed as-is) even though uniseg would otherwise still be waiting for a
// boundary.
func (g *graphemeAccumulator) Feed(r rune, onError ErrorCallback) []clusterResult {
	var out []clusterResult
	g.buf = appendRune(g.buf, r)

	for len(g.buf) > 0 {
		cluster, rest, width, newState := uniseg.FirstGraphemeClusterInString(string(g.buf), g.state)
		if rest == "" {
			// uniseg could extend this cluster with runes not yet seen;
			// wait, unless we have hit the defensive byte cap.
			if len(g.buf) >= maxGraphemeBytes {
				out = append(out, clusterResult{text: cluster, width: g.resolveWidth(cluster, width)})
				if onError != nil {
					onError(ResourceLimit, ErrorContext{Detail: "grapheme cluster exceeded byte cap"})
				}
				g.buf = nil
				g.state = -1
			}
			break
		}
		out = append(out, clusterResult{text: cluster, width: g.resolveWidth(cluster, width)})
		g.buf = []byte(rest)
		g.state = newState
	}
	return out
}

// Flush forces out any cluster still buffered (end of stream, or a control
// action that must not observe a half-formed cluster, per spec: "a C0/C1
// control or CSI/OSC/ESC introducer flushes any pending cluster first").
func (g *graphemeAccumulator) Flush() []clusterResult {
	if len(g.buf) == 0 {
		return nil
	}
	cluster, _, width, _ := uniseg.FirstGraphemeClusterInString(string(g.buf), g.state)
	g.buf = nil
	g.state = -1
	if cluster == "" {
		return nil
	}
	return []clusterResult{{text: cluster, width: g.resolveWidth(cluster, width)}}
}

// resolveWidth defers to go-runewidth for the first rune of the cluster
// when the caller has requested forced narrow/wide ambiguous handling;
// uniseg's own width is used otherwise since it already accounts for
// combining marks and ZWJ collapsing to width 0/2 correctly.
func (g *graphemeAccumulator) resolveWidth(cluster string, unisegWidth int) int {
	if g.mode == AmbiguousAuto || cluster == "" {
		return unisegWidth
	}
	r := []rune(cluster)[0]
	if g.cond.RuneWidth(r) == 2 && unisegWidth <= 1 {
		return 2
	}
	return unisegWidth
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}
