package vtcore

import "testing"

func TestGraphemeAccumulatorCombiningMark(t *testing.T) {
	g := newGraphemeAccumulator(AmbiguousAuto)
	var results []clusterResult
	for _, r := range "é" { // e + combining acute accent
		results = append(results, g.Feed(r, nil)...)
	}
	results = append(results, g.Flush()...)
	if len(results) != 1 {
		t.Fatalf("expected combining mark to join base into one cluster, got %d: %#v", len(results), results)
	}
	if results[0].width != 1 {
		t.Fatalf("expected width 1, got %d", results[0].width)
	}
}

func TestGraphemeAccumulatorOverlongCapFlushes(t *testing.T) {
	g := newGraphemeAccumulator(AmbiguousAuto)
	var results []clusterResult
	// A long run of combining marks that would otherwise never close a
	// cluster boundary; the byte cap must force a flush.
	base := []rune("a")
	mark := '́'
	runes := append(base, make([]rune, 40)...)
	for i := 1; i < len(runes); i++ {
		runes[i] = mark
	}
	for _, r := range runes {
		results = append(results, g.Feed(r, nil)...)
	}
	if len(results) == 0 {
		t.Fatal("expected the byte cap to force at least one flush")
	}
}
