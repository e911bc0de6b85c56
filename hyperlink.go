package vtcore

// Hyperlink is the resolved target of an OSC 8 link: a URI plus whatever
// key=value params the sequence carried (most commonly "id=").
type Hyperlink struct {
	URI    string
	Params string
}

// hyperlinkTable interns hyperlinks behind small integer IDs so that Cell
// can carry a uint32 instead of a string, and reclaims entries once no
// cell in any matrix or the scrollback still references them.
//
// Interning is keyed on (URI, Params): two OSC 8 sequences with identical
// target and params collapse to the same ID, matching real-world terminals
// where a link reapplied across many cells should not explode the table.
type hyperlinkTable struct {
	links    []Hyperlink // index 0 unused; ids start at 1
	refcount []int32
	byKey    map[string]uint32
}

func newHyperlinkTable() *hyperlinkTable {
	return &hyperlinkTable{
		links:    make([]Hyperlink, 1),
		refcount: make([]int32, 1),
		byKey:    make(map[string]uint32),
	}
}

// Intern returns the ID for the given link, creating an entry if needed. An
// empty URI returns 0 (no link). The caller must pair every Intern with an
// eventual Release when the referencing cell is overwritten or scrolled
// out.
func (t *hyperlinkTable) Intern(link Hyperlink) uint32 {
	if link.URI == "" {
		return 0
	}
	key := link.Params + "\x00" + link.URI
	if id, ok := t.byKey[key]; ok {
		t.refcount[id]++
		return id
	}
	id := uint32(len(t.links))
	t.links = append(t.links, link)
	t.refcount = append(t.refcount, 1)
	t.byKey[key] = id
	return id
}

// Acquire bumps the refcount of an already-interned id. Print calls it for
// each cell it stamps with the pen's hyperlink; cells moved by scrolling or
// insert/delete shifting keep their existing reference instead.
func (t *hyperlinkTable) Acquire(id uint32) {
	if id == 0 || int(id) >= len(t.refcount) {
		return
	}
	t.refcount[id]++
}

// Release drops a reference; once it reaches zero the slot is cleared so
// the table does not grow unboundedly across a long-lived session with many
// distinct links scrolling through.
func (t *hyperlinkTable) Release(id uint32) {
	if id == 0 || int(id) >= len(t.refcount) {
		return
	}
	t.refcount[id]--
	if t.refcount[id] <= 0 {
		link := t.links[id]
		delete(t.byKey, link.Params+"\x00"+link.URI)
		t.links[id] = Hyperlink{}
		t.refcount[id] = 0
	}
}

// Lookup returns the hyperlink for id, or the zero Hyperlink if id is 0 or
// has been reclaimed.
func (t *hyperlinkTable) Lookup(id uint32) Hyperlink {
	if id == 0 || int(id) >= len(t.links) {
		return Hyperlink{}
	}
	return t.links[id]
}
