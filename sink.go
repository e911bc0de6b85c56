package vtcore

// Sink is the narrow boundary a host implements to receive side effects
// from the engine. Every method must return promptly — the engine calls
// these synchronously from inside Feed, holding the Grid's write lease.
type Sink interface {
	// SetTitle is called on OSC 0/1/2.
	SetTitle(title string)
	// Bell is called on BEL.
	Bell()
	// WriteHost sends bytes back to the pseudo-terminal: the engine uses it
	// for DA/DSR replies and OSC 4/10/11 colour-query replies. The engine
	// does not format mouse or focus reports.
	WriteHost(p []byte)
	// ClipboardSet is called on OSC 52 with a set payload.
	ClipboardSet(selection string, data []byte)
	// ClipboardQuery is called on OSC 52 with a query payload ("?"); the
	// host should respond asynchronously via WriteHost if it can supply
	// clipboard contents.
	ClipboardQuery(selection string)
	// HyperlinkOpened is called when an OSC 8 link is clicked by the host
	// UI — the engine itself never decides this, it only exposes
	// Grid.Hyperlink for a renderer to resolve under the pointer.
	HyperlinkOpened(link Hyperlink)
	// CwdChanged is called on OSC 7.
	CwdChanged(path string)
	// ResizeRequest is called on CSI 8;rows;cols t (window manipulation),
	// since a live PTY resize is a host decision, not something the core
	// can perform itself.
	ResizeRequest(rows, cols int)
}

// NopSink implements Sink with no-op methods, useful for tests and for
// embedding to override only the methods a particular host cares about.
type NopSink struct{}

func (NopSink) SetTitle(string)             {}
func (NopSink) Bell()                       {}
func (NopSink) WriteHost([]byte)            {}
func (NopSink) ClipboardSet(string, []byte) {}
func (NopSink) ClipboardQuery(string)       {}
func (NopSink) HyperlinkOpened(Hyperlink)   {}
func (NopSink) CwdChanged(string)           {}
func (NopSink) ResizeRequest(rows, cols int) {}
