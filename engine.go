package vtcore

// Engine wires a byte Decoder, a Parser, and an Executor around one Grid,
// exposing a single Feed entry point. One Engine serves one terminal
// session; concurrent Feed calls on the same Engine are not supported —
// callers needing concurrent producers must serialize their own writes.
type Engine struct {
	dec      decoder
	parser   *Parser
	executor *Executor
	grid     *Grid

	onError ErrorCallback
}

// NewEngine creates an Engine with a grid of the given size, writing host
// side effects to sink (may be nil, in which case NopSink is used).
func NewEngine(rows, cols int, sink Sink) *Engine {
	return NewEngineWithOptions(rows, cols, 0, AmbiguousAuto, sink)
}

// NewEngineWithOptions is the fully-configurable constructor: scrollbackCapBytes
// of 0 selects the package default, mode controls ambiguous-width resolution.
func NewEngineWithOptions(rows, cols, scrollbackCapBytes int, mode ambiguousWidthMode, sink Sink) *Engine {
	grid := NewGrid(rows, cols, scrollbackCapBytes)
	grid.modes.AmbiguousWidth = mode
	parser := NewParser(mode)
	executor := NewExecutor(grid, sink)
	return &Engine{parser: parser, executor: executor, grid: grid}
}

// Grid returns the engine's Grid for renderer/selection queries.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// OnParserError registers the callback invoked for every recoverable
// parsing or semantic error surfaced while feeding bytes. It must not call
// back into Feed.
func (e *Engine) OnParserError(cb ErrorCallback) {
	e.onError = cb
	e.parser.SetErrorCallback(cb)
	e.executor.SetErrorCallback(cb)
}

// Feed decodes, parses, and applies one chunk of raw terminal output. It
// runs to completion before returning.
func (e *Engine) Feed(b []byte) {
	scalars := e.dec.feed(b, nil, e.onError)
	actions := e.parser.Feed(scalars)
	for _, a := range actions {
		e.executor.Apply(a)
	}
}

// Resize changes the grid's dimensions.
func (e *Engine) Resize(rows, cols int) {
	e.grid.Resize(rows, cols)
}

// Reset reinitializes the grid to power-on defaults, equivalent to the
// terminal receiving RIS.
func (e *Engine) Reset() {
	e.grid.mu.Lock()
	defer e.grid.mu.Unlock()
	e.executor.reset()
}
