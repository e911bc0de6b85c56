// Package vtcore implements the core of a terminal emulator: a bounded,
// panic-free decoder for the ANSI/VT/xterm escape-sequence family, coupled to
// a two-dimensional character-grid model with scrollback and an alternate
// screen buffer.
//
// The package is organized around four collaborating pieces plus a narrow
// boundary interface:
//
//   - Decoder   turns a byte stream into Unicode scalar values (decoder.go).
//   - Parser    turns scalars into abstract Actions via an explicit VT500-style
//     state machine (parser.go, actions.go, grapheme.go).
//   - Executor  applies Actions to a Grid, owning all clamping and invariant
//     enforcement (executor.go).
//   - Grid      holds the primary/alternate cell matrices, scrollback ring,
//     cursor and attribute state (grid*.go, cell.go, color.go, hyperlink.go).
//   - Sink      is the narrow callback surface a host implements to receive
//     side effects: title changes, bell, host-bound writes, clipboard
//     requests, and parser error observation (sink.go).
//
// Engine (engine.go) wires the four pieces together behind a single
// Feed([]byte) entry point. The package does not spawn a pseudo-terminal,
// does not render glyphs, and does not touch a windowing toolkit — those are
// host concerns; see cmd/vtdemo and internal/hostenv for one way to provide
// them.
package vtcore
