package hostenv

import (
	"io"
	"log/slog"
	"sync"

	"vtcore"
)

// TermSink implements vtcore.Sink for a PTY-backed host: title changes go
// to a callback the host wires to its window, bell and clipboard events
// are logged, and WriteHost sends replies back down the PTY.
type TermSink struct {
	mu     sync.Mutex
	pty    io.Writer
	logger *slog.Logger

	OnTitle func(string)
}

// NewTermSink creates a TermSink that writes host-bound replies to pty.
func NewTermSink(pty io.Writer, logger *slog.Logger) *TermSink {
	return &TermSink{pty: pty, logger: logger}
}

func (s *TermSink) SetTitle(title string) {
	if s.OnTitle != nil {
		s.OnTitle(title)
	}
}

func (s *TermSink) Bell() {
	if s.logger != nil {
		s.logger.Debug("bell")
	}
}

func (s *TermSink) WriteHost(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.pty.Write(p)
}

func (s *TermSink) ClipboardSet(selection string, data []byte) {
	if s.logger != nil {
		s.logger.Debug("clipboard set", "selection", selection, "bytes", len(data))
	}
}

func (s *TermSink) ClipboardQuery(selection string) {
	if s.logger != nil {
		s.logger.Debug("clipboard query", "selection", selection)
	}
}

func (s *TermSink) HyperlinkOpened(link vtcore.Hyperlink) {
	if s.logger != nil {
		s.logger.Debug("hyperlink opened", "uri", link.URI)
	}
}

func (s *TermSink) CwdChanged(path string) {
	if s.logger != nil {
		s.logger.Debug("cwd changed", "path", path)
	}
}

func (s *TermSink) ResizeRequest(rows, cols int) {
	if s.logger != nil {
		s.logger.Debug("resize requested", "rows", rows, "cols", cols)
	}
}
