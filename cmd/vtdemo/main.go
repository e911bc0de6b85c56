// Command vtdemo is a thin PTY-backed host for vtcore: it spawns a shell,
// feeds its output through an Engine, and dumps the resulting grid to
// stdout on exit. It exists to exercise the core package's external
// collaborator boundary (PTY spawn, raw-mode stdin, structured logging),
// not as a full terminal UI — a real renderer would read Engine.Grid()
// continuously instead of waiting for the child to exit.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"vtcore"
	"vtcore/internal/hostenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := filepath.Join(os.Getenv("HOME"), ".vtdemo", "config.json")
	cfg, err := hostenv.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, onError, err := hostenv.InitLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtdemo: logging init degraded:", err)
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setctty: true, Setsid: true}

	cols, rows := 80, 24
	if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = c, r
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	sink := hostenv.NewTermSink(ptmx, logger)
	sink.OnTitle = func(title string) {
		fmt.Fprintf(os.Stderr, "\x1b]0;%s\x07", title)
	}

	mode, err := vtcore.ParseAmbiguousWidthMode(cfg.AmbiguousWidth)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	engine := vtcore.NewEngineWithOptions(rows, cols, cfg.ScrollbackBytes, mode, sink)
	engine.OnParserError(onError)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(c), Rows: uint16(r)})
				engine.Resize(r, c)
			}
		}
	}()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				_, _ = ptmx.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			engine.Feed(buf[:n])
		}
		if err != nil {
			break
		}
	}

	_ = cmd.Wait()
	term.Restore(int(os.Stdin.Fd()), oldState)
	dumpGrid(engine.Grid())
	return nil
}

// dumpGrid prints the final screen contents, mainly useful for smoke
// testing the pipeline end to end without a real renderer attached.
func dumpGrid(g *vtcore.Grid) {
	rows, cols := g.Dimensions()
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := g.Cell(r, c)
			if cell.IsContinuation() {
				continue
			}
			if cell.Grapheme == "" {
				b.WriteByte(' ')
			} else {
				b.WriteString(cell.Grapheme)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
