package hostenv

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"vtcore"
)

const defaultLogFile = "vtdemo.log"
const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// InitLogging configures slog to write structured logs to a rotating
// file, and returns an ErrorCallback that logs every recoverable engine
// error at a level matched to its severity.
func InitLogging(cfg Config) (*slog.Logger, vtcore.ErrorCallback, error) {
	level := parseLogLevel(cfg.LogLevel)
	handlerOptions := &slog.HandlerOptions{Level: level}

	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		logPath = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		logger := slog.New(newHandler(cfg.LogFormat, io.Discard, handlerOptions))
		return logger, errorLogger(logger), err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	logger := slog.New(newHandler(cfg.LogFormat, writer, handlerOptions))
	return logger, errorLogger(logger), nil
}

// errorLogger adapts an slog.Logger into the plain ErrorCallback signature
// vtcore's core package accepts, keeping slog out of the dependency-light
// contract package.
func errorLogger(logger *slog.Logger) vtcore.ErrorCallback {
	return func(kind vtcore.ErrorKind, ctx vtcore.ErrorContext) {
		level := slog.LevelInfo
		if kind == vtcore.MalformedSemantics || kind == vtcore.DecodingError {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, "vtcore error", "kind", kind.String(), "detail", ctx.Detail)
	}
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return filepath.Join(".vtdemo", "logs", defaultLogFile)
	}
	return filepath.Join(homeDir, ".vtdemo", "logs", defaultLogFile)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}
