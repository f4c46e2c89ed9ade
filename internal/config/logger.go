package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the process logger. With no log.file set, a terminal
// client logs nowhere so records never tear the screen; pass fallback to
// send them somewhere else instead (the server passes os.Stderr). The
// returned closer releases the file, if any.
func (l LogConfig) NewLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.File == "" {
		if fallback == nil {
			return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
		}
		return slog.New(slog.NewTextHandler(fallback, opts)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}
