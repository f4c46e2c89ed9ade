package runlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const appDir = "rainbow-rogue"

// JSONLStore appends one JSON object per run to runs.jsonl.
type JSONLStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewJSONLStore stores runs under dir, creating it on first append. An
// empty dir selects the XDG data directory.
func NewJSONLStore(dir string, logger *slog.Logger) (*JSONLStore, error) {
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &JSONLStore{path: filepath.Join(dir, "runs.jsonl"), logger: logger}, nil
}

// Path is the file records are written to.
func (s *JSONLStore) Path() string { return s.path }

// Append writes r as a single line.
func (s *JSONLStore) Append(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("run log: create data dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("run log: open: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("run log: marshal: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("run log: write: %w", err)
	}
	return nil
}

// Summary scans the file. A missing file is an empty summary; malformed
// lines are skipped with a warning.
func (s *JSONLStore) Summary(_ context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Summary{}, nil
	}
	if err != nil {
		return Summary{}, fmt.Errorf("run log: open: %w", err)
	}
	defer f.Close()

	var sum Summary
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			s.logger.Warn("run log: skipping malformed line", "line", line, "error", err)
			continue
		}
		sum = sum.Add(r)
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("run log: read: %w", err)
	}
	return sum, nil
}

func (s *JSONLStore) Close() error { return nil }

// DataDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/rainbow-rogue,
// defaulting to ~/.local/share/rainbow-rogue.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("run log: locate home: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDir), nil
}
