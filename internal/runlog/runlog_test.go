package runlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "rainbow-rogue"), dir)
}

func TestDataDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := DataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".local", "share", "rainbow-rogue")), dir)
}

func TestJSONLAppendAndSummary(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	s, err := NewJSONLStore("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "rainbow-rogue", "runs.jsonl"), s.Path())

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum, "missing file is an empty summary")

	require.NoError(t, s.Append(ctx, Record{ID: "a", Timestamp: time.Unix(10, 0), Seed: 7, Depth: 3, Turns: 40, Died: true}))
	require.NoError(t, s.Append(ctx, Record{ID: "b", Timestamp: time.Unix(20, 0), Seed: 8, Depth: 1, Turns: 5}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"depth":3`)
	assert.Contains(t, lines[0], `"died":true`)

	sum, err = s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Runs: 2, BestDepth: 3}, sum)
}

func TestJSONLSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n\n{\"id\":\"x\",\"depth\":4}\n"), 0o644))

	s, err := NewJSONLStore(dir, nil)
	require.NoError(t, err)
	sum, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Runs: 1, BestDepth: 4}, sum)
}

func TestSummaryAdd(t *testing.T) {
	sum := Summary{}.Add(Record{Depth: 2}).Add(Record{Depth: 5}).Add(Record{Depth: 1})
	assert.Equal(t, Summary{Runs: 3, BestDepth: 5}, sum)
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, BackendNone, "", nil)
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, s)

	s, err = Open(ctx, BackendJSONL, t.TempDir(), nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONLStore{}, s)

	_, err = Open(ctx, BackendPostgres, "", nil)
	assert.ErrorContains(t, err, "needs a dsn")

	_, err = Open(ctx, "sqlite", "", nil)
	assert.ErrorContains(t, err, "unknown backend")
}
