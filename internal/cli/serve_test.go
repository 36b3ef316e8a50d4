package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponses(t *testing.T, data []byte) []serveResponse {
	t.Helper()
	var responses []serveResponse
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var resp serveResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServe(t *testing.T) {
	dir := setupProject(t, "")

	input := strings.Join([]string{
		`{"id": 1, "line": "gamerule "}`,
		``,
		`{"id": "two", "line": "gamerule keepInventory", "cursor": 10, "lineNumber": 3}`,
		`{"id": 3, "line": "unknown "}`,
		`not json`,
	}, "\n")

	var out bytes.Buffer
	err := Serve(context.Background(), ServeParams{
		Common: Common{Dir: dir, Output: &out},
		Input:  strings.NewReader(input),
	})
	require.NoError(t, err)

	responses := decodeResponses(t, out.Bytes())
	require.Len(t, responses, 4)

	assert.JSONEq(t, `1`, string(responses[0].ID))
	assert.True(t, responses[0].OK)
	require.Len(t, responses[0].Items, 2)
	assert.Equal(t, "keepInventory", responses[0].Items[0].Label)
	assert.Equal(t, "keyword", responses[0].Items[0].Kind)
	assert.Equal(t, serveRange{StartLine: 1, StartColumn: 10, EndLine: 1, EndColumn: 10}, responses[0].Items[0].Range)

	assert.JSONEq(t, `"two"`, string(responses[1].ID))
	require.Len(t, responses[1].Items, 1)
	assert.Equal(t, serveRange{StartLine: 3, StartColumn: 10, EndLine: 3, EndColumn: 23}, responses[1].Items[0].Range)

	assert.False(t, responses[2].OK)
	assert.False(t, responses[2].Stale)
	assert.Empty(t, responses[2].Items)

	assert.Contains(t, responses[3].Error, "invalid request")
}

func TestServe_CancelledContext(t *testing.T) {
	dir := setupProject(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(ctx, ServeParams{
		Common: Common{Dir: dir, Output: &bytes.Buffer{}},
		Input:  strings.NewReader(`{"line": "g"}` + "\n"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

// syncBuffer is a bytes.Buffer safe to read while Serve writes to it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSuffix(b.buf.String(), "\n"), "\n")
}

func (b *syncBuffer) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), "\n")
}

func TestServe_WatchReloadsCatalog(t *testing.T) {
	dir := setupProject(t, "")

	reader, writer := io.Pipe()
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), ServeParams{
			Common: Common{Dir: dir, Output: out},
			Input:  reader,
			Watch:  true,
		})
	}()

	request := func(line string) serveResponse {
		n := out.count()
		_, err := writer.Write([]byte(line + "\n"))
		require.NoError(t, err)
		require.Eventually(t, func() bool { return out.count() > n }, 5*time.Second, 10*time.Millisecond)

		lines := out.lines()
		var resp serveResponse
		require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &resp))
		return resp
	}

	first := request(`{"line": "p"}`)
	assert.True(t, first.OK)
	assert.Empty(t, first.Items)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.json"),
		[]byte(`{"commands": [{"commandName": "ping", "arguments": []}]}`), 0644))

	var reloaded serveResponse
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); time.Sleep(50 * time.Millisecond) {
		reloaded = request(`{"line": "p"}`)
		if len(reloaded.Items) > 0 {
			break
		}
	}
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "ping", reloaded.Items[0].Label)
	assert.Greater(t, reloaded.Generation, first.Generation)

	require.NoError(t, writer.Close())
	require.NoError(t, <-done)
}
