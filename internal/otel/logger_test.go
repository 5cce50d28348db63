package otel

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &decoded), line)
		out = append(out, decoded)
	}
	return out
}

func TestEmitWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindFetchStart, Level: LevelInfo, Comp: "coord", Source: "reddit"})
	l.Close()

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "fetch.start", got[0]["kind"])
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "coord", got[0]["comp"])
	assert.Equal(t, "reddit", got[0]["source"])
	assert.NotEmpty(t, got[0]["session_id"])
}

func TestEmitSetsTime(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	before := time.Now()
	l.Emit(Event{Kind: KindStartup})
	l.Close()

	var ev Event
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.False(t, ev.Time.Before(before.Add(-time.Second)))
	assert.Equal(t, l.SessionID(), ev.SessionID)
}

func TestDurationInMilliseconds(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindPipelineComplete, Dur: 1500 * time.Millisecond})
	l.Close()

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, 1500.0, got[0]["dur_ms"])
}

func TestOmitEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindStartup})
	l.Close()

	line := buf.String()
	for _, field := range []string{"dur_ms", "count", "source", "status", "path", "err", "msg", "extra", "run_id"} {
		assert.NotContains(t, line, `"`+field+`"`)
	}
}

func TestConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Emit(Event{Kind: KindFetchStart, Comp: "test"})
		}()
	}
	wg.Wait()
	l.Close()

	assert.Len(t, lines(t, &buf), 100)
}

func TestCloseIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Emit(Event{Kind: KindStartup})
	l.Close()
	l.Close()

	l.Emit(Event{Kind: KindShutdown})
	assert.Len(t, lines(t, &buf), 1)
	assert.Equal(t, uint64(1), l.Dropped())
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Emit(Event{Kind: KindStartup})
		l.Info(KindStartup, "main", "x")
		l.Error(KindPipelineError, "research", errors.New("boom"))
		l.SetRingBuffer(NewRingBuffer(4))
		assert.NoError(t, l.Close())
	})
	assert.Zero(t, l.Dropped())
	assert.Empty(t, l.SessionID())
}

type blockingWriter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	w.once.Do(func() {
		close(w.started)
		<-w.release
	})
	return len(p), nil
}

func TestDropWhenQueueFull(t *testing.T) {
	w := &blockingWriter{started: make(chan struct{}), release: make(chan struct{})}
	l := NewLogger(w)

	l.Emit(Event{Kind: KindFetchStart})
	<-w.started

	for i := 0; i < queueSize+10; i++ {
		l.Emit(Event{Kind: KindFetchStart})
	}
	assert.NotZero(t, l.Dropped())

	close(w.release)
	l.Close()
}

func TestHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info(KindStartup, "main", "starting")
	l.Error(KindPipelineError, "research", errors.New("boom"))
	l.Error(KindPipelineError, "research", nil)
	l.Close()

	got := lines(t, &buf)
	require.Len(t, got, 3)
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "starting", got[0]["msg"])
	assert.Equal(t, "error", got[1]["level"])
	assert.Equal(t, "boom", got[1]["err"])
	assert.Equal(t, "pipeline.error", got[1]["kind"])
	assert.NotContains(t, got[2], "err")
}

func TestRingBufferReceivesEvents(t *testing.T) {
	ring := NewRingBuffer(8)
	l := NewNullLogger()
	l.SetRingBuffer(ring)

	l.Emit(Event{Kind: KindHTTPRequest, Dur: time.Second})
	l.Close()

	events := ring.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, KindHTTPRequest, events[0].Kind)
	assert.Equal(t, time.Second, events[0].Dur)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, err := OpenFile(path)
	require.NoError(t, err)

	l.Info(KindStartup, "main", "hello")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"sys.startup"`)

	// The file belongs to the logger, so it is closed with it.
	_, err = l.file.(*os.File).Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestOpenFileMissingDir(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing", "events.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open event log")
}

func TestEmitRacingClose(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				l.Emit(Event{Kind: KindFetchStart})
			}
		}()
	}
	require.NoError(t, l.Close())
	wg.Wait()

	written := uint64(len(lines(t, &buf)))
	assert.Equal(t, uint64(8*200), written+l.Dropped())
}
