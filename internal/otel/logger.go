package otel

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const queueSize = 4096

// entry pairs the encoded line with the Event it came from, so the ring
// keeps fields that JSON hides (Dur).
type entry struct {
	line []byte
	ev   Event
}

// Logger writes events as JSONL from a single background goroutine and
// mirrors them into an optional RingBuffer. A nil *Logger discards
// everything, so components can hold an optional event sink without nil
// checks.
type Logger struct {
	sessionID string
	out       io.Writer
	file      io.Closer
	ring      atomic.Pointer[RingBuffer]
	dropped   atomic.Uint64

	// mu is held shared by Emit while it sends and exclusively by Close
	// while it closes queue.
	mu     sync.RWMutex
	closed bool
	queue  chan entry
	done   chan struct{}
}

// NewLogger creates a Logger writing to w. Call Close to flush.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		sessionID: uuid.NewString(),
		out:       w,
		queue:     make(chan entry, queueSize),
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger creates a Logger whose only consumer is the ring buffer.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

// OpenFile creates a Logger appending to path. Close also closes the file.
func OpenFile(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	l := NewLogger(f)
	l.file = f
	return l, nil
}

func (l *Logger) drain() {
	defer close(l.done)
	for e := range l.queue {
		if _, err := l.out.Write(e.line); err != nil {
			l.dropped.Add(1)
		}
		if ring := l.ring.Load(); ring != nil {
			ring.Push(e.ev)
		}
	}
}

// SessionID identifies this process in every emitted event.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Emit stamps e with the session and, when unset, the current time, then
// queues it. It never blocks: with a full queue or after Close the event
// is counted in Dropped instead.
func (l *Logger) Emit(e Event) {
	if l == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	line, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.dropped.Add(1)
		return
	}
	select {
	case l.queue <- entry{line: append(line, '\n'), ev: e}:
	default:
		l.dropped.Add(1)
	}
}

func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Error records err's text; a nil err is logged as empty.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: msg})
}

// SetRingBuffer mirrors subsequent events into r. Passing nil detaches.
func (l *Logger) SetRingBuffer(r *RingBuffer) {
	if l == nil {
		return
	}
	l.ring.Store(r)
}

// Dropped counts events lost to a full queue, a closed logger, or a
// failed write.
func (l *Logger) Dropped() uint64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Close flushes queued events and closes the file opened by OpenFile.
// Later calls are no-ops.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	<-l.done
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
