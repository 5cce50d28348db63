// Package otel records typed observability events for topicradar.
//
// Events are serialized as JSONL lines by an asynchronous Logger. An
// optional RingBuffer keeps the most recent events in memory so the
// server can expose them on /debug/events.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Source fetches
	KindFetchStart    EventKind = "fetch.start"
	KindFetchComplete EventKind = "fetch.complete"
	KindFetchError    EventKind = "fetch.error"

	// Pipeline runs
	KindPipelineStart    EventKind = "pipeline.start"
	KindPipelineComplete EventKind = "pipeline.complete"
	KindPipelineError    EventKind = "pipeline.error"

	// HTTP surface
	KindHTTPRequest EventKind = "http.request"

	// Configuration
	KindConfigReload EventKind = "config.reload"

	// Process lifecycle
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // "coord", "research", "server", "config"
	SessionID string         `json:"session_id,omitempty"` // same for the whole process
	RunID     string         `json:"run_id,omitempty"`     // one pipeline run
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Source    string         `json:"source,omitempty"`
	Status    int            `json:"status,omitempty"`
	Path      string         `json:"path,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
