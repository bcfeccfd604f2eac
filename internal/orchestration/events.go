// Package orchestration drives the three persisted pipeline stages:
// generation, analysis, and judging. Each stage runner loads its input
// store, merges new work into its output store under the
// replace-in-place rule, and persists progress so an interrupted run
// can resume.
package orchestration

import "sync"

// EventType identifies a progress event.
type EventType string

const (
	EventStageStart     EventType = "stage_start"
	EventStageComplete  EventType = "stage_complete"
	EventRecordStart    EventType = "record_start"
	EventRecordComplete EventType = "record_complete"
	EventRecordSkipped  EventType = "record_skipped"
)

// ProgressEvent is one progress update from a stage runner.
type ProgressEvent struct {
	EventType EventType
	Stage     string
	Model     string
	PromptID  string
	Current   int
	Total     int
	Details   map[string]any
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// notifier fans progress events out to registered listeners. Embedded
// by the stage runners.
type notifier struct {
	mu        sync.Mutex
	listeners []ProgressListener
}

// OnProgress registers a progress listener.
func (n *notifier) OnProgress(listener ProgressListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, listener)
}

func (n *notifier) notify(event ProgressEvent) {
	n.mu.Lock()
	listeners := make([]ProgressListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}
