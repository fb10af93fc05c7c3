package events

import (
	"time"
)

// Event is anything published on the bus.
type Event interface {
	EventType() string
	RunID() string
}

// Topics
const (
	TopicAnalysis = "analysis"
	TopicWatch    = "watch"
)

// Event types
const (
	EventTypeAnalysisStarted   = "analysis.started"
	EventTypeCycleDetected     = "analysis.cycle"
	EventTypeAnalysisCompleted = "analysis.completed"
	EventTypeFileChanged       = "watch.changed"
)

// AnalysisStartedEvent is published before a task set is analyzed.
type AnalysisStartedEvent struct {
	ID        string
	Tasks     int
	Timestamp time.Time
}

func (e AnalysisStartedEvent) EventType() string { return EventTypeAnalysisStarted }
func (e AnalysisStartedEvent) RunID() string     { return e.ID }

// CycleDetectedEvent is published once per dependency cycle found.
type CycleDetectedEvent struct {
	ID        string
	Cycle     []string
	Timestamp time.Time
}

func (e CycleDetectedEvent) EventType() string { return EventTypeCycleDetected }
func (e CycleDetectedEvent) RunID() string     { return e.ID }

// AnalysisCompletedEvent is published when a report is ready.
type AnalysisCompletedEvent struct {
	ID        string
	Ranked    int
	Blocked   int
	Warnings  int
	Duration  time.Duration
	Timestamp time.Time
}

func (e AnalysisCompletedEvent) EventType() string { return EventTypeAnalysisCompleted }
func (e AnalysisCompletedEvent) RunID() string     { return e.ID }

// FileChangedEvent is published when a watched task file changes.
type FileChangedEvent struct {
	Path      string
	Timestamp time.Time
}

func (e FileChangedEvent) EventType() string { return EventTypeFileChanged }
func (e FileChangedEvent) RunID() string     { return "" }
