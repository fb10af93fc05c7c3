package events

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe(TopicAnalysis, 10)

	bus.Publish(TopicAnalysis, AnalysisStartedEvent{ID: "run-1", Tasks: 4, Timestamp: time.Now()})

	select {
	case received := <-ch:
		if received.RunID() != "run-1" {
			t.Errorf("expected run ID 'run-1', got '%s'", received.RunID())
		}
		if received.EventType() != EventTypeAnalysisStarted {
			t.Errorf("expected event type '%s', got '%s'", EventTypeAnalysisStarted, received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch1 := bus.Subscribe(TopicAnalysis, 10)
	ch2 := bus.Subscribe(TopicAnalysis, 10)

	bus.Publish(TopicAnalysis, CycleDetectedEvent{ID: "run-2", Cycle: []string{"a", "b"}})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			cycle, ok := received.(CycleDetectedEvent)
			if !ok {
				t.Fatalf("subscriber %d: unexpected event %T", i+1, received)
			}
			if len(cycle.Cycle) != 2 {
				t.Errorf("subscriber %d: expected 2-node cycle, got %v", i+1, cycle.Cycle)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("subscriber %d: timeout waiting for event", i+1)
		}
	}
}

// Full subscriber buffers drop events rather than stall the publisher.
func TestNonBlockingSend(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe(TopicAnalysis, 1)

	done := make(chan bool)
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(TopicAnalysis, AnalysisCompletedEvent{ID: "run", Ranked: i})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("publisher blocked (expected non-blocking behavior)")
	}

	if got := bus.Dropped(); got != 9 {
		t.Errorf("expected 9 dropped deliveries, got %d", got)
	}

	select {
	case received := <-ch:
		if received.(AnalysisCompletedEvent).Ranked != 0 {
			t.Errorf("expected first event to be buffered, got %+v", received)
		}
	default:
		t.Error("expected at least one event in buffer")
	}
}

func TestCloseSignalsSubscribers(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TopicAnalysis, 10)
	all := bus.SubscribeAll(10)

	bus.Close()
	bus.Close()

	for range ch {
		t.Error("unexpected event on closed topic channel")
	}
	for range all {
		t.Error("unexpected event on closed all-topics channel")
	}

	// Subscribing after close returns a closed channel
	if _, ok := <-bus.Subscribe(TopicWatch, 1); ok {
		t.Error("expected closed channel after Close")
	}
}

func TestPublishAfterCloseAndNilBus(t *testing.T) {
	bus := NewBus()
	bus.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("publish panicked: %v", r)
		}
	}()

	bus.Publish(TopicAnalysis, AnalysisStartedEvent{ID: "late"})

	var nilBus *Bus
	nilBus.Publish(TopicAnalysis, AnalysisStartedEvent{ID: "nil"})
}

func TestTopicsAndSubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	analysisCh := bus.Subscribe(TopicAnalysis, 10)
	watchCh := bus.Subscribe(TopicWatch, 10)
	allCh := bus.SubscribeAll(10)

	bus.Publish(TopicAnalysis, AnalysisStartedEvent{ID: "run"})
	bus.Publish(TopicWatch, FileChangedEvent{Path: "tasks.json"})

	select {
	case received := <-analysisCh:
		if received.EventType() != EventTypeAnalysisStarted {
			t.Errorf("analysis channel: got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("analysis channel: timeout waiting for event")
	}

	select {
	case received := <-watchCh:
		if received.EventType() != EventTypeFileChanged {
			t.Errorf("watch channel: got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("watch channel: timeout waiting for event")
	}

	select {
	case <-analysisCh:
		t.Error("analysis channel received unexpected event")
	case <-time.After(10 * time.Millisecond):
	}

	receivedTypes := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case received := <-allCh:
			receivedTypes[received.EventType()] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}
	if !receivedTypes[EventTypeAnalysisStarted] || !receivedTypes[EventTypeFileChanged] {
		t.Errorf("SubscribeAll missed events: %v", receivedTypes)
	}
}
