package events

import (
	"testing"
	"time"
)

func TestEventBus(t *testing.T) {
	eventBus := NewEventBus()

	subID, eventChan := eventBus.Subscribe()

	if count := eventBus.GetTotalSubscriptions(); count != 1 {
		t.Errorf("Expected 1 subscriber, got %d", count)
	}

	event := NewRecordMined(4, "00ab3f", 17, 18, 25*time.Millisecond)

	// Publish event in goroutine to avoid blocking
	go func() {
		eventBus.Publish(event)
	}()

	select {
	case receivedEvent := <-eventChan:
		if receivedEvent.Type() != EventRecordMined {
			t.Errorf("Expected RecordMined, got %s", receivedEvent.Type())
		}
		if receivedEvent.RecordDigest() != "00ab3f" {
			t.Errorf("Expected digest 00ab3f, got %s", receivedEvent.RecordDigest())
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout waiting for event")
	}

	if !eventBus.Unsubscribe(subID) {
		t.Error("Expected unsubscribe to succeed")
	}
	if count := eventBus.GetTotalSubscriptions(); count != 0 {
		t.Errorf("Expected 0 subscribers after unsubscribe, got %d", count)
	}
}

func TestRecordMinedAccessors(t *testing.T) {
	event := NewRecordMined(2, "00ffee", 99, 150, time.Second)

	if event.Index() != 2 {
		t.Errorf("Expected index 2, got %d", event.Index())
	}
	if event.Nonce() != 99 {
		t.Errorf("Expected nonce 99, got %d", event.Nonce())
	}
	if event.Attempts() != 150 {
		t.Errorf("Expected 150 attempts, got %d", event.Attempts())
	}
	if event.Elapsed() != time.Second {
		t.Errorf("Expected 1s elapsed, got %s", event.Elapsed())
	}
	if event.Timestamp().IsZero() {
		t.Error("Expected a non-zero event timestamp")
	}
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	eventBus := NewEventBus()
	_, eventChan := eventBus.Subscribe()

	// Fill the subscriber buffer and one more; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(eventChan)+10; i++ {
			eventBus.Publish(NewRecordMined(uint64(i), "0abc", 0, 1, 0))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if len(eventChan) != cap(eventChan) {
		t.Errorf("Expected a full buffer of %d events, got %d", cap(eventChan), len(eventChan))
	}
}
