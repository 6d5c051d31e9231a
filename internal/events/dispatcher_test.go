package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventNoteCreated, func(_ context.Context, e Event) error {
		got = append(got, e.TenantID)
		return nil
	})
	d.Subscribe(EventPlanChanged, func(_ context.Context, e Event) error {
		t.Error("handler for another event type invoked")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventNoteCreated, TenantID: "t1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0] != "t1" {
		t.Errorf("deliveries = %v", got)
	}
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventPlanChanged, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventPlanChanged, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPlanChanged}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Error("second handler not invoked after first errored")
	}
}
