package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grepagrip/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := New()
	received := make(chan DomainEvent, 1)

	bus.Subscribe(EventSearchCleared, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(SearchClearedEvent{})

	select {
	case e := <-received:
		assert.Equal(t, EventSearchCleared, e.Type())
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestSubscriberOnlySeesItsType(t *testing.T) {
	bus := New()
	received := make(chan DomainEvent, 2)

	bus.Subscribe(EventReplaceCompleted, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(SearchClearedEvent{})
	bus.Publish(ReplaceCompletedEvent{Outcome: domain.ReplaceOutcome{FilesChanged: 1}})

	select {
	case e := <-received:
		replaceEvent, ok := e.(ReplaceCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, 1, replaceEvent.Outcome.FilesChanged)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case e := <-received:
		t.Fatalf("unexpected extra event: %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	first := make(chan struct{}, 4)
	second := make(chan struct{}, 4)

	unsubscribe := bus.Subscribe(EventSearchCleared, func(e DomainEvent) {
		first <- struct{}{}
	})
	bus.Subscribe(EventSearchCleared, func(e DomainEvent) {
		second <- struct{}{}
	})

	bus.Publish(SearchClearedEvent{})
	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}

	unsubscribe()
	bus.Publish(SearchClearedEvent{})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber must keep receiving")
	}
	select {
	case <-first:
		t.Fatal("unsubscribed handler must not receive events")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPanickingHandlerDoesNotKillDispatch(t *testing.T) {
	bus := New()
	received := make(chan struct{}, 1)

	bus.Subscribe(EventError, func(e DomainEvent) {
		panic("boom")
	})
	bus.Subscribe(EventError, func(e DomainEvent) {
		received <- struct{}{}
	})

	bus.Publish(ErrorEvent{Message: "x"})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch stopped after a handler panic")
	}
}
