package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grepagrip/internal/eventbus"
)

func TestWatch_PublishesRefreshAfterChange(t *testing.T) {
	bus := eventbus.New()
	refreshed := make(chan struct{}, 1)
	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})

	dir := t.TempDir()
	ws := NewWatchService(bus)
	defer ws.Stop()
	require.NoError(t, ws.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello\n"), 0644))

	select {
	case <-refreshed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a refresh request after a file change")
	}
}

func TestWatch_CoalescesEventBursts(t *testing.T) {
	bus := eventbus.New()
	refreshes := make(chan struct{}, 16)
	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		refreshes <- struct{}{}
	})

	dir := t.TempDir()
	ws := NewWatchService(bus)
	defer ws.Stop()
	require.NoError(t, ws.Watch(dir))

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(name, []byte("x\n"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-refreshes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a refresh request")
	}
	select {
	case <-refreshes:
		t.Fatal("burst of changes must coalesce into one refresh")
	case <-time.After(settleDelay * 2):
	}
}

func TestWatch_UnwatchableRootFails(t *testing.T) {
	ws := NewWatchService(eventbus.New())
	defer ws.Stop()

	err := ws.Watch(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWatch_PublishesErrorEventOnRootChangeFailure(t *testing.T) {
	bus := eventbus.New()
	errs := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		select {
		case errs <- e:
		default:
		}
	})

	ws := NewWatchService(bus)
	defer ws.Stop()

	bus.Publish(eventbus.RootChangedEvent{Root: filepath.Join(t.TempDir(), "missing")})

	select {
	case e := <-errs:
		errEvent, ok := e.(eventbus.ErrorEvent)
		require.True(t, ok)
		assert.Error(t, errEvent.Err)
	case <-time.After(3 * time.Second):
		t.Fatal("expected an error event for an unwatchable root")
	}
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	ws := NewWatchService(eventbus.New())
	require.NoError(t, ws.Watch(t.TempDir()))
	ws.Stop()
	assert.NotPanics(t, ws.Stop)
}
