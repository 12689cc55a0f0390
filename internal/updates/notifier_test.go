package updates

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNotifier_FanOutAndReplay(t *testing.T) {
	n := NewNotifier(nil)

	a, cancelA := subscribe(t, n)
	n.Publish(Event{Kind: OfflineReady, Version: "v1"})
	ev := <-a
	require.Equal(t, OfflineReady, ev.Kind)
	require.False(t, ev.At.IsZero())

	// Late subscriber gets the offline-ready replay.
	b, cancelB := subscribe(t, n)
	require.Equal(t, "v1", (<-b).Version)

	n.Publish(Event{Kind: UpdateAvailable, Version: "v2"})
	require.Equal(t, UpdateAvailable, (<-a).Kind)
	require.Equal(t, UpdateAvailable, (<-b).Kind)

	cancelA()
	cancelA() // idempotent
	require.Equal(t, 1, n.Subscribers())
	_, open := <-a
	require.False(t, open)

	cancelB()
	require.Equal(t, 0, n.Subscribers())
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := NewNotifier(nil)
	ch, cancel := n.Subscribe(1)
	defer cancel()
	for i := 0; i < 10; i++ {
		n.Publish(Event{Kind: UpdateAvailable})
	}
	require.Len(t, ch, 1)
}

func TestNotifier_Close(t *testing.T) {
	n := NewNotifier(nil)
	ch, cancel := n.Subscribe(1)
	n.Close()
	_, open := <-ch
	require.False(t, open)
	cancel()

	late, _ := n.Subscribe(1)
	_, open = <-late
	require.False(t, open)
	n.Publish(Event{Kind: UpdateAvailable})
	n.Close()
}

func subscribe(t *testing.T, n *Notifier) (<-chan Event, func()) {
	t.Helper()
	ch, cancel := n.Subscribe(4)
	t.Cleanup(cancel)
	return ch, cancel
}
