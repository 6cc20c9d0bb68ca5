package notif

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studelie/internal/common"
)

// recordingObserver captures every event it receives.
type recordingObserver struct {
	name   string
	mu     sync.Mutex
	events []common.NotificationEvent
}

func (r *recordingObserver) Name() string { return r.name }

func (r *recordingObserver) Update(event common.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotificationManager_NotifyReachesAllObservers(t *testing.T) {
	manager := NewNotificationManager(2, 10)
	defer manager.Shutdown()

	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}
	manager.Subscribe(first)
	manager.Subscribe(second)

	manager.Notify(common.NotificationEvent{Type: common.SystemType, Header: "hello"})

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
}

func TestNotificationManager_NotifyAsyncDelivers(t *testing.T) {
	manager := NewNotificationManager(3, 100)
	defer manager.Shutdown()

	observer := &recordingObserver{name: "async"}
	manager.Subscribe(observer)

	for i := 0; i < 20; i++ {
		manager.NotifyAsync(common.NotificationEvent{Type: common.MessageType})
	}

	waitFor(t, func() bool { return observer.count() == 20 })
}

func TestNotificationManager_Unsubscribe(t *testing.T) {
	manager := NewNotificationManager(1, 10)
	defer manager.Shutdown()

	observer := &recordingObserver{name: "gone"}
	manager.Subscribe(observer)
	manager.Unsubscribe(observer)

	manager.Notify(common.NotificationEvent{Type: common.SystemType})

	assert.Equal(t, 0, observer.count())
}

func TestNotificationManager_NotifyAsyncAfterShutdownIsSafe(t *testing.T) {
	manager := NewNotificationManager(1, 1)
	manager.Shutdown()

	// Must not panic or block.
	manager.NotifyAsync(common.NotificationEvent{Type: common.SystemType})
}

func TestNotificationManager_FailingObserverDoesNotStopOthers(t *testing.T) {
	manager := NewNotificationManager(1, 10)
	defer manager.Shutdown()

	manager.Subscribe(failingObserver{})
	healthy := &recordingObserver{name: "healthy"}
	manager.Subscribe(healthy)

	manager.Notify(common.NotificationEvent{Type: common.SystemType})

	require.Equal(t, 1, healthy.count())
}

type failingObserver struct{}

func (failingObserver) Name() string { return "failing" }

func (failingObserver) Update(common.NotificationEvent) error {
	return assert.AnError
}
