package notif

import (
	"context"
	"log"
	"sync"

	"studelie/internal/common"
)

// NotificationManager fans broadcast events out to its observers
// through a buffered channel drained by a worker pool. Delivery is
// best effort: a full channel drops the event, a failing observer is
// logged and skipped.
type NotificationManager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

func NewNotificationManager(workerPoolSize, bufferSize int) *NotificationManager {
	ctx, cancel := context.WithCancel(context.Background())

	nm := &NotificationManager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	log.Printf("observer %s subscribed", observer.Name())
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	log.Printf("observer %s unsubscribed", observer.Name())
}

// Notify delivers the event to every observer synchronously.
func (nm *NotificationManager) Notify(event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("observer %s update failed: %v", observer.Name(), err)
		}
	}
}

// NotifyAsync queues the event for the worker pool. It never blocks
// the caller: when the channel is full the event is dropped.
func (nm *NotificationManager) NotifyAsync(event common.NotificationEvent) {
	select {
	case nm.eventChannel <- event:
	case <-nm.ctx.Done():
	default:
		log.Printf("notification channel full, dropping event: %s", event.Type)
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for {
		select {
		case event := <-nm.eventChannel:
			nm.Notify(event)
		case <-nm.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit. Events still
// buffered in the channel are not flushed.
func (nm *NotificationManager) Shutdown() {
	nm.cancel()
	nm.wg.Wait()
	log.Println("notification manager shutdown complete")
}
