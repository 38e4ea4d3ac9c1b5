package observer

import (
	"sync"

	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// Observable fans out notifications of type T to buffered subscriber channels.
// Publishing never blocks: a subscriber that does not keep up loses notifications.
type Observable[T any] struct {
	observers  map[chan T]struct{}
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewObservable creates a new Observable whose subscriber channels buffer up to bufferSize notifications.
func NewObservable[T any](bufferSize int) *Observable[T] {
	return &Observable[T]{
		observers:  make(map[chan T]struct{}),
		bufferSize: bufferSize,
	}
}

// Subscribe adds a new subscriber and returns a channel for receiving notifications.
// The caller is responsible for consuming from the returned channel.
// The channel is closed by Unsubscribe or Close.
func (o *Observable[T]) Subscribe() chan T {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		ch := make(chan T)
		close(ch)
		return ch
	}

	ch := make(chan T, o.bufferSize)
	o.observers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber channel and closes it.
func (o *Observable[T]) Unsubscribe(ch chan T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.observers[ch]; ok {
		delete(o.observers, ch)
		close(ch)
	}
}

// NotifyObservers sends data to all currently subscribed channels.
// If a subscriber's channel buffer is full the notification is dropped for that subscriber.
func (o *Observable[T]) NotifyObservers(data T) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return
	}

	for ch := range o.observers {
		select {
		case ch <- data:
		default:
			logger.Tracef("Subscriber channel is full, dropping %T notification", data)
		}
	}
}

// Close unsubscribes all current subscribers and prevents new subscriptions.
func (o *Observable[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}

	o.closed = true
	for ch := range o.observers {
		delete(o.observers, ch)
		close(ch)
	}
}
