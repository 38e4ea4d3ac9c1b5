package observer

// Observer is the callback form of a subscription.
type Observer[T any] interface {
	// Update is called when the observable notifies its observers.
	Update(data T)
}

// Forward delivers every notification received on ch to obs until ch is closed.
// It blocks, so it is usually started in its own goroutine.
func Forward[T any](ch <-chan T, obs Observer[T]) {
	for data := range ch {
		obs.Update(data)
	}
}
