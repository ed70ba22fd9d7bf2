package engine

// ListenerID identifies a subscription so it can be removed later.
type ListenerID int

// Event is a Unity-style multi-cast event system.
// Allows multiple listeners to subscribe to a single event.
type Event struct {
	inner EventWithArg[struct{}]
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id ListenerID) {
	e.inner.RemoveListener(id)
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.inner.RemoveAllListeners()
}

// Invoke calls all registered listeners
func (e *Event) Invoke() {
	e.inner.Invoke(struct{}{})
}

func (e *Event) GetListenerCount() int {
	return e.inner.GetListenerCount()
}

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener returns an ID for RemoveListener. A nil callback is ignored and returns 0.
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls listeners in subscription order.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
