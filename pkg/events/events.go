package events

import (
	"slices"
	"sync"
)

type EventHandler[E any] interface {
	HandleEvent(E)
}

type HandlerRegistration[E any] interface {
	RegisterHandler(h EventHandler[E])
	UnregisterHandler(h EventHandler[E])
}

type HandlerRegistry[E any] interface {
	HandlerRegistration[E]

	TriggerEvent(E)
	Len() int
}

// handlerFunc is a pointer type to keep function
// handlers comparable for unregistration.
type handlerFunc[E any] struct {
	f func(E)
}

func (h *handlerFunc[E]) HandleEvent(e E) {
	h.f(e)
}

// HandlerFunc provides an event handler calling the given function.
// The result must be kept to unregister the handler again.
func HandlerFunc[E any](f func(E)) EventHandler[E] {
	return &handlerFunc[E]{f}
}

type registry[E any] struct {
	lock     sync.Mutex
	handlers []EventHandler[E]
}

var _ HandlerRegistry[int] = (*registry[int])(nil)

func NewHandlerRegistry[E any]() HandlerRegistry[E] {
	return &registry[E]{}
}

func (r *registry[E]) RegisterHandler(h EventHandler[E]) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if slices.Index(r.handlers, h) < 0 {
		r.handlers = append(r.handlers, h)
	}
}

func (r *registry[E]) UnregisterHandler(h EventHandler[E]) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if i := slices.Index(r.handlers, h); i >= 0 {
		r.handlers = slices.Delete(slices.Clone(r.handlers), i, i+1)
	}
}

func (r *registry[E]) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.handlers)
}

// TriggerEvent calls all handlers registered at the time of
// the call in registration order. Handlers may (un)register
// handlers while being called.
func (r *registry[E]) TriggerEvent(e E) {
	r.lock.Lock()
	handlers := r.handlers
	r.lock.Unlock()

	for _, h := range handlers {
		h.HandleEvent(e)
	}
}
