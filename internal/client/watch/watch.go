// Package watch fans out store snapshots to subscribers.
package watch

import "sync"

// Hub delivers values to subscribers synchronously, in subscription order.
// Subscribers must not call back into the publishing store while handling
// a value.
type Hub[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
	ids  []int
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hub[T]) Subscribe(fn func(T)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]func(T))
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	h.ids = append(h.ids, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			for i, v := range h.ids {
				if v == id {
					h.ids = append(h.ids[:i], h.ids[i+1:]...)
					break
				}
			}
		})
	}
}

func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	fns := make([]func(T), 0, len(h.ids))
	for _, id := range h.ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
