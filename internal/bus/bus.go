// Package bus provides synchronous publish/subscribe channels for simulation
// notifications.
//
// Dispatch is single-threaded and in subscription order. Publishing snapshots
// the subscriber list first, so handlers may subscribe or cancel during a
// dispatch without affecting the delivery in progress.
package bus

// Handler receives a published event.
type Handler[E any] func(E)

type subscriber[E any] struct {
	id int
	fn Handler[E]
}

// Bus is a singleton channel: every subscriber sees every event.
// The zero value is ready to use.
type Bus[E any] struct {
	subs   []subscriber[E]
	nextID int
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus[E]) Subscribe(fn Handler[E]) (cancel func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[E]{id: id, fn: fn})
	return func() { b.remove(id) }
}

func (b *Bus[E]) remove(id int) {
	for i, s := range b.subs {
		if s.id == id {
			// Build a fresh slice so an in-flight snapshot keeps its backing array.
			next := make([]subscriber[E], 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			next = append(next, b.subs[i+1:]...)
			b.subs = next
			return
		}
	}
}

// Publish delivers e to all current subscribers.
func (b *Bus[E]) Publish(e E) {
	subs := b.subs
	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus[E]) Len() int {
	return len(b.subs)
}

// Reset drops every subscriber.
func (b *Bus[E]) Reset() {
	b.subs = nil
}

// Keyed is an addressed channel: subscribers listen on a key and only
// receive events published to that key.
type Keyed[K comparable, E any] struct {
	subs   map[K][]subscriber[E]
	nextID int
}

// Subscribe registers fn for key and returns a function that removes it.
func (k *Keyed[K, E]) Subscribe(key K, fn Handler[E]) (cancel func()) {
	if k.subs == nil {
		k.subs = make(map[K][]subscriber[E])
	}
	k.nextID++
	id := k.nextID
	k.subs[key] = append(k.subs[key], subscriber[E]{id: id, fn: fn})
	return func() { k.remove(key, id) }
}

func (k *Keyed[K, E]) remove(key K, id int) {
	list := k.subs[key]
	for i, s := range list {
		if s.id != id {
			continue
		}
		if len(list) == 1 {
			delete(k.subs, key)
			return
		}
		next := make([]subscriber[E], 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		k.subs[key] = next
		return
	}
}

// Publish delivers e to the subscribers of key.
func (k *Keyed[K, E]) Publish(key K, e E) {
	subs := k.subs[key]
	for _, s := range subs {
		s.fn(e)
	}
}

// Has reports whether anything listens on key.
func (k *Keyed[K, E]) Has(key K) bool {
	return len(k.subs[key]) > 0
}

// Reset drops every subscriber on every key.
func (k *Keyed[K, E]) Reset() {
	k.subs = nil
}
