package sim

// idSet is an insertion-ordered set with O(1) add and remove.
// Removal swaps the last element into the freed slot.
type idSet[K comparable] struct {
	items []K
	index map[K]int
}

func newIDSet[K comparable]() *idSet[K] {
	return &idSet[K]{index: make(map[K]int)}
}

func (s *idSet[K]) add(k K) bool {
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, k)
	return true
}

func (s *idSet[K]) remove(k K) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index[moved] = i
	}
	s.items = s.items[:last]
	delete(s.index, k)
	return true
}

func (s *idSet[K]) has(k K) bool {
	_, ok := s.index[k]
	return ok
}

func (s *idSet[K]) len() int {
	return len(s.items)
}

func (s *idSet[K]) clear() {
	s.items = s.items[:0]
	clear(s.index)
}

// ActiveSet tracks which entities receive per-tick updates.
//
// Additions are staged and only join the iterated set at the next Begin, so
// an entity attached while a frame is being processed first ticks on the
// following frame. Removals take effect immediately.
type ActiveSet[K comparable] struct {
	active  *idSet[K]
	pending *idSet[K]
	frame   []K
}

// NewActiveSet creates an empty set.
func NewActiveSet[K comparable]() *ActiveSet[K] {
	return &ActiveSet[K]{
		active:  newIDSet[K](),
		pending: newIDSet[K](),
	}
}

// Add schedules k. Adding an already scheduled key is a no-op.
func (a *ActiveSet[K]) Add(k K) {
	if a.active.has(k) {
		return
	}
	a.pending.add(k)
}

// Remove unschedules k.
func (a *ActiveSet[K]) Remove(k K) {
	if !a.active.remove(k) {
		a.pending.remove(k)
	}
}

// Contains reports whether k is scheduled, staged or active.
func (a *ActiveSet[K]) Contains(k K) bool {
	return a.active.has(k) || a.pending.has(k)
}

// Active reports whether k is part of the current frame's set.
func (a *ActiveSet[K]) Active(k K) bool {
	return a.active.has(k)
}

// Begin promotes staged keys and returns the keys to tick this frame.
// The returned slice is reused by the next call.
func (a *ActiveSet[K]) Begin() []K {
	for _, k := range a.pending.items {
		a.active.add(k)
	}
	a.pending.clear()
	a.frame = append(a.frame[:0], a.active.items...)
	return a.frame
}

// Len returns the number of scheduled keys, staged ones included.
func (a *ActiveSet[K]) Len() int {
	return a.active.len() + a.pending.len()
}

// Clear unschedules everything.
func (a *ActiveSet[K]) Clear() {
	a.active.clear()
	a.pending.clear()
}
