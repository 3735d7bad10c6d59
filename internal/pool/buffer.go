// Package pool holds the reusable buffers of a decoding session.
package pool

// Buffer is a growable slice that is cleared, not reallocated, between uses.
//
// It is owned by a single goroutine. Items returned by Items stay valid until
// the next Reset.
type Buffer[T any] struct {
	items []T
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{items: make([]T, 0, capacity)}
}

// Append adds an item.
func (b *Buffer[T]) Append(item T) {
	b.items = append(b.items, item)
}

// Grow ensures room for n more items without another allocation.
func (b *Buffer[T]) Grow(n int) {
	if cap(b.items)-len(b.items) >= n {
		return
	}

	grown := make([]T, len(b.items), len(b.items)+n)
	copy(grown, b.items)
	b.items = grown
}

// Items returns the accumulated items, sharing the buffer's memory.
func (b *Buffer[T]) Items() []T {
	return b.items
}

// Len returns the number of accumulated items.
func (b *Buffer[T]) Len() int {
	return len(b.items)
}

// Cap returns the retained capacity.
func (b *Buffer[T]) Cap() int {
	return cap(b.items)
}

// Reset drops the accumulated items and keeps the capacity.
//
// Slots are zeroed so the buffer does not keep references the caller already
// handed downstream.
func (b *Buffer[T]) Reset() {
	clear(b.items)
	b.items = b.items[:0]
}
