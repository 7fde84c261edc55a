// Package ringbuf provides a single-producer / single-consumer bounded
// queue of values, generalizing the byte-oriented atomic head/tail design of
// x/shmring to arbitrary element types.
//
// Semantics
//   - Exactly one producer goroutine and exactly one consumer goroutine.
//   - Capacity must be a power of two >= 2.
//   - Distance invariant: 0 <= (wr - rd) <= size at all times.
//   - Empty: wr == rd. Full: (wr - rd) == size.
//
// This backs "decoupling queue" between the input sampler and the
// input hub (§4.B) and the per-rotary-encoder detent queue (§4.B, §9 "ISR
// interaction"): both need a bounded, non-blocking-on-the-producer-side
// SPSC queue, not a full channel with blocking semantics on overflow.
package ringbuf

import "sync/atomic"

// DropPolicy selects what TryPush does when the ring is full.
type DropPolicy uint8

const (
	// DropNewest discards the incoming value, keeping everything already
	// queued.
	DropNewest DropPolicy = iota
	// DropOldest discards the element at the head to make room.
	DropOldest
)

// Ring is a bounded SPSC queue of T.
type Ring[T any] struct {
	buf  []T
	mask uint32
	rd   atomic.Uint32
	wr   atomic.Uint32

	policy DropPolicy
	drops  atomic.Uint32
}

// New returns a Ring with the given power-of-two capacity (>= 2).
func New[T any](size int, policy DropPolicy) *Ring[T] {
	if size < 2 || size&(size-1) != 0 {
		panic("ringbuf: size must be a power of two >= 2")
	}
	return &Ring[T]{
		buf:    make([]T, size),
		mask:   uint32(size - 1),
		policy: policy,
	}
}

func (r *Ring[T]) size() uint32 { return uint32(len(r.buf)) }

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int { return int(r.wr.Load() - r.rd.Load()) }

// Cap returns the ring's capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Drops returns the number of elements discarded due to the ring being full.
func (r *Ring[T]) Drops() uint32 { return r.drops.Load() }

// TryPush enqueues v. It never blocks. If the ring is full, it applies the
// configured DropPolicy and returns false; the caller (e.g. an ISR handler
// or the sampler loop) must not treat this as an error to retry.
func (r *Ring[T]) TryPush(v T) bool {
	rd := r.rd.Load()
	wr := r.wr.Load()
	size := r.size()

	if wr-rd == size {
		r.drops.Add(1)
		switch r.policy {
		case DropOldest:
			// Advance rd by one to make room, then fall through to write.
			if !r.rd.CompareAndSwap(rd, rd+1) {
				return false // consumer raced us; try again next cycle
			}
		default: // DropNewest
			return false
		}
	}

	idx := wr & r.mask
	r.buf[idx] = v
	r.wr.Store(wr + 1)
	return true
}

// TryPop dequeues the oldest element. Returns the zero value and false if
// the ring is empty.
func (r *Ring[T]) TryPop() (T, bool) {
	var zero T
	rd := r.rd.Load()
	wr := r.wr.Load()
	if rd == wr {
		return zero, false
	}
	idx := rd & r.mask
	v := r.buf[idx]
	r.buf[idx] = zero
	r.rd.Store(rd + 1)
	return v, true
}
