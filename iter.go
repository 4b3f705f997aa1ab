package borrow

import "iter"

// The iterators below are lazy: each Next call does O(1) window arithmetic
// (ChunkBy scans one group) and hands out a View sharing the source backing.

// Windows is created by View.Windows.
type Windows[T any] struct {
	v    View[T]
	size int
}

func (w *Windows[T]) Next() (View[T], bool) {
	if w.size > w.v.n {
		return View[T]{}, false
	}
	out := w.v.sub(0, w.size)
	w.v = w.v.sub(1, w.v.n)
	return out, true
}

// Len is the number of windows left.
func (w *Windows[T]) Len() int {
	if w.size > w.v.n {
		return 0
	}
	return w.v.n - w.size + 1
}

func (w *Windows[T]) All() iter.Seq[View[T]] { return drain(w.Next) }

// Chunks is created by View.Chunks.
type Chunks[T any] struct {
	v    View[T]
	size int
}

func (c *Chunks[T]) Next() (View[T], bool) {
	if c.v.n == 0 {
		return View[T]{}, false
	}
	k := min(c.size, c.v.n)
	out := c.v.sub(0, k)
	c.v = c.v.sub(k, c.v.n)
	return out, true
}

func (c *Chunks[T]) Len() int {
	return (c.v.n + c.size - 1) / c.size
}

func (c *Chunks[T]) All() iter.Seq[View[T]] { return drain(c.Next) }

// ChunksExact is created by View.ChunksExact.
type ChunksExact[T any] struct {
	v    View[T]
	rem  View[T]
	size int
}

func (c *ChunksExact[T]) Next() (View[T], bool) {
	if c.v.n == 0 {
		return View[T]{}, false
	}
	out := c.v.sub(0, c.size)
	c.v = c.v.sub(c.size, c.v.n)
	return out, true
}

// Remainder returns the tail shorter than the chunk size. It is never
// yielded by Next.
func (c *ChunksExact[T]) Remainder() View[T] { return c.rem }

func (c *ChunksExact[T]) Len() int { return c.v.n / c.size }

func (c *ChunksExact[T]) All() iter.Seq[View[T]] { return drain(c.Next) }

// ChunkBy is created by View.ChunkBy.
type ChunkBy[T any] struct {
	v    View[T]
	pred func(a, b T) bool
}

func (c *ChunkBy[T]) Next() (View[T], bool) {
	if c.v.n == 0 {
		return View[T]{}, false
	}
	k := 1
	for k < c.v.n && c.pred(c.v.seq.Index(c.v.off+k-1), c.v.seq.Index(c.v.off+k)) {
		k++
	}
	out := c.v.sub(0, k)
	c.v = c.v.sub(k, c.v.n)
	return out, true
}

func (c *ChunkBy[T]) All() iter.Seq[View[T]] { return drain(c.Next) }

func drain[T any](next func() (View[T], bool)) iter.Seq[View[T]] {
	return func(yield func(View[T]) bool) {
		for {
			v, ok := next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
