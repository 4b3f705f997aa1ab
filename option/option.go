// Package option holds the present/absent value returned by lookups that may
// find nothing: out-of-range indexes, empty containers, failed predicates.
package option

import "fmt"

// Option is either a present value of type T or absent.
// The zero value is absent.
type Option[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{v: v, ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.ok }
func (o Option[T]) IsNone() bool { return !o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Unwrap returns the value, panicking if absent.
func (o Option[T]) Unwrap() T {
	if !o.ok {
		panic("option: Unwrap on absent value")
	}
	return o.v
}

func (o Option[T]) Expect(msg string) T {
	if !o.ok {
		panic(msg)
	}
	return o.v
}

func (o Option[T]) UnwrapOr(def T) T {
	if !o.ok {
		return def
	}
	return o.v
}

func (o Option[T]) UnwrapOrElse(f func() T) T {
	if !o.ok {
		return f()
	}
	return o.v
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.v)
}

// Map applies f to a present value. Go methods cannot introduce type
// parameters, hence the function form.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.v))
}
