package stack

import (
	"sync"
)

// Stack holds the descriptions of operations that are still in flight.
type Stack[T any] struct {
	mu sync.Mutex
	ts []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) Push(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ts = append(s.ts, e)
}

// Pop removes the most recently pushed element.
func (s *Stack[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if len(s.ts) == 0 {
		return zero, false
	}
	e := s.ts[len(s.ts)-1]
	s.ts[len(s.ts)-1] = zero
	s.ts = s.ts[:len(s.ts)-1]
	return e, true
}

// Snapshot returns a copy of the elements, oldest first.
func (s *Stack[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.ts))
	copy(out, s.ts)
	return out
}
