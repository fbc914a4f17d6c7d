// Package memory is an in-process implementation of the repository ports.
//
// It backs STORAGE_DRIVER=memory and the use case tests. Every read returns
// a deep copy so callers never alias stored values.
package memory

import (
	"sync"

	"tsmit_os/internal/usecase/interfaces"
)

// table keeps rows in insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	id    func(T) string
	clone func(T) T
}

func newTable[T any](id func(T) string, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: map[string]T{}, id: id, clone: clone}
}

func (t *table[T]) create(v T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if _, ok := t.rows[id]; ok {
		var zero T
		return zero, interfaces.ErrAlreadyExists
	}
	t.rows[id] = t.clone(v)
	t.order = append(t.order, id)
	return t.clone(v), nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) update(v T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, false
	}
	t.rows[id] = t.clone(v)
	return t.clone(v), true
}

// mutate runs fn on the stored row under the write lock and stores its
// result unless fn fails.
func (t *table[T]) mutate(id string, fn func(T) (T, error)) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	cur, ok := t.rows[id]
	if !ok {
		return zero, false, nil
	}
	next, err := fn(t.clone(cur))
	if err != nil {
		return zero, true, err
	}
	t.rows[id] = t.clone(next)
	return t.clone(next), true, nil
}

func (t *table[T]) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}
