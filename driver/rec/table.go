// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package rec

// table stores resources of type T with integer handles.
// Handle 0 is never assigned, so that it can represent
// the absence of a resource.
// Handles of removed resources are reused.
type table[T any] struct {
	slots []T
	live  []bool
	free  []int
	n     int
}

// insert inserts x into t.
// It returns the handle that identifies x in t.
func (t *table[T]) insert(x T) int {
	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[i] = x
		t.live[i] = true
	} else {
		i = len(t.slots)
		t.slots = append(t.slots, x)
		t.live = append(t.live, true)
	}
	t.n++
	return i + 1
}

// remove removes the resource identified by h.
// It returns false if h does not identify a live
// resource.
func (t *table[T]) remove(h int) bool {
	i := h - 1
	if i < 0 || i >= len(t.slots) || !t.live[i] {
		return false
	}
	var zero T
	t.slots[i] = zero
	t.live[i] = false
	t.free = append(t.free, i)
	t.n--
	return true
}

// get returns the resource identified by h.
func (t *table[T]) get(h int) (x T, ok bool) {
	i := h - 1
	if i < 0 || i >= len(t.slots) || !t.live[i] {
		return
	}
	return t.slots[i], true
}

// len returns the number of live resources.
func (t *table[_]) len() int { return t.n }
