package core

// Handle is a generation-checked reference to an arena slot. A handle
// whose slot has been released, or reused for another value, never
// resolves again.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle, which never resolves.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot struct {
	gen   uint32
	value any
	live  bool
}

// Arena stores values behind generation-checked handles. It is not safe
// for concurrent use; the toolkit runs on a single thread.
type Arena struct {
	slots []slot
	free  []uint32
}

// Insert stores v and returns its handle.
func (a *Arena) Insert(v any) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.value = v
	s.live = true
	return Handle{index: idx, gen: s.gen}
}

// Get resolves h.
func (a *Arena) Get(h Handle) (any, bool) {
	if !a.Valid(h) {
		return nil, false
	}
	return a.slots[h.index].value, true
}

// Valid reports whether h still refers to a live value.
func (a *Arena) Valid(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.live && s.gen == h.gen
}

// Release frees h's slot. Releasing a stale handle is a no-op and reports
// false.
func (a *Arena) Release(h Handle) bool {
	if !a.Valid(h) {
		return false
	}
	s := &a.slots[h.index]
	s.live = false
	s.value = nil
	a.free = append(a.free, h.index)
	return true
}

// Len returns the number of live values.
func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}
