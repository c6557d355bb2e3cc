// File: arena.go
// Role: a fixed-capacity, concurrency-safe in-memory Interface
// implementation, used by tests and cmd/pisdfrun in place of a real
// shared-memory backend.
package memiface

import "sync"

// region tracks one live allocation.
type region struct {
	addr uint64
	size int64
}

// Arena is a bump allocator over a fixed-size byte slice with first-fit
// reuse of freed regions, guarded by a single mutex (allocation is rare
// relative to Read/Write traffic, matching param.Store's locking
// rationale).
type Arena struct {
	mu    sync.Mutex
	bytes []byte
	cap   int64
	used  []region // live allocations, sorted by addr
	freed []region // freed regions available for reuse
}

// NewArena allocates an Arena backed by a buffer of the given capacity.
func NewArena(capacity int64) *Arena {
	return &Arena{bytes: make([]byte, capacity), cap: capacity}
}

func (a *Arena) Alloc(size int64) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, f := range a.freed {
		if f.size >= size {
			a.freed = append(a.freed[:i], a.freed[i+1:]...)
			a.insertUsed(region{addr: f.addr, size: size})
			if f.size > size {
				a.freed = append(a.freed, region{addr: f.addr + uint64(size), size: f.size - size})
			}
			return f.addr, nil
		}
	}

	var cursor uint64
	if n := len(a.used); n > 0 {
		last := a.used[n-1]
		cursor = last.addr + uint64(last.size)
	}
	for _, f := range a.freed {
		if end := f.addr + uint64(f.size); end > cursor {
			cursor = end
		}
	}
	if int64(cursor)+size > a.cap {
		return 0, ErrOutOfMemory
	}
	a.insertUsed(region{addr: cursor, size: size})
	return cursor, nil
}

func (a *Arena) insertUsed(r region) {
	i := 0
	for ; i < len(a.used); i++ {
		if a.used[i].addr > r.addr {
			break
		}
	}
	a.used = append(a.used, region{})
	copy(a.used[i+1:], a.used[i:])
	a.used[i] = r
}

func (a *Arena) Free(addr uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, r := range a.used {
		if r.addr == addr {
			a.used = append(a.used[:i], a.used[i+1:]...)
			a.freed = append(a.freed, r)
			return
		}
	}
}

func (a *Arena) bounds(addr uint64, n int) error {
	if int64(addr)+int64(n) > a.cap {
		return ErrBadAddress
	}
	return nil
}

func (a *Arena) Read(addr uint64, p []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.bounds(addr, len(p)); err != nil {
		return err
	}
	copy(p, a.bytes[addr:int64(addr)+int64(len(p))])
	return nil
}

func (a *Arena) Write(addr uint64, p []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.bounds(addr, len(p)); err != nil {
		return err
	}
	copy(a.bytes[addr:int64(addr)+int64(len(p))], p)
	return nil
}

var _ Interface = (*Arena)(nil)
