// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ring

import (
	"sync"
	"sync/atomic"
)

// Buffer represents a circular array of data items. Once the capacity is
// reached, every Put overwrites the oldest item. It is suitable for bounded
// retention of most-recent records, e.g. emission history.
type Buffer struct {
	mu    sync.Mutex
	items []interface{}

	// writeIndex
	wri    int
	count  int
	closed syncBool
}

// NewBuffer returns an initialized ring buffer holding at most length items.
func NewBuffer(length int) *Buffer {
	if length <= 0 {
		length = 1
	}

	return &Buffer{
		items: make([]interface{}, length),
		wri:   -1,
	}
}

// Put an item on the ring buffer, evicting the oldest item when full.
func (r *Buffer) Put(e interface{}) bool {
	if e == nil || r.closed.Load() {
		return false
	}

	// Protect the slice and the writeIndex
	r.mu.Lock()

	r.wri++
	// Reset the writeIndex as this is ringBuffer
	if r.wri == len(r.items) {
		r.wri = 0
	}

	r.items[r.wri] = e

	if r.count < len(r.items) {
		r.count++
	}

	r.mu.Unlock()

	return true
}

// Entries returns a copy of the retained items, oldest first.
func (r *Buffer) Entries() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	elements := make([]interface{}, 0, r.count)

	for i := 0; i < r.count; i++ {
		// the oldest item sits right after the writeIndex once wrapped
		idx := (r.wri + 1 - r.count + i + len(r.items)) % len(r.items)
		elements = append(elements, r.items[idx])
	}

	return elements
}

// Len returns the number of retained items.
func (r *Buffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Cap returns the retention bound.
func (r *Buffer) Cap() int {
	return len(r.items)
}

// Close will close the Buffer. Further Puts are rejected.
func (r *Buffer) Close() {
	r.closed.Store(true)
}

// Closed checks if buffer is closed.
func (r *Buffer) Closed() bool {
	return r.closed.Load()
}

// syncBool provides atomic Load/Store for bool type.
type syncBool struct {
	value int32
}

func (s *syncBool) Store(value bool) {
	i := int32(0)
	if value {
		i = 1
	}

	atomic.StoreInt32(&(s.value), i)
}

func (s *syncBool) Load() bool {
	return atomic.LoadInt32(&(s.value)) != 0
}
