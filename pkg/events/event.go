// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"sort"
	"sync"

	"github.com/dusk-network/dusk-events/pkg/util/container/ring"
)

// Event is a single named broadcast point: an ordered collection of listener
// records, a bounded history of emission records and running metrics.
// Ordering invariant of the records: primary key priority (Highest first),
// secondary key registration order, stable within equal priority.
type Event struct {
	name string

	lock         sync.RWMutex
	records      []*Record
	seen         map[listenerKey]struct{}
	maxListeners int

	history *ring.Buffer
	metrics Metrics
}

func newEvent(name string, maxListeners, historySize int) *Event {
	return &Event{
		name:         name,
		seen:         make(map[listenerKey]struct{}),
		maxListeners: maxListeners,
		history:      ring.NewBuffer(historySize),
	}
}

// Name returns the fully-qualified event name. Immutable once created.
func (e *Event) Name() string {
	return e.name
}

// ListenerCount returns the number of registered records.
func (e *Event) ListenerCount() int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.records)
}

// SetMaxListeners caps the number of records; 0 removes the cap. Records
// already registered beyond a newly lowered cap stay registered.
func (e *Event) SetMaxListeners(n int) {
	e.lock.Lock()
	e.maxListeners = n
	e.lock.Unlock()
}

// Metrics returns a read-only snapshot of the running counters.
func (e *Event) Metrics() Metrics {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.metrics
}

// History returns up to limit most recent emission records, oldest first.
// limit <= 0 returns the full retained history.
func (e *Event) History(limit int) []EmissionRecord {
	entries := e.history.Entries()
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}

	records := make([]EmissionRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.(EmissionRecord))
	}

	return records
}

// insert stores a record at its sorted position. The duplicate check and the
// cap check happen before any mutation, so a failed insert leaves no state.
func (e *Event) insert(r *Record, allowDuplicates bool) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	if !allowDuplicates {
		if _, ok := e.seen[r.key()]; ok {
			return ErrListenerAlreadyRegistered
		}
	}

	if e.maxListeners > 0 && len(e.records) >= e.maxListeners {
		return ErrMaxListenersExceeded
	}

	// first index holding a strictly lower priority; equal priorities stay
	// in registration order
	i := sort.Search(len(e.records), func(i int) bool {
		return e.records[i].priority > r.priority
	})

	e.records = append(e.records, nil)
	copy(e.records[i+1:], e.records[i:])
	e.records[i] = r

	e.seen[r.key()] = struct{}{}

	return nil
}

// removeID deletes the record with the given registration id.
func (e *Event) removeID(id uint32) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	for i, r := range e.records {
		if r.id == id {
			delete(e.seen, r.key())

			e.records = append(e.records[:i], e.records[i+1:]...)

			return true
		}
	}

	return false
}

// removeListener deletes every record wrapping the given listener,
// regardless of priority. Returns the number of records removed.
func (e *Event) removeListener(l Listener) int {
	e.lock.Lock()
	defer e.lock.Unlock()

	removed := 0

	kept := e.records[:0]

	for _, r := range e.records {
		if r.listener == l {
			delete(e.seen, r.key())

			removed++

			continue
		}

		kept = append(kept, r)
	}

	e.records = kept

	return removed
}

// clear drops every record.
func (e *Event) clear() {
	e.lock.Lock()
	e.records = nil
	e.seen = make(map[listenerKey]struct{})
	e.lock.Unlock()
}

// snapshot returns a copy of the records observing the given phase, so that
// dispatch can run outside the lock.
func (e *Event) snapshot(phase Phase) []*Record {
	e.lock.RLock()
	defer e.lock.RUnlock()

	dup := make([]*Record, 0, len(e.records))

	for _, r := range e.records {
		if r.phase == phase {
			dup = append(dup, r)
		}
	}

	return dup
}

// recordEmission appends one history entry and folds the emission into the
// metrics. Called by the emitter only, for every emission outcome.
func (e *Event) recordEmission(rec EmissionRecord) {
	e.lock.Lock()
	e.metrics.record(rec.Executed, rec.Duration)
	e.lock.Unlock()

	e.history.Put(rec)
}
