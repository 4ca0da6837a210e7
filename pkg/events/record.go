// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"crypto/rand"
	"encoding/binary"
)

// Record is one registration of a Listener on an Event: the listener, its
// priority, its phase interest and its lifetime flags.
type Record struct {
	id       uint32
	listener Listener
	priority Priority
	phase    Phase
	once     bool
	weak     WeakRef
}

// listenerKey identifies a registration for duplicate detection.
type listenerKey struct {
	listener Listener
	priority Priority
}

func newRecord(l Listener, priority Priority, phase Phase, once bool, weak WeakRef) *Record {
	return &Record{
		id:       randID(),
		listener: l,
		priority: priority,
		phase:    phase,
		once:     once,
		weak:     weak,
	}
}

// ID returns the registration id, usable with Emitter.RemoveListenerID.
func (r *Record) ID() uint32 { return r.id }

// Priority returns the record's dispatch priority.
func (r *Record) Priority() Priority { return r.priority }

// Phase returns the propagation phase the record observes.
func (r *Record) Phase() Phase { return r.phase }

// Once reports whether the record is removed after its first invocation.
func (r *Record) Once() bool { return r.once }

// Weak reports whether the record holds its receiver weakly.
func (r *Record) Weak() bool { return r.weak != nil }

// alive reports whether the record may still be dispatched. Strong records
// are always alive; weak records delegate to their liveness probe.
func (r *Record) alive() bool {
	return r.weak == nil || r.weak.Alive()
}

func (r *Record) key() listenerKey {
	return listenerKey{r.listener, r.priority}
}

func randID() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}

	return binary.BigEndian.Uint32(b[:])
}
