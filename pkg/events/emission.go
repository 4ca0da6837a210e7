// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"fmt"

	"github.com/google/uuid"
)

// Fields carries the keyword part of an emission payload.
type Fields map[string]interface{}

// Phase is one of the three ordered stages an emission propagates through.
type Phase uint8

const (
	// PhaseCapture runs ancestor listeners root-to-target before the target.
	PhaseCapture Phase = iota
	// PhaseTarget runs the listeners registered on the full event name.
	PhaseTarget
	// PhaseBubble runs ancestor listeners target-to-root after the target.
	PhaseBubble
)

func (p Phase) String() string {
	switch p {
	case PhaseCapture:
		return "capture"
	case PhaseTarget:
		return "target"
	case PhaseBubble:
		return "bubble"
	}

	return "unknown"
}

// Emission is one complete triggering of an Event. It is handed to every
// listener in turn; listeners use it to read the payload, cancel the
// remainder of the propagation, or flag the default behaviour as prevented.
// An Emission must not be retained or mutated after the listener returns.
type Emission struct {
	id     string
	name   string
	args   []interface{}
	fields Fields

	phase            Phase
	cancelled        bool
	cancelReason     string
	defaultPrevented bool
	executed         int
}

func newEmission(name string, fields Fields, args []interface{}) *Emission {
	return &Emission{
		id:     uuid.New().String(),
		name:   name,
		args:   args,
		fields: fields,
	}
}

// ID returns the generated emission identifier.
func (e *Emission) ID() string { return e.id }

// Name returns the fully-qualified event name being emitted.
func (e *Emission) Name() string { return e.name }

// Args returns the positional payload.
func (e *Emission) Args() []interface{} { return e.args }

// Fields returns the keyword payload. May be nil.
func (e *Emission) Fields() Fields { return e.fields }

// Phase returns the propagation phase currently executing.
func (e *Emission) Phase() Phase { return e.phase }

// Executed returns the number of listeners run so far.
func (e *Emission) Executed() int { return e.executed }

// Cancel aborts all remaining listeners in the current and subsequent
// phases. The emitting caller receives a *CancelledError.
func (e *Emission) Cancel(reason string) {
	e.cancelled = true
	e.cancelReason = reason
}

// Cancelled reports whether a listener cancelled this emission.
func (e *Emission) Cancelled() bool { return e.cancelled }

// PreventDefault flags the emission without interrupting propagation.
// Distinct semantics from Cancel: every listener still runs.
func (e *Emission) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether any listener called PreventDefault.
func (e *Emission) DefaultPrevented() bool { return e.defaultPrevented }

// payloadString renders the payload for the history record.
func (e *Emission) payloadString() string {
	switch {
	case len(e.fields) == 0 && len(e.args) == 0:
		return ""
	case len(e.fields) == 0:
		return fmt.Sprintf("%v", e.args)
	case len(e.args) == 0:
		return fmt.Sprintf("%v", e.fields)
	}

	return fmt.Sprintf("%v %v", e.args, e.fields)
}
