// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"errors"
	"fmt"
)

var (
	// ErrEvent is the base of the engine's error taxonomy. Every error
	// produced by this package unwraps to it, so callers can match the
	// whole family with errors.Is(err, ErrEvent).
	ErrEvent = errors.New("event error")

	// ErrListenerAlreadyRegistered is returned when the same (listener,
	// priority) pair is registered twice on one Event.
	ErrListenerAlreadyRegistered = fmt.Errorf("%w: listener already registered", ErrEvent)

	// ErrMaxListenersExceeded is returned when registering on an Event
	// whose listener cap is reached.
	ErrMaxListenersExceeded = fmt.Errorf("%w: max listeners exceeded", ErrEvent)

	// ErrEmitterClosed is returned by an AsyncEmitter after Shutdown.
	ErrEmitterClosed = fmt.Errorf("%w: emitter closed", ErrEvent)
)

// CancelledError is returned to the emitting caller when a listener cancels
// the emission mid-dispatch. A listener may also return a *CancelledError
// itself, which the dispatcher treats exactly like a Cancel call.
type CancelledError struct {
	Event  string
	Reason string
}

// Error obeys the error interface.
func (e *CancelledError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("emission of %s cancelled", e.Event)
	}

	return fmt.Sprintf("emission of %s cancelled: %s", e.Event, e.Reason)
}

// Unwrap ties CancelledError into the ErrEvent taxonomy.
func (e *CancelledError) Unwrap() error {
	return ErrEvent
}

// IsCancelled reports whether err is, or wraps, a cancellation.
func IsCancelled(err error) bool {
	var c *CancelledError
	return errors.As(err, &c)
}
