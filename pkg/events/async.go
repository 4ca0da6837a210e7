// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// AsyncEmitter extends the synchronous engine with context-aware emission,
// deferred emissions and an orderly shutdown that drains in-flight work.
// Listeners are still awaited sequentially in phase+priority+FIFO order;
// nothing is dispatched in parallel, so side-effect ordering stays
// deterministic.
type AsyncEmitter struct {
	*Emitter

	flightLock sync.Mutex
	inFlight   sync.WaitGroup
	closed     bool
}

// NewAsync returns an AsyncEmitter with an empty registry.
func NewAsync(opts ...Option) *AsyncEmitter {
	return &AsyncEmitter{Emitter: New(opts...)}
}

// acquire reserves one in-flight slot, refusing when the emitter is closed.
func (a *AsyncEmitter) acquire() error {
	a.flightLock.Lock()
	defer a.flightLock.Unlock()

	if a.closed {
		return ErrEmitterClosed
	}

	a.inFlight.Add(1)

	return nil
}

// EmitAsync runs one complete three-phase emission, awaiting every listener
// sequentially with the caller's context. Cancellation and error contracts
// match Emit. Returns ErrEmitterClosed after Shutdown.
func (a *AsyncEmitter) EmitAsync(ctx context.Context, name string, args ...interface{}) (*Emission, error) {
	return a.emitAsync(ctx, name, nil, args)
}

// EmitFieldsAsync is EmitAsync with an additional keyword payload.
func (a *AsyncEmitter) EmitFieldsAsync(ctx context.Context, name string, fields Fields, args ...interface{}) (*Emission, error) {
	return a.emitAsync(ctx, name, fields, args)
}

func (a *AsyncEmitter) emitAsync(ctx context.Context, name string, fields Fields, args []interface{}) (*Emission, error) {
	if err := a.acquire(); err != nil {
		return nil, err
	}
	defer a.inFlight.Done()

	return a.emit(ctx, name, fields, args)
}

// ScheduleEmit defers an emission by delay without blocking the caller.
// The scheduled emission counts as in-flight until it completes, so
// Shutdown drains it. Its outcome cannot be returned and is logged instead.
func (a *AsyncEmitter) ScheduleEmit(delay time.Duration, name string, args ...interface{}) error {
	return a.scheduleEmit(delay, name, nil, args)
}

// ScheduleEmitFields is ScheduleEmit with an additional keyword payload.
func (a *AsyncEmitter) ScheduleEmitFields(delay time.Duration, name string, fields Fields, args ...interface{}) error {
	return a.scheduleEmit(delay, name, fields, args)
}

func (a *AsyncEmitter) scheduleEmit(delay time.Duration, name string, fields Fields, args []interface{}) error {
	if err := a.acquire(); err != nil {
		return errors.Wrapf(err, "scheduling emission of %s", name)
	}

	go func() {
		defer a.inFlight.Done()

		if delay > 0 {
			time.Sleep(delay)
		}

		if _, err := a.emit(context.Background(), name, fields, args); err != nil {
			logEV.WithError(err).
				WithField("event", name).
				Warnln("scheduled emission failed")
		}
	}()

	return nil
}

// Shutdown stops accepting new emissions, awaits completion of scheduled
// and in-flight ones, then marks the emitter closed. It drains rather than
// force-cancels: ctx bounds only how long the caller is willing to wait.
func (a *AsyncEmitter) Shutdown(ctx context.Context) error {
	a.flightLock.Lock()
	alreadyClosed := a.closed
	a.closed = true
	a.flightLock.Unlock()

	if alreadyClosed {
		return ErrEmitterClosed
	}

	drained := make(chan struct{})

	go func() {
		a.inFlight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		logEV.Debugln("emitter drained and closed")
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "shutdown interrupted with emissions in flight")
	}
}

// Closed reports whether Shutdown has been called.
func (a *AsyncEmitter) Closed() bool {
	a.flightLock.Lock()
	defer a.flightLock.Unlock()

	return a.closed
}
