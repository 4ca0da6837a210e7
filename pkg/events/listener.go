// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Listener reacts to emissions of an Event. Notify is the single dispatch
// entry point for both calling conventions: a synchronous listener ignores
// the context, an asynchronous one suspends on it. Dispatch code never
// branches on the convention.
type Listener interface {
	// Notify a listener of a new emission.
	Notify(ctx context.Context, e *Emission) error
}

// CallbackListener invokes a plain callback to completion.
type CallbackListener struct {
	callback func(*Emission) error
}

// NewCallbackListener creates a synchronous callback based listener.
func NewCallbackListener(callback func(*Emission) error) *CallbackListener {
	return &CallbackListener{callback}
}

// Notify passes the emission to the callback.
func (c *CallbackListener) Notify(_ context.Context, e *Emission) error {
	return c.callback(e)
}

// AsyncListener invokes a context-aware callback. Under the synchronous
// Emitter it is awaited inline with a background context; under the
// AsyncEmitter it receives the emitting caller's context.
type AsyncListener struct {
	callback func(context.Context, *Emission) error
}

// NewAsyncListener creates an asynchronous callback based listener.
func NewAsyncListener(callback func(context.Context, *Emission) error) *AsyncListener {
	return &AsyncListener{callback}
}

// Notify passes the context and emission to the callback.
func (a *AsyncListener) Notify(ctx context.Context, e *Emission) error {
	return a.callback(ctx, e)
}

// ChanListener forwards emissions over a channel. The send never blocks
// dispatch; a full channel buffer surfaces as a listener error.
type ChanListener struct {
	emissionChannel chan<- *Emission
}

// NewChanListener creates a channel based listener.
func NewChanListener(emissionChannel chan<- *Emission) *ChanListener {
	return &ChanListener{emissionChannel}
}

// Notify sends the emission to the internal channel.
func (c *ChanListener) Notify(_ context.Context, e *Emission) error {
	select {
	case c.emissionChannel <- e:
	default:
		return errors.Wrap(ErrEvent, "emission channel buffer is full")
	}

	return nil
}

// WeakRef is the liveness probe of a weakly held listener. The registration
// does not keep the receiver alive; once Alive reports false, the record is
// silently skipped and pruned at the next dispatch, never raising.
type WeakRef interface {
	Alive() bool
}

// Ref is a releasable WeakRef handle. The owner of a listener's receiver
// keeps the Ref and calls Release when the receiver goes away.
type Ref struct {
	released int32
}

// NewRef returns a live Ref.
func NewRef() *Ref {
	return &Ref{}
}

// Release marks the receiver as reclaimed. Safe to call more than once.
func (r *Ref) Release() {
	atomic.StoreInt32(&r.released, 1)
}

// Alive reports whether the receiver is still reachable.
func (r *Ref) Alive() bool {
	return atomic.LoadInt32(&r.released) == 0
}
