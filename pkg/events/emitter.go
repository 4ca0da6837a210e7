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
	lg "github.com/sirupsen/logrus"
)

var logEV = lg.WithField("process", "events")

// ErrorPolicy decides what happens when a listener returns an error that is
// not the engine's own cancellation signal.
type ErrorPolicy int

const (
	// PropagateFirst stops the dispatch at the first failing listener and
	// returns its error to the emitting caller.
	PropagateFirst ErrorPolicy = iota
	// LogAndContinue logs the failure and keeps dispatching.
	LogAndContinue
)

// Emitter is the synchronous event registry: it maps fully-qualified names
// to Events, manages listener registration and drives one complete
// three-phase emission to completion before returning.
//
// Registration and lookup are safe for concurrent use. Concurrent emissions
// of the same Event are not serialized against each other; deterministic
// ordering is guaranteed within one emission only.
type Emitter struct {
	lock     sync.RWMutex
	registry map[string]*Event

	maxListeners int
	historySize  int
	policy       ErrorPolicy
}

// Option configures an Emitter at construction.
type Option func(*Emitter)

// WithMaxListeners caps every Event created by the emitter at n records.
func WithMaxListeners(n int) Option {
	return func(b *Emitter) { b.maxListeners = n }
}

// WithHistorySize bounds every Event's emission history at n records.
func WithHistorySize(n int) Option {
	return func(b *Emitter) { b.historySize = n }
}

// WithErrorPolicy selects the listener failure policy.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(b *Emitter) { b.policy = p }
}

// defaultHistorySize bounds an Event's history unless configured otherwise.
const defaultHistorySize = 100

// New returns a new Emitter with an empty registry.
func New(opts ...Option) *Emitter {
	b := &Emitter{
		registry:    make(map[string]*Event),
		historySize: defaultHistorySize,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Event returns the Event registered under name, creating it with the
// emitter's default configuration when absent. Idempotent.
func (b *Emitter) Event(name string) *Event {
	b.lock.RLock()
	ev, ok := b.registry[name]
	b.lock.RUnlock()

	if ok {
		return ev
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	if ev, ok = b.registry[name]; ok {
		return ev
	}

	ev = newEvent(name, b.maxListeners, b.historySize)
	b.registry[name] = ev

	return ev
}

// lookup fetches an Event without creating it.
func (b *Emitter) lookup(name string) *Event {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.registry[name]
}

// subscribeConfig collects the registration options of one On call.
type subscribeConfig struct {
	priority        Priority
	phase           Phase
	once            bool
	weak            WeakRef
	allowDuplicates bool
}

// SubscribeOption configures a single listener registration.
type SubscribeOption func(*subscribeConfig)

// WithPriority registers the listener at the given priority level.
func WithPriority(p Priority) SubscribeOption {
	return func(c *subscribeConfig) { c.priority = p }
}

// WithOnce removes the record right after its first invocation, even when
// the callback fails.
func WithOnce() SubscribeOption {
	return func(c *subscribeConfig) { c.once = true }
}

// WithWeakRef holds the listener's receiver weakly: once ref reports dead,
// the record is skipped and pruned at the next dispatch.
func WithWeakRef(ref WeakRef) SubscribeOption {
	return func(c *subscribeConfig) { c.weak = ref }
}

// OnCapture makes the record observe descendant emissions during the
// capturing phase instead of its own target phase.
func OnCapture() SubscribeOption {
	return func(c *subscribeConfig) { c.phase = PhaseCapture }
}

// OnBubble makes the record observe descendant emissions during the
// bubbling phase instead of its own target phase.
func OnBubble() SubscribeOption {
	return func(c *subscribeConfig) { c.phase = PhaseBubble }
}

// WithAllowDuplicates permits registering the same (listener, priority)
// pair more than once on one Event.
func WithAllowDuplicates() SubscribeOption {
	return func(c *subscribeConfig) { c.allowDuplicates = true }
}

// On registers a listener on the named Event. The record is inserted at its
// sorted position, preserving the priority+FIFO invariant. Registration
// fails without mutating state on a duplicate (listener, priority) pair or
// when the Event's listener cap is reached.
func (b *Emitter) On(name string, l Listener, opts ...SubscribeOption) (*Record, error) {
	cfg := subscribeConfig{priority: Normal, phase: PhaseTarget}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.priority.valid() {
		return nil, errors.Wrapf(ErrEvent, "invalid priority %d", cfg.priority)
	}

	r := newRecord(l, cfg.priority, cfg.phase, cfg.once, cfg.weak)

	if err := b.Event(name).insert(r, cfg.allowDuplicates); err != nil {
		return nil, errors.Wrapf(err, "registering on %s", name)
	}

	return r, nil
}

// Once registers a listener that fires exactly once. Sugar for
// On(name, l, WithOnce(), ...).
func (b *Emitter) Once(name string, l Listener, opts ...SubscribeOption) (*Record, error) {
	return b.On(name, l, append(opts, WithOnce())...)
}

// RemoveListener removes every record of l on the named Event, at any
// priority. Removing an absent listener is a no-op.
func (b *Emitter) RemoveListener(name string, l Listener) {
	if ev := b.lookup(name); ev != nil {
		ev.removeListener(l)
	}
}

// RemoveListenerID removes the record carrying the given registration id.
func (b *Emitter) RemoveListenerID(name string, id uint32) bool {
	ev := b.lookup(name)
	return ev != nil && ev.removeID(id)
}

// RemoveAllListeners clears the named Events, or every Event in the
// registry when called without arguments.
func (b *Emitter) RemoveAllListeners(names ...string) {
	if len(names) == 0 {
		b.lock.RLock()
		for _, ev := range b.registry {
			names = append(names, ev.name)
		}
		b.lock.RUnlock()
	}

	for _, name := range names {
		if ev := b.lookup(name); ev != nil {
			ev.clear()
		}
	}
}

// EventNames returns the fully-qualified names present in the registry.
func (b *Emitter) EventNames() []string {
	b.lock.RLock()
	defer b.lock.RUnlock()

	names := make([]string, 0, len(b.registry))
	for name := range b.registry {
		names = append(names, name)
	}

	return names
}

// ListenerCount returns the number of records on the named Event.
func (b *Emitter) ListenerCount(name string) int {
	ev := b.lookup(name)
	if ev == nil {
		return 0
	}

	return ev.ListenerCount()
}

// Metrics returns a snapshot of the named Event's counters. An unknown
// name yields zero counters.
func (b *Emitter) Metrics(name string) Metrics {
	if ev := b.lookup(name); ev != nil {
		return ev.Metrics()
	}

	return Metrics{}
}

// History returns up to limit most recent emission records of the named
// Event, oldest first.
func (b *Emitter) History(name string, limit int) []EmissionRecord {
	if ev := b.lookup(name); ev != nil {
		return ev.History(limit)
	}

	return nil
}

// Emit runs one complete three-phase emission of the named Event with a
// positional payload, invoking every matching listener to completion before
// returning. Asynchronous listeners are awaited inline. Returns the
// Emission together with a *CancelledError when a listener cancelled, or
// the first listener error under the PropagateFirst policy.
func (b *Emitter) Emit(name string, args ...interface{}) (*Emission, error) {
	return b.emit(context.Background(), name, nil, args)
}

// EmitFields is Emit with an additional keyword payload.
func (b *Emitter) EmitFields(name string, fields Fields, args ...interface{}) (*Emission, error) {
	return b.emit(context.Background(), name, fields, args)
}

// emit drives one emission and records its outcome on the target Event.
// Every emission, cancelled or failed included, leaves one history entry
// and updates the metrics.
func (b *Emitter) emit(ctx context.Context, name string, fields Fields, args []interface{}) (*Emission, error) {
	em := newEmission(name, fields, args)
	target := b.Event(name)

	start := time.Now()
	err := b.propagate(ctx, em, target)
	elapsed := time.Since(start)

	target.recordEmission(newEmissionRecord(em, elapsed, err != nil && !em.cancelled))

	return em, err
}

// propagate walks the three phases of one emission: capturing ancestors
// root-to-target, the target itself, then bubbling ancestors back up to the
// root. A cancellation or a propagated listener error aborts all remaining
// listeners in the current and subsequent phases.
func (b *Emitter) propagate(ctx context.Context, em *Emission, target *Event) error {
	ancestors := ancestorNames(em.name)

	em.phase = PhaseCapture

	for _, name := range ancestors {
		if ev := b.lookup(name); ev != nil {
			if err := b.runListeners(ctx, em, ev, PhaseCapture); err != nil {
				return err
			}
		}
	}

	em.phase = PhaseTarget

	if err := b.runListeners(ctx, em, target, PhaseTarget); err != nil {
		return err
	}

	em.phase = PhaseBubble

	for i := len(ancestors) - 1; i >= 0; i-- {
		if ev := b.lookup(ancestors[i]); ev != nil {
			if err := b.runListeners(ctx, em, ev, PhaseBubble); err != nil {
				return err
			}
		}
	}

	return nil
}

// runListeners executes one Event's records for one phase, in priority
// descending, FIFO stable order. It operates on a snapshot so listeners can
// register or remove records without deadlocking the dispatch.
func (b *Emitter) runListeners(ctx context.Context, em *Emission, ev *Event, phase Phase) error {
	records := ev.snapshot(phase)

	var dead []uint32

	// weak records whose receiver is gone are pruned lazily, after the
	// phase has run, and never surface as an error
	defer func() {
		for _, id := range dead {
			ev.removeID(id)
		}
	}()

	for _, r := range records {
		if !r.alive() {
			dead = append(dead, r.id)

			logEV.WithField("event", ev.name).Traceln("skipping reclaimed weak listener")
			continue
		}

		err := r.listener.Notify(ctx, em)
		em.executed++

		// once-records go away even when the callback failed
		if r.once {
			ev.removeID(r.id)
		}

		if err != nil {
			if c := asCancellation(err); c != nil {
				em.Cancel(c.Reason)
				return &CancelledError{Event: em.name, Reason: c.Reason}
			}

			if b.policy != LogAndContinue {
				return errors.Wrapf(err, "listener failed during %s phase of %s", phase, em.name)
			}

			// the logged failure does not mask a cancellation made
			// before the listener returned
			logEV.WithError(err).
				WithField("event", ev.name).
				WithField("phase", phase.String()).
				Warnln("listener failed")
		}

		if em.cancelled {
			return &CancelledError{Event: em.name, Reason: em.cancelReason}
		}
	}

	return nil
}

func asCancellation(err error) *CancelledError {
	var c *CancelledError
	if errors.As(err, &c) {
		return c
	}

	return nil
}
