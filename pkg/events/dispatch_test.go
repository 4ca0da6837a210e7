// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

//*****************
// PHASE TESTS
//*****************

// Scenario: capturing on app, target on app:ui:click, bubbling on app.
func TestPhaseOrdering(t *testing.T) {
	bus := New()

	var order []string

	_, err := bus.On("app", record(&order, "capturing-app"), OnCapture())
	assert.NoError(t, err)
	_, err = bus.On("app:ui:click", record(&order, "target"))
	assert.NoError(t, err)
	_, err = bus.On("app", record(&order, "bubbling-app"), OnBubble())
	assert.NoError(t, err)

	_, err = bus.Emit("app:ui:click")
	assert.NoError(t, err)

	assert.Equal(t, []string{"capturing-app", "target", "bubbling-app"}, order)
}

func TestPhaseWalkOrder(t *testing.T) {
	bus := New()

	var order []string

	// capture runs root-to-target, bubble runs target-to-root
	_, _ = bus.On("a", record(&order, "capture-a"), OnCapture())
	_, _ = bus.On("a:b", record(&order, "capture-a:b"), OnCapture())
	_, _ = bus.On("a:b:c", record(&order, "target"))
	_, _ = bus.On("a:b", record(&order, "bubble-a:b"), OnBubble())
	_, _ = bus.On("a", record(&order, "bubble-a"), OnBubble())

	_, err := bus.Emit("a:b:c")
	assert.NoError(t, err)

	assert.Equal(t, []string{
		"capture-a", "capture-a:b", "target", "bubble-a:b", "bubble-a",
	}, order)
}

func TestTargetListenersIgnoreDescendants(t *testing.T) {
	bus := New()

	var order []string

	// a target-phase record on an ancestor must not observe descendants
	_, _ = bus.On("app", record(&order, "app-target"))
	_, _ = bus.On("app:ui:click", record(&order, "click-target"))

	_, err := bus.Emit("app:ui:click")
	assert.NoError(t, err)
	assert.Equal(t, []string{"click-target"}, order)

	// emitting the ancestor itself still reaches it
	_, err = bus.Emit("app")
	assert.NoError(t, err)
	assert.Equal(t, []string{"click-target", "app-target"}, order)
}

func TestEmissionPhaseVisible(t *testing.T) {
	bus := New()

	var phases []Phase

	observe := func(e *Emission) error {
		phases = append(phases, e.Phase())
		return nil
	}

	_, _ = bus.On("ns", NewCallbackListener(observe), OnCapture())
	_, _ = bus.On("ns:leaf", NewCallbackListener(observe))
	_, _ = bus.On("ns", NewCallbackListener(observe), OnBubble())

	_, err := bus.Emit("ns:leaf")
	assert.NoError(t, err)

	assert.Equal(t, []Phase{PhaseCapture, PhaseTarget, PhaseBubble}, phases)
}

//*****************
// CANCELLATION TESTS
//*****************

func TestCancelDuringCapture(t *testing.T) {
	bus := New()

	ran := 0

	_, _ = bus.On("a", NewCallbackListener(func(e *Emission) error {
		e.Cancel("capture says stop")
		return nil
	}), OnCapture())
	_, _ = bus.On("a:b", record2(&ran))
	_, _ = bus.On("a", record2(&ran), OnBubble())

	em, err := bus.Emit("a:b")

	// zero listeners execute in the target and bubbling phases
	assert.Equal(t, 0, ran)
	assert.True(t, IsCancelled(err))
	assert.True(t, em.Cancelled())

	var c *CancelledError

	assert.True(t, errors.As(err, &c))
	assert.Equal(t, "a:b", c.Event)
	assert.Equal(t, "capture says stop", c.Reason)
}

// Scenario: a listener returning a CancelledError behaves like Cancel.
func TestCancelByReturningError(t *testing.T) {
	bus := New()

	ran := 0

	_, _ = bus.On("process:data", NewCallbackListener(func(*Emission) error {
		return &CancelledError{Reason: "bad data"}
	}), WithPriority(Highest))
	_, _ = bus.On("process:data", record2(&ran))

	em, err := bus.Emit("process:data", []byte{0xde, 0xad})

	assert.Equal(t, 0, ran)
	assert.True(t, IsCancelled(err))

	var c *CancelledError

	assert.True(t, errors.As(err, &c))
	assert.Equal(t, "bad data", c.Reason)

	// the cancelling listener itself did execute
	assert.Equal(t, 1, em.Executed())
}

func TestCancelRemainingInSamePhase(t *testing.T) {
	bus := New()

	ran := 0

	_, _ = bus.On("pippo", NewCallbackListener(func(e *Emission) error {
		e.Cancel("")
		return nil
	}), WithPriority(High))
	_, _ = bus.On("pippo", record2(&ran))

	_, err := bus.Emit("pippo")

	assert.True(t, IsCancelled(err))
	assert.Equal(t, 0, ran)
}

func TestPreventDefault(t *testing.T) {
	bus := New()

	ran := 0

	_, _ = bus.On("pippo", NewCallbackListener(func(e *Emission) error {
		e.PreventDefault()
		return nil
	}), WithPriority(High))
	_, _ = bus.On("pippo", record2(&ran))

	em, err := bus.Emit("pippo")

	// distinct semantics from cancellation: propagation continues
	assert.NoError(t, err)
	assert.True(t, em.DefaultPrevented())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 2, em.Executed())
}

//*****************
// ERROR POLICY TESTS
//*****************

func TestPropagateFirstError(t *testing.T) {
	bus := New()

	boom := errors.New("boom")
	ran := 0

	_, _ = bus.On("pippo", NewCallbackListener(func(*Emission) error {
		return boom
	}), WithPriority(High))
	_, _ = bus.On("pippo", record2(&ran))

	em, err := bus.Emit("pippo")

	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 0, ran)

	// the failed emission is still recorded
	history := bus.Event("pippo").History(0)
	assert.Equal(t, 1, len(history))
	assert.True(t, history[0].Failed)
	assert.False(t, history[0].Cancelled)
	assert.Equal(t, em.ID(), history[0].ID)
}

func TestLogAndContinuePolicy(t *testing.T) {
	bus := New(WithErrorPolicy(LogAndContinue))

	ran := 0

	_, _ = bus.On("pippo", NewCallbackListener(func(*Emission) error {
		return errors.New("boom")
	}), WithPriority(High))
	_, _ = bus.On("pippo", record2(&ran))

	em, err := bus.Emit("pippo")

	assert.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.Equal(t, 2, em.Executed())
}

func TestLogAndContinueStillCancels(t *testing.T) {
	bus := New(WithErrorPolicy(LogAndContinue))

	ran := 0

	_, _ = bus.On("pippo", NewCallbackListener(func(e *Emission) error {
		e.Cancel("stop")
		return errors.New("boom")
	}), WithPriority(High))
	_, _ = bus.On("pippo", record2(&ran))

	em, err := bus.Emit("pippo")

	// zero listeners run after a cancellation, even when the cancelling
	// listener also failed and the failure was only logged
	assert.Equal(t, 0, ran)
	assert.True(t, IsCancelled(err))
	assert.True(t, em.Cancelled())

	var c *CancelledError

	assert.True(t, errors.As(err, &c))
	assert.Equal(t, "stop", c.Reason)

	history := bus.Event("pippo").History(0)
	assert.Equal(t, 1, len(history))
	assert.True(t, history[0].Cancelled)
}

//*****************
// WEAK REFERENCE TESTS
//*****************

func TestWeakListenerSkippedWhenReclaimed(t *testing.T) {
	bus := New()

	ref := NewRef()
	ran := 0

	_, err := bus.On("pippo", record2(&ran), WithWeakRef(ref))
	assert.NoError(t, err)

	// still alive: dispatch reaches it
	em, err := bus.Emit("pippo")
	assert.NoError(t, err)
	assert.Equal(t, 1, em.Executed())

	ref.Release()

	// reclaimed: never raises, contributes nothing to the executed count
	em, err = bus.Emit("pippo")
	assert.NoError(t, err)
	assert.Equal(t, 0, em.Executed())
	assert.Equal(t, 1, ran)

	// and the record was lazily pruned
	assert.Equal(t, 0, bus.ListenerCount("pippo"))

	metrics := bus.Event("pippo").Metrics()
	assert.Equal(t, uint64(2), metrics.TriggerCount)
	assert.Equal(t, uint64(1), metrics.ListenersExecuted)
}

func TestWeakListenerAmongStrong(t *testing.T) {
	bus := New()

	ref := NewRef()
	ref.Release()

	var order []string

	_, _ = bus.On("pippo", record(&order, "weak"), WithPriority(High), WithWeakRef(ref))
	_, _ = bus.On("pippo", record(&order, "strong"))

	_, err := bus.Emit("pippo")
	assert.NoError(t, err)
	assert.Equal(t, []string{"strong"}, order)
	assert.Equal(t, 1, bus.ListenerCount("pippo"))
}

//****************
// SETUP FUNCTIONS
//****************

func record2(n *int) Listener {
	return NewCallbackListener(func(*Emission) error {
		*n++
		return nil
	})
}
