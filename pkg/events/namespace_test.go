// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAncestorNames(t *testing.T) {
	assert.Nil(t, ancestorNames("single"))
	assert.Equal(t, []string{"a"}, ancestorNames("a:b"))
	assert.Equal(t, []string{"a", "a:b"}, ancestorNames("a:b:c"))

	// dots are not separators: user.created is one segment
	assert.Nil(t, ancestorNames("user.created"))
}

func TestNamespacePrefixing(t *testing.T) {
	bus := New()
	app := bus.Namespace("app")

	_, err := app.On("ready", noop())
	assert.NoError(t, err)

	// the namespace is a view over the same registry, not separate storage
	assert.Equal(t, 1, bus.ListenerCount("app:ready"))

	em, err := app.Emit("ready")
	assert.NoError(t, err)
	assert.Equal(t, "app:ready", em.Name())
	assert.Equal(t, 1, em.Executed())
}

func TestNamespaceChaining(t *testing.T) {
	bus := New()
	ui := bus.Namespace("app").Namespace("ui")

	assert.Equal(t, "app:ui", ui.Prefix())

	ran := 0

	_, err := ui.On("click", record2(&ran))
	assert.NoError(t, err)

	_, err = bus.Emit("app:ui:click")
	assert.NoError(t, err)
	assert.Equal(t, 1, ran)
}

func TestNamespaceAncestorObservation(t *testing.T) {
	bus := New()
	app := bus.Namespace("app")

	var order []string

	// registering on the namespace node itself observes descendants
	_, err := app.On("", record(&order, "capturing-app"), OnCapture())
	assert.NoError(t, err)
	_, err = app.Namespace("ui").On("click", record(&order, "target"))
	assert.NoError(t, err)
	_, err = app.On("", record(&order, "bubbling-app"), OnBubble())
	assert.NoError(t, err)

	_, err = app.Emit("ui:click")
	assert.NoError(t, err)

	assert.Equal(t, []string{"capturing-app", "target", "bubbling-app"}, order)
}

func TestNamespaceRemoveListener(t *testing.T) {
	bus := New()
	app := bus.Namespace("app")
	l := noop()

	_, _ = app.On("ready", l)
	app.RemoveListener("ready", l)

	assert.Equal(t, 0, bus.ListenerCount("app:ready"))
}

func TestNamespaceEmitFields(t *testing.T) {
	bus := New()
	app := bus.Namespace("app")

	var got Fields

	_, _ = app.On("boot", NewCallbackListener(func(e *Emission) error {
		got = e.Fields()
		return nil
	}))

	_, err := app.EmitFields("boot", Fields{"cold": true})
	assert.NoError(t, err)
	assert.Equal(t, Fields{"cold": true}, got)
}
