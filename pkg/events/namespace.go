// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"strings"
)

// Separator joins the segments of a hierarchical event name.
const Separator = ":"

// ancestorNames resolves a fully-qualified name into its ordered ancestor
// prefixes, root first, target excluded. "a:b:c" yields ["a", "a:b"].
func ancestorNames(name string) []string {
	segments := strings.Split(name, Separator)
	if len(segments) < 2 {
		return nil
	}

	ancestors := make([]string, 0, len(segments)-1)

	for i := 1; i < len(segments); i++ {
		ancestors = append(ancestors, strings.Join(segments[:i], Separator))
	}

	return ancestors
}

// Namespace is a prefix view over an Emitter's registry: names registered or
// emitted through it are qualified with the namespace path. It owns no
// storage of its own.
type Namespace struct {
	bus    *Emitter
	prefix string
}

// Namespace returns a view whose event names are prefixed with name.
func (b *Emitter) Namespace(name string) *Namespace {
	return &Namespace{bus: b, prefix: name}
}

// Namespace composes a child view; its prefix is parent:child.
func (n *Namespace) Namespace(name string) *Namespace {
	return &Namespace{bus: n.bus, prefix: n.qualify(name)}
}

// Prefix returns the namespace path.
func (n *Namespace) Prefix() string {
	return n.prefix
}

func (n *Namespace) qualify(name string) string {
	if name == "" {
		return n.prefix
	}

	return n.prefix + Separator + name
}

// Event returns the Event registered under the qualified name. An empty
// name addresses the namespace node itself.
func (n *Namespace) Event(name string) *Event {
	return n.bus.Event(n.qualify(name))
}

// On registers a listener under the qualified name.
func (n *Namespace) On(name string, l Listener, opts ...SubscribeOption) (*Record, error) {
	return n.bus.On(n.qualify(name), l, opts...)
}

// Once registers a one-shot listener under the qualified name.
func (n *Namespace) Once(name string, l Listener, opts ...SubscribeOption) (*Record, error) {
	return n.bus.Once(n.qualify(name), l, opts...)
}

// RemoveListener removes l from the qualified Event.
func (n *Namespace) RemoveListener(name string, l Listener) {
	n.bus.RemoveListener(n.qualify(name), l)
}

// Emit emits the qualified name through the underlying emitter.
func (n *Namespace) Emit(name string, args ...interface{}) (*Emission, error) {
	return n.bus.Emit(n.qualify(name), args...)
}

// EmitFields emits the qualified name with a keyword payload.
func (n *Namespace) EmitFields(name string, fields Fields, args ...interface{}) (*Emission, error) {
	return n.bus.EmitFields(n.qualify(name), fields, args...)
}
