// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

type generalConfiguration struct {
	Name string
}

type loggerConfiguration struct {
	Level  string
	Output string
	Format string
}

// pkg/events package configs.
type eventsConfiguration struct {
	// MaxListeners caps each Event's listener list. 0 means no cap.
	MaxListeners int
	// HistorySize bounds each Event's emission history.
	HistorySize int
	// ErrorPolicy is "propagate" or "log".
	ErrorPolicy string
}

// cmd/evbench configs.
type benchConfiguration struct {
	Iterations int
	Listeners  int
}
