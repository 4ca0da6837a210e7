// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"time"
)

// Metrics holds the running counters of an Event. Snapshots returned by
// Event.Metrics are copies; the counters are only ever advanced by the
// emitter during emission.
type Metrics struct {
	// TriggerCount is the total number of emissions, cancelled included.
	TriggerCount uint64
	// ListenersExecuted is the total number of listener invocations.
	ListenersExecuted uint64
	// AvgExecutionTime is the running average duration of one emission.
	AvgExecutionTime time.Duration
}

// record folds one emission into the counters using an incremental mean.
func (m *Metrics) record(executed int, d time.Duration) {
	m.TriggerCount++
	m.ListenersExecuted += uint64(executed)
	m.AvgExecutionTime += (d - m.AvgExecutionTime) / time.Duration(m.TriggerCount)
}
