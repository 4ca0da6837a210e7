// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"time"
)

// EmissionRecord is one history entry of an Event. Records are appended by
// the emitter only; once the history bound is reached the oldest entry is
// evicted first.
type EmissionRecord struct {
	Time      time.Time
	ID        string
	Payload   string
	Executed  int
	Duration  time.Duration
	Cancelled bool
	Failed    bool
}

func newEmissionRecord(e *Emission, d time.Duration, failed bool) EmissionRecord {
	return EmissionRecord{
		Time:      time.Now(),
		ID:        e.id,
		Payload:   e.payloadString(),
		Executed:  e.executed,
		Duration:  d,
		Cancelled: e.cancelled,
		Failed:    failed,
	}
}
