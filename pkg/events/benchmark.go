// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

import (
	"time"

	"github.com/pkg/errors"
)

// BenchmarkResult reports the outcome of one benchmark run.
type BenchmarkResult struct {
	Iterations      int
	Elapsed         time.Duration
	PerEmission     time.Duration
	EventsPerSecond float64
}

// Benchmark drives iterations synchronous emissions of name against a
// throwaway Emitter and reports throughput and per-iteration latency. The
// setup callback registers the listeners under test; a nil setup registers
// a single no-op listener. The caller's production emitters are never
// touched.
func Benchmark(name string, iterations int, setup func(*Emitter) error) (*BenchmarkResult, error) {
	if iterations <= 0 {
		return nil, errors.Wrap(ErrEvent, "benchmark needs a positive iteration count")
	}

	// isolated instance; history is kept minimal so retention does not
	// dominate the measurement
	bus := New(WithHistorySize(1))

	if setup == nil {
		setup = func(b *Emitter) error {
			_, err := b.On(name, NewCallbackListener(func(*Emission) error {
				return nil
			}))
			return err
		}
	}

	if err := setup(bus); err != nil {
		return nil, errors.Wrap(err, "benchmark setup failed")
	}

	start := time.Now()

	for i := 0; i < iterations; i++ {
		if _, err := bus.Emit(name, i); err != nil {
			return nil, errors.Wrapf(err, "benchmark emission %d failed", i)
		}
	}

	elapsed := time.Since(start)

	return &BenchmarkResult{
		Iterations:      iterations,
		Elapsed:         elapsed,
		PerEmission:     elapsed / time.Duration(iterations),
		EventsPerSecond: float64(iterations) / elapsed.Seconds(),
	}, nil
}
