// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	cfg "github.com/dusk-network/dusk-events/pkg/config"
	"github.com/dusk-network/dusk-events/pkg/events"
	"github.com/dusk-network/dusk-events/pkg/util/nativeutils/logging"
)

var log *logrus.Entry

// priorities cycled over when registering more than one benchmark listener.
var priorities = []events.Priority{
	events.Highest, events.High, events.Normal, events.Low, events.Lowest,
}

func action(ctx *cli.Context) error {
	if arguments := ctx.Args(); len(arguments) > 0 {
		return fmt.Errorf("failed to read command argument: %q", arguments[0])
	}

	// Loading all configurations. Fail-fast if critical error occurs
	if err := cfg.Load(ctx.GlobalString(ConfigFlag.Name)); err != nil {
		log.WithError(err).Fatal("Could not load config ")
	}

	// Set up logging.
	// Any subsystem should be initialized after config and logger loading
	logFile, err := logging.Init()
	if err != nil {
		log.Panic(err)
	}

	defer func() {
		if logFile != os.Stdout {
			_ = logFile.Close()
		}
	}()

	if verbosity := ctx.String(VerbosityFlag.Name); verbosity != "" {
		logging.SetToLevel(verbosity)
	}

	if cfg.Get().UsedConfigFile != "" {
		log.WithField("file", cfg.Get().UsedConfigFile).Info("Loaded config file")
	}

	name := ctx.String(EventFlag.Name)

	iterations := ctx.Int(IterationsFlag.Name)
	if iterations == 0 {
		iterations = cfg.Get().Bench.Iterations
	}

	listeners := ctx.Int(ListenersFlag.Name)
	if listeners == 0 {
		listeners = cfg.Get().Bench.Listeners
	}

	log.WithFields(logrus.Fields{
		"event":      name,
		"iterations": iterations,
		"listeners":  listeners,
	}).Info("Starting benchmark")

	result, err := events.Benchmark(name, iterations, setup(name, listeners))
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"elapsed":      result.Elapsed,
		"per_emission": result.PerEmission,
		"events_per_s": fmt.Sprintf("%.0f", result.EventsPerSecond),
	}).Info("Benchmark complete")

	return nil
}

// setup registers count no-op listeners, cycling through the priority
// levels so the sorted insertion path is part of the measurement target.
func setup(name string, count int) func(*events.Emitter) error {
	return func(bus *events.Emitter) error {
		for i := 0; i < count; i++ {
			listener := events.NewCallbackListener(func(*events.Emission) error {
				return nil
			})

			opt := events.WithPriority(priorities[i%len(priorities)])
			if _, err := bus.On(name, listener, opt); err != nil {
				return err
			}
		}

		return nil
	}
}
