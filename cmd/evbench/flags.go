// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"github.com/urfave/cli"
)

var (
	// VerbosityFlag flag to set mode to verbose.
	VerbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "verbosity",
	}
	// ConfigFlag flag to use configuration file.
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "events.toml configuration file",
	}
	// EventFlag flag to set the event name to benchmark.
	EventFlag = cli.StringFlag{
		Name:  "event",
		Usage: "event name driven by the benchmark",
		Value: "bench:run",
	}
	// IterationsFlag flag to set the number of emissions.
	IterationsFlag = cli.IntFlag{
		Name:  "iterations",
		Usage: "number of emissions to drive",
	}
	// ListenersFlag flag to set the number of registered listeners.
	ListenersFlag = cli.IntFlag{
		Name:  "listeners",
		Usage: "number of listeners registered on the benchmarked event",
	}
)

var (
	// CLIFlags flags usable in a CLI context.
	CLIFlags = []cli.Flag{
		VerbosityFlag,
		EventFlag,
		IterationsFlag,
		ListenersFlag,
	}
	// GlobalFlags flags usable in a global context.
	GlobalFlags = []cli.Flag{
		ConfigFlag,
	}
)
