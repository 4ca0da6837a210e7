// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	cfg "github.com/dusk-network/dusk-events/pkg/config"
)

var app = cli.NewApp()

func initLog() {
	log = logrus.WithFields(logrus.Fields{
		"app":    "evbench",
		"prefix": "main",
	})
}

func init() {
	initLog()

	app.Action = action
	app.Copyright = "Copyright (c) 2021 DUSK"
	app.Name = "evbench"
	app.Usage = "Event dispatch engine benchmark harness"
	app.Author = "DUSK 2021"
	app.Version = semver.MustParse(cfg.EngineVersion).String()
	app.Flags = append(app.Flags, CLIFlags...)
	app.Flags = append(app.Flags, GlobalFlags...)
}

func main() {
	defer handlePanic()

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		log.WithError(fmt.Errorf("%+v", r)).Errorln("Application panic")
	}
}
