package logging

import (
	"os"

	log "github.com/sirupsen/logrus"

	cfg "github.com/dusk-network/dusk-events/pkg/config"
)

// Init resolves the configured log output and applies the logger
// configuration to the process-wide logrus instance. Any output other than
// "stdout" is created as <output>.log. The returned file is owned by the
// caller; stdout is returned as-is and should not be closed.
func Init() (*os.File, error) {
	logFile := os.Stdout

	if output := cfg.Get().Logger.Output; output != "stdout" {
		var err error

		logFile, err = os.Create(output + ".log")
		if err != nil {
			return nil, err
		}
	}

	InitLog(logFile)

	return logFile, nil
}

// InitLog applies the logger configuration to the process-wide logrus
// instance, directing it at the given file.
func InitLog(logFile *os.File) {
	// apply logger level from configurations
	SetToLevel(cfg.Get().Logger.Level)
	log.SetOutput(logFile)

	if cfg.Get().Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// SetToLevel parses and applies a logrus level name.
func SetToLevel(l string) {
	level, err := log.ParseLevel(l)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.TraceLevel)
		log.Warnf("Parse logger level from config err: %v", err)
	}
}
