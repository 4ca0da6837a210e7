package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config package should avoid importing any dusk-events packages in order
// to prevent any cyclic-dependancy issues

const (
	// current working dir
	searchPath1 = "."
	// home datadir
	searchPath2 = "$HOME/.dusk-events/"

	// name for the config file. Does not include extension.
	configFileName = "events"
)

var (
	r *Registry
)

// Registry stores all loaded configurations according to the config order
// NB It should be cheap to be copied by value
type Registry struct {
	UsedConfigFile string

	// All configuration groups
	General generalConfiguration
	Logger  loggerConfiguration
	Events  eventsConfiguration
	Bench   benchConfiguration
}

// Load makes an attempt to read and unmarshal any configs from flag, env
// and the events config file.
//
// It uses the following precedence order. Each item takes precedence over
// the item below it:
//  - flag
//  - env
//  - config
//  - default
//
// The configuration file can be in form of TOML, JSON, YAML, HCL or Java
// properties config files
func Load(configFile string) error {
	r = new(Registry)

	if err := r.init(configFile); err != nil {
		return err
	}

	return nil
}

// Get returns registry by value in order to avoid further modifications
// after initial configuration loading
func Get() Registry {
	return *r
}

// Mock should be used only in test packages. It could be useful when a unit
// test needs to be rerun with configs different from the default ones.
func Mock(m *Registry) {
	r = m
}

func (r *Registry) init(configFile string) error {
	// Make an attempt to find events.toml/events.json/events.yaml in any
	// of the provided paths below
	viper.SetConfigName(configFileName)

	// search paths
	viper.AddConfigPath(searchPath1)
	viper.AddConfigPath(searchPath2)

	flagFile, err := loadFlags()
	if err != nil {
		return err
	}

	// config path from the command line takes precedence
	if len(configFile) == 0 {
		configFile = flagFile
	}

	if len(configFile) > 0 {
		viper.SetConfigFile(configFile)
	}

	defineDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is not an error; defaults apply
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("error reading config file: %s", err)
		}
	}

	defineENV()

	// Unmarshal all configurations from all conf levels to the registry struct
	if err := viper.Unmarshal(&r); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	r.UsedConfigFile = viper.ConfigFileUsed()

	return nil
}

func loadFlags() (string, error) {
	if pflag.Parsed() {
		return "", nil
	}

	pflag.CommandLine.Init("dusk-events", pflag.ContinueOnError)

	// tolerate flags owned by the hosting CLI application
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true

	pflag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", "dusk-events")
		pflag.PrintDefaults()
	}

	defineFlags()
	configFile := pflag.String("config", "", "Set path to the config file")

	// Bind all command line parameters to their corresponding file configs
	//
	// e.g CLI argument `--logger.level="warn"` will overwrite the value from
	// `[logger] level = "info"` in the loaded config file
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return "", fmt.Errorf("unable bind pflags, %v", err)
	}

	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return "", err
	}

	return *configFile, nil
}

// define a set of flags as bindings to config file settings
// The settings that are needed to be passed frequently by CLI should be added here
func defineFlags() {
	_ = pflag.StringP("logger.level", "l", "", "override logger.level settings in config file")
	_ = pflag.StringP("logger.output", "o", "", "specifies the log output")
	_ = pflag.IntP("events.historysize", "s", 0, "override events.historysize settings in config file")
	_ = pflag.IntP("bench.iterations", "i", 0, "override bench.iterations settings in config file")
}

func defineDefaults() {
	viper.SetDefault("general.name", "dusk-events")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.format", "text")
	viper.SetDefault("events.maxlisteners", 0)
	viper.SetDefault("events.historysize", 100)
	viper.SetDefault("events.errorpolicy", "propagate")
	viper.SetDefault("bench.iterations", 100000)
	viper.SetDefault("bench.listeners", 1)
}

// define a set of environment variables as bindings to config file settings
func defineENV() {
	if err := viper.BindEnv("logger.level", "DUSK_EVENTS_LOGGER_LEVEL"); err != nil {
		fmt.Printf("defineENV %v", err)
	}

	if err := viper.BindEnv("events.historysize", "DUSK_EVENTS_HISTORY_SIZE"); err != nil {
		fmt.Printf("defineENV %v", err)
	}
}

func init() {
	// By default Registry should be empty but not nil. In that way, consumers
	// (packages) can use their default values on unit testing
	r = new(Registry)
	r.Logger.Level = "info"
	r.Logger.Output = "stdout"
	r.Events.HistorySize = 100
	r.Events.ErrorPolicy = "propagate"
}
