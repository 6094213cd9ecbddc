package pdfo

import (
	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
)

// AllFlags are the global command line flags
type AllFlags struct {
	logger.Flags
	// Config is an optional settings file (yaml, json, toml or env)
	Config     string
	NoProgress bool
}

var Flags = AllFlags{
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds the global flags to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.Config, "config", "", "Settings file, PDFO_* environment variables override it")
	flags.BoolVar(&Flags.NoProgress, "no-progress", false, "Disable the progress bar")
	return &Flags
}

// UseFlags configures logging
func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	logger.Debugf("Using settings file %q", a.Config)
}
