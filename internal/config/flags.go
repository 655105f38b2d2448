package config

import (
	"flag"
)

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"file":           "data_file",
	"format":         "format",
	"auto-save":      "auto_save",
	"hour-format":    "hour_format",
	"hook":           "hook_command",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// RegisterFlags defines the config flags on fs with cfg's current values as
// defaults. Parsing fs writes straight into cfg.
func RegisterFlags(cfg *Config, fs *flag.FlagSet) {
	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "Path to the task file")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Task file format: json, toml or yaml (default: from extension)")
	fs.BoolVar(&cfg.AutoSave, "auto-save", cfg.AutoSave, "Save the task file when the shell exits")
	fs.IntVar(&cfg.HourFormat, "hour-format", cfg.HourFormat, "Clock used when entering due dates: 12 or 24")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command to run after each save")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller info in logs")
}

// parseFlags defines and parses CLI flags, recording explicitly set flags
// in sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("reminders", flag.ContinueOnError)
	}
	RegisterFlags(cfg, fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
