package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultDataFile   = "reminders.json"
	DefaultLogDir     = "~/.reminders/logs"
	DefaultHourFormat = 12
	DefaultAutoSave   = true
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for reminders.
type Config struct {
	// Task file
	DataFile string `toml:"data_file"`
	Format   string `toml:"format"` // "" infers from the extension

	// Shell behaviour
	AutoSave   bool `toml:"auto_save"`
	HourFormat int  `toml:"hour_format"` // 12 or 24

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the configurable field names in display order.
func configFields() []string {
	return []string{
		"data_file",
		"format",
		"auto_save",
		"hour_format",
		"hook_command",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the effective value of a field by its TOML name.
func (c *Config) Value(field string) any {
	switch field {
	case "data_file":
		return c.DataFile
	case "format":
		return c.Format
	case "auto_save":
		return c.AutoSave
	case "hour_format":
		return c.HourFormat
	case "hook_command":
		return c.HookCommand
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "log_caller":
		return c.LogCaller
	default:
		return nil
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.Format = ""
	cfg.AutoSave = DefaultAutoSave
	cfg.HourFormat = DefaultHourFormat
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
