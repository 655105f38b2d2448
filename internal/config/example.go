package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Reminders configuration file
# Values can be overridden by REMINDERS_* environment variables or CLI flags

# Task file (relative to the working directory)
data_file = "reminders.json"

# Task file format: json, toml or yaml (empty: from the file extension)
format = ""

# Save the task file when the shell exits
auto_save = true

# Clock used when entering due dates: 12 (with AM/PM) or 24
hour_format = 12

# Command run after each save as: <command> <event> <data-file> <count>
# hook_command = "/path/to/hook.sh"

# Session logs (~ and $VAR are expanded; relative to the working directory)
log_dir = "~/.reminders/logs"
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
