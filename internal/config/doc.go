// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.reminders/reminders.toml or OS-specific config directory)
// 3. Project config file (reminders.toml or .reminders.toml in the working directory)
// 4. Environment variables (REMINDERS_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.reminders/reminders.toml (preferred)
// - Windows: %APPDATA%\reminders\reminders.toml
// - macOS: ~/Library/Application Support/reminders/reminders.toml
// - Linux/BSD: $XDG_CONFIG_HOME/reminders/reminders.toml or ~/.config/reminders/reminders.toml
//
// Project-level config locations (overrides user config):
// - ./reminders.toml (preferred)
// - ./.reminders.toml
package config
