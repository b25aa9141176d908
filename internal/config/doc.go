// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.choretracker/choretracker.toml or OS-specific config directory)
// 3. Project config file (choretracker.toml or .choretracker.toml in the working directory)
// 4. Environment variables (CHORETRACKER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.choretracker/choretracker.toml (preferred)
// - Windows: %APPDATA%\choretracker\choretracker.toml
// - macOS: ~/Library/Application Support/choretracker/choretracker.toml
// - Linux/BSD: $XDG_CONFIG_HOME/choretracker/choretracker.toml or ~/.config/choretracker/choretracker.toml
package config
