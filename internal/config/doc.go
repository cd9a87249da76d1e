// Package config loads petdesk settings.
//
// # Resolution Order
//
// Later sources win:
//
//  1. Built-in defaults
//  2. TOML file (~/.config/petdesk/config.toml unless a path is given)
//  3. Environment: PETDESK_BACKEND_URL, PETDESK_DATA_DIR, PETDESK_LOG_LEVEL
//  4. Command-line flags (applied by the caller)
//
// A .env file can seed the environment through LoadEnvFile; variables that
// are already set are not replaced. A missing config file is not an error,
// but a malformed one is.
//
// # Default Values
//
//   - Backend: http://localhost:8000
//   - Data directory: ~/.local/share/petdesk (holds pets.json)
//   - Log file: <data_dir>/petdesk.log
//   - Log level: info
//   - Request timeout: 5s
//   - Notice duration: 5s
//   - Refresh interval: disabled
//
// # TOML Format
//
//	backend_url = "http://localhost:8000"
//	data_dir = "~/.local/share/petdesk"
//	log_file = "~/.local/share/petdesk/petdesk.log"
//	log_level = "info"
//	request_timeout = "5s"
//	notice_duration = "5s"
//	refresh_interval = "0s"
//
// Durations use Go syntax (time.ParseDuration). Paths starting with ~ are
// expanded against the user's home directory and made absolute.
package config
