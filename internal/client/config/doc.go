// Package config loads runtime configuration for the Luggify client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://127.0.0.1:8000
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   local SQLite database path
//	-u string   owner id checklists are saved under
//	-l string   log file path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "database_path": "luggify.db",
//	  "owner_id": "",
//	  "log_file": "luggify.log",
//	  "log_level": "info",
//	  "log_backend": "slog",
//	  "sync_concurrency": 4
//	}
//
// log_level, log_backend and sync_concurrency have no flag form.
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
