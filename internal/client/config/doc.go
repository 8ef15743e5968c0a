// Package config loads runtime configuration for the SessionKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL, e.g. http://127.0.0.1:8000/api/v1
//	-s string   token store backend: sqlite, file, redis or memory
//	-d string   SQLite database path (sqlite backend)
//	-f string   token file path (file backend)
//	-r string   redis address host:port (redis backend)
//	-t int      request timeout (seconds)
//	-p int      profile stale time (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations go through timex.Duration, so they can be strings like "5m" or
// integer nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000/api/v1",
//	  "store_backend": "sqlite",
//	  "database_path": "session.db",
//	  "token_file_path": "session.token",
//	  "redis_addr": "127.0.0.1:6379",
//	  "request_timeout": "10s",
//	  "profile_stale_time": "5m",
//	  "log_level": "info"
//	}
//
// This package does not read environment variables.
package config
