package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see package
// doc for the list). Only known flags are considered, so foreign arguments
// do not break parsing. Malformed values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-f", "-r", "-t", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "API base URL")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "token store backend (sqlite|file|redis|memory)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.TokenFilePath, "f", cfg.TokenFilePath, "token file path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	staleTime := fs.Int("p", int(cfg.ProfileStaleTime.Seconds()), "profile stale time (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.ProfileStaleTime = time.Duration(*staleTime) * time.Second
}
