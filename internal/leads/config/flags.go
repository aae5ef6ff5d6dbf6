package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/kitportal/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-d string   PostgreSQL DSN
//	-u string   Melissa base URL
//	-k string   Melissa license key
//	-v string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-u", "-k", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MelissaURL, "u", config.MelissaURL, "Melissa base URL")
	fs.StringVar(&config.MelissaKey, "k", config.MelissaKey, "Melissa license key")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
