package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kitportal/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":8083")
//	-e string   public endpoint; the private API is at <endpoint>/api
//	-f string   CA bundle for the private API
//	-l string   AuthRocket login URL
//	-k string   RS256 public key, PEM or path
//	-s string   session secret
//	-t int      session max age, minutes
//	-m string   help email
//	-g string   language tag
//	-o int      private API timeout, seconds (0 disables)
//	-v string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-f", "-l", "-k", "-s", "-t", "-m", "-g", "-o", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to listen on")
	fs.StringVar(&config.Endpoint, "e", config.Endpoint, "public endpoint")
	fs.StringVar(&config.CAFile, "f", config.CAFile, "CA file for the private API")
	fs.StringVar(&config.AuthRocketURL, "l", config.AuthRocketURL, "AuthRocket login URL")
	fs.StringVar(&config.JWTPublicKey, "k", config.JWTPublicKey, "JWT public key (PEM or path)")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session secret")

	sessionMaxAge := fs.Int("t", int(config.SessionMaxAge.Minutes()), "session max age (in minutes)")

	fs.StringVar(&config.HelpEmail, "m", config.HelpEmail, "help email")
	fs.StringVar(&config.LanguageTag, "g", config.LanguageTag, "language tag")

	apiTimeout := fs.Int("o", int(config.APITimeout.Seconds()), "private API timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only explicit flags override durations; the defaults above round
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Minute
		case "o":
			config.APITimeout = time.Duration(*apiTimeout) * time.Second
		}
	})
}
