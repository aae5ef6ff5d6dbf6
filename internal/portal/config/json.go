package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kitportal/internal/flagx"
	"github.com/dmitrijs2005/kitportal/internal/timex"
)

// JsonConfig is the on-disk shape of the portal configuration. Durations
// accept both "30s" strings and integer nanoseconds.
type JsonConfig struct {
	ListenAddr    string         `json:"listen_addr"`
	Endpoint      string         `json:"endpoint"`
	CAFile        string         `json:"ca_file"`
	AuthRocketURL string         `json:"authrocket_url"`
	JWTPublicKey  string         `json:"jwt_public_key"`
	SessionSecret string         `json:"session_secret"`
	SessionMaxAge timex.Duration `json:"session_max_age"`
	HelpEmail     string         `json:"help_email"`
	LanguageTag   string         `json:"language_tag"`
	APITimeout    timex.Duration `json:"api_timeout"`
	LogLevel      string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config into config. Keys missing
// from the file keep their current value. A file that cannot be read or
// decoded panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.Endpoint, c.Endpoint)
	setString(&config.CAFile, c.CAFile)
	setString(&config.AuthRocketURL, c.AuthRocketURL)
	setString(&config.JWTPublicKey, c.JWTPublicKey)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.HelpEmail, c.HelpEmail)
	setString(&config.LanguageTag, c.LanguageTag)
	setString(&config.LogLevel, c.LogLevel)
	if c.SessionMaxAge.Duration != 0 {
		config.SessionMaxAge = c.SessionMaxAge.Duration
	}
	if c.APITimeout.Duration != 0 {
		config.APITimeout = c.APITimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
