package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kitportal/internal/flagx"
)

// JsonConfig is the on-disk shape of the leads configuration.
type JsonConfig struct {
	DatabaseDSN string `json:"database_dsn"`
	MelissaURL  string `json:"melissa_url"`
	MelissaKey  string `json:"melissa_key"`
	LogLevel    string `json:"log_level"`
}

// parseJson loads the file named by -c/-config. Keys missing from the file
// keep their current value; unreadable or invalid files panic.
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

	for dst, v := range map[*string]string{
		&config.DatabaseDSN: c.DatabaseDSN,
		&config.MelissaURL:  c.MelissaURL,
		&config.MelissaKey:  c.MelissaKey,
		&config.LogLevel:    c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
}
