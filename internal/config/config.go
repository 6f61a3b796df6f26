package config

import (
	"strings"

	"github.com/idilsaglam/laptopstore/internal/client"
)

// Config carries the settings shared by every subcommand.
// Values come from the environment; root flags override them in cmd/.
type Config struct {
	BaseURL  string // laptopstore API root
	LogFile  string // diagnostic log sink
	Debug    bool
	Addr     string // listen address for `serve`
	DataFile string // JSON seed/snapshot for `serve`; empty keeps it in memory
}

const (
	EnvBaseURL  = "LAPTOPSTORE_URL"
	EnvLogFile  = "LAPTOPSTORE_LOG"
	EnvAddr     = "LAPTOPSTORE_ADDR"
	EnvDataFile = "LAPTOPSTORE_DATA"
	EnvDebug    = "LAPTOPSTORE_DEBUG"
)

// Load reads the environment through getenv (os.Getenv in production).
func Load(getenv func(string) string) Config {
	cfg := Config{
		BaseURL:  client.DefaultBaseURL,
		LogFile:  "laptopstore.log",
		Addr:     "127.0.0.1:8081",
		DataFile: strings.TrimSpace(getenv(EnvDataFile)),
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvDebug))) {
	case "1", "true", "yes":
		cfg.Debug = true
	}
	return cfg
}
