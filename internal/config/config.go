// Package config holds the runtime configuration of the service.
package config

import (
	"flag"
	"fmt"
	"sync"
	"time"
)

// Config holds all the configuration settings for our application.
// Dataset settings can be swapped at runtime by the refresh routine, so
// access goes through the mutex-guarded accessors.
type Config struct {
	Port int
	Env  string

	// Exactly one of DataDir or DataURL is set; see ValidateDataFlags.
	DataDir string
	DataURL string

	// Optional GTFS static bundle that replaces the transit stop
	// collection after the initial dataset load.
	GTFSURL string

	RefreshInterval time.Duration

	mu       sync.RWMutex
	authUser string
	authPass string
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string) *Config {
	return &Config{
		Port: port,
		Env:  env,
	}
}

// SetDataAuth safely stores the basic auth credentials for the remote
// dataset host.
func (cfg *Config) SetDataAuth(user, pass string) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	cfg.authUser = user
	cfg.authPass = pass
}

// DataAuth safely returns the dataset host credentials.
func (cfg *Config) DataAuth() (user, pass string) {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.authUser, cfg.authPass
}

// ValidateDataFlags ensures that exactly one dataset source is specified:
// either a local directory "--data-dir" or a remote base URL "--data-url".
//
// Returns an error if none or more than one input method is specified.
func ValidateDataFlags(dataDir, dataURL *string) error {
	if *dataDir == "" && *dataURL == "" {
		return fmt.Errorf("no dataset provided, either --data-dir or --data-url must be specified")
	}
	if (*dataDir != "" && *dataURL != "") || len(flag.Args()) > 0 {
		return fmt.Errorf("only one of --data-dir or --data-url can be specified")
	}
	return nil
}

// ValidateEnv checks the deployment environment flag.
func ValidateEnv(env string) error {
	switch env {
	case "development", "staging", "production":
		return nil
	}
	return fmt.Errorf("invalid environment %q, must be development, staging or production", env)
}
