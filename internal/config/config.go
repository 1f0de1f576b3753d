// Package config carries the tool's runtime settings. There is no global
// state: the loaded Config is passed explicitly to every component that
// needs it.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment overrides, e.g. MXROUTE_HOST.
const envPrefix = "mxroute"

// DefaultConfigFile is the optional per-user config file, relative to the
// home directory.
const DefaultConfigFile = ".mxroute-tools.yaml"

// Config holds everything a run needs. Host and Username are required;
// Secret may be prompted interactively if absent.
//
// Environment keys are derived from the field names under the MXROUTE_
// prefix (MXROUTE_HOST, MXROUTE_USERNAME, MXROUTE_SECRET, ...). No explicit
// envconfig tags: a tag makes envconfig also consult the bare, unprefixed
// key, and the ambient $USER and $HOST of an ordinary shell must never leak
// into credentials.
type Config struct {
	// Host is the server short name, e.g. "maildemo" for
	// maildemo.mxrouting.net.
	Host string `yaml:"host"`
	// Username logs into the DirectAdmin panel.
	Username string `yaml:"user"`
	// Secret is a password or login key. Never logged, never echoed.
	Secret string `yaml:"pass"`
	// TimeoutSeconds bounds each HTTP request. Defaults to 10.
	TimeoutSeconds int `yaml:"timeout_seconds" split_words:"true"`
	// Nameserver optionally pins DNS lookups to one server
	// (host or host:port). Empty means the system resolvers.
	Nameserver string `yaml:"nameserver"`
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the fields that cannot be defaulted or prompted.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("config: server host is required")
	}
	if c.Username == "" {
		return errors.New("config: username is required")
	}
	return nil
}

// Load reads settings from the given yaml file (or the per-user default when
// path is empty), then a .env file if present, then MXROUTE_* environment
// variables. Later sources win. A missing config file is not an error unless
// the path was given explicitly.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, DefaultConfigFile)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		case os.IsNotExist(err) && !explicit:
			// No per-user config; fine.
		default:
			return Config{}, err
		}
	}

	_ = godotenv.Load()

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
