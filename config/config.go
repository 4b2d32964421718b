// Package config resolves which backend serves data: the remote API, the
// local API, or the embedded store. Settings are persisted in a TOML file
// and re-read at the start of every orchestrated operation, so a change
// takes effect on the very next call without a restart.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Built-in connection defaults, used whenever a flag was never persisted.
const (
	DefaultLocalDBURL  = "http://localhost:3000"
	DefaultRemoteDBURL = "http://172.16.2.94:3000"
)

// Database holds the advanced direct-connection parameters. They are not
// used by the data paths; they are forwarded to the backend's own
// connection-test endpoint.
type Database struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     string `mapstructure:"port" json:"port"`
	Name     string `mapstructure:"name" json:"name"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"password"`
}

// DSN builds a PostgreSQL connection string from the parameters.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// Settings is the persisted configuration surface.
type Settings struct {
	UseEmbeddedStore bool     `mapstructure:"use_embedded_store"`
	UseLocalDB       bool     `mapstructure:"use_local_db"`
	LocalDBURL       string   `mapstructure:"local_db_url"`
	RemoteDBURL      string   `mapstructure:"remote_db_url"`
	Database         Database `mapstructure:"database"`
}

// Mode is the resolved backend for one call. Either the embedded store
// serves the call, or Endpoint points at the selected API base plus /api.
type Mode struct {
	EmbeddedStore bool
	Endpoint      string
}

// BackendMode derives the active mode from the settings. The result is
// valid for a single call only; callers must not cache it.
func (s *Settings) BackendMode() Mode {
	if s.UseEmbeddedStore {
		return Mode{EmbeddedStore: true}
	}
	return Mode{Endpoint: s.NetworkEndpoint()}
}

// NetworkEndpoint resolves the selected API base URL plus /api, ignoring
// the embedded-store flag.
func (s *Settings) NetworkEndpoint() string {
	base := s.RemoteDBURL
	if base == "" {
		base = DefaultRemoteDBURL
	}
	if s.UseLocalDB {
		base = s.LocalDBURL
		if base == "" {
			base = DefaultLocalDBURL
		}
	}
	return strings.TrimRight(base, "/") + "/api"
}

// Load reads the settings file at path. A missing file is not an error;
// every flag falls back to its built-in default.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("use_embedded_store", false)
	v.SetDefault("use_local_db", false)
	v.SetDefault("local_db_url", DefaultLocalDBURL)
	v.SetDefault("remote_db_url", DefaultRemoteDBURL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "checklist")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading settings %s: %w", path, err)
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("decoding settings %s: %w", path, err)
	}
	return settings, nil
}

// Loader yields the current settings. The orchestrator and the remote
// client call it once per public operation instead of holding a Settings
// value, preserving the takes-effect-on-next-call contract.
type Loader func() (*Settings, error)

// FileLoader returns a Loader that re-reads path on every call.
func FileLoader(path string) Loader {
	return func() (*Settings, error) {
		return Load(path)
	}
}

// StaticLoader returns a Loader that always yields s. Intended for tests.
func StaticLoader(s *Settings) Loader {
	return func() (*Settings, error) {
		return s, nil
	}
}
