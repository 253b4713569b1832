// Package config handles the XDG configuration directory and config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "goaltrack"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename used by the
	// googletasks backend.
	OAuthClientFile = "oauth_client.json"

	// DefaultStorePath is the database filename, relative to Dir.
	DefaultStorePath = "goaltrack.db"

	// DefaultTimeout bounds every remote call.
	DefaultTimeout = 5 * time.Second
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Remote backends.
const (
	BackendNone        = "none"
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Store  Store  `toml:"store"`
	Remote Remote `toml:"remote"`
}

// Store selects the local key-value store.
type Store struct {
	// Driver is "sqlite" or "memory".
	Driver string `toml:"driver"`

	// Path is the database file. Relative paths resolve against Dir.
	Path string `toml:"path"`
}

// Remote selects the remote task service.
type Remote struct {
	// Backend is "none", "rest" or "googletasks".
	Backend string `toml:"backend"`

	// Endpoint is the REST API root.
	Endpoint string `toml:"endpoint"`

	// Timeout is a Go duration string such as "5s".
	Timeout string `toml:"timeout"`
}

// New creates a Config for configDir with default settings. If configDir
// is empty, uses XDG_CONFIG_HOME/goaltrack or $HOME/.config/goaltrack.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:    dir,
		Store:  Store{Driver: DriverSQLite, Path: DefaultStorePath},
		Remote: Remote{Backend: BackendNone},
	}, nil
}

// Load is New followed by reading config.toml from the directory, if present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	path := cfg.ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the store and remote settings.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "":
		c.Store.Driver = DriverSQLite
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q (want sqlite or memory)", c.Store.Driver)
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}

	switch c.Remote.Backend {
	case "":
		c.Remote.Backend = BackendNone
	case BackendNone, BackendGoogleTasks:
	case BackendREST:
		if c.Remote.Endpoint == "" {
			return fmt.Errorf("remote backend rest needs an endpoint")
		}
	default:
		return fmt.Errorf("unknown remote backend %q (want none, rest or googletasks)", c.Remote.Backend)
	}
	if _, err := c.RemoteTimeout(); err != nil {
		return err
	}
	return nil
}

// RemoteTimeout returns the parsed remote timeout, DefaultTimeout if unset.
func (c *Config) RemoteTimeout() (time.Duration, error) {
	if c.Remote.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid remote timeout %q: %w", c.Remote.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid remote timeout %q: must be positive", c.Remote.Timeout)
	}
	return d, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// StorePath returns the database path.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(c.Dir, c.Store.Path)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}
