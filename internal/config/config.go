// Package config resolves settings from flags, STUDYMIND_* environment
// variables, an optional YAML file and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iksnae/studymind/internal/api"
)

const (
	KeyBackendURL       = "backend_url"
	KeyUserID           = "user_id"
	KeyStatePath        = "state_path"
	KeyTimeout          = "timeout"
	KeyMarkdown         = "markdown"
	KeyMaxResponseBytes = "max_response_bytes"

	// DefaultUserID is used when no user is configured
	DefaultUserID = "default_user"

	envPrefix = "STUDYMIND"
)

// Config is the resolved configuration
type Config struct {
	BackendURL       string        `mapstructure:"backend_url" yaml:"backend_url"`
	UserID           string        `mapstructure:"user_id" yaml:"user_id"`
	StatePath        string        `mapstructure:"state_path" yaml:"state_path,omitempty"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Markdown         bool          `mapstructure:"markdown" yaml:"markdown"`
	MaxResponseBytes int64         `mapstructure:"max_response_bytes" yaml:"max_response_bytes"`

	// File is the config file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// New returns a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackendURL, api.DefaultBaseURL)
	v.SetDefault(KeyUserID, DefaultUserID)
	v.SetDefault(KeyStatePath, "")
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyMarkdown, true)
	v.SetDefault(KeyMaxResponseBytes, api.DefaultMaxResponseBytes)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// SearchPaths returns the config files tried when none is given
func SearchPaths() []string {
	paths := []string{"studymind.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".studymind.yaml"))
	}
	return paths
}

// Load reads file, or the first existing search path when file is empty,
// and returns the validated configuration. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				file = candidate
				break
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file %s not found", file)
			}
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail at the first request
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: want an http(s) origin such as %s", KeyBackendURL, c.BackendURL, api.DefaultBaseURL)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%s must not be empty", KeyUserID)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyTimeout)
	}
	return nil
}

// ClientOptions returns the api options implied by the configuration
func (c *Config) ClientOptions() []api.Option {
	return []api.Option{
		api.WithTimeout(c.Timeout),
		api.WithMaxResponseBytes(c.MaxResponseBytes),
	}
}
