package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Instagram resolution strategies.
const (
	StrategyExtractor = "extractor"
	StrategyIframe    = "iframe"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Links    LinksConfig    `yaml:"links"`
	Extract  ExtractConfig  `yaml:"extract"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
}

// StoreConfig holds message archive configuration.
type StoreConfig struct {
	// Path to the Messages database. Empty means the default location under
	// the user's home directory.
	Path string `yaml:"path" envconfig:"STORE_PATH"`
}

// LinksConfig holds persisted links file configuration.
type LinksConfig struct {
	Path string `yaml:"path" envconfig:"LINKS_PATH"`
}

// ExtractConfig holds extraction run configuration.
type ExtractConfig struct {
	// DaysBack limits the scan to messages newer than this many days.
	// Zero scans the whole archive.
	DaysBack int `yaml:"days_back" envconfig:"EXTRACT_DAYS_BACK"`

	// Sender restricts the scan to one handle (phone number or email).
	Sender string `yaml:"sender" envconfig:"EXTRACT_SENDER"`
}

// ResolverConfig holds embed resolution configuration.
type ResolverConfig struct {
	OembedEndpoint    string        `yaml:"oembed_endpoint" envconfig:"RESOLVER_OEMBED_ENDPOINT"`
	OembedTimeout     time.Duration `yaml:"oembed_timeout" envconfig:"RESOLVER_OEMBED_TIMEOUT"`
	InstagramStrategy string        `yaml:"instagram_strategy" envconfig:"RESOLVER_INSTAGRAM_STRATEGY"`
	HelperCommand     []string      `yaml:"helper_command" envconfig:"RESOLVER_HELPER_COMMAND"`
	HelperTimeout     time.Duration `yaml:"helper_timeout" envconfig:"RESOLVER_HELPER_TIMEOUT"`
}

// defaultConfig returns the built-in defaults. Defaults live here rather than
// in envconfig tags so that file values are not clobbered when the matching
// environment variable is unset.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         3000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
		Links: LinksConfig{
			Path: "video-links.json",
		},
		Extract: ExtractConfig{
			DaysBack: 60,
		},
		Resolver: ResolverConfig{
			OembedEndpoint:    "https://www.tiktok.com/oembed",
			OembedTimeout:     15 * time.Second,
			InstagramStrategy: StrategyExtractor,
			HelperCommand:     []string{"python3", "scripts/extract_instagram_video.py"},
			HelperTimeout:     time.Minute,
		},
	}
}

// Load reads configuration in increasing precedence: built-in defaults, then
// the YAML file if one is given, then environment variables.
func Load(configPath string) (*Config, error) {
	cfg := defaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.Store.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Store.Path = filepath.Join(home, "Library", "Messages", "chat.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Links.Path == "" {
		return fmt.Errorf("LINKS_PATH is required")
	}
	if c.Extract.DaysBack < 0 {
		return fmt.Errorf("EXTRACT_DAYS_BACK cannot be negative")
	}
	switch c.Resolver.InstagramStrategy {
	case StrategyExtractor, StrategyIframe:
	default:
		return fmt.Errorf("unknown instagram strategy %q", c.Resolver.InstagramStrategy)
	}
	if c.Resolver.InstagramStrategy == StrategyExtractor && len(c.Resolver.HelperCommand) == 0 {
		return fmt.Errorf("RESOLVER_HELPER_COMMAND is required for the extractor strategy")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
