package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	dirName   = ".lgtmthreads"
	fileName  = "config.toml"
	envPrefix = "LGTMTHREADS_"
)

type Config struct {
	Log struct {
		Path  string `koanf:"path"`
		Level string `koanf:"level"`
	} `koanf:"log"`

	Review struct {
		SuppressRefreshWhileEditing bool `koanf:"suppress_refresh_while_editing"`
		MarkdownWidth               int  `koanf:"markdown_width"`
		RefreshSeconds              int  `koanf:"refresh_seconds"`
	} `koanf:"review"`

	GitHub struct {
		BaseURL string `koanf:"base_url"`
	} `koanf:"github"`

	AzureDevOps struct {
		Organization string `koanf:"organization"`
	} `koanf:"azuredevops"`
}

// Dir is where the config file, the PAT store and the log live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func defaults(dir string) map[string]interface{} {
	return map[string]interface{}{
		"log.path":                              filepath.Join(dir, "lgtmthreads.log"),
		"log.level":                             "info",
		"review.suppress_refresh_while_editing": false,
		"review.markdown_width":                 80,
		"review.refresh_seconds":                0,
		"github.base_url":                       "",
		"azuredevops.organization":              "",
	}
}

// Load layers defaults, the TOML file and LGTMTHREADS_ environment
// variables. An empty configPath means the default location, which may
// be missing; an explicit path must exist.
func Load(configPath string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(dir), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config: %w", err)
			}
		}
	}

	// LGTMTHREADS_REVIEW_MARKDOWN_WIDTH -> review.markdown_width
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	if cfg.Review.MarkdownWidth < 20 {
		return fmt.Errorf("review.markdown_width must be at least 20, got %d", cfg.Review.MarkdownWidth)
	}
	if cfg.Review.RefreshSeconds < 0 {
		return fmt.Errorf("review.refresh_seconds must not be negative, got %d", cfg.Review.RefreshSeconds)
	}
	return nil
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	sampleConfig := `# lgtmthreads configuration

[log]
# path = "/home/me/.lgtmthreads/lgtmthreads.log"
level = "info"

[review]
# Skip pushed or periodic reloads while an editor has unsent text.
suppress_refresh_while_editing = false
# Reload comments every N seconds; 0 disables it.
refresh_seconds = 0
markdown_width = 80

[github]
# Set for GitHub Enterprise, e.g. "https://github.example.com/api/v3/"
base_url = ""

[azuredevops]
organization = ""
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}
