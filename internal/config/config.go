// Package config loads and validates the site configuration file.
//
// Configuration is YAML. Environment variables referenced as ${VAR} in the
// file are expanded at load time, and a .env/.env.local file in the working
// directory is read first so local development can inject them without
// touching the shell.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pagemill/pagemill/internal/breadcrumb"
	"github.com/pagemill/pagemill/internal/errors"
)

// Config is the full site configuration.
type Config struct {
	Site        Site        `yaml:"site"`
	Content     Content     `yaml:"content"`
	Breadcrumbs Breadcrumbs `yaml:"breadcrumbs"`
	Serve       Serve       `yaml:"serve"`
	Source      Source      `yaml:"source"`
}

// Site describes the generated site itself.
type Site struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// Content controls where pages come from and where HTML goes.
type Content struct {
	InputDir    string `yaml:"input_dir"`
	OutputDir   string `yaml:"output_dir"`
	TemplateDir string `yaml:"template_dir,omitempty"` // overrides the embedded templates
	Clean       bool   `yaml:"clean"`                  // empty the output directory before writing
	Workers     int    `yaml:"workers,omitempty"`      // parallel document workers, 0 means NumCPU
}

// Breadcrumbs controls trail generation. Enabled is a pointer so that an
// absent key means "on" while an explicit false turns it off.
type Breadcrumbs struct {
	Enabled   *bool  `yaml:"enabled,omitempty"`
	HomeTitle string `yaml:"home_title,omitempty"`
	MaxItems  int    `yaml:"max_items,omitempty"`
}

// Serve configures the development server.
type Serve struct {
	Addr         string `yaml:"addr,omitempty"`
	Watch        *bool  `yaml:"watch,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"` // optional periodic rebuild, Go duration syntax
	Metrics      bool   `yaml:"metrics,omitempty"`       // expose /metrics on the dev server
}

// Source optionally points at a Git repository to fetch content from instead
// of the local input directory.
type Source struct {
	GitURL string `yaml:"git_url,omitempty"`
	Branch string `yaml:"branch,omitempty"`
}

// Load reads, expands and validates the configuration at path. Defaults are
// applied before validation, so a minimal file is enough to build with.
func Load(path string) (*Config, error) {
	// .env files are optional; missing ones are not an error.
	_ = godotenv.Load(".env.local", ".env")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.ConfigInvalid("unreadable", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigInvalid("yaml syntax", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration a build gets when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Untitled Site"
	}
	if c.Content.InputDir == "" {
		c.Content.InputDir = "content"
	}
	if c.Content.OutputDir == "" {
		c.Content.OutputDir = "public"
	}
	if c.Content.Workers <= 0 {
		c.Content.Workers = runtime.NumCPU()
	}
	if c.Breadcrumbs.HomeTitle == "" {
		c.Breadcrumbs.HomeTitle = "Home"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
	if c.Source.GitURL != "" && c.Source.Branch == "" {
		c.Source.Branch = "main"
	}
}

func (c *Config) validate() error {
	if c.Breadcrumbs.MaxItems < 0 {
		return errors.ConfigInvalid("breadcrumbs.max_items must not be negative", nil)
	}
	if c.Serve.RebuildEvery != "" {
		if _, err := time.ParseDuration(c.Serve.RebuildEvery); err != nil {
			return errors.ConfigInvalid("serve.rebuild_every is not a duration", err)
		}
	}
	return nil
}

// BreadcrumbConfig translates the breadcrumbs section for the trail builder.
func (c *Config) BreadcrumbConfig() breadcrumb.Config {
	enabled := true
	if c.Breadcrumbs.Enabled != nil {
		enabled = *c.Breadcrumbs.Enabled
	}
	return breadcrumb.Config{
		Enabled:   enabled,
		HomeTitle: c.Breadcrumbs.HomeTitle,
		MaxItems:  c.Breadcrumbs.MaxItems,
	}
}

// WatchEnabled reports whether the dev server should watch for changes.
// Absent means on.
func (c *Config) WatchEnabled() bool {
	return c.Serve.Watch == nil || *c.Serve.Watch
}

// RebuildInterval returns the parsed periodic rebuild interval, zero when
// none is configured. Load has already validated the syntax.
func (c *Config) RebuildInterval() time.Duration {
	if c.Serve.RebuildEvery == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Serve.RebuildEvery)
	return d
}

// Init writes an example configuration to path. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	example := Config{
		Site: Site{
			Title:       "My Site",
			Description: "A site generated by pagemill",
			BaseURL:     "https://example.com",
		},
		Content: Content{
			InputDir:  "content",
			OutputDir: "public",
			Clean:     true,
		},
		Breadcrumbs: Breadcrumbs{
			HomeTitle: "Home",
			MaxItems:  5,
		},
		Serve: Serve{
			Addr: ":8080",
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
