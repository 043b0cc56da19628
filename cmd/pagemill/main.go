package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"pagemill.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Input   string `short:"i" help:"Content directory (overrides config)"`
		Output  string `short:"o" help:"Output directory (overrides config)"`
		FromGit string `help:"Fetch content from a Git repository URL instead of the input directory"`
		Branch  string `help:"Branch to fetch with --from-git" default:""`
	} `cmd:"" help:"Generate the site from the content tree"`

	Serve struct {
		Addr    string `short:"a" help:"Listen address (overrides config)"`
		NoWatch bool   `help:"Disable rebuilding on content changes"`
	} `cmd:"" help:"Build the site and serve it, rebuilding on content changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg := loadConfig()
		applyBuildOverrides(cfg)
		if err := runBuild(cfg); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		cfg := loadConfig()
		applyServeOverrides(cfg)
		if err := runServe(cfg); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)
	case "version":
		fmt.Printf("pagemill %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
}

// loadConfig loads the configured file, falling back to defaults when the
// default file name simply does not exist. An explicitly given path must
// exist.
func loadConfig() *config.Config {
	if CLI.Config == "pagemill.yaml" {
		if _, err := os.Stat(CLI.Config); os.IsNotExist(err) {
			return config.Default()
		}
	}
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func applyBuildOverrides(cfg *config.Config) {
	if CLI.Build.Input != "" {
		cfg.Content.InputDir = CLI.Build.Input
	}
	if CLI.Build.Output != "" {
		cfg.Content.OutputDir = CLI.Build.Output
	}
	if CLI.Build.FromGit != "" {
		cfg.Source.GitURL = CLI.Build.FromGit
		if CLI.Build.Branch != "" {
			cfg.Source.Branch = CLI.Build.Branch
		}
		if cfg.Source.Branch == "" {
			cfg.Source.Branch = "main"
		}
	}
}

func applyServeOverrides(cfg *config.Config) {
	if CLI.Serve.Addr != "" {
		cfg.Serve.Addr = CLI.Serve.Addr
	}
	if CLI.Serve.NoWatch {
		off := false
		cfg.Serve.Watch = &off
	}
}
