package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	guarderrors "git.home.luguber.info/inful/ensure-pkg/internal/errors"
	"git.home.luguber.info/inful/ensure-pkg/internal/toolchain"
)

// Fixed artifact location. Not configurable, so every run checks the same path.
const (
	ArtifactDir  = "pkg"
	ArtifactName = "bahlilui_docs"
	BuildTarget  = "web"
)

// FileName is the optional configuration file looked up in the docs root.
const FileName = "ensure-pkg.yaml"

// Environment variables recognised by Load and ResolveRoot.
const (
	EnvRoot            = "ENSURE_PKG_ROOT"
	EnvToolchain       = "ENSURE_PKG_TOOLCHAIN"
	EnvMetricsTextfile = "ENSURE_PKG_METRICS_TEXTFILE"
)

// Config represents the guard configuration
type Config struct {
	// Root is the docs directory; the artifact and build dir hang off it.
	Root      string          `yaml:"-"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ToolchainConfig selects the toolchain executable and build profile
type ToolchainConfig struct {
	Binary  string `yaml:"binary,omitempty"`
	Release bool   `yaml:"release,omitempty"`
}

// MetricsConfig controls the optional Prometheus textfile output
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the built-in configuration for root.
func Default(root string) *Config {
	return &Config{
		Root:      root,
		Toolchain: ToolchainConfig{Binary: toolchain.DefaultBinary},
	}
}

// ArtifactPath is the absolute path of the generated bundle entry point.
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.Root, ArtifactDir, ArtifactName+".js")
}

// BuildSpec returns the toolchain build selectors.
func (c *Config) BuildSpec() toolchain.BuildSpec {
	return toolchain.BuildSpec{
		Target:  BuildTarget,
		OutDir:  ArtifactDir,
		OutName: ArtifactName,
		Release: c.Toolchain.Release,
	}
}

// MetricsTextfilePath resolves the textfile path against Root; empty when disabled.
func (c *Config) MetricsTextfilePath() string {
	p := c.Metrics.Textfile
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Load builds the configuration for root: .env, then the optional config
// file, then environment overrides.
func Load(root string) (*Config, error) {
	if err := loadEnvFile(root); err != nil {
		return nil, err
	}

	cfg := Default(root)

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		dec := yaml.NewDecoder(strings.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, guarderrors.ConfigInvalid(path, fmt.Errorf("failed to unmarshal config: %w", err))
		}
	case os.IsNotExist(err):
		// optional
	default:
		return nil, guarderrors.ConfigInvalid(path, fmt.Errorf("failed to read config file: %w", err))
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvToolchain); v != "" {
		cfg.Toolchain.Binary = v
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		cfg.Metrics.Textfile = v
	}
	if cfg.Toolchain.Binary == "" {
		cfg.Toolchain.Binary = toolchain.DefaultBinary
	}
}

// Validate checks the configuration for values the guard cannot run with.
func (c *Config) Validate() error {
	if c.Root == "" {
		return guarderrors.ValidationFailed("root", "must not be empty")
	}
	if strings.TrimSpace(c.Toolchain.Binary) != c.Toolchain.Binary {
		return guarderrors.ValidationFailed("toolchain.binary", "must not have surrounding whitespace")
	}
	if c.Metrics.Textfile != "" && filepath.Ext(c.Metrics.Textfile) != ".prom" {
		return guarderrors.ValidationFailed("metrics.textfile", "must end in .prom")
	}
	return nil
}
