// Package config loads tocgen settings.
//
// Configuration hierarchy (later wins):
//  1. Hardcoded defaults (NewConfig)
//  2. Project config (.tocgen.yaml or .tocgen.yml in the docs directory)
//  3. Environment variables (TOCGEN_*)
//
// Command-line flags are applied on top by the cmd package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/tocgen/internal/scanner"
)

// CurrentVersion is the only supported config schema version.
const CurrentVersion = 1

// DefaultOutputName is the table of contents file written in the docs directory.
const DefaultOutputName = "table_of_contents.json"

// DefaultIndent is the number of spaces used to indent the JSON output.
const DefaultIndent = 4

// Project config file names, in lookup order.
const (
	ProjectConfigName    = ".tocgen.yaml"
	ProjectConfigAltName = ".tocgen.yml"
)

// MalformedPolicy decides what happens to a document whose title or slug
// line lacks the ": " separator.
type MalformedPolicy string

const (
	// MalformedFail aborts the whole run without writing output.
	MalformedFail MalformedPolicy = "fail"
	// MalformedSkip leaves the document out, as if it had no metadata.
	MalformedSkip MalformedPolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p MalformedPolicy) Valid() bool {
	return p == MalformedFail || p == MalformedSkip
}

// Config represents the complete tocgen configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Scan     ScanConfig     `yaml:"scan" json:"scan"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Metadata MetadataConfig `yaml:"metadata" json:"metadata"`
}

// ScanConfig configures which files are candidates.
type ScanConfig struct {
	// Extension is the required file name suffix.
	Extension string `yaml:"extension" json:"extension"`
	// Exclude lists exact file names that are never indexed.
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// OutputConfig configures the generated file.
type OutputConfig struct {
	// Path is the output file, relative to the docs directory unless absolute.
	Path string `yaml:"path" json:"path"`
	// Indent is the number of spaces per JSON nesting level.
	Indent int `yaml:"indent" json:"indent"`
	// Lock serializes concurrent runs writing the same output.
	Lock bool `yaml:"lock" json:"lock"`
}

// MetadataConfig configures header extraction.
type MetadataConfig struct {
	OnMalformed MalformedPolicy `yaml:"on_malformed" json:"on_malformed"`
}

// NewConfig creates a new Config with the defaults of the documented contract.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Scan: ScanConfig{
			Extension: scanner.DefaultExtension,
			Exclude:   []string{scanner.DefaultIndexName},
		},
		Output: OutputConfig{
			Path:   DefaultOutputName,
			Indent: DefaultIndent,
			Lock:   true,
		},
		Metadata: MetadataConfig{
			OnMalformed: MalformedFail,
		},
	}
}

// Load builds the configuration for the docs directory dir.
// A missing project config file is not an error.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	path := FindProjectConfig(dir)
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFile builds the configuration from an explicit config file.
// Unlike Load, the file must exist.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse builds the configuration from YAML data alone: defaults, then data.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FindProjectConfig returns the project config path in dir, or "" if none.
// .tocgen.yaml takes precedence over .tocgen.yml.
func FindProjectConfig(dir string) string {
	for _, name := range []string{ProjectConfigName, ProjectConfigAltName} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadYAML decodes path over the current values. Keys absent from the file
// keep their current value; unknown keys are rejected.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := c.decode(data); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// decode applies YAML data over the current values.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnvOverrides applies TOCGEN_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("TOCGEN_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("TOCGEN_EXTENSION"); v != "" {
		c.Scan.Extension = v
	}
	if v := os.Getenv("TOCGEN_ON_MALFORMED"); v != "" {
		c.Metadata.OnMalformed = MalformedPolicy(strings.ToLower(v))
	}
	if v := os.Getenv("TOCGEN_LOCK"); v != "" {
		lock, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TOCGEN_LOCK must be a boolean, got %q", v)
		}
		c.Output.Lock = lock
	}
	if v := os.Getenv("TOCGEN_INDENT"); v != "" {
		indent, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TOCGEN_INDENT must be an integer, got %q", v)
		}
		c.Output.Indent = indent
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("version must be %d, got %d", CurrentVersion, c.Version)
	}
	if c.Scan.Extension == "" {
		return fmt.Errorf("scan.extension must not be empty")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if strings.HasSuffix(c.Output.Path, "/") || strings.HasSuffix(c.Output.Path, string(filepath.Separator)) {
		return fmt.Errorf("output.path must name a file, got %s", c.Output.Path)
	}
	if strings.HasSuffix(filepath.Base(c.Output.Path), c.Scan.Extension) {
		return fmt.Errorf("output.path %s would be indexed on the next run (ends in %s)", c.Output.Path, c.Scan.Extension)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("output.indent must be between 0 and 16, got %d", c.Output.Indent)
	}
	if !c.Metadata.OnMalformed.Valid() {
		return fmt.Errorf("metadata.on_malformed must be 'fail' or 'skip', got %s", c.Metadata.OnMalformed)
	}
	return nil
}

// ScanOptions converts the scan section into scanner options.
func (c *Config) ScanOptions() scanner.Options {
	return scanner.Options{
		Extension: c.Scan.Extension,
		Exclude:   c.Scan.Exclude,
	}
}

// fileExists checks if a regular file exists.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
