// Package config provides configuration loading and management for hydradoc.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete hydradoc configuration
type Config struct {
	Doc    DocConfig    `yaml:"doc"`
	Schema SchemaConfig `yaml:"schema"`
	Output OutputConfig `yaml:"output"`
	NATS   NATSConfig   `yaml:"nats"`
	Watch  WatchConfig  `yaml:"watch"`
}

// DocConfig overrides the document header of the loaded schema. Empty
// fields keep the schema's values.
type DocConfig struct {
	// API is the API identifier (e.g., "serverapi")
	API string `yaml:"api"`
	// BaseURL is the server root every IRI is built from
	BaseURL string `yaml:"base_url"`
	// Title is the documentation title
	Title string `yaml:"title"`
	// Description is the documentation description
	Description string `yaml:"description"`
}

// SchemaConfig selects the API schema to document
type SchemaConfig struct {
	// Paths are doublestar glob patterns of schema files
	Paths []string `yaml:"paths"`
	// Builtin names a built-in schema ("drone") used when Paths is empty
	Builtin string `yaml:"builtin"`
}

// OutputConfig configures the rendered documentation
type OutputConfig struct {
	// Path is the output file (empty or "-" = stdout)
	Path string `yaml:"path"`
	// Format is the export format (jsonld, turtle, ntriples, python, go)
	Format string `yaml:"format"`
	// PythonVariable names the variable of the python format
	PythonVariable string `yaml:"python_variable"`
	// GoPackage is the package clause of the go format
	GoPackage string `yaml:"go_package"`
	// GoConstant names the constant of the go format
	GoConstant string `yaml:"go_constant"`
}

// NATSConfig configures publishing to NATS KV
type NATSConfig struct {
	// URL is the NATS server URL (empty = don't publish)
	URL string `yaml:"url"`
	// Bucket is the KV bucket documents are published to
	Bucket string `yaml:"bucket"`
	// Timeout bounds connecting and publishing
	Timeout time.Duration `yaml:"timeout"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is the quiet period before regenerating after a change
	Debounce time.Duration `yaml:"debounce"`
}

// BuiltinDrone is the name of the built-in drone server schema.
const BuiltinDrone = "drone"

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Doc: DocConfig{
			API:     "", // Taken from the schema
			BaseURL: "",
		},
		Schema: SchemaConfig{
			Builtin: BuiltinDrone,
		},
		Output: OutputConfig{
			Path:   "",
			Format: "jsonld",
		},
		NATS: NATSConfig{
			URL:     "", // Publishing disabled
			Bucket:  "HYDRADOC_DOCS",
			Timeout: 10 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// PublishEnabled reports whether generated documents go to NATS KV.
func (c *Config) PublishEnabled() bool {
	return c.NATS.URL != ""
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Doc.BaseURL != "" {
		u, err := url.Parse(c.Doc.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("doc.base_url must be an absolute URL")
		}
	}
	if len(c.Schema.Paths) == 0 && c.Schema.Builtin == "" {
		return fmt.Errorf("schema.paths or schema.builtin is required")
	}
	if c.Schema.Builtin != "" && c.Schema.Builtin != BuiltinDrone {
		return fmt.Errorf("unknown schema.builtin %q", c.Schema.Builtin)
	}
	if c.Output.Format == "" {
		return fmt.Errorf("output.format is required")
	}
	if c.PublishEnabled() && c.NATS.Bucket == "" {
		return fmt.Errorf("nats.bucket is required when nats.url is set")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Doc
	if other.Doc.API != "" {
		c.Doc.API = other.Doc.API
	}
	if other.Doc.BaseURL != "" {
		c.Doc.BaseURL = other.Doc.BaseURL
	}
	if other.Doc.Title != "" {
		c.Doc.Title = other.Doc.Title
	}
	if other.Doc.Description != "" {
		c.Doc.Description = other.Doc.Description
	}

	// Schema files replace the built-in schema
	if len(other.Schema.Paths) > 0 {
		c.Schema.Paths = other.Schema.Paths
		c.Schema.Builtin = ""
	}
	if other.Schema.Builtin != "" {
		c.Schema.Builtin = other.Schema.Builtin
	}

	// Output
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.PythonVariable != "" {
		c.Output.PythonVariable = other.Output.PythonVariable
	}
	if other.Output.GoPackage != "" {
		c.Output.GoPackage = other.Output.GoPackage
	}
	if other.Output.GoConstant != "" {
		c.Output.GoConstant = other.Output.GoConstant
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}
	if other.NATS.Timeout != 0 {
		c.NATS.Timeout = other.NATS.Timeout
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
