package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".pipewright.yml"

// Config is the top-level Pipewright configuration.
type Config struct {
	Trigger TriggerConfig `yaml:"trigger"`
	Jobs    []JobSpec     `yaml:"jobs"`
	Tools   ToolsConfig   `yaml:"tools"`
	Workers int           `yaml:"workers"`
	Output  OutputConfig  `yaml:"output"`

	// FromFile records whether a manifest file was actually read.
	// Defaults-only configs may be refined by project probing.
	FromFile bool `yaml:"-"`
}

// OutputConfig controls report artifacts.
type OutputConfig struct {
	JUnit string `yaml:"junit,omitempty"` // path for JUnit XML export
	Badge string `yaml:"badge,omitempty"` // path for status badge SVG
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.FromFile = true
	cfg.applyDefaults()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Trigger: DefaultTriggerConfig(),
		Jobs:    DefaultJobs(),
		Tools:   DefaultToolsConfig(),
	}
}

// applyDefaults fills per-job gaps after unmarshalling. A manifest that
// declares its own jobs list replaces the defaults wholesale, so each
// entry still needs its kind-level defaults resolved later during planning.
func (c *Config) applyDefaults() {
	if len(c.Jobs) == 0 {
		c.Jobs = DefaultJobs()
	}
	c.Tools.applyDefaults()
	if c.Trigger.Manual == nil {
		t := true
		c.Trigger.Manual = &t
	}
}
