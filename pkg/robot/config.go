package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "armseq.json"

// DefaultSequenceDir is where sequences are stored unless configured.
const DefaultSequenceDir = "sequences"

// Config holds the tool configuration
type Config struct {
	Port        string `json:"port"`
	SequenceDir string `json:"sequence_dir,omitempty"`
}

// Dir returns the configured sequence directory, or the default.
func (c *Config) Dir() string {
	if c.SequenceDir == "" {
		return DefaultSequenceDir
	}
	return c.SequenceDir
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
