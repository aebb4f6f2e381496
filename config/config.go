package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds playback preferences. Keys missing from a file keep their
// defaults; a warmup of 0 is allowed and starts on the first beat.
type Config struct {
	Tempo        float64 `json:"tempo,omitempty" yaml:"tempo,omitempty"`               // beats per minute
	TicksPerBeat uint16  `json:"ticksPerBeat,omitempty" yaml:"ticksPerBeat,omitempty"` // resolution of exported files
	Warmup       float64 `json:"warmup" yaml:"warmup"`                                 // beats of silence before the first note
	Port         string  `json:"port,omitempty" yaml:"port,omitempty"`                 // MIDI output port, empty for the first one
	Instrument   string  `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Palette      string  `json:"palette,omitempty" yaml:"palette,omitempty"` // GPL palette file for the TUI
	Debug        bool    `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo:        120,
		TicksPerBeat: 64,
		Warmup:       0.125,
		Instrument:   "piano",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-music"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Files ending in .yml or .yaml are YAML,
// anything else JSON. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults replaces values that cannot be played with.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Tempo <= 0 {
		c.Tempo = def.Tempo
	}
	if c.TicksPerBeat == 0 {
		c.TicksPerBeat = def.TicksPerBeat
	}
	if c.Warmup < 0 || math.IsNaN(c.Warmup) {
		c.Warmup = def.Warmup
	}
	if c.Instrument == "" {
		c.Instrument = def.Instrument
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, as YAML or JSON by extension.
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
