// Package config holds the engine configuration, loaded from a YAML file
// and overridable per-field by command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the host configuration.
type Config struct {
	DataDir    string `yaml:"data_dir"`
	WorldName  string `yaml:"world_name"`
	Seed       uint64 `yaml:"seed"`        // 0 = generate a random seed
	ViewRadius int    `yaml:"view_radius"` // visibility radius in chunk shells
	TickRate   int    `yaml:"tick_rate"`   // host loop ticks per second
	SaveEvery  int    `yaml:"save_every"`  // autosave interval in ticks (0 = off)

	// ObserverAddr enables the websocket status endpoint when non-empty,
	// e.g. "127.0.0.1:8337". The world layer itself stays network-free.
	ObserverAddr string `yaml:"observer_addr"`

	// ArchiveOnSave writes a compressed archive next to every save.
	ArchiveOnSave bool `yaml:"archive_on_save"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir:    "data",
		WorldName:  "world",
		ViewRadius: 3,
		TickRate:   20,
		SaveEvery:  20 * 60,
	}
}

// Load reads a YAML config file into cfg. A missing file leaves cfg
// unchanged.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set via CLI flags. explicitFlags contains the flag names
// provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["data-dir"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["world"] {
		cfg.WorldName = fromFile.WorldName
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["view-radius"] {
		cfg.ViewRadius = fromFile.ViewRadius
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["save-every"] {
		cfg.SaveEvery = fromFile.SaveEvery
	}
	if !explicitFlags["observer-addr"] {
		cfg.ObserverAddr = fromFile.ObserverAddr
	}
	if !explicitFlags["archive-on-save"] {
		cfg.ArchiveOnSave = fromFile.ArchiveOnSave
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.WorldName == "" {
		return fmt.Errorf("world_name must not be empty")
	}
	if c.ViewRadius < 1 {
		return fmt.Errorf("view_radius must be at least 1, got %d", c.ViewRadius)
	}
	if c.TickRate < 1 {
		return fmt.Errorf("tick_rate must be at least 1, got %d", c.TickRate)
	}
	if c.SaveEvery < 0 {
		return fmt.Errorf("save_every must not be negative, got %d", c.SaveEvery)
	}
	return nil
}
