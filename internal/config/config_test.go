package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileLeavesDefaults(t *testing.T) {
	cfg := Default()
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), cfg); err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if cfg.ViewRadius != Default().ViewRadius {
		t.Error("missing file changed the config")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crafti.yaml")
	data := []byte("world_name: alpine\nseed: 99\nview_radius: 5\narchive_on_save: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorldName != "alpine" || cfg.Seed != 99 || cfg.ViewRadius != 5 || !cfg.ArchiveOnSave {
		t.Errorf("loaded config = %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.TickRate != Default().TickRate {
		t.Errorf("tick_rate = %d, want default", cfg.TickRate)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crafti.yaml")
	if err := os.WriteFile(path, []byte("view_radius: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path, Default()); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7           // set via flag
	cfg.ViewRadius = 9     // set via flag
	cfg.WorldName = "flag" // not flagged as explicit below

	fromFile := Default()
	fromFile.Seed = 1000
	fromFile.ViewRadius = 2
	fromFile.WorldName = "file"

	Merge(cfg, fromFile, map[string]bool{"seed": true, "view-radius": true})

	if cfg.Seed != 7 || cfg.ViewRadius != 9 {
		t.Errorf("explicit flags overwritten: seed=%d radius=%d", cfg.Seed, cfg.ViewRadius)
	}
	if cfg.WorldName != "file" {
		t.Errorf("world name = %q, want value from file", cfg.WorldName)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty world name", func(c *Config) { c.WorldName = "" }},
		{"zero view radius", func(c *Config) { c.ViewRadius = 0 }},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }},
		{"negative save interval", func(c *Config) { c.SaveEvery = -1 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid config", tc.name)
		}
	}
}
