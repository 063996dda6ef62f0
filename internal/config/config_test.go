package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML("skyclaim"))
	if err != nil {
		t.Fatalf("Parse embedded: %v", err)
	}
	if want := DefaultSkyclaimConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded YAML drifted from DefaultSkyclaimConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if GetDefaultYAML("asteroids") != nil {
		t.Error("unknown game returned YAML")
	}
}

func TestLoadSkyclaimCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("round:\n  time: 0\nstorms:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyclaim(path)
	if err != nil {
		t.Fatalf("LoadSkyclaim: %v", err)
	}
	if cfg.Round.Time != 0 || cfg.Storms.Enabled {
		t.Errorf("overrides not applied: round=%v storms=%v", cfg.Round.Time, cfg.Storms.Enabled)
	}
	if cfg.Grid.MaxLength != 15 || len(cfg.Collectables.Kinds) != 10 {
		t.Error("untouched keys lost their defaults")
	}
}

func TestLoadSkyclaimErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSkyclaim(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyclaim(broken); err == nil {
		t.Error("malformed YAML accepted")
	}

	even := filepath.Join(dir, "even.yaml")
	if err := os.WriteFile(even, []byte("grid:\n  max_length: 14\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyclaim(even); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("even grid error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkyclaimConfig)
	}{
		{"even initial length", func(c *SkyclaimConfig) { c.Grid.InitialLength = 4 }},
		{"initial above max", func(c *SkyclaimConfig) { c.Grid.InitialLength = 17 }},
		{"zero tile cell", func(c *SkyclaimConfig) { c.Grid.TileCell = 0 }},
		{"no variants", func(c *SkyclaimConfig) { c.Grid.Variants = nil }},
		{"toggle above alert", func(c *SkyclaimConfig) { c.Tile.ToggleThreshold = 4 }},
		{"alert above max", func(c *SkyclaimConfig) { c.Tile.AlertThreshold = 11 }},
		{"low energy at max", func(c *SkyclaimConfig) { c.Ship.LowEnergyThreshold = 10 }},
		{"inverted storm strength", func(c *SkyclaimConfig) { c.Storms.MinStrength = 20 }},
		{"probability above one", func(c *SkyclaimConfig) { c.Collectables.Probability = 1.5 }},
		{"unnamed kind", func(c *SkyclaimConfig) { c.Collectables.Kinds[0].Type = "" }},
		{"negative round", func(c *SkyclaimConfig) { c.Round.Time = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSkyclaimConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		level   float64
	}{
		{"easy", true, 0},
		{"normal", true, 0.3},
		{"", true, 0.3},
		{"hard", true, 0.7},
		{"fixed", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := ParsePreset(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			cfg := DefaultSkyclaimConfig()
			ApplySkyclaimPreset(&cfg, preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if tt.enabled && cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tt.level)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParsePreset(nightmare) = %v", err)
	}
}

func TestLocate(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	if src, err := Locate(""); err != nil || src != EmbeddedSource {
		t.Fatalf("Locate with no files = %q, %v; want embedded", src, err)
	}

	local := filepath.Join("configs", ConfigFile)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("round:\n  time: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if src, _ := Locate(""); src != local {
		t.Errorf("Locate = %q, want %q", src, local)
	}

	// The user directory outranks ./configs, but a broken file is skipped.
	user := filepath.Join(home, ".skyclaim", "configs", ConfigFile)
	if err := os.MkdirAll(filepath.Dir(user), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(user, []byte("round: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if src, _ := Locate(""); src != local {
		t.Errorf("broken user file: Locate = %q, want %q", src, local)
	}
	if err := os.WriteFile(user, []byte("round:\n  time: 45\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if src, _ := Locate(""); src != user {
		t.Errorf("Locate = %q, want %q", src, user)
	}

	cfg, err := LoadSkyclaim("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Round.Time != 45 {
		t.Errorf("round.time = %v, want 45 from the user file", cfg.Round.Time)
	}
}
