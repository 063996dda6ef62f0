package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in every config directory.
const ConfigFile = "skyclaim.yaml"

// EmbeddedSource names the built-in defaults in Locate results.
const EmbeddedSource = "embedded"

// searchPaths lists the optional config files in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".skyclaim", "configs", ConfigFile))
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// LoadSkyclaim loads and validates the game configuration.
//
// A non-empty customPath must exist and parse. Otherwise the first readable,
// parseable file from ~/.skyclaim/configs and ./configs wins, then the
// embedded default.
func LoadSkyclaim(customPath string) (SkyclaimConfig, error) {
	cfg, _, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Locate reports which source LoadSkyclaim would use: a file path or
// EmbeddedSource.
func Locate(customPath string) (string, error) {
	_, src, err := load(customPath)
	return src, err
}

func load(customPath string) (SkyclaimConfig, string, error) {
	if customPath != "" {
		cfg, err := parseFile(customPath)
		return cfg, customPath, err
	}

	for _, path := range searchPaths() {
		// Unreadable or broken optional files fall through to the next one.
		if cfg, err := parseFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultSkyclaimYAML)
	if err != nil {
		return DefaultSkyclaimConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

func parseFile(path string) (SkyclaimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkyclaimConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so a partial file only
// overrides the keys it names. Lists are replaced, not merged.
func Parse(data []byte) (SkyclaimConfig, error) {
	cfg := DefaultSkyclaimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplySkyclaimPreset sets the difficulty block for preset. Fixed turns
// progression off; the others set the starting level.
func ApplySkyclaimPreset(cfg *SkyclaimConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = preset != DifficultyFixed
	if cfg.Difficulty.Enabled {
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
