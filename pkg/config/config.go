// Package config loads the runtime defaults spec.md §3's SearchParams and
// driver rely on (worker count, minimum chunk size, default max-match
// count, case-sensitivity, whole-word, position tracking) from a YAML file. titus carries gopkg.in/yaml.v3 for
// its rule-loading path but never uses it for runtime defaults; here it
// gets an actual, exercised home.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirrors the tunables spec.md's driver (C8) and thread pool
// (C9) read at startup.
type Defaults struct {
	Workers         int    `yaml:"workers"`           // 0 = auto from cores
	MinChunkBytes   int64  `yaml:"min_chunk_bytes"`   // spec.md §4.8 step 2's 4 MiB floor
	DefaultMaxCount uint64 `yaml:"default_max_count"` // 0 = unlimited
	CaseSensitive   bool   `yaml:"case_sensitive"`
	WholeWord       bool   `yaml:"whole_word"`
	TrackPositions  bool   `yaml:"track_positions"`
}

// DefaultDefaults returns the values the core uses when no config file is
// present, matching spec.md's stated defaults (§4.8's 4 MiB floor;
// max_count = ∞; case-sensitive on).
func DefaultDefaults() Defaults {
	return Defaults{
		Workers:         0,
		MinChunkBytes:   4 * 1024 * 1024,
		DefaultMaxCount: 0,
		CaseSensitive:   true,
		WholeWord:       false,
		TrackPositions:  true,
	}
}

// Load reads and parses a YAML defaults file, starting from
// DefaultDefaults so a partial file only overrides the fields it sets.
func Load(path string) (Defaults, error) {
	d := DefaultDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return d, nil
}
