// Package config loads stems.yaml, the per-track defaults and
// pre-loaded playback file list handed to engine assembly (C10)
// before streams start.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrackDefault is the per-track configuration block under
// tracks.<n>. Unlisted tracks get DefaultTrack().
type TrackDefault struct {
	Arm     bool    `yaml:"arm"`
	Monitor bool    `yaml:"monitor"`
	Solo    bool    `yaml:"solo"`
	Level   float32 `yaml:"level"`
	Pan     float32 `yaml:"pan"`
}

// DefaultTrack returns the spec's default track configuration:
// {arm:false, monitor:false, solo:false, level:1.0, pan:0.0}.
func DefaultTrack() TrackDefault {
	return TrackDefault{Level: 1.0}
}

// PlaybackEntry is one entry in the audio[] list: a pre-loaded file
// mixed in alongside live input.
type PlaybackEntry struct {
	File    string  `yaml:"file"`
	Monitor bool    `yaml:"monitor"`
	Solo    bool    `yaml:"solo"`
	Level   float32 `yaml:"level"`
	Pan     float32 `yaml:"pan"`
}

// Devices holds the device-selection keys shared with the CLI flags of
// the same name; a CLI flag overrides its config counterpart.
type Devices struct {
	Audio     string `yaml:"audio"`
	MonitorCh string `yaml:"monitorch"`
	MIDIIn    string `yaml:"midiin"`
}

// Config is the fully parsed stems.yaml.
type Config struct {
	Devices Devices              `yaml:"devices"`
	Tracks  map[int]TrackDefault `yaml:"tracks"`
	Audio   []PlaybackEntry      `yaml:"audio"`
}

// Load reads and parses the YAML file at path. A missing file is not
// an error - callers get a zero-value Config, since every field has a
// well-defined default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Tracks: map[int]TrackDefault{}}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Tracks == nil {
		cfg.Tracks = map[int]TrackDefault{}
	}
	for _, entry := range cfg.Audio {
		if entry.File == "" {
			return nil, fmt.Errorf("config: %s: audio[] entry missing file", path)
		}
	}
	return &cfg, nil
}

// TrackFor returns the configured defaults for track n (1-based),
// falling back to DefaultTrack when n is unlisted.
func (c *Config) TrackFor(n int) TrackDefault {
	if t, ok := c.Tracks[n]; ok {
		return t
	}
	return DefaultTrack()
}
