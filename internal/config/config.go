// Package config provides YAML-based server settings with layered
// defaults: explicit path, then ./slithermatch.yaml, then built-ins.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultPath = "slithermatch.yaml"

// Settings is the process-level configuration.
type Settings struct {
	Addr    string          `yaml:"addr"`
	Seed    int64           `yaml:"seed"`
	Logging LoggingSettings `yaml:"logging"`
	Timers  TimerSettings   `yaml:"timers"`
}

// LoggingSettings selects event sinks.
type LoggingSettings struct {
	Sinks    []string `yaml:"sinks"`
	JSONPath string   `yaml:"json_path"`
}

// TimerSettings overrides the lifecycle timers, mainly for staging
// environments. Zero keeps the built-in durations.
type TimerSettings struct {
	CountdownSeconds int `yaml:"countdown_seconds"`
	TeardownSeconds  int `yaml:"teardown_seconds"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Addr: ":8080",
		Logging: LoggingSettings{
			Sinks: []string{"console"},
		},
	}
}

// Load reads settings from the given path, falling back to
// ./slithermatch.yaml and then to defaults. A missing explicit path is
// an error; a missing fallback file is not.
func Load(path string) (Settings, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return parse(data)
	}
	if data, err := os.ReadFile(defaultPath); err == nil {
		return parse(data)
	}
	return Default(), nil
}

func parse(data []byte) (Settings, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized()
}

// normalized fills gaps left by a partial config file.
func (s Settings) normalized() (Settings, error) {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if len(s.Logging.Sinks) == 0 {
		s.Logging.Sinks = []string{"console"}
	}
	for _, sink := range s.Logging.Sinks {
		switch sink {
		case "console", "json", "memory":
		default:
			return Settings{}, fmt.Errorf("unknown logging sink %q", sink)
		}
	}
	if s.Timers.CountdownSeconds < 0 || s.Timers.TeardownSeconds < 0 {
		return Settings{}, fmt.Errorf("timer overrides must not be negative")
	}
	return s, nil
}
