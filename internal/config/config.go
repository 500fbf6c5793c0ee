package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries one run's settings. It is built from defaults, optionally a
// YAML file, then flag overrides, and passed explicitly into the driver.
// Nothing here is process-wide state.
type Config struct {
	// Robots lists the fleet's API endpoints as host:port, one per robot.
	Robots []string `yaml:"robots"`

	// EdgePC identifies the centralized host that receives map directories.
	EdgePC EdgePC `yaml:"edge_pc"`

	// OutputDir is where per-robot Kachaka_<serial> directories are created.
	OutputDir string `yaml:"output_dir"`

	// LogDir holds the timestamped run logs.
	LogDir string `yaml:"log_dir"`

	// Concurrency bounds how many robots are exported in parallel.
	// Zero means one unit per robot with no limit.
	Concurrency int `yaml:"concurrency"`
}

// EdgePC describes the SSH endpoint and map root on the edge host.
type EdgePC struct {
	Host   string `yaml:"host"`
	User   string `yaml:"user"`
	MapDir string `yaml:"map_dir"`
}

// Default returns the reference deployment settings. Robot targets are never
// defaulted; they are operator-curated.
func Default() *Config {
	return &Config{
		EdgePC: EdgePC{
			Host:   "192.168.2.183",
			User:   "qtmember",
			MapDir: "/usr/local/share/hats_sdk/map/",
		},
		OutputDir: ".",
		LogDir:    "logs",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
