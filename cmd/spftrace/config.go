package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds tool settings read from a YAML file. Command line flags
// take precedence over values loaded here.
type Config struct {
	Nameservers    []string `yaml:"nameservers"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Domains        []string `yaml:"domains"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
