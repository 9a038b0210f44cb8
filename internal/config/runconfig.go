package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML run configuration. Every field can also be
// set on the command line; flags win over the file.
type RunConfig struct {
	PaidStatuses []string `yaml:"paid_statuses"`
	OpenStatuses []string `yaml:"open_statuses"`
	TopN         int      `yaml:"top_n"`
	Encoding     string   `yaml:"encoding"`
	Formats      []string `yaml:"formats"`
}

// LoadRunConfig reads and validates a YAML run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}
	if cfg.TopN < 0 {
		return nil, fmt.Errorf("run config: top_n must not be negative")
	}
	return &cfg, nil
}

// SplitList parses a comma-separated flag value into trimmed entries.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
