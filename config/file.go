package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads a YAML file over the built-in defaults. Keys absent from the
// file keep their default value; unrecognized keys are ignored by the
// decoder. Values are not validated here, Sanitized handles that.
func Load(path string) (Config, error) {
	cfg := Default()
	source, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(source, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
