package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads an evolution configuration from a YAML file, layered on top of
// the defaults: fields absent from the file keep their default values.
func Load(path string) (EvolutionConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOverrides reads a partial configuration from a YAML document. Only the
// fields present in the document are set.
func LoadOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse config overrides: %w", err)
	}
	return &o, nil
}
