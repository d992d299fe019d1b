package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfigYAML decodes a distribution config from its YAML export format
// and validates it.
func ParseConfigYAML(data []byte) (DistributionConfig, error) {
	var cfg DistributionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DistributionConfig{}, fmt.Errorf("parse distribution config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DistributionConfig{}, err
	}
	return cfg, nil
}

// EncodeConfigYAML renders a config in the YAML export format, suitable for
// sharing between environments.
func EncodeConfigYAML(cfg DistributionConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode distribution config: %w", err)
	}
	return data, nil
}
