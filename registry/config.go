package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CollectionConfig carries the construction-time collection parameters.
// Name, symbol, base URI, and max supply are immutable once the registry
// exists; the admin identity is supplied separately by the creator and is
// never part of the config file.
type CollectionConfig struct {
	Name      string `yaml:"name" json:"name"`
	Symbol    string `yaml:"symbol" json:"symbol"`
	MaxSupply uint64 `yaml:"maxSupply" json:"maxSupply"`
	BaseURI   string `yaml:"baseURI,omitempty" json:"baseURI,omitempty"`
}

// Validate surfaces configuration errors before any registry exists.
// Max supply must be positive; a collection that can never hold a token
// is a configuration mistake, not a runtime state.
func (c CollectionConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidConfig)
	}
	if c.Symbol == "" {
		return fmt.Errorf("%w: symbol required", ErrInvalidConfig)
	}
	if c.MaxSupply == 0 {
		return fmt.Errorf("%w: max supply must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadCollectionConfig reads and validates a YAML collection config.
func LoadCollectionConfig(path string) (CollectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CollectionConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg CollectionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CollectionConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return CollectionConfig{}, err
	}
	return cfg, nil
}
