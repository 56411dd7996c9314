package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed taxdata/tax_tables_2025.yaml
var defaultTaxTablesYAML []byte

// DefaultRegulatoryConfig returns the built-in 2025 tables and product
// presets. Each call returns an independent copy.
func DefaultRegulatoryConfig() (*domain.RegulatoryConfig, error) {
	cfg, err := ParseRegulatoryConfig(defaultTaxTablesYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in tax tables: %w", err)
	}
	return cfg, nil
}

// MustDefaultRegulatoryConfig is DefaultRegulatoryConfig for package init and tests
func MustDefaultRegulatoryConfig() *domain.RegulatoryConfig {
	cfg, err := DefaultRegulatoryConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadRegulatoryConfig reads a tax table file from disk
func LoadRegulatoryConfig(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory config %s: %w", filename, err)
	}
	cfg, err := ParseRegulatoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("regulatory config %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadRegulatoryConfigOrDefault loads filename when set, otherwise the built-in tables
func LoadRegulatoryConfigOrDefault(filename string) (*domain.RegulatoryConfig, error) {
	if filename == "" {
		return DefaultRegulatoryConfig()
	}
	return LoadRegulatoryConfig(filename)
}

// ParseRegulatoryConfig decodes and validates a tax table document. Missing
// product presets fall back to the Powerball defaults.
func ParseRegulatoryConfig(data []byte) (*domain.RegulatoryConfig, error) {
	var cfg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.TaxTables.Validate(); err != nil {
		return nil, fmt.Errorf("tax table validation failed: %w", err)
	}

	products := make(map[string]domain.Assumptions, len(cfg.Products)+1)
	for name, a := range cfg.Products {
		key := domain.NormalizeProductName(name)
		if key == "" {
			return nil, fmt.Errorf("product with empty name")
		}
		if _, dup := products[key]; dup {
			return nil, fmt.Errorf("product %s: declared more than once", key)
		}
		products[key] = a
	}
	cfg.Products = products
	if _, ok := cfg.Products[domain.ProductPowerball]; !ok {
		cfg.Products[domain.ProductPowerball] = domain.DefaultAssumptions()
	}
	for name, a := range cfg.Products {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("product %s: %w", name, err)
		}
	}

	return &cfg, nil
}
