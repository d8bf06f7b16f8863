// Package config loads and validates the three configuration documents the
// pipeline depends on: the location mapping, the variation patterns, and
// the curated product groups. Documents are parsed with goccy/go-yaml,
// which accepts both YAML and JSON input. Any violation is fatal to the
// batch and reported with the failing field path, since matching
// correctness depends on these configs.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
)

// LocationEntry maps one physical restaurant to its per-vendor IDs.
type LocationEntry struct {
	Name       string `yaml:"name" json:"name"`
	ToastID    string `yaml:"toast_id" json:"toast_id"`
	DoorDashID string `yaml:"doordash_id" json:"doordash_id"`
	SquareID   string `yaml:"square_id" json:"square_id"`
}

// LocationsConfig is the location mapping document.
type LocationsConfig struct {
	Locations []LocationEntry `yaml:"locations" json:"locations"`
}

// PatternEntry is one named variation-extraction pattern.
type PatternEntry struct {
	Name   string `yaml:"name" json:"name"`
	Regex  string `yaml:"regex" json:"regex"`
	Flags  string `yaml:"flags,omitempty" json:"flags,omitempty"`
	Type   string `yaml:"type" json:"type"`
	Format string `yaml:"format" json:"format"`
}

// PatternConfig is the variation-pattern document: an ordered pattern list
// plus the abbreviation expansion map used when normalizing variation text.
type PatternConfig struct {
	Patterns      []PatternEntry    `yaml:"patterns" json:"patterns"`
	Abbreviations map[string]string `yaml:"abbreviations,omitempty" json:"abbreviations,omitempty"`
}

// GroupEntry is one curated product group. BaseName is required plus at
// least one of Suffix or Keywords.
type GroupEntry struct {
	BaseName string   `yaml:"base_name" json:"base_name"`
	Suffix   string   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// GroupConfig is the product-group document.
type GroupConfig struct {
	Groups []GroupEntry `yaml:"groups" json:"groups"`
}

// validTypes are the variation category tags a pattern may declare.
var validTypes = map[string]bool{
	"quantity": true,
	"size":     true,
	"serving":  true,
	"strength": true,
}

// ParseLocations parses and validates a location mapping document.
func ParseLocations(data []byte) (*LocationsConfig, error) {
	var cfg LocationsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the location mapping invariants.
func (c *LocationsConfig) Validate() error {
	if len(c.Locations) == 0 {
		return errors.NewValidationError("locations", len(c.Locations), "at least one location entry is required")
	}
	for i, loc := range c.Locations {
		if loc.Name == "" {
			return errors.NewValidationError(fmt.Sprintf("locations[%d].name", i), loc.Name, "cannot be empty")
		}
	}
	return nil
}

// ParsePatterns parses and validates a variation-pattern document.
func ParsePatterns(data []byte) (*PatternConfig, error) {
	var cfg PatternConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the pattern document invariants. Regex compilation is
// deferred to match.CompilePatterns, which reports the failing pattern by
// name.
func (c *PatternConfig) Validate() error {
	for i, p := range c.Patterns {
		path := fmt.Sprintf("patterns[%d]", i)
		if p.Name == "" {
			return errors.NewValidationError(path+".name", p.Name, "cannot be empty")
		}
		if p.Regex == "" {
			return errors.NewValidationError(path+".regex", p.Regex, "cannot be empty")
		}
		if !validTypes[p.Type] {
			return errors.NewValidationError(path+".type", p.Type, "must be one of quantity, size, serving, strength")
		}
		if p.Format == "" {
			return errors.NewValidationError(path+".format", p.Format, "cannot be empty")
		}
	}
	return nil
}

// ParseGroups parses and validates a product-group document.
func ParseGroups(data []byte) (*GroupConfig, error) {
	var cfg GroupConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the group document invariants.
func (c *GroupConfig) Validate() error {
	for i, g := range c.Groups {
		path := fmt.Sprintf("groups[%d]", i)
		if g.BaseName == "" {
			return errors.NewValidationError(path+".base_name", g.BaseName, "cannot be empty")
		}
		if g.Suffix == "" && len(g.Keywords) == 0 {
			return errors.NewValidationError(path, g.BaseName, "requires at least one of suffix or keywords")
		}
	}
	return nil
}

// LoadLocations reads and parses a location mapping file.
func LoadLocations(path string) (*LocationsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := ParseLocations(data)
	if err != nil {
		return nil, errors.NewConfigError("locations", err.Error(), err)
	}
	return cfg, nil
}

// LoadPatterns reads and parses a variation-pattern file.
func LoadPatterns(path string) (*PatternConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := ParsePatterns(data)
	if err != nil {
		return nil, errors.NewConfigError("variation-patterns", err.Error(), err)
	}
	return cfg, nil
}

// LoadGroups reads and parses a product-group file.
func LoadGroups(path string) (*GroupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := ParseGroups(data)
	if err != nil {
		return nil, errors.NewConfigError("product-groups", err.Error(), err)
	}
	return cfg, nil
}
