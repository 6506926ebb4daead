package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pawswipe/internal/swipe"
)

// Profile is a named swipe tuning.
//
// Example:
//
//	name: snappy
//	description: shorter throw for small screens
//	swipe:
//	  commitThreshold: 120
//	  springConfig: {stiffness: 420, damping: 32, mass: 1}
type Profile struct {
	// Name identifies the profile in logs and output.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Swipe holds the fields that differ from swipe.DefaultConfig.
	Swipe swipe.Overrides `yaml:"swipe"`
}

// Config returns the profile merged onto the default configuration.
func (p *Profile) Config() swipe.Config {
	if p == nil {
		return swipe.DefaultConfig()
	}
	return swipe.NewConfig(p.Swipe)
}

// LoadProfile reads and parses a profile YAML file.
// Unknown fields are rejected so typos do not silently fall back to defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseProfile decodes profile YAML. An empty document is the default profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if p.Name == "" {
		p.Name = "default"
	}
	return &p, nil
}
