// session_catalog.go - YAML session catalog loading

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is an ordered, read-only collection of session definitions.
type Catalog struct {
	sessions []SessionDefinition
}

func NewCatalog(sessions []SessionDefinition) *Catalog {
	return &Catalog{sessions: sessions}
}

func (c *Catalog) Sessions() []SessionDefinition {
	return c.sessions
}

func (c *Catalog) Find(name string) (SessionDefinition, bool) {
	for _, s := range c.sessions {
		if s.Name == name {
			return s, true
		}
	}
	return SessionDefinition{}, false
}

// Catalog file layout:
//
//	sessions:
//	  - name: deep-sleep
//	    description: optional text
//	    stages:
//	      - carrier: [200, 196]   # single value means constant
//	        beat: [10, 6]
//	        duration: 300
type catalogFile struct {
	Sessions []catalogSession `yaml:"sessions"`
}

type catalogSession struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Stages      []catalogStage `yaml:"stages"`
}

type catalogStage struct {
	Carrier  []float64 `yaml:"carrier"`
	Beat     []float64 `yaml:"beat"`
	Duration float64   `yaml:"duration"`
}

// LoadCatalog parses and validates a YAML session catalog. Stage order in
// the file is meaningful and preserved.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(file.Sessions) == 0 {
		return nil, fmt.Errorf("catalog %s defines no sessions", path)
	}

	sessions := make([]SessionDefinition, 0, len(file.Sessions))
	for _, cs := range file.Sessions {
		def := SessionDefinition{Name: cs.Name, Description: cs.Description}
		for i, st := range cs.Stages {
			startCarrier, endCarrier, err := endpointPair(st.Carrier)
			if err != nil {
				return nil, fmt.Errorf("session %q stage %d carrier: %w", cs.Name, i, err)
			}
			startBeat, endBeat, err := endpointPair(st.Beat)
			if err != nil {
				return nil, fmt.Errorf("session %q stage %d beat: %w", cs.Name, i, err)
			}
			def.Stages = append(def.Stages, Stage{
				StartCarrierHz: startCarrier,
				EndCarrierHz:   endCarrier,
				StartBeatHz:    startBeat,
				EndBeatHz:      endBeat,
				Duration:       st.Duration,
			})
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		sessions = append(sessions, def)
	}

	return NewCatalog(sessions), nil
}

// endpointPair accepts [value] for a constant or [start, end] for a ramp.
func endpointPair(values []float64) (start, end float64, err error) {
	switch len(values) {
	case 1:
		return values[0], values[0], nil
	case 2:
		return values[0], values[1], nil
	default:
		return 0, 0, fmt.Errorf("want 1 or 2 values, got %d", len(values))
	}
}
