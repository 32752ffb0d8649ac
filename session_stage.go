// session_stage.go - Stage and session definitions for staged tone playback

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"
)

// Stage describes one timed segment of a session. The left ear plays the
// carrier; the right ear plays carrier + beat. Frequencies move linearly
// from the start values towards the end values inside the stage's
// transition window and then hold (see tone_schedule.go).
type Stage struct {
	StartCarrierHz float64 // Left-ear tone at stage start
	EndCarrierHz   float64 // Left-ear tone at stage end
	StartBeatHz    float64 // Left/right offset at stage start
	EndBeatHz      float64 // Left/right offset at stage end
	Duration       float64 // Stage length in seconds, > 0
}

// Validate rejects stages the compiler cannot schedule.
func (s Stage) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"start carrier", s.StartCarrierHz},
		{"end carrier", s.EndCarrierHz},
		{"start beat", s.StartBeatHz},
		{"end beat", s.EndBeatHz},
		{"duration", s.Duration},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("stage %s is not finite", v.name)
		}
	}
	if s.Duration <= 0 {
		return fmt.Errorf("stage duration must be positive, got %g", s.Duration)
	}
	if s.StartCarrierHz <= 0 || s.EndCarrierHz <= 0 {
		return fmt.Errorf("stage carrier must be positive")
	}
	if s.StartBeatHz < 0 || s.EndBeatHz < 0 {
		return fmt.Errorf("stage beat must not be negative")
	}
	return nil
}

// SessionDefinition is an ordered stage list supplied by a session source.
// The player copies the stage slice on construction; definitions are never
// mutated during playback.
type SessionDefinition struct {
	Name        string
	Description string
	Stages      []Stage
}

// TotalDuration returns the sum of all stage durations in seconds.
func (d SessionDefinition) TotalDuration() float64 {
	var total float64
	for _, s := range d.Stages {
		total += s.Duration
	}
	return total
}

// Validate checks every stage. An empty stage list is legal and plays as an
// immediately-complete session.
func (d SessionDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("session has no name")
	}
	for i, s := range d.Stages {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("session %q stage %d: %w", d.Name, i, err)
		}
	}
	return nil
}
