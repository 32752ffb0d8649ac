// session_stage_test.go - Stage and session validation tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"testing"
)

func TestStageValidate(t *testing.T) {
	valid := Stage{
		StartCarrierHz: 200,
		EndCarrierHz:   196,
		StartBeatHz:    10,
		EndBeatHz:      4,
		Duration:       300,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid stage rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Stage)
	}{
		{"zero duration", func(s *Stage) { s.Duration = 0 }},
		{"negative duration", func(s *Stage) { s.Duration = -1 }},
		{"NaN duration", func(s *Stage) { s.Duration = math.NaN() }},
		{"infinite carrier", func(s *Stage) { s.EndCarrierHz = math.Inf(1) }},
		{"zero carrier", func(s *Stage) { s.StartCarrierHz = 0 }},
		{"negative carrier", func(s *Stage) { s.EndCarrierHz = -100 }},
		{"negative beat", func(s *Stage) { s.StartBeatHz = -1 }},
		{"NaN beat", func(s *Stage) { s.EndBeatHz = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("invalid stage accepted")
			}
		})
	}

	// A zero beat is legal: both ears play the bare carrier.
	s := valid
	s.StartBeatHz, s.EndBeatHz = 0, 0
	if err := s.Validate(); err != nil {
		t.Errorf("zero-beat stage rejected: %v", err)
	}
}

func TestSessionDefinitionValidate(t *testing.T) {
	def := SessionDefinition{Name: "ok", Stages: threeStageSession()}
	if err := def.Validate(); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}

	if err := (SessionDefinition{Stages: threeStageSession()}).Validate(); err == nil {
		t.Error("nameless session accepted")
	}

	// Empty stage lists are legal - they play as an already-complete session.
	if err := (SessionDefinition{Name: "empty"}).Validate(); err != nil {
		t.Errorf("empty session rejected: %v", err)
	}

	bad := SessionDefinition{Name: "bad", Stages: []Stage{{Duration: -1}}}
	if err := bad.Validate(); err == nil {
		t.Error("session with invalid stage accepted")
	}
}

func TestSessionDefinitionTotalDuration(t *testing.T) {
	if got := (SessionDefinition{Name: "empty"}).TotalDuration(); got != 0 {
		t.Errorf("empty session duration = %g, want 0", got)
	}
	def := SessionDefinition{Name: "sum", Stages: threeStageSession()}
	if got := def.TotalDuration(); got != 240 {
		t.Errorf("total = %g, want 240", got)
	}
}

func TestBuiltinSessionsAreValid(t *testing.T) {
	sessions := BuiltinSessions.Sessions()
	if len(sessions) == 0 {
		t.Fatal("no builtin sessions registered")
	}
	seen := map[string]bool{}
	for _, def := range sessions {
		if err := def.Validate(); err != nil {
			t.Errorf("builtin session %q invalid: %v", def.Name, err)
		}
		if def.TotalDuration() <= 0 {
			t.Errorf("builtin session %q has no duration", def.Name)
		}
		if seen[def.Name] {
			t.Errorf("duplicate builtin session name %q", def.Name)
		}
		seen[def.Name] = true
	}
	if _, ok := BuiltinSessions.Find("deep-sleep"); !ok {
		t.Error("default session 'deep-sleep' missing from builtins")
	}
}
