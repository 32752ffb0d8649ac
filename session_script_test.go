// session_script_test.go - Lua session script loading tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.lua")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSessionScript_Valid(t *testing.T) {
	path := writeScript(t, `
return {
  name = "slow-descent",
  description = "scripted descent",
  stages = {
    { carrier = {200, 195}, beat = {10, 4}, duration = minutes(5) },
    { carrier = 195, beat = 4, duration = 600 },
  },
}
`)

	def, err := LoadSessionScript(path)
	if err != nil {
		t.Fatalf("LoadSessionScript: %v", err)
	}
	if def.Name != "slow-descent" || def.Description != "scripted descent" {
		t.Errorf("metadata = %q / %q", def.Name, def.Description)
	}
	if len(def.Stages) != 2 {
		t.Fatalf("script produced %d stages, want 2", len(def.Stages))
	}

	first := def.Stages[0]
	if first.StartBeatHz != 10 || first.EndBeatHz != 4 {
		t.Errorf("stage 0 beat = %g->%g, want 10->4", first.StartBeatHz, first.EndBeatHz)
	}
	if first.Duration != 300 {
		t.Errorf("minutes(5) = %g, want 300", first.Duration)
	}

	// Bare numbers mean constant values.
	second := def.Stages[1]
	if second.StartCarrierHz != 195 || second.EndCarrierHz != 195 {
		t.Errorf("constant carrier = %g->%g, want 195->195", second.StartCarrierHz, second.EndCarrierHz)
	}
	if second.StartBeatHz != 4 || second.EndBeatHz != 4 {
		t.Errorf("constant beat = %g->%g, want 4->4", second.StartBeatHz, second.EndBeatHz)
	}
}

func TestLoadSessionScript_GeneratedStages(t *testing.T) {
	// The whole point of scripting: loops that build stage lists.
	path := writeScript(t, `
local stages = {}
for beat = 10, 6, -1 do
  stages[#stages + 1] = { carrier = 200, beat = {beat, beat - 1}, duration = 60 }
end
return { name = "stepped", stages = stages }
`)

	def, err := LoadSessionScript(path)
	if err != nil {
		t.Fatalf("LoadSessionScript: %v", err)
	}
	if len(def.Stages) != 5 {
		t.Fatalf("loop produced %d stages, want 5", len(def.Stages))
	}
	if def.Stages[0].StartBeatHz != 10 || def.Stages[4].EndBeatHz != 5 {
		t.Errorf("generated beat range %g..%g, want 10..5",
			def.Stages[0].StartBeatHz, def.Stages[4].EndBeatHz)
	}
}

func TestLoadSessionScript_MustReturnTable(t *testing.T) {
	path := writeScript(t, `return 42`)
	_, err := LoadSessionScript(path)
	if err == nil || !strings.Contains(err.Error(), "must return a table") {
		t.Errorf("non-table return gave %v", err)
	}
}

func TestLoadSessionScript_RejectsBadDuration(t *testing.T) {
	path := writeScript(t, `
return {
  name = "broken",
  stages = {
    { carrier = 200, beat = 5, duration = "long" },
  },
}
`)
	if _, err := LoadSessionScript(path); err == nil {
		t.Fatal("string duration should be rejected")
	}
}

func TestLoadSessionScript_RejectsRuntimeError(t *testing.T) {
	path := writeScript(t, `error("boom")`)
	if _, err := LoadSessionScript(path); err == nil {
		t.Fatal("script runtime error should propagate")
	}
}

func TestLoadSessionScript_ValidatesStages(t *testing.T) {
	path := writeScript(t, `
return {
  name = "broken",
  stages = {
    { carrier = -200, beat = 5, duration = 60 },
  },
}
`)
	if _, err := LoadSessionScript(path); err == nil {
		t.Fatal("negative carrier should fail validation")
	}
}
