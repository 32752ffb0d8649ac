// session_script.go - Lua session scripts for programmatic stage generation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadSessionScript runs a Lua file and converts its returned table into a
// session definition. Scripts exist for stage lists that are tedious to
// write by hand - long descents, repeated cycles - and must return:
//
//	return {
//	  name = "slow-descent",
//	  description = "optional",
//	  stages = {
//	    { carrier = {200, 195}, beat = {10, 4}, duration = minutes(5) },
//	    { carrier = 195, beat = 4, duration = 600 },
//	  },
//	}
//
// A bare number where a {start, end} pair is expected means "constant".
// The helper minutes(n) is pre-registered.
func LoadSessionScript(path string) (SessionDefinition, error) {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("minutes", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(float64(L.CheckNumber(1)) * 60))
		return 1
	}))

	if err := L.DoFile(path); err != nil {
		return SessionDefinition{}, fmt.Errorf("running session script %s: %w", path, err)
	}

	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return SessionDefinition{}, fmt.Errorf("session script %s must return a table", path)
	}

	def := SessionDefinition{
		Name:        luaString(tbl.RawGetString("name")),
		Description: luaString(tbl.RawGetString("description")),
	}

	stagesTbl, ok := tbl.RawGetString("stages").(*lua.LTable)
	if !ok {
		return SessionDefinition{}, fmt.Errorf("session script %s: missing stages table", path)
	}

	for i := 1; i <= stagesTbl.Len(); i++ {
		entry, ok := stagesTbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return SessionDefinition{}, fmt.Errorf("session script %s: stage %d is not a table", path, i)
		}

		startCarrier, endCarrier, err := luaEndpointPair(entry.RawGetString("carrier"))
		if err != nil {
			return SessionDefinition{}, fmt.Errorf("session script %s: stage %d carrier: %w", path, i, err)
		}
		startBeat, endBeat, err := luaEndpointPair(entry.RawGetString("beat"))
		if err != nil {
			return SessionDefinition{}, fmt.Errorf("session script %s: stage %d beat: %w", path, i, err)
		}
		duration, ok := entry.RawGetString("duration").(lua.LNumber)
		if !ok {
			return SessionDefinition{}, fmt.Errorf("session script %s: stage %d duration must be a number", path, i)
		}

		def.Stages = append(def.Stages, Stage{
			StartCarrierHz: startCarrier,
			EndCarrierHz:   endCarrier,
			StartBeatHz:    startBeat,
			EndBeatHz:      endBeat,
			Duration:       float64(duration),
		})
	}

	if err := def.Validate(); err != nil {
		return SessionDefinition{}, err
	}
	return def, nil
}

// luaEndpointPair accepts a number for a constant or a {start, end} table.
func luaEndpointPair(v lua.LValue) (start, end float64, err error) {
	switch val := v.(type) {
	case lua.LNumber:
		return float64(val), float64(val), nil
	case *lua.LTable:
		first, ok := val.RawGetInt(1).(lua.LNumber)
		if !ok {
			return 0, 0, fmt.Errorf("want a number or {start, end} pair")
		}
		second, ok := val.RawGetInt(2).(lua.LNumber)
		if !ok {
			second = first
		}
		return float64(first), float64(second), nil
	default:
		return 0, 0, fmt.Errorf("want a number or {start, end} pair, got %s", v.Type())
	}
}

func luaString(v lua.LValue) string {
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}
