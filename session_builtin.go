// session_builtin.go - Built-in session presets

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

// BuiltinSessions is the preset catalog compiled into the player, so the
// binary is useful without any session file. Carrier and beat choices
// follow the usual entrainment bands: delta for sleep, alpha/theta for
// relaxation, low beta for focus.
var BuiltinSessions = NewCatalog([]SessionDefinition{
	{
		Name:        "deep-sleep",
		Description: "Gradual descent from alpha into delta for sleep induction",
		Stages: []Stage{
			{StartCarrierHz: 200, EndCarrierHz: 200, StartBeatHz: 10, EndBeatHz: 8, Duration: 300},
			{StartCarrierHz: 200, EndCarrierHz: 190, StartBeatHz: 8, EndBeatHz: 4, Duration: 600},
			{StartCarrierHz: 190, EndCarrierHz: 180, StartBeatHz: 4, EndBeatHz: 2, Duration: 900},
			{StartCarrierHz: 180, EndCarrierHz: 180, StartBeatHz: 2, EndBeatHz: 2, Duration: 900},
		},
	},
	{
		Name:        "focus",
		Description: "Steady low-beta hold for concentration work",
		Stages: []Stage{
			{StartCarrierHz: 250, EndCarrierHz: 250, StartBeatHz: 10, EndBeatHz: 14, Duration: 300},
			{StartCarrierHz: 250, EndCarrierHz: 250, StartBeatHz: 14, EndBeatHz: 14, Duration: 2400},
			{StartCarrierHz: 250, EndCarrierHz: 250, StartBeatHz: 14, EndBeatHz: 10, Duration: 300},
		},
	},
	{
		Name:        "relax",
		Description: "Alpha settle with a theta dip and return",
		Stages: []Stage{
			{StartCarrierHz: 220, EndCarrierHz: 220, StartBeatHz: 12, EndBeatHz: 10, Duration: 240},
			{StartCarrierHz: 220, EndCarrierHz: 210, StartBeatHz: 10, EndBeatHz: 6, Duration: 600},
			{StartCarrierHz: 210, EndCarrierHz: 220, StartBeatHz: 6, EndBeatHz: 10, Duration: 360},
		},
	},
	{
		Name:        "power-nap",
		Description: "Short theta descent with an alpha wake-up ramp",
		Stages: []Stage{
			{StartCarrierHz: 200, EndCarrierHz: 200, StartBeatHz: 10, EndBeatHz: 5, Duration: 300},
			{StartCarrierHz: 200, EndCarrierHz: 200, StartBeatHz: 5, EndBeatHz: 5, Duration: 780},
			{StartCarrierHz: 200, EndCarrierHz: 200, StartBeatHz: 5, EndBeatHz: 12, Duration: 120},
		},
	},
})
