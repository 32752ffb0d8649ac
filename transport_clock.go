// transport_clock.go - Elapsed-time readback and frequency reporting

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import "fmt"

// TransportStatus is the snapshot value returned by SessionPlayer.Tick.
// The host decides the polling cadence; nothing here is authoritative
// state, everything is re-derived from the hardware clock on each tick.
type TransportStatus struct {
	Playing       bool
	Finished      bool
	Elapsed       float64 // Seconds of logical session time
	Total         float64 // Whole-session duration
	StageIndex    int     // -1 when no stage contains Elapsed
	StageProgress float64 // 0.0-1.0 inside the current stage
	CarrierHz     float64 // Instantaneous left-ear frequency
	BeatHz        float64 // Instantaneous left/right offset
}

// stageAt scans the stage list for the stage containing the given elapsed
// time and its fractional progress. A linear scan is a deliberate
// simplification: sessions hold tens of stages, not thousands, so a
// prefix-sum binary search would buy nothing.
func stageAt(stages []Stage, elapsed float64) (int, float64) {
	var start float64
	for i, st := range stages {
		end := start + st.Duration
		if elapsed < end || (i == len(stages)-1 && elapsed <= end) {
			return i, (elapsed - start) / st.Duration
		}
		start = end
	}
	return -1, 0
}

// displayedFrequencies re-derives the instantaneous carrier and beat from
// the active schedule using the same ramp-then-hold evaluator the
// synthesizer runs, so the readout matches what is audible rather than a
// naive full-stage interpolation.
func displayedFrequencies(sched *Schedule, elapsed float64) (carrier, beat float64) {
	if sched == nil || len(sched.Left) == 0 {
		return 0, 0
	}
	t := elapsed - sched.StartOffset
	left := sched.FrequencyAt(CHANNEL_LEFT, t)
	right := sched.FrequencyAt(CHANNEL_RIGHT, t)
	return left, right - left
}

// formatClock renders seconds as M:SS for the status line.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}
