// tone_schedule.go - Ramp plan compilation for staged frequency sessions

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import "math"

const (
	CHANNEL_LEFT  = 0
	CHANNEL_RIGHT = 1
)

// DEFAULT_TRANSITION_WINDOW caps the audible glide at a stage boundary.
// The window never exceeds a third of the stage's remaining duration so a
// short stage is still mostly perceived as a stable tone.
const DEFAULT_TRANSITION_WINDOW = 60.0

// RampInstruction moves one channel from FromHz at StartTime linearly to
// TargetHz by EndTime, then holds TargetHz. Times are seconds on the output
// timeline, i.e. relative to the schedule's start offset.
type RampInstruction struct {
	StartTime float64
	FromHz    float64
	TargetHz  float64
	EndTime   float64
}

// Schedule is the compiled, time-ordered ramp plan for one playback run.
// Instruction StartTimes are strictly increasing per channel by construction.
type Schedule struct {
	Left        []RampInstruction
	Right       []RampInstruction
	StartOffset float64 // Logical session time where this run begins
	Duration    float64 // Remaining seconds after the offset
}

// Empty reports whether there is nothing to play.
func (s *Schedule) Empty() bool {
	return s.Duration <= 0
}

// CompileSchedule walks the stage list and emits one ramp-then-hold
// instruction pair per stage that ends after startOffset. Stages wholly
// before the offset cost nothing. If the offset lands inside a stage the
// starting frequencies are interpolated so a mid-stage resume picks up at
// the acoustically correct pitch instead of the stage's nominal start value.
func CompileSchedule(stages []Stage, startOffset, window float64) *Schedule {
	if startOffset < 0 {
		startOffset = 0
	}
	if window <= 0 {
		window = DEFAULT_TRANSITION_WINDOW
	}

	sched := &Schedule{StartOffset: startOffset}

	var stageStart float64
	for _, st := range stages {
		stageEnd := stageStart + st.Duration
		if stageEnd <= startOffset {
			stageStart = stageEnd
			continue
		}

		into := 0.0
		if startOffset > stageStart {
			into = startOffset - stageStart
		}
		frac := into / st.Duration
		remaining := st.Duration - into

		startCarrier := lerp(st.StartCarrierHz, st.EndCarrierHz, frac)
		startBeat := lerp(st.StartBeatHz, st.EndBeatHz, frac)

		rampLen := math.Min(window, remaining/3)
		absStart := stageStart - startOffset
		if absStart < 0 {
			absStart = 0
		}

		sched.Left = append(sched.Left, RampInstruction{
			StartTime: absStart,
			FromHz:    startCarrier,
			TargetHz:  st.EndCarrierHz,
			EndTime:   absStart + rampLen,
		})
		sched.Right = append(sched.Right, RampInstruction{
			StartTime: absStart,
			FromHz:    startCarrier + startBeat,
			TargetHz:  st.EndCarrierHz + st.EndBeatHz,
			EndTime:   absStart + rampLen,
		})

		sched.Duration += remaining
		stageStart = stageEnd
	}

	return sched
}

// FrequencyAt evaluates the ramp plan for a channel at output time t:
// hold the instruction's start value before its window, interpolate inside
// it, hold the target after. The synthesizer and the transport reporter
// share this evaluator so the readout always matches the audible output.
func (s *Schedule) FrequencyAt(channel int, t float64) float64 {
	plan := s.Left
	if channel == CHANNEL_RIGHT {
		plan = s.Right
	}
	return rampFrequencyAt(plan, t)
}

func rampFrequencyAt(plan []RampInstruction, t float64) float64 {
	if len(plan) == 0 {
		return 0
	}

	// Active instruction: the last one starting at or before t.
	idx := 0
	for idx+1 < len(plan) && t >= plan[idx+1].StartTime {
		idx++
	}
	return plan[idx].valueAt(t)
}

func (r RampInstruction) valueAt(t float64) float64 {
	switch {
	case t <= r.StartTime:
		return r.FromHz
	case t >= r.EndTime:
		return r.TargetHz
	default:
		return lerp(r.FromHz, r.TargetHz, (t-r.StartTime)/(r.EndTime-r.StartTime))
	}
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}
