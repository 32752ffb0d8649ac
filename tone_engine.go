// tone_engine.go - Dual-channel tone synthesis with smoothed gain staging

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"math"
	"sync"
	"sync/atomic"
)

const SAMPLE_RATE = 44100

// GAIN_SMOOTHING_TIME is the one-pole time constant for all gain moves.
// Three time constants (~90ms) bring a mute within 5% of silence, inside
// the 50-100ms click-free window.
const GAIN_SMOOTHING_TIME = 0.03

const (
	MAX_GAIN = 1.0
	MIN_GAIN = 0.0
)

// ToneChannel is one ear's sine generator. It owns its slice of the
// compiled ramp plan and a smoothed gain; the engine routes its output to
// exactly one side of the interleaved stereo frame, so cross-talk between
// ears is structurally impossible.
type ToneChannel struct {
	plan    []RampInstruction
	planIdx int     // Active instruction, advances monotonically
	phase   float64 // Accumulated oscillator phase
	gain    float64 // Smoothed effective gain
	target  float64 // Gain the smoother is seeking
	volume  float64 // Requested volume (0.0-1.0)
	enabled bool
}

func (ch *ToneChannel) retarget() {
	if ch.enabled {
		ch.target = ch.volume
	} else {
		ch.target = 0
	}
}

// frequencyAt advances the instruction cursor to output time t and returns
// the ramp-then-hold frequency. t never moves backwards within one engine;
// a seek builds a fresh engine instead of rewinding this cursor.
func (ch *ToneChannel) frequencyAt(t float64) float64 {
	for ch.planIdx+1 < len(ch.plan) && t >= ch.plan[ch.planIdx+1].StartTime {
		ch.planIdx++
	}
	return ch.plan[ch.planIdx].valueAt(t)
}

func (ch *ToneChannel) sample(t, smooth float64) float64 {
	freq := ch.frequencyAt(t)
	ch.phase += 2 * math.Pi * freq / SAMPLE_RATE
	if ch.phase >= 2*math.Pi {
		ch.phase -= 2 * math.Pi
	}
	ch.gain += (ch.target - ch.gain) * smooth
	return math.Sin(ch.phase) * ch.gain
}

// ToneEngine executes one compiled Schedule against the audio backend.
// The backend's pull (or push loop) drives GenerateFrames; the sample
// counter therefore advances only while the hardware actually consumes
// audio, which makes it the playback clock - wall-clock suspension freezes
// it instead of letting the readout drift.
//
// Thread model: the audio thread generates under RLock, control writes take
// the write lock, and the sample counter is atomic so the transport and the
// keepalive guard can read it without locking.
type ToneEngine struct {
	mutex        sync.RWMutex
	left         ToneChannel
	right        ToneChannel
	masterGain   float64
	masterTarget float64
	smooth       float64 // Per-sample one-pole coefficient
	totalSamples int64
	samplePos    atomic.Int64
	sched        *Schedule
}

// NewToneEngine builds a generator pair for the given schedule. Gains start
// at zero and seek their targets, so playback and resume fade in instead of
// clicking.
func NewToneEngine(sched *Schedule, smoothing float64) *ToneEngine {
	if smoothing <= 0 {
		smoothing = GAIN_SMOOTHING_TIME
	}
	e := &ToneEngine{
		left:         ToneChannel{plan: sched.Left, volume: 1, enabled: true},
		right:        ToneChannel{plan: sched.Right, volume: 1, enabled: true},
		masterTarget: 1,
		smooth:       1 - math.Exp(-1/(smoothing*SAMPLE_RATE)),
		totalSamples: int64(sched.Duration * SAMPLE_RATE),
		sched:        sched,
	}
	e.left.retarget()
	e.right.retarget()
	return e
}

// Schedule returns the ramp plan this engine is executing.
func (e *ToneEngine) Schedule() *Schedule {
	return e.sched
}

// SamplesPlayed returns the number of stereo frames consumed by the backend
// since this engine started. This is the hardware clock.
func (e *ToneEngine) SamplesPlayed() int64 {
	return e.samplePos.Load()
}

// ElapsedSeconds maps the hardware clock back to logical session time,
// capped at the schedule's end.
func (e *ToneEngine) ElapsedSeconds() float64 {
	played := float64(e.samplePos.Load()) / SAMPLE_RATE
	if played > e.sched.Duration {
		played = e.sched.Duration
	}
	return e.sched.StartOffset + played
}

// Finished reports whether the backend has consumed the whole schedule.
func (e *ToneEngine) Finished() bool {
	return e.samplePos.Load() >= e.totalSamples
}

// SetChannelVolume applies a smoothed volume change to one ear. Safe to
// call from any goroutine at any time.
func (e *ToneEngine) SetChannelVolume(channel int, v float64) {
	v = clampGain(v)
	e.mutex.Lock()
	defer e.mutex.Unlock()
	ch := e.channel(channel)
	ch.volume = v
	ch.retarget()
}

// SetChannelEnabled mutes or unmutes one ear. The mute is a smoothed gain
// transition to zero, never a hard disconnect.
func (e *ToneEngine) SetChannelEnabled(channel int, on bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	ch := e.channel(channel)
	ch.enabled = on
	ch.retarget()
}

// SetMasterVolume applies a smoothed master gain change.
func (e *ToneEngine) SetMasterVolume(v float64) {
	v = clampGain(v)
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.masterTarget = v
}

func (e *ToneEngine) channel(channel int) *ToneChannel {
	if channel == CHANNEL_RIGHT {
		return &e.right
	}
	return &e.left
}

// GenerateFrames fills dst with interleaved stereo float32 samples
// (left on even indices, right on odd) and advances the hardware clock by
// the number of frames written. Past the schedule's end it emits silence;
// the clock keeps counting so the transport can observe completion.
func (e *ToneEngine) GenerateFrames(dst []float32) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	frames := len(dst) / 2
	pos := e.samplePos.Load()

	for i := 0; i < frames; i++ {
		abs := pos + int64(i)
		if abs >= e.totalSamples {
			dst[2*i] = 0
			dst[2*i+1] = 0
			continue
		}
		t := float64(abs) / SAMPLE_RATE
		e.masterGain += (e.masterTarget - e.masterGain) * e.smooth
		dst[2*i] = float32(e.left.sample(t, e.smooth) * e.masterGain)
		dst[2*i+1] = float32(e.right.sample(t, e.smooth) * e.masterGain)
	}

	e.samplePos.Add(int64(frames))
}

func clampGain(v float64) float64 {
	if v < MIN_GAIN {
		return MIN_GAIN
	}
	if v > MAX_GAIN {
		return MAX_GAIN
	}
	return v
}
