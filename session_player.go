// session_player.go - Playback session lifecycle and transport surface

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

var (
	// ErrAudioUnavailable means the output device could not be acquired.
	// Playback state is left untouched; there is no silent retry.
	ErrAudioUnavailable = errors.New("audio output unavailable")

	// ErrInvalidSeekTarget rejects negative or non-finite seek times
	// without side effects.
	ErrInvalidSeekTarget = errors.New("invalid seek target")
)

// PlayerConfig carries the tunables of a playback session. The transition
// window is deliberately configurable: 60 seconds is an empirical product
// choice, not an engineering constant.
type PlayerConfig struct {
	Backend           int
	TransitionWindow  float64
	GainSmoothing     float64
	KeepAliveInterval time.Duration
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Backend:           AUDIO_BACKEND_OTO,
		TransitionWindow:  DEFAULT_TRANSITION_WINDOW,
		GainSmoothing:     GAIN_SMOOTHING_TIME,
		KeepAliveInterval: KEEPALIVE_INTERVAL,
	}
}

// SessionPlayer executes one SessionDefinition. It exclusively owns its
// generator pair, schedule and keepalive guard; no concurrent session may
// exist on the same player. Stop and seek never mutate a running engine -
// they retire it wholesale and build a fresh one, so partially applied
// ramps cannot bleed across runs.
type SessionPlayer struct {
	mutex sync.Mutex

	def   SessionDefinition
	total float64
	cfg   PlayerConfig

	output   AudioOutput // Created lazily on first Play, reused after
	engine   *ToneEngine // Nil whenever not playing
	guard    *KeepAlive
	playing  bool
	finished bool
	offset   float64 // Logical start offset of the current or next run

	volume    [2]float64
	chEnabled [2]bool
	master    float64

	onFinished func()
}

// NewSessionPlayer validates the definition and snapshots its stage list.
func NewSessionPlayer(def SessionDefinition, cfg PlayerConfig) (*SessionPlayer, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	def.Stages = append([]Stage(nil), def.Stages...)

	return &SessionPlayer{
		def:       def,
		total:     def.TotalDuration(),
		cfg:       cfg,
		volume:    [2]float64{1, 1},
		chEnabled: [2]bool{true, true},
		master:    1,
	}, nil
}

// Session returns the definition this player was built for.
func (p *SessionPlayer) Session() SessionDefinition {
	return p.def
}

// TotalDuration returns the whole-session duration in seconds.
func (p *SessionPlayer) TotalDuration() float64 {
	return p.total
}

// OnFinished registers a callback fired once per natural completion.
func (p *SessionPlayer) OnFinished(fn func()) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.onFinished = fn
}

// Play starts (or resumes) playback at the pending offset. An empty
// schedule - no stages, or the offset at or past the end - completes the
// session immediately and is not an error.
func (p *SessionPlayer) Play() error {
	p.mutex.Lock()
	fire, err := p.startLocked()
	p.mutex.Unlock()

	if fire != nil {
		fire()
	}
	return err
}

func (p *SessionPlayer) startLocked() (fire func(), err error) {
	if p.playing {
		return nil, nil
	}

	sched := CompileSchedule(p.def.Stages, p.offset, p.cfg.TransitionWindow)
	if sched.Empty() {
		return p.completeLocked(), nil
	}

	if p.output == nil {
		out, aerr := NewAudioOutput(p.cfg.Backend, SAMPLE_RATE)
		if aerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, aerr)
		}
		p.output = out
	}

	engine := NewToneEngine(sched, p.cfg.GainSmoothing)
	engine.SetChannelVolume(CHANNEL_LEFT, p.volume[CHANNEL_LEFT])
	engine.SetChannelVolume(CHANNEL_RIGHT, p.volume[CHANNEL_RIGHT])
	engine.SetChannelEnabled(CHANNEL_LEFT, p.chEnabled[CHANNEL_LEFT])
	engine.SetChannelEnabled(CHANNEL_RIGHT, p.chEnabled[CHANNEL_RIGHT])
	engine.SetMasterVolume(p.master)

	p.output.SetEngine(engine)
	if aerr := p.output.Start(); aerr != nil {
		p.output.SetEngine(nil)
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, aerr)
	}

	p.engine = engine
	p.playing = true
	p.finished = false

	p.guard = NewKeepAlive(p.output, engine.SamplesPlayed, p.cfg.KeepAliveInterval)
	p.guard.Start()

	return nil, nil
}

// retireLocked tears down the current generator pair. The atomic engine
// swap in the backend guarantees the old pair can never sound again, so a
// stop immediately followed by a start cannot double the tone.
func (p *SessionPlayer) retireLocked() {
	if p.guard != nil {
		p.guard.Stop()
		p.guard = nil
	}
	if p.output != nil {
		p.output.SetEngine(nil)
		p.output.Stop()
	}
	p.engine = nil
	p.playing = false
}

func (p *SessionPlayer) completeLocked() (fire func()) {
	p.retireLocked()
	p.offset = 0
	p.finished = true
	if fn := p.onFinished; fn != nil {
		return fn
	}
	return nil
}

// Pause halts playback, remembering the elapsed position for the next Play.
func (p *SessionPlayer) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.playing {
		return
	}
	p.offset = p.engine.ElapsedSeconds()
	p.retireLocked()
}

// Stop halts playback and resets the session to the beginning. Idempotent
// and safe to call when nothing is running.
func (p *SessionPlayer) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.retireLocked()
	p.offset = 0
	p.finished = false
}

// Seek moves the session to an arbitrary offset, preserving the playing
// state. Seeking at or past the end completes the session; negative or
// non-finite targets are rejected without side effects.
func (p *SessionPlayer) Seek(seconds float64) error {
	p.mutex.Lock()
	fire, err := p.seekLocked(seconds)
	p.mutex.Unlock()

	if fire != nil {
		fire()
	}
	return err
}

func (p *SessionPlayer) seekLocked(seconds float64) (fire func(), err error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, ErrInvalidSeekTarget
	}
	if seconds >= p.total {
		return p.completeLocked(), nil
	}

	wasPlaying := p.playing
	p.retireLocked()
	p.offset = seconds
	if wasPlaying {
		return p.startLocked()
	}
	return nil, nil
}

// IsPlaying reports whether a generator pair is currently running.
func (p *SessionPlayer) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.playing
}

// SetVolume applies a smoothed volume change to one ear, in any state.
func (p *SessionPlayer) SetVolume(channel int, v float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	v = clampGain(v)
	p.volume[channelIndex(channel)] = v
	if p.engine != nil {
		p.engine.SetChannelVolume(channel, v)
	}
}

// SetChannelEnabled mutes or unmutes one ear, in any state.
func (p *SessionPlayer) SetChannelEnabled(channel int, on bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.chEnabled[channelIndex(channel)] = on
	if p.engine != nil {
		p.engine.SetChannelEnabled(channel, on)
	}
}

// SetMasterVolume applies a smoothed master gain change, in any state.
func (p *SessionPlayer) SetMasterVolume(v float64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.master = clampGain(v)
	if p.engine != nil {
		p.engine.SetMasterVolume(p.master)
	}
}

// Volume returns the requested volume for one ear.
func (p *SessionPlayer) Volume(channel int) float64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.volume[channelIndex(channel)]
}

// MasterVolume returns the requested master gain.
func (p *SessionPlayer) MasterVolume() float64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.master
}

// Poke forwards a regained-foreground signal to the keepalive guard.
func (p *SessionPlayer) Poke() {
	p.mutex.Lock()
	guard := p.guard
	p.mutex.Unlock()

	if guard != nil {
		guard.Poke()
	}
}

// Tick derives a fresh transport snapshot from the hardware clock and
// drives natural completion: once the clock reaches the session's end the
// player stops, resets elapsed to zero and reports Finished.
func (p *SessionPlayer) Tick() TransportStatus {
	p.mutex.Lock()

	var fire func()
	elapsed := p.offset
	var sched *Schedule
	if p.engine != nil {
		elapsed = p.engine.ElapsedSeconds()
		sched = p.engine.Schedule()
	}

	if p.playing && elapsed >= p.total {
		fire = p.completeLocked()
		elapsed = 0
		sched = nil
	}

	status := TransportStatus{
		Playing:  p.playing,
		Finished: p.finished,
		Elapsed:  elapsed,
		Total:    p.total,
	}

	if sched == nil && !p.finished {
		// Paused or stopped: evaluate a throwaway plan at the pending
		// offset so the readout still shows the correct pitch.
		sched = CompileSchedule(p.def.Stages, p.offset, p.cfg.TransitionWindow)
	}
	status.CarrierHz, status.BeatHz = displayedFrequencies(sched, elapsed)
	status.StageIndex, status.StageProgress = stageAt(p.def.Stages, elapsed)

	p.mutex.Unlock()

	if fire != nil {
		fire()
	}
	return status
}

// Close stops playback and releases the output device.
func (p *SessionPlayer) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.retireLocked()
	p.offset = 0
	if p.output != nil {
		p.output.Close()
		p.output = nil
	}
}

func channelIndex(channel int) int {
	if channel == CHANNEL_RIGHT {
		return CHANNEL_RIGHT
	}
	return CHANNEL_LEFT
}
