// session_player_test.go - Playback session lifecycle tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"math"
	"testing"
)

func testPlayerConfig() PlayerConfig {
	cfg := DefaultPlayerConfig()
	cfg.Backend = AUDIO_BACKEND_NONE
	return cfg
}

func newTestPlayer(t *testing.T, stages []Stage) *SessionPlayer {
	t.Helper()
	p, err := NewSessionPlayer(SessionDefinition{Name: "test", Stages: stages}, testPlayerConfig())
	if err != nil {
		t.Fatalf("NewSessionPlayer: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

// advance consumes audio from the player's current engine, standing in for
// the backend's pull loop so tests control virtual time exactly.
func advance(t *testing.T, p *SessionPlayer, seconds float64) {
	t.Helper()
	p.mutex.Lock()
	engine := p.engine
	p.mutex.Unlock()
	if engine == nil {
		t.Fatal("advance: no engine is running")
	}
	buf := make([]float32, 2*441)
	total := int64(seconds * SAMPLE_RATE)
	for produced := int64(0); produced < total; produced += 441 {
		engine.GenerateFrames(buf)
	}
}

func (p *SessionPlayer) testOutput() *NullOutput {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.output.(*NullOutput)
}

func TestSessionPlayer_PlayPauseResume(t *testing.T) {
	p := newTestPlayer(t, []Stage{constCarrierStage(5, 5, 1), constCarrierStage(5, 8, 1)})

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !p.IsPlaying() {
		t.Fatal("player should be playing after Play")
	}

	advance(t, p, 0.5)
	st := p.Tick()
	if math.Abs(st.Elapsed-0.5) > 1e-6 {
		t.Errorf("elapsed = %g, want 0.5", st.Elapsed)
	}
	if st.StageIndex != 0 {
		t.Errorf("stage index = %d, want 0", st.StageIndex)
	}

	p.Pause()
	if p.IsPlaying() {
		t.Fatal("player should not be playing after Pause")
	}
	st = p.Tick()
	if math.Abs(st.Elapsed-0.5) > 1e-6 {
		t.Errorf("paused elapsed = %g, want 0.5 preserved", st.Elapsed)
	}

	if err := p.Play(); err != nil {
		t.Fatalf("resume Play: %v", err)
	}
	p.mutex.Lock()
	offset := p.engine.Schedule().StartOffset
	p.mutex.Unlock()
	if math.Abs(offset-0.5) > 1e-6 {
		t.Errorf("resume compiled schedule at %g, want 0.5", offset)
	}
}

func TestSessionPlayer_NaturalCompletion(t *testing.T) {
	p := newTestPlayer(t, []Stage{constCarrierStage(5, 5, 1)})

	finished := 0
	p.OnFinished(func() { finished++ })

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	advance(t, p, 1.2)

	st := p.Tick()
	if !st.Finished {
		t.Fatal("tick past the end should report Finished")
	}
	if st.Playing {
		t.Error("completed session should not be playing")
	}
	if st.Elapsed != 0 {
		t.Errorf("completed elapsed = %g, want reset to 0", st.Elapsed)
	}
	if finished != 1 {
		t.Errorf("completion callback fired %d times, want 1", finished)
	}

	// Further ticks stay finished without re-firing the callback.
	p.Tick()
	if finished != 1 {
		t.Errorf("completion callback re-fired, total %d", finished)
	}
}

func TestSessionPlayer_EmptySessionCompletesImmediately(t *testing.T) {
	p := newTestPlayer(t, nil)

	finished := false
	p.OnFinished(func() { finished = true })

	if err := p.Play(); err != nil {
		t.Fatalf("Play on empty session: %v", err)
	}
	if p.IsPlaying() {
		t.Error("empty session must not transition to playing")
	}
	if !finished {
		t.Error("empty session should complete immediately")
	}
	if st := p.Tick(); st.Elapsed != 0 {
		t.Errorf("empty session elapsed = %g, want 0", st.Elapsed)
	}
}

func TestSessionPlayer_SeekValidation(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	for _, target := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := p.Seek(target); !errors.Is(err, ErrInvalidSeekTarget) {
			t.Errorf("Seek(%g) error = %v, want ErrInvalidSeekTarget", target, err)
		}
		if !p.IsPlaying() {
			t.Errorf("Seek(%g) must leave playback state untouched", target)
		}
	}
}

func TestSessionPlayer_SeekPastEndCompletes(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())

	finished := false
	p.OnFinished(func() { finished = true })

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := p.Seek(240); err != nil {
		t.Fatalf("Seek to total duration should complete, got %v", err)
	}
	if p.IsPlaying() {
		t.Error("seek past the end should stop playback")
	}
	if !finished {
		t.Error("seek past the end should complete the session")
	}
}

func TestSessionPlayer_SeekReplacesGeneratorPair(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	out := p.testOutput()
	before := out.Engine()
	if before == nil {
		t.Fatal("no engine attached after Play")
	}

	if err := p.Seek(90); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if !p.IsPlaying() {
		t.Fatal("seek must preserve the playing state")
	}

	after := out.Engine()
	if after == nil {
		t.Fatal("no engine attached after Seek")
	}
	if after == before {
		t.Error("seek must retire the old generator pair and build a new one")
	}

	// Exactly one generator pair exists: the attached engine is the
	// player's engine, and the old one is orphaned from the backend.
	p.mutex.Lock()
	current := p.engine
	p.mutex.Unlock()
	if current != after {
		t.Error("backend engine and player engine diverge after seek")
	}

	// Resuming 30s into the middle stage reports a beat strictly
	// inside that stage's 4->8 range and 150s remaining.
	st := p.Tick()
	if st.BeatHz <= 4 || st.BeatHz >= 8 {
		t.Errorf("beat after seek = %g, want strictly between 4 and 8", st.BeatHz)
	}
	if math.Abs((st.Total-st.Elapsed)-150) > 1e-6 {
		t.Errorf("remaining = %g, want 150", st.Total-st.Elapsed)
	}
	if st.StageIndex != 1 {
		t.Errorf("stage index after seek = %d, want 1", st.StageIndex)
	}
}

func TestSessionPlayer_StopIsIdempotent(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())

	p.Stop() // Nothing running: must be safe
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	advance(t, p, 1)
	p.Stop()
	p.Stop()

	if p.IsPlaying() {
		t.Error("player still playing after Stop")
	}
	if st := p.Tick(); st.Elapsed != 0 {
		t.Errorf("elapsed after Stop = %g, want 0", st.Elapsed)
	}
}

func TestSessionPlayer_VolumesCarriedAcrossEngines(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())

	p.SetVolume(CHANNEL_LEFT, 0.3)
	p.SetChannelEnabled(CHANNEL_RIGHT, false)
	p.SetMasterVolume(0.5)

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	check := func(context string) {
		p.mutex.Lock()
		engine := p.engine
		p.mutex.Unlock()
		engine.mutex.RLock()
		defer engine.mutex.RUnlock()
		if engine.left.target != 0.3 {
			t.Errorf("%s: left gain target = %g, want 0.3", context, engine.left.target)
		}
		if engine.right.target != 0 {
			t.Errorf("%s: disabled right gain target = %g, want 0", context, engine.right.target)
		}
		if engine.masterTarget != 0.5 {
			t.Errorf("%s: master target = %g, want 0.5", context, engine.masterTarget)
		}
	}
	check("after play")

	if err := p.Seek(120); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	check("after seek")
}

func TestSessionPlayer_AudioUnavailable(t *testing.T) {
	cfg := testPlayerConfig()
	cfg.Backend = 99 // No such backend: acquisition fails

	p, err := NewSessionPlayer(SessionDefinition{Name: "test", Stages: threeStageSession()}, cfg)
	if err != nil {
		t.Fatalf("NewSessionPlayer: %v", err)
	}
	defer p.Close()

	if err := p.Play(); !errors.Is(err, ErrAudioUnavailable) {
		t.Errorf("Play error = %v, want ErrAudioUnavailable", err)
	}
	if p.IsPlaying() {
		t.Error("failed Play must not transition to playing")
	}
}

func TestSessionPlayer_PokeForwardsToGuard(t *testing.T) {
	p := newTestPlayer(t, threeStageSession())

	p.Poke() // Not playing: no guard, must be a no-op

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	out := p.testOutput()

	p.Poke()
	if got := out.Resumes(); got != 1 {
		t.Errorf("Poke while playing fired %d resumes, want 1", got)
	}

	p.Stop()
	p.Poke()
	if got := out.Resumes(); got != 1 {
		t.Errorf("Poke after Stop fired %d resumes, want still 1", got)
	}
}

func TestSessionPlayer_PausedReadoutTracksOffset(t *testing.T) {
	// Stage 1 ramps beat 10->4 over a 20s window; pausing at t=10 must
	// still display the mid-ramp value, not the nominal stage start.
	p := newTestPlayer(t, threeStageSession())
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	advance(t, p, 10)
	p.Pause()

	st := p.Tick()
	if math.Abs(st.BeatHz-7) > 0.01 {
		t.Errorf("paused beat readout = %g, want ~7 (mid-ramp)", st.BeatHz)
	}
	if math.Abs(st.CarrierHz-200) > 1e-6 {
		t.Errorf("paused carrier readout = %g, want 200", st.CarrierHz)
	}
}
