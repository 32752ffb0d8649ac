//go:build !headless

// audio_backend_oto.go - OTO v3 stereo audio output implementation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    atomic.Pointer[ToneEngine] // Atomic for lock-free Read()
	sampleBuf []float32                  // Pre-allocated sample buffer
	started   bool
	mutex     sync.Mutex // Only for setup/control operations
}

// NewOtoPlayer acquires the output device. oto allows one context per
// process, so the player is created once and reused across playback runs;
// a device acquisition failure here surfaces as ErrAudioUnavailable.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{
		ctx:       ctx,
		sampleBuf: make([]float32, 4096),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

func (op *OtoPlayer) SetEngine(engine *ToneEngine) {
	op.engine.Store(engine)
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	// Load engine pointer atomically - no lock needed for the hot path
	engine := op.engine.Load()
	if engine == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4

	// Ensure our pre-allocated buffer is large enough
	// This should rarely happen after construction
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	engine.GenerateFrames(samples)

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
	return nil
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Resume() {
	// oto suspends its context when the platform suspends the device.
	_ = op.ctx.Resume()
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		_ = op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
