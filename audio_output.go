// audio_output.go - Audio backend interface and factory

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import "fmt"

const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_ALSA
	AUDIO_BACKEND_NONE
)

// AudioOutput is the only I/O boundary of the engine. Implementations pull
// (or push) interleaved stereo frames from the attached ToneEngine.
//
// SetEngine is an atomic swap: stop and seek retire a whole generator pair
// by attaching a new engine (or nil), so a queued ramp on a stale generator
// can never bleed into a fresh one.
type AudioOutput interface {
	SetEngine(engine *ToneEngine)
	Start() error
	Stop()
	// Resume kicks a platform-suspended device back into motion. Called by
	// the keepalive guard; harmless when nothing is suspended.
	Resume()
	Close()
	IsStarted() bool
}

// NewAudioOutput selects an audio backend. The oto and ALSA backends talk
// to real hardware; the none backend is silent and always available.
func NewAudioOutput(backend, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoPlayer(sampleRate)
	case AUDIO_BACKEND_ALSA:
		return NewALSAPlayer(sampleRate)
	case AUDIO_BACKEND_NONE:
		return NewNullOutput(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %d", backend)
	}
}
