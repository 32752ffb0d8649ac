// audio_backend_none.go - Silent backend for tests and -backend none

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"
)

// NullOutput satisfies AudioOutput without touching any hardware. It never
// consumes frames on its own; tests drive the attached engine directly to
// advance virtual time deterministically.
type NullOutput struct {
	engine  atomic.Pointer[ToneEngine]
	mutex   sync.Mutex
	started bool
	resumes atomic.Int64
}

func NewNullOutput() *NullOutput {
	return &NullOutput{}
}

func (no *NullOutput) SetEngine(engine *ToneEngine) {
	no.engine.Store(engine)
}

// Engine returns the currently attached engine, or nil.
func (no *NullOutput) Engine() *ToneEngine {
	return no.engine.Load()
}

func (no *NullOutput) Start() error {
	no.mutex.Lock()
	defer no.mutex.Unlock()
	no.started = true
	return nil
}

func (no *NullOutput) Stop() {
	no.mutex.Lock()
	defer no.mutex.Unlock()
	no.started = false
}

func (no *NullOutput) Resume() {
	no.resumes.Add(1)
}

// Resumes returns how many times Resume was called.
func (no *NullOutput) Resumes() int64 {
	return no.resumes.Load()
}

func (no *NullOutput) Close() {
	no.Stop()
}

func (no *NullOutput) IsStarted() bool {
	no.mutex.Lock()
	defer no.mutex.Unlock()
	return no.started
}
