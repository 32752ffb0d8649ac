// audio_keepalive.go - Liveness guard against platform audio suspension

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"time"
)

const KEEPALIVE_INTERVAL = 5 * time.Second

// resumer is the slice of AudioOutput the guard needs.
type resumer interface {
	Resume()
}

// KeepAlive watches the hardware clock while a session is playing. If the
// clock stops advancing between two checks the platform has suspended the
// device (power saving, backgrounded app) and the guard resumes it.
// Recovery is silent - it shows up only as a brief pause in the readout,
// never as an error.
//
// The guard is armed on play and disarmed the moment playback stops; Stop
// joins the ticker goroutine so no timer leaks across sessions.
type KeepAlive struct {
	output   resumer
	position func() int64 // Hardware clock, in frames
	interval time.Duration
	lastPos  int64
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewKeepAlive(output resumer, position func() int64, interval time.Duration) *KeepAlive {
	if interval <= 0 {
		interval = KEEPALIVE_INTERVAL
	}
	return &KeepAlive{
		output:   output,
		position: position,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (k *KeepAlive) Start() {
	k.lastPos = k.position()
	go k.run()
}

func (k *KeepAlive) run() {
	defer close(k.done)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-k.stopCh:
			return
		case <-ticker.C:
			pos := k.position()
			if pos == k.lastPos {
				k.output.Resume()
			}
			k.lastPos = pos
		}
	}
}

// Poke resumes the output immediately. Hosts call this when the
// application regains foreground focus instead of waiting for the next
// periodic check.
func (k *KeepAlive) Poke() {
	select {
	case <-k.stopCh:
		return
	default:
	}
	k.output.Resume()
}

// Stop disarms the guard and waits for its goroutine to exit. Idempotent.
func (k *KeepAlive) Stop() {
	k.stopOnce.Do(func() {
		close(k.stopCh)
	})
	<-k.done
}
