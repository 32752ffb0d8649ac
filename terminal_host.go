// terminal_host.go - Raw-mode keyboard transport for interactive playback

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

const SEEK_STEP_SECONDS = 15.0
const VOLUME_STEP = 0.05

// TerminalHost reads raw stdin and maps keys onto the player's transport
// surface. Only instantiated in main.go for interactive use, never in tests.
//
// Keys: space pause/resume, [ and ] seek, - and + master volume,
// l and r channel toggles, q quit.
type TerminalHost struct {
	player       *SessionPlayer
	quit         chan struct{}
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	quitOnce     sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
	leftOn       bool
	rightOn      bool
}

// NewTerminalHost creates a host adapter driving the given player. The
// quit channel closes when the user asks to leave.
func NewTerminalHost(player *SessionPlayer) *TerminalHost {
	return &TerminalHost{
		player:  player,
		quit:    make(chan struct{}),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		leftOn:  true,
		rightOn: true,
	}
}

// Quit closes when the user presses q.
func (h *TerminalHost) Quit() <-chan struct{} {
	return h.quit
}

// Start sets stdin to raw non-blocking mode and begins reading in a
// goroutine. Call Stop() to restore stdin.
func (h *TerminalHost) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal_host: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				h.handleKey(buf[0])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

func (h *TerminalHost) handleKey(b byte) {
	switch b {
	case ' ':
		if h.player.IsPlaying() {
			h.player.Pause()
		} else if err := h.player.Play(); err != nil {
			fmt.Fprintf(os.Stderr, "\r\nplayback failed: %v\r\n", err)
		}
	case '[':
		h.seekBy(-SEEK_STEP_SECONDS)
	case ']':
		h.seekBy(SEEK_STEP_SECONDS)
	case '-':
		h.player.SetMasterVolume(h.player.MasterVolume() - VOLUME_STEP)
	case '+', '=':
		h.player.SetMasterVolume(h.player.MasterVolume() + VOLUME_STEP)
	case 'l':
		h.leftOn = !h.leftOn
		h.player.SetChannelEnabled(CHANNEL_LEFT, h.leftOn)
	case 'r':
		h.rightOn = !h.rightOn
		h.player.SetChannelEnabled(CHANNEL_RIGHT, h.rightOn)
	case 'q', 3: // q or Ctrl-C
		h.quitOnce.Do(func() {
			close(h.quit)
		})
	}
}

func (h *TerminalHost) seekBy(delta float64) {
	target := h.player.Tick().Elapsed + delta
	if target < 0 {
		target = 0
	}
	if err := h.player.Seek(target); err != nil {
		fmt.Fprintf(os.Stderr, "\r\nseek failed: %v\r\n", err)
	}
}

// Stop terminates the stdin reading goroutine and restores stdin.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
