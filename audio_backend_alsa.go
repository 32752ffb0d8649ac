//go:build !headless

// audio_backend_alsa.go - ALSA stereo audio output implementation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int channels) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_FLOAT);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, channels);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, float* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static int resumePCM(snd_pcm_t* handle) {
    int state = snd_pcm_state(handle);
    if (state == SND_PCM_STATE_SUSPENDED) {
        int err = snd_pcm_resume(handle);
        if (err < 0) return snd_pcm_prepare(handle);
        return err;
    }
    if (state == SND_PCM_STATE_XRUN) {
        return snd_pcm_prepare(handle);
    }
    return 0;
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

const ALSA_BLOCK_FRAMES = 1024

type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	engine  atomic.Pointer[ToneEngine]
	samples []float32
	stopCh  chan struct{}
	done    chan struct{}
	started bool
	mutex   sync.Mutex
}

func NewALSAPlayer(sampleRate int) (*ALSAPlayer, error) {
	var err C.int
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	handle := C.openPCM(device, &err)
	if err < 0 {
		return nil, fmt.Errorf("failed to open PCM device: %s", C.GoString(C.snd_strerror(err)))
	}

	if err = C.setupPCM(handle, C.uint(sampleRate), 2); err < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("failed to setup PCM: %s", C.GoString(C.snd_strerror(err)))
	}

	return &ALSAPlayer{
		handle:  handle,
		samples: make([]float32, ALSA_BLOCK_FRAMES*2),
	}, nil
}

func (ap *ALSAPlayer) SetEngine(engine *ToneEngine) {
	ap.engine.Store(engine)
}

// Start launches the push loop. snd_pcm_writei blocks until the device
// accepts the block, so the loop is paced by the hardware itself.
func (ap *ALSAPlayer) Start() error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.started {
		return nil
	}
	ap.stopCh = make(chan struct{})
	ap.done = make(chan struct{})
	ap.started = true

	go ap.feed(ap.stopCh, ap.done)
	return nil
}

func (ap *ALSAPlayer) feed(stopCh, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		engine := ap.engine.Load()
		if engine == nil {
			for i := range ap.samples {
				ap.samples[i] = 0
			}
		} else {
			engine.GenerateFrames(ap.samples)
		}

		frames := C.writePCM(ap.handle, (*C.float)(unsafe.Pointer(&ap.samples[0])), C.int(ALSA_BLOCK_FRAMES))
		if frames < 0 {
			if frames == -C.EPIPE {
				C.snd_pcm_prepare(ap.handle)
			}
		}
	}
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.started {
		return
	}
	close(ap.stopCh)
	<-ap.done
	ap.started = false
}

func (ap *ALSAPlayer) Resume() {
	C.resumePCM(ap.handle)
}

func (ap *ALSAPlayer) Close() {
	ap.Stop()
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}
