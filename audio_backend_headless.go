//go:build headless

package main

type OtoPlayer struct {
	engine  *ToneEngine
	started bool
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetEngine(engine *ToneEngine) {
	op.engine = engine
}

func (op *OtoPlayer) Start() error {
	op.started = true
	return nil
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Resume() {}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}

type ALSAPlayer struct {
	engine  *ToneEngine
	started bool
}

func NewALSAPlayer(sampleRate int) (*ALSAPlayer, error) {
	return &ALSAPlayer{}, nil
}

func (ap *ALSAPlayer) SetEngine(engine *ToneEngine) {
	ap.engine = engine
}

func (ap *ALSAPlayer) Start() error {
	ap.started = true
	return nil
}

func (ap *ALSAPlayer) Stop() {
	ap.started = false
}

func (ap *ALSAPlayer) Resume() {}

func (ap *ALSAPlayer) Close() {
	ap.started = false
}

func (ap *ALSAPlayer) IsStarted() bool {
	return ap.started
}
