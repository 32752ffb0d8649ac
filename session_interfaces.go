// session_interfaces.go - Common interfaces for transport control and session sources

package main

// TransportControl is the surface a UI layer drives. SessionPlayer
// implements it; hosts poll Tick on their own cadence for display state.
type TransportControl interface {
	// Play starts or resumes playback at the pending offset
	Play() error
	// Pause halts playback, keeping the elapsed position
	Pause()
	// Stop halts playback and rewinds to the beginning
	Stop()
	// Seek moves to an arbitrary offset in seconds, preserving play state
	Seek(seconds float64) error
	// IsPlaying returns true while a generator pair is running
	IsPlaying() bool
	// Tick returns a fresh transport snapshot derived from the audio clock
	Tick() TransportStatus
}

// SessionSource supplies read-only session definitions. The player never
// persists anything; catalogs, scripts and the built-in presets all
// implement this.
type SessionSource interface {
	// Sessions returns every definition the source holds, in order
	Sessions() []SessionDefinition
	// Find looks a definition up by name
	Find(name string) (SessionDefinition, bool)
}
