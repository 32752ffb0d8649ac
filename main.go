// main.go - Entry point for the EntrainEngine session player

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/EntrainEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"
)

func boilerPlate() {
	fmt.Println("EntrainEngine - staged binaural tone session player")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/EntrainEngine")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
}

func parseBackend(name string) (int, error) {
	switch name {
	case "oto":
		return AUDIO_BACKEND_OTO, nil
	case "alsa":
		return AUDIO_BACKEND_ALSA, nil
	case "none":
		return AUDIO_BACKEND_NONE, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (want oto, alsa or none)", name)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	catalogPath := flag.String("catalog", "", "path to a YAML session catalog")
	scriptPath := flag.String("script", "", "path to a Lua session script")
	sessionName := flag.String("session", "deep-sleep", "session name to play")
	list := flag.Bool("list", false, "list available sessions and exit")
	backendName := flag.String("backend", "oto", "audio backend: oto, alsa or none")
	start := flag.Float64("start", 0, "start offset in seconds")
	window := flag.Float64("window", DEFAULT_TRANSITION_WINDOW, "stage transition window in seconds")
	volume := flag.Float64("volume", 0.8, "master volume 0.0-1.0")
	flag.Parse()

	boilerPlate()

	var source SessionSource = BuiltinSessions
	if *catalogPath != "" {
		catalog, err := LoadCatalog(*catalogPath)
		if err != nil {
			fatalf("cannot load catalog: %v", err)
		}
		source = catalog
	}

	if *list {
		for _, s := range source.Sessions() {
			fmt.Printf("  %-14s %7s  %s\n", s.Name, formatClock(s.TotalDuration()), s.Description)
		}
		return
	}

	var def SessionDefinition
	if *scriptPath != "" {
		var err error
		def, err = LoadSessionScript(*scriptPath)
		if err != nil {
			fatalf("cannot load session script: %v", err)
		}
	} else {
		var ok bool
		def, ok = source.Find(*sessionName)
		if !ok {
			fatalf("unknown session %q (use -list to see what is available)", *sessionName)
		}
	}

	backend, err := parseBackend(*backendName)
	if err != nil {
		fatalf("%v", err)
	}
	if *start < 0 || *start >= def.TotalDuration() {
		fatalf("start offset %gs is outside the session (total %gs)", *start, def.TotalDuration())
	}

	cfg := DefaultPlayerConfig()
	cfg.Backend = backend
	cfg.TransitionWindow = *window

	player, err := NewSessionPlayer(def, cfg)
	if err != nil {
		fatalf("%v", err)
	}
	defer player.Close()

	player.SetMasterVolume(*volume)
	if *start > 0 {
		if err := player.Seek(*start); err != nil {
			fatalf("cannot seek to %gs: %v", *start, err)
		}
	}

	if err := player.Play(); err != nil {
		// An unavailable device is a one-time, explicit notice - the
		// player stays stopped, nothing spins.
		fatalf("cannot start playback: %v", err)
	}

	done := make(chan struct{})
	var doneOnce sync.Once
	player.OnFinished(func() {
		doneOnce.Do(func() { close(done) })
	})

	host := NewTerminalHost(player)
	host.Start()
	defer host.Stop()

	fmt.Printf("playing %q - space pause, [ ] seek, -/+ volume, l/r mute, q quit\r\n", def.Name)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			fmt.Printf("\r\nsession complete\r\n")
			return
		case <-host.Quit():
			fmt.Printf("\r\n")
			return
		case <-ticker.C:
			printStatus(player.Tick())
		}
	}
}

func printStatus(st TransportStatus) {
	state := "paused "
	if st.Playing {
		state = "playing"
	}
	fmt.Printf("\r%s  %s / %s  stage %2d %3.0f%%  carrier %6.1f Hz  beat %4.1f Hz   ",
		state, formatClock(st.Elapsed), formatClock(st.Total),
		st.StageIndex+1, st.StageProgress*100, st.CarrierHz, st.BeatHz)
}
