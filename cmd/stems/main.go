// Command stems runs the terminal-driven multi-track audio recorder:
// it wires the real-time engine to a PortAudio device and a MIDI
// transport, records every input channel to its own WAV file, and
// prints a status line while running.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/stems-audio/stems/internal/config"
	"github.com/stems-audio/stems/internal/device"
	"github.com/stems-audio/stems/internal/engine"
	"github.com/stems-audio/stems/internal/midilisten"
	"github.com/stems-audio/stems/internal/ui"
)

const (
	exitOK = iota
	_      // exit code 1 reserved for generic/unexpected failure
	exitBadArgs
	exitDeviceNotFound
	exitConfigError
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		listDevices    = pflag.Bool("list-devices", false, "enumerate audio devices to stdout (MIDI ports are not listed)")
		audioDevice    = pflag.String("audio-device", "", "select device for input and output, by name substring or index")
		monitorChannels = pflag.String("monitor-channels", "1-2", "two 1-indexed channel numbers, e.g. 1-2")
		midiDevice     = pflag.String("midi-device", "", "MIDI input device, by name substring (default: first input)")
		configPath     = pflag.String("config", "stems.yaml", "configuration file path")
		logLevel       = pflag.String("log-level", "info", "log level: debug, info, warn, error")
		showVersion    = pflag.Bool("version", false, "print version and exit")
	)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	}

	if *showVersion {
		fmt.Println("stems (development build)")
		return exitOK
	}

	host, err := device.NewPortAudioHost()
	if err != nil {
		logger.Error("open audio backend", "err", err)
		return exitDeviceNotFound
	}

	if *listDevices {
		return listDevicesAndExit(host, logger)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "path", *configPath, "err", err)
		return exitConfigError
	}

	monitorSel := *monitorChannels
	if !pflag.CommandLine.Changed("monitor-channels") && cfg.Devices.MonitorCh != "" {
		monitorSel = cfg.Devices.MonitorCh
	}
	monStart, monEnd, err := parseMonitorChannels(monitorSel)
	if err != nil {
		logger.Error("parse monitor channels", "value", monitorSel, "err", err)
		return exitBadArgs
	}

	audioSel := *audioDevice
	if audioSel == "" {
		audioSel = cfg.Devices.Audio
	}
	midiSel := *midiDevice
	if midiSel == "" {
		midiSel = cfg.Devices.MIDIIn
	}

	var playbackFiles []string
	for _, entry := range cfg.Audio {
		playbackFiles = append(playbackFiles, entry.File)
	}

	opts := engine.Options{
		AudioDevice:   audioSel,
		MonitorStart:  monStart,
		MonitorEnd:    monEnd,
		SampleDir:     ".",
		PlaybackFiles: playbackFiles,
	}

	eng, err := engine.New(host, opts, logger)
	if err != nil {
		logger.Error("assemble engine", "err", err)
		return exitDeviceNotFound
	}
	applyTrackDefaults(eng, cfg)
	applyPlaybackDefaults(eng, cfg)

	midi, err := midilisten.Open(midiSel, eng.Transport, logger)
	if err != nil {
		logger.Error("open midi device", "err", err)
		return exitDeviceNotFound
	}
	eng.Attach(midi)

	if err := eng.Start(); err != nil {
		logger.Error("start engine", "err", err)
		return exitDeviceNotFound
	}

	status := &ui.Status{
		Out:       os.Stdout,
		Transport: eng.Transport,
		Tracks:    eng.Tracks,
		Counters: ui.Counters{
			TrackDropped:   eng.TrackQueue.Dropped,
			MonitorDropped: eng.MonitorQueue.Dropped,
			MixDropped:     eng.MixQueue.Dropped,
		},
	}
	stop := make(chan struct{})
	go status.Run(stop)

	waitForShutdown()
	close(stop)

	if err := eng.Stop(); err != nil {
		logger.Error("stop engine", "err", err)
	}
	return exitOK
}

func waitForShutdown() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
}

func parseMonitorChannels(s string) (start, end int, err error) {
	var a, b int
	if _, err := fmt.Sscanf(s, "%d-%d", &a, &b); err != nil {
		return 0, 0, fmt.Errorf("expected format A-B, got %q", s)
	}
	if b != a+1 {
		return 0, 0, fmt.Errorf("monitor channels must be adjacent (A-B with B=A+1), got %q", s)
	}
	return a - 1, b - 1, nil
}

func listDevicesAndExit(host device.Host, logger *log.Logger) int {
	infos, err := host.Devices()
	if err != nil {
		logger.Error("enumerate devices", "err", err)
		return exitDeviceNotFound
	}
	for _, info := range infos {
		fmt.Printf("%d: %s (in=%d out=%d, default rate %.0f Hz)\n",
			info.Index, info.Name, info.MaxInputChannels, info.MaxOutputChannels, info.DefaultSampleRate)
	}
	return exitOK
}

func applyTrackDefaults(eng *engine.Engine, cfg *config.Config) {
	for i, t := range eng.Tracks {
		d := cfg.TrackFor(i + 1)
		t.SetArm(d.Arm)
		t.SetMonitor(d.Monitor)
		t.SetSolo(d.Solo)
		t.SetLevel(d.Level)
		t.SetPan(d.Pan)
	}
}

func applyPlaybackDefaults(eng *engine.Engine, cfg *config.Config) {
	for i, src := range eng.Playback {
		if i >= len(cfg.Audio) {
			break
		}
		entry := cfg.Audio[i]
		src.SetMonitor(entry.Monitor)
		src.SetSolo(entry.Solo)
		if entry.Level != 0 {
			src.SetLevel(entry.Level)
		}
		src.SetPan(entry.Pan)
	}
}
