package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/stems-audio/stems/internal/audio"
	"github.com/stems-audio/stems/internal/device"
	"github.com/stems-audio/stems/internal/playback"
	"github.com/stems-audio/stems/internal/queue"
	"github.com/stems-audio/stems/internal/track"
	"github.com/stems-audio/stems/internal/transport"
	"github.com/stems-audio/stems/internal/writer"
)

// framesPerBuffer is C10 step 5's target buffer size: 256 frames where
// the host honors it.
const framesPerBuffer = 256

// Options configures Engine assembly (C10).
type Options struct {
	AudioDevice   string // name substring or index; "" = system default
	MonitorStart  int    // 0-indexed
	MonitorEnd    int    // must equal MonitorStart+1
	SampleDir     string // directory writer workers write into
	PlaybackFiles []string
	MixArmed      bool
}

// MIDIListener is the capability Engine needs from the MIDI transport
// source (internal/midilisten.Listener satisfies this). Opening the
// port is the caller's job - the listener handed in must already be
// bound to the Engine's Transport - so New never touches MIDI hardware
// and is safe to construct in a test with a fake one.
type MIDIListener interface {
	Start() error
	Stop()
}

type noopMIDIListener struct{}

func (noopMIDIListener) Start() error { return nil }
func (noopMIDIListener) Stop()        {}

// Engine owns every component wired together at startup and torn down
// on Stop: the device streams, tracks, playback sources, transport,
// queues, writer workers and MIDI listener.
type Engine struct {
	Transport *transport.Transport
	Tracks    []*track.Track
	Playback  []*playback.Source
	MixArm    *MixArmFlag

	TrackQueue   *queue.SPSC[audio.RecordedSample]
	MonitorQueue *queue.SPSC[audio.StereoFrame]
	MixQueue     *queue.SPSC[audio.StereoFrame]

	host   device.Host
	cfg    device.Config
	input  *Input
	output *Output

	trackWriter *writer.TrackWriter
	mixWriter   *writer.MixWriter
	midi        MIDIListener

	cancel context.CancelFunc
	logger *log.Logger
}

// New performs C10 steps 1-5: resolves the device, queries channel
// counts and sample rate, pre-allocates tracks/playback/queues, and
// opens the streams. It does not start them or the MIDI listener -
// call Attach then Start for that.
func New(host device.Host, opts Options, logger *log.Logger) (*Engine, error) {
	devices, err := host.Devices()
	if err != nil {
		return nil, fmt.Errorf("engine: enumerate devices: %w", err)
	}
	def, err := host.DefaultInput()
	if err != nil {
		return nil, fmt.Errorf("engine: default input: %w", err)
	}
	defOut, err := host.DefaultOutput()
	if err != nil {
		return nil, fmt.Errorf("engine: default output: %w", err)
	}

	inInfo, err := device.Resolve(devices, opts.AudioDevice, def)
	if err != nil {
		return nil, fmt.Errorf("engine: resolve input device: %w", err)
	}
	outInfo, err := device.Resolve(devices, opts.AudioDevice, defOut)
	if err != nil {
		return nil, fmt.Errorf("engine: resolve output device: %w", err)
	}

	if err := device.ValidateMonitorChannels(opts.MonitorStart, opts.MonitorEnd, outInfo.MaxOutputChannels); err != nil {
		return nil, err
	}

	cfg := device.Config{
		Input:           inInfo,
		Output:          outInfo,
		FramesPerBuffer: framesPerBuffer,
	}
	cfg.SampleRate = device.PreferredSampleRate(host, cfg)

	numTracks := inInfo.MaxInputChannels
	tracks := make([]*track.Track, numTracks)
	for i := range tracks {
		tracks[i] = track.New()
	}

	playbackSources := make([]*playback.Source, 0, len(opts.PlaybackFiles))
	for _, f := range opts.PlaybackFiles {
		src, err := playback.DecodeFile(f)
		if err != nil {
			return nil, fmt.Errorf("engine: load playback file: %w", err)
		}
		playbackSources = append(playbackSources, src)
	}

	sampleRate := int(cfg.SampleRate)
	trackQueue := queue.New[audio.RecordedSample](sampleRate * 10 * max(numTracks, 1))
	// Monitor/mix capacities are specified as f32 sample counts (stereo
	// interleaved); a StereoFrame already holds 2 of those, so the
	// element count here is half the spec's sample count.
	monitorQueue := queue.New[audio.StereoFrame](int(cfg.SampleRate * 0.050))
	mixQueue := queue.New[audio.StereoFrame](sampleRate * 5)

	tr := transport.New()
	tr.OnArm(func() {
		for _, p := range playbackSources {
			p.Reset()
		}
	})
	mixArm := &MixArmFlag{}
	mixArm.Set(opts.MixArmed)

	input := &Input{
		Tracks:       tracks,
		Playback:     playbackSources,
		Transport:    tr,
		TrackQueue:   trackQueue,
		MonitorQueue: monitorQueue,
		MixQueue:     mixQueue,
		MixArm:       mixArm,
	}
	output := &Output{
		MonitorQueue: monitorQueue,
		MonitorStart: opts.MonitorStart,
		MonitorEnd:   opts.MonitorEnd,
	}

	if err := host.Open(cfg, input.Process, output.Process); err != nil {
		return nil, fmt.Errorf("engine: open streams: %w", err)
	}

	e := &Engine{
		Transport:    tr,
		Tracks:       tracks,
		Playback:     playbackSources,
		MixArm:       mixArm,
		TrackQueue:   trackQueue,
		MonitorQueue: monitorQueue,
		MixQueue:     mixQueue,
		host:         host,
		cfg:          cfg,
		input:        input,
		output:       output,
		trackWriter:  writer.NewTrackWriter(trackQueue, tr, sampleRate, numTracks, opts.SampleDir, logger),
		mixWriter:    writer.NewMixWriter(mixQueue, tr, sampleRate, opts.SampleDir, logger),
		midi:         noopMIDIListener{},
		logger:       logger,
	}
	return e, nil
}

// Attach wires an already-opened MIDI listener (internal/midilisten.Open)
// into the engine; it is started and stopped alongside the rest of the
// engine's workers. Without a call to Attach the engine runs with no
// MIDI source and the transport never leaves Idle.
func (e *Engine) Attach(midi MIDIListener) {
	e.midi = midi
}

// Start spawns the writer workers and MIDI listener and starts the
// device streams (C10 steps 6-7, in that order so no sample is
// dropped on a cold consumer).
func (e *Engine) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	go e.trackWriter.Run(ctx)
	go e.mixWriter.Run(ctx)

	if err := e.midi.Start(); err != nil {
		cancel()
		return fmt.Errorf("engine: start midi listener: %w", err)
	}
	if err := e.host.Start(); err != nil {
		cancel()
		return fmt.Errorf("engine: start streams: %w", err)
	}
	return nil
}

// Stop performs shutdown in reverse order: transport to Idle, stop
// streams, signal workers to drain and exit, release the device.
func (e *Engine) Stop() error {
	e.Transport.Shutdown()
	streamErr := e.host.Stop()
	e.midi.Stop()
	if e.cancel != nil {
		e.cancel()
	}
	if err := e.host.Close(); err != nil {
		return fmt.Errorf("engine: close device: %w", err)
	}
	return streamErr
}
