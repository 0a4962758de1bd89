package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudioHost is the Host implementation backed by
// github.com/gordonklaus/portaudio. Initialize/Terminate bracket the
// process-wide PortAudio runtime; Open/Start/Stop/Close operate on one
// pair of input/output streams.
type PortAudioHost struct {
	stream *portaudio.Stream
	cfg    Config

	// scratch buffers sized in Open from FramesPerBuffer and the
	// channel counts. The callback does not use them: it hands
	// PortAudio's own in/out slices to the registered callbacks.
	inBuf  []float32
	outBuf []float32

	inCB  InputCallback
	outCB OutputCallback
}

// NewPortAudioHost initializes the PortAudio runtime. Call Close to
// terminate it.
func NewPortAudioHost() (*PortAudioHost, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("device: portaudio init: %w", err)
	}
	return &PortAudioHost{}, nil
}

func toInfo(idx int, d *portaudio.DeviceInfo) Info {
	return Info{
		Index:              idx,
		Name:               d.Name,
		MaxInputChannels:   d.MaxInputChannels,
		MaxOutputChannels:  d.MaxOutputChannels,
		DefaultSampleRate:  d.DefaultSampleRate,
		DefaultLowLatency:  d.DefaultLowInputLatency,
		DefaultHighLatency: d.DefaultHighInputLatency,
	}
}

func (h *PortAudioHost) Devices() ([]Info, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("device: enumerate: %w", err)
	}
	infos := make([]Info, len(devices))
	for i, d := range devices {
		infos[i] = toInfo(i, d)
	}
	return infos, nil
}

func (h *PortAudioHost) DefaultInput() (Info, error) {
	d, err := portaudio.DefaultInputDevice()
	if err != nil {
		return Info{}, fmt.Errorf("device: default input: %w", err)
	}
	return toInfo(-1, d), nil
}

func (h *PortAudioHost) DefaultOutput() (Info, error) {
	d, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return Info{}, fmt.Errorf("device: default output: %w", err)
	}
	return toInfo(-1, d), nil
}

func (h *PortAudioHost) SupportsSampleRate(cfg Config, rate float64) bool {
	devices, err := portaudio.Devices()
	if err != nil {
		return false
	}
	inDev, outDev := resolve(devices, cfg.Input.Index), resolve(devices, cfg.Output.Index)
	if inDev == nil || outDev == nil {
		return false
	}
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   inDev,
			Channels: cfg.Input.MaxInputChannels,
			Latency:  inDev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   outDev,
			Channels: cfg.Output.MaxOutputChannels,
			Latency:  outDev.DefaultLowOutputLatency,
		},
		SampleRate: rate,
	}
	return portaudio.IsFormatSupported(params) == nil
}

func resolve(devices []*portaudio.DeviceInfo, idx int) *portaudio.DeviceInfo {
	if idx < 0 || idx >= len(devices) {
		return nil
	}
	return devices[idx]
}

// Open configures a duplex stream at cfg.FramesPerBuffer / cfg.SampleRate
// and wires the given callbacks to pre-allocated scratch buffers.
func (h *PortAudioHost) Open(cfg Config, in InputCallback, out OutputCallback) error {
	devices, err := portaudio.Devices()
	if err != nil {
		return fmt.Errorf("device: enumerate: %w", err)
	}
	inDev, outDev := resolve(devices, cfg.Input.Index), resolve(devices, cfg.Output.Index)
	if inDev == nil || outDev == nil {
		return fmt.Errorf("device: resolve input/output device indices %d/%d", cfg.Input.Index, cfg.Output.Index)
	}

	h.cfg = cfg
	h.inCB, h.outCB = in, out
	h.inBuf = make([]float32, cfg.FramesPerBuffer*cfg.Input.MaxInputChannels)
	h.outBuf = make([]float32, cfg.FramesPerBuffer*cfg.Output.MaxOutputChannels)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   inDev,
			Channels: cfg.Input.MaxInputChannels,
			Latency:  inDev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   outDev,
			Channels: cfg.Output.MaxOutputChannels,
			Latency:  outDev.DefaultLowOutputLatency,
		},
		SampleRate:      cfg.SampleRate,
		FramesPerBuffer: cfg.FramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, h.callback)
	if err != nil {
		return fmt.Errorf("device: open stream: %w", err)
	}
	h.stream = stream
	return nil
}

// callback is the single PortAudio duplex callback registered at Open
// time. It passes PortAudio's own in/out slices straight to the
// registered callbacks and performs no allocation, lock, or I/O.
func (h *PortAudioHost) callback(in, out []float32) {
	numFrames := len(in) / h.cfg.Input.MaxInputChannels
	if h.inCB != nil {
		h.inCB(in, numFrames, h.cfg.Input.MaxInputChannels)
	}
	if h.outCB != nil {
		outFrames := len(out) / h.cfg.Output.MaxOutputChannels
		h.outCB(out, outFrames, h.cfg.Output.MaxOutputChannels)
	}
}

func (h *PortAudioHost) Start() error {
	if h.stream == nil {
		return fmt.Errorf("device: start: stream not open")
	}
	return h.stream.Start()
}

func (h *PortAudioHost) Stop() error {
	if h.stream == nil {
		return nil
	}
	return h.stream.Stop()
}

func (h *PortAudioHost) Close() error {
	if h.stream != nil {
		if err := h.stream.Close(); err != nil {
			return fmt.Errorf("device: close stream: %w", err)
		}
		h.stream = nil
	}
	return portaudio.Terminate()
}
