// Package midilisten reads MIDI real-time transport bytes from a
// hardware input port and drives the shared transport state machine
// (C9). It runs on its own ordinary thread, blocks on the MIDI port,
// and never touches an audio queue.
package midilisten

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters the driver

	"github.com/stems-audio/stems/internal/transport"
)

const (
	byteClock = 0xF8
	byteStart = 0xFA
	byteStop  = 0xFC
)

// Listener owns one open MIDI input port and applies Start/Stop/Clock
// messages to a Transport. All other message types are ignored.
type Listener struct {
	Transport *transport.Transport
	Logger    *log.Logger

	portName string
	stopFn   func()
}

// Open resolves a MIDI input port by name (substring match); an empty
// name selects the first available input port. A numeric string is
// matched against port names like any other text, not taken as a port
// number. The listener does not start receiving until Start is called.
func Open(nameOrIndex string, tr *transport.Transport, logger *log.Logger) (*Listener, error) {
	in, err := midi.FindInPort(nameOrIndex)
	if err != nil {
		return nil, fmt.Errorf("midilisten: find input port %q: %w", nameOrIndex, err)
	}
	return &Listener{
		Transport: tr,
		Logger:    logger,
		portName:  in.String(),
	}, nil
}

// Start begins listening. Recognized real-time bytes (0xF8 clock,
// 0xFA start, 0xFC stop) drive the transport per the transition
// table; every other message is dropped on the floor.
func (l *Listener) Start() error {
	in, err := midi.FindInPort(l.portName)
	if err != nil {
		return fmt.Errorf("midilisten: reopen port %q: %w", l.portName, err)
	}
	stop, err := midi.ListenTo(in, l.handle, midi.ListenConfig{})
	if err != nil {
		return fmt.Errorf("midilisten: listen on %q: %w", l.portName, err)
	}
	l.stopFn = stop
	return nil
}

func (l *Listener) handle(msg midi.Message, _ int32) {
	raw := msg.Bytes()
	if len(raw) == 0 {
		return
	}
	switch raw[0] {
	case byteStart:
		l.Transport.Start()
	case byteClock:
		l.Transport.Clock()
	case byteStop:
		l.Transport.Stop()
	}
}

// Stop disconnects from the MIDI port. Safe to call even if Start
// failed or was never called.
func (l *Listener) Stop() {
	if l.stopFn != nil {
		l.stopFn()
		l.stopFn = nil
	}
}

// Reconnect closes the current connection (if any) and reopens the
// same named port, best-effort, in a single attempt; the transport is
// left in whatever state it was in. Nothing in this package detects a
// port disappearing or calls Reconnect on its own.
func (l *Listener) Reconnect() error {
	l.Stop()
	if err := l.Start(); err != nil {
		l.Logger.Error("midi reconnect failed", "port", l.portName, "err", err)
		return err
	}
	l.Logger.Info("midi reconnected", "port", l.portName)
	return nil
}
