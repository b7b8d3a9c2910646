// go-e310
// Copyright (c) 2025 The PARP Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-e310.
//
// go-e310 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-e310 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-e310; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package uart provides the serial byte channel to an E310 module.
package uart

import (
	"errors"
	"fmt"
	"time"

	e310 "github.com/parp-project/go-e310"
	"go.bug.st/serial"
)

const (
	// defaultBaudRate is the E310 factory baud rate.
	defaultBaudRate = 115200

	// readPollTimeout bounds each Read so the driver's await loop can
	// interleave deadline checks. A timed-out Read returns 0 bytes
	// with no error.
	readPollTimeout = 5 * time.Millisecond
)

// Transport implements the e310.Transport byte channel over a serial
// port.
type Transport struct {
	port      serial.Port
	portName  string
	baudRate  int
	connected bool
}

// Option configures a Transport before Open.
type Option func(*Transport)

// WithBaudRate overrides the default baud rate of 115200.
func WithBaudRate(baud int) Option {
	return func(t *Transport) {
		t.baudRate = baud
	}
}

// New creates a serial transport for the named port. The port is not
// opened until Open is called.
func New(portName string, opts ...Option) (*Transport, error) {
	if portName == "" {
		return nil, errors.New("empty port name")
	}
	t := &Transport{
		portName: portName,
		baudRate: defaultBaudRate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// PortName returns the serial port path.
func (t *Transport) PortName() string {
	return t.portName
}

// Open opens the serial port at 8N1 and drains any stale bytes from
// the input buffer.
func (t *Transport) Open() error {
	mode := &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(t.portName, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", t.portName, err)
	}

	if err := port.SetReadTimeout(readPollTimeout); err != nil {
		_ = port.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", t.portName, err)
	}

	// Stale bytes from a previous session would desync frame
	// reassembly.
	_ = port.ResetInputBuffer()

	t.port = port
	t.connected = true
	return nil
}

// Close closes the serial port.
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	t.connected = false
	if err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// Write sends p to the module.
func (t *Transport) Write(p []byte) (int, error) {
	if t.port == nil {
		return 0, e310.ErrNotConnected
	}
	n, err := t.port.Write(p)
	if err != nil {
		t.connected = false
		return n, fmt.Errorf("serial write on %s: %w", t.portName, err)
	}
	return n, nil
}

// Read returns whatever bytes are available within the poll timeout,
// possibly zero.
func (t *Transport) Read(p []byte) (int, error) {
	if t.port == nil {
		return 0, e310.ErrNotConnected
	}
	n, err := t.port.Read(p)
	if err != nil {
		t.connected = false
		return n, fmt.Errorf("serial read on %s: %w", t.portName, err)
	}
	return n, nil
}

// Available always returns 0: go.bug.st/serial exposes no input buffer
// count, and the driver treats Available as advisory only.
func (*Transport) Available() int {
	return 0
}

// IsConnected returns true if the port is open and usable.
func (t *Transport) IsConnected() bool {
	return t.port != nil && t.connected
}

// Type returns the transport type
func (*Transport) Type() e310.TransportType {
	return e310.TransportUART
}
