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

package e310

// Transport is the raw byte channel to the reader module. The driver
// owns all framing; a transport only moves bytes.
//
// The Device is the sole reader and writer of a transport instance. A
// transport is not required to be safe for concurrent use.
type Transport interface {
	// Open prepares the channel for use.
	Open() error

	// Close releases the channel.
	Close() error

	// Write sends p and returns the number of bytes accepted. A
	// return of 0 with a nil error signals a dead or disconnected
	// channel.
	Write(p []byte) (int, error)

	// Read is non-blocking: it returns immediately with whatever
	// bytes are available, up to len(p), possibly zero.
	Read(p []byte) (int, error)

	// Available returns the number of bytes pending, if the channel
	// can tell. Implementations without buffer introspection return
	// 0; the driver treats this as advisory only.
	Available() int

	// IsConnected returns true if the transport is open and usable.
	IsConnected() bool

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
