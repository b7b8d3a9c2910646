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

import (
	"sync"
	"time"
)

// MockTransport is a scripted byte channel for testing. Responses are
// queued per written frame, and delivery can be chunked and delayed to
// exercise incremental reassembly under a deadline.
type MockTransport struct {
	// ResponseFunc, when set, produces the response bytes for each
	// written frame instead of the queued responses.
	ResponseFunc func(request []byte) []byte

	mu            sync.Mutex
	responses     [][]byte
	rx            []byte
	writes        [][]byte
	writeErr      error
	readErr       error
	chunkSize     int
	responseDelay time.Duration
	readyAt       time.Time
	failWrites    bool
	opened        bool
	closed        bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// QueueResponse queues one response frame to be made readable after
// the next write.
func (m *MockTransport) QueueResponse(frm []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, append([]byte(nil), frm...))
}

// SetChunkSize limits how many bytes each Read returns, simulating a
// slow or fragmented channel. Zero means unlimited.
func (m *MockTransport) SetChunkSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunkSize = n
}

// SetResponseDelay delays response availability after each write.
func (m *MockTransport) SetResponseDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseDelay = d
}

// FailWrites makes Write accept zero bytes, simulating a dead channel.
func (m *MockTransport) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// SetWriteError makes Write return err.
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetReadError makes Read return err.
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Writes returns every frame written so far.
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	writes := make([][]byte, len(m.writes))
	copy(writes, m.writes)
	return writes
}

// Open marks the transport connected.
func (m *MockTransport) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = true
	m.closed = false
	return nil
}

// Close marks the transport disconnected.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Write records the frame and stages the next response.
func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return 0, m.writeErr
	}
	if m.failWrites {
		return 0, nil
	}

	request := append([]byte(nil), p...)
	m.writes = append(m.writes, request)

	switch {
	case m.ResponseFunc != nil:
		m.rx = append(m.rx, m.ResponseFunc(request)...)
	case len(m.responses) > 0:
		m.rx = append(m.rx, m.responses[0]...)
		m.responses = m.responses[1:]
	}
	m.readyAt = time.Now().Add(m.responseDelay)

	return len(p), nil
}

// Read returns staged response bytes, honoring the configured chunk
// size and delay.
func (m *MockTransport) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.rx) == 0 || time.Now().Before(m.readyAt) {
		return 0, nil
	}

	n := len(m.rx)
	if m.chunkSize > 0 && n > m.chunkSize {
		n = m.chunkSize
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, m.rx[:n])
	m.rx = m.rx[n:]
	return n, nil
}

// Available returns the number of staged bytes.
func (m *MockTransport) Available() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Now().Before(m.readyAt) {
		return 0
	}
	return len(m.rx)
}

// IsConnected returns true after Open until Close.
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened && !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}
