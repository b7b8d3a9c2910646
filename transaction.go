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
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/parp-project/go-e310/internal/frame"
)

// pollYield is the pause between unsuccessful polls of the byte
// channel, so the await loop never busy-spins.
const pollYield = time.Millisecond

// Stats holds the transaction counters for one Device. Counters only
// grow for the lifetime of the Device; they are never reset.
type Stats struct {
	// CommandCount is incremented exactly once per transaction,
	// regardless of outcome.
	CommandCount uint64
	// ErrorCount is incremented once per failed transaction.
	ErrorCount uint64
}

// ErrorRate returns ErrorCount/CommandCount, or 0 before the first
// command.
func (s Stats) ErrorRate() float64 {
	if s.CommandCount == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.CommandCount)
}

func (d *Device) recordError() {
	d.stats.ErrorCount++
}

// transact runs one send-then-await exchange: write the encoded frame,
// then accumulate response bytes until the declared frame length is
// buffered or the deadline expires. The returned slice is exactly one
// complete, undecoded response frame.
func (d *Device) transact(ctx context.Context, frm []byte, timeout time.Duration) ([]byte, error) {
	d.stats.CommandCount++
	port := string(d.transport.Type())

	d.config.Logger.Debugf("TX: %s", hex.EncodeToString(frm))
	n, err := d.transport.Write(frm)
	if err != nil {
		d.recordError()
		d.config.Logger.Errorf("send failed: %v", err)
		return nil, NewTransportError("write", port, fmt.Errorf("%w: %w", ErrTransportWrite, err), ErrorTypeTransient)
	}
	if n == 0 {
		d.recordError()
		d.config.Logger.Errorf("send failed: channel accepted 0 bytes")
		return nil, NewTransportError("write", port, ErrTransportWrite, ErrorTypeTransient)
	}

	raw, err := d.awaitResponse(ctx, time.Now().Add(timeout))
	if err != nil {
		d.recordError()
		return nil, err
	}
	d.config.Logger.Debugf("RX: %s", hex.EncodeToString(raw))
	return raw, nil
}

// awaitResponse assembles one response frame from a channel whose
// chunking and timing are unpredictable. The first buffered byte is
// the declared total frame length; assembly completes when that many
// bytes are buffered.
func (d *Device) awaitResponse(ctx context.Context, deadline time.Time) ([]byte, error) {
	port := string(d.transport.Type())
	buf := make([]byte, 0, frame.MaxFrameLength)
	chunk := make([]byte, frame.MaxFrameLength)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting response: %w", ctx.Err())
		default:
		}

		n, err := d.transport.Read(chunk)
		if err != nil {
			return nil, NewTransportError("read", port, fmt.Errorf("%w: %w", ErrTransportRead, err), ErrorTypeTransient)
		}
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if complete, frm := assembled(buf); complete {
				return frm, nil
			}
			// More bytes may already be pending; poll again
			// without yielding.
			continue
		}

		if time.Now().After(deadline) {
			d.config.Logger.Warnf("response timeout with %d bytes buffered", len(buf))
			return nil, NewTimeoutError("awaitResponse", port)
		}
		time.Sleep(pollYield)
	}
}

// assembled reports whether buf holds at least the number of bytes its
// leading length byte declares, and returns that prefix. A declared
// length below the structural minimum completes immediately and is
// left for the decoder to reject.
func assembled(buf []byte) (bool, []byte) {
	if len(buf) == 0 {
		return false, nil
	}
	want := int(buf[0])
	if want < frame.MinResponseLength {
		return true, buf
	}
	if len(buf) >= want {
		return true, buf[:want]
	}
	return false, nil
}
