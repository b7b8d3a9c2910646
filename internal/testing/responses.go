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

// Package testing provides response frame builders and a virtual
// reader module for tests.
package testing

import "github.com/parp-project/go-e310/internal/frame"

// TagData describes one tag entry for BuildInventoryResponse.
type TagData struct {
	EPC  []byte
	RSSI byte
}

// BuildStatusResponse creates a payload-free response frame with the
// given status byte and a valid checksum.
func BuildStatusResponse(addr, cmd, status byte) []byte {
	return buildFrame(addr, cmd, status, nil)
}

// BuildReadResponse creates a successful read-memory response carrying
// data as its payload.
func BuildReadResponse(addr byte, data []byte) []byte {
	return buildFrame(addr, frame.CmdReadMemory, frame.StatusOK, data)
}

// BuildInventoryResponse creates an inventory response with the given
// status and tag list.
func BuildInventoryResponse(addr, antenna, status byte, tags ...TagData) []byte {
	payload := []byte{antenna, byte(len(tags))}
	for _, tag := range tags {
		payload = append(payload, byte(len(tag.EPC)))
		payload = append(payload, tag.EPC...)
		payload = append(payload, tag.RSSI)
	}
	return buildFrame(addr, frame.CmdInventory, status, payload)
}

func buildFrame(addr, cmd, status byte, payload []byte) []byte {
	frm := make([]byte, 0, 4+len(payload)+2)
	frm = append(frm, byte(4+len(payload)+2), addr, cmd, status)
	frm = append(frm, payload...)
	return frame.AppendChecksum(frm)
}
