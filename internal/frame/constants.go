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

// Package frame implements the E310 serial frame codec: checksum
// computation, command frame encoding and response frame decoding.
package frame

import "fmt"

// Command codes
const (
	CmdInventory   = 0x01 // Tag inventory
	CmdReadMemory  = 0x02 // Read tag memory bank
	CmdWriteMemory = 0x03 // Write tag memory bank
	CmdKillTag     = 0x05 // Permanently disable a tag
)

// Frame size limits
const (
	MaxFrameLength    = 255 // Length field is a single byte
	MinVerifyLength   = 3   // Smallest frame a checksum trailer can fit in
	MinResponseLength = 5   // Len + Adr + reCmd + Status + CRC16
)

// MaxAddress is the highest assignable reader address. 0xFF is the
// broadcast address per module convention and is rejected by the
// builders, since a broadcast would solicit responses from every reader
// on a shared bus.
const MaxAddress = 0xFE

// MaxBank is the highest tag memory bank (user bank).
const MaxBank = 0x03

// Response status codes
const (
	StatusOK                = 0x00
	StatusCommandFailed     = 0x01
	StatusNoTags            = 0x02
	StatusMoreFrames        = 0x03 // More data follows in subsequent frames
	StatusKillFailed        = 0x04
	StatusFrameError        = 0x05
	StatusCRCError          = 0x06
	StatusMemoryOutOfRange  = 0x07
	StatusPasswordError     = 0x08
	StatusParameterError    = 0x09
	StatusMemoryLocked      = 0x0A
	StatusInsufficientPower = 0x0B
	StatusTimeout           = 0x0C
)

var statusText = map[byte]string{
	StatusCommandFailed:     "command execution failed",
	StatusNoTags:            "inventory failed (no tags)",
	StatusMoreFrames:        "more data in following frames",
	StatusKillFailed:        "kill failed",
	StatusFrameError:        "frame error",
	StatusCRCError:          "CRC error",
	StatusMemoryOutOfRange:  "memory out of range",
	StatusPasswordError:     "access password error",
	StatusParameterError:    "parameter error",
	StatusMemoryLocked:      "memory locked",
	StatusInsufficientPower: "insufficient power",
	StatusTimeout:           "timeout",
}

// StatusText returns the module's description for a status code.
// Unrecognized codes render as a generic message carrying the code.
func StatusText(status byte) string {
	if s, ok := statusText[status]; ok {
		return s
	}
	return fmt.Sprintf("unknown error (0x%02x)", status)
}
