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

package frame

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
)

// The module uses CRC-16/CCITT-FALSE: init 0xFFFF, polynomial 0x1021,
// no reflection, no final XOR.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Checksum returns the frame checksum over data.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

// AppendChecksum appends the little-endian checksum trailer to frm and
// returns the complete frame.
func AppendChecksum(frm []byte) []byte {
	return binary.LittleEndian.AppendUint16(frm, Checksum(frm))
}

// VerifyChecksum reports whether the trailing two bytes of frm match
// the checksum recomputed over the preceding bytes. Frames too short to
// carry a trailer never verify.
func VerifyChecksum(frm []byte) bool {
	if len(frm) < MinVerifyLength {
		return false
	}
	want := binary.LittleEndian.Uint16(frm[len(frm)-2:])
	return Checksum(frm[:len(frm)-2]) == want
}
