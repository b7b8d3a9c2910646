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
	"errors"
	"fmt"
)

// Validation errors returned by the frame builders. All of them wrap
// ErrInvalidParameter so callers can classify with errors.Is.
var (
	ErrInvalidParameter = errors.New("invalid parameter")

	ErrAddressOutOfRange = fmt.Errorf("%w: reader address out of range", ErrInvalidParameter)
	ErrBankOutOfRange    = fmt.Errorf("%w: memory bank out of range", ErrInvalidParameter)
	ErrOddDataLength     = fmt.Errorf("%w: write data must be word-aligned (multiple of 2 bytes)", ErrInvalidParameter)
	ErrDataTooLarge      = fmt.Errorf("%w: write data exceeds maximum frame length", ErrInvalidParameter)
)

// BuildInventory encodes a tag inventory command:
//
//	[0x05][addr][0x01][crc_lo][crc_hi]
func BuildInventory(addr byte) ([]byte, error) {
	if addr > MaxAddress {
		return nil, ErrAddressOutOfRange
	}
	frm := []byte{0x05, addr, CmdInventory}
	return AppendChecksum(frm), nil
}

// BuildReadMemory encodes a tag memory read command:
//
//	[13][addr][0x02][bank][ptr_hi][ptr_lo][count][pwd_b3..b0][crc_lo][crc_hi]
//
// The word pointer and access password are big-endian.
func BuildReadMemory(addr, bank byte, wordPtr uint16, wordCount byte, password uint32) ([]byte, error) {
	if addr > MaxAddress {
		return nil, ErrAddressOutOfRange
	}
	if bank > MaxBank {
		return nil, ErrBankOutOfRange
	}
	frm := make([]byte, 0, 13)
	frm = append(frm, 13, addr, CmdReadMemory, bank)
	frm = binary.BigEndian.AppendUint16(frm, wordPtr)
	frm = append(frm, wordCount)
	frm = binary.BigEndian.AppendUint32(frm, password)
	return AppendChecksum(frm), nil
}

// BuildWriteMemory encodes a tag memory write command:
//
//	[len][addr][0x03][bank][ptr_hi][ptr_lo][count][data...][pwd_b3..b0][crc_lo][crc_hi]
//
// data must be word-aligned (even length); the word count field is
// derived as len(data)/2. Validation happens before any bytes are
// emitted.
func BuildWriteMemory(addr, bank byte, wordPtr uint16, data []byte, password uint32) ([]byte, error) {
	if addr > MaxAddress {
		return nil, ErrAddressOutOfRange
	}
	if bank > MaxBank {
		return nil, ErrBankOutOfRange
	}
	if len(data)%2 != 0 {
		return nil, ErrOddDataLength
	}
	length := 8 + len(data) + 4 + 2
	if length > MaxFrameLength {
		return nil, ErrDataTooLarge
	}
	frm := make([]byte, 0, length)
	frm = append(frm, byte(length), addr, CmdWriteMemory, bank)
	frm = binary.BigEndian.AppendUint16(frm, wordPtr)
	frm = append(frm, byte(len(data)/2))
	frm = append(frm, data...)
	frm = binary.BigEndian.AppendUint32(frm, password)
	return AppendChecksum(frm), nil
}

// BuildKillTag encodes a kill command:
//
//	[8][addr][0x05][killPwd_b3..b0][crc_lo][crc_hi]
func BuildKillTag(addr byte, killPassword uint32) ([]byte, error) {
	if addr > MaxAddress {
		return nil, ErrAddressOutOfRange
	}
	frm := make([]byte, 0, 9)
	frm = append(frm, 8, addr, CmdKillTag)
	frm = binary.BigEndian.AppendUint32(frm, killPassword)
	return AppendChecksum(frm), nil
}
