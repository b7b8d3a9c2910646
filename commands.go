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

// MemoryBank identifies one of the four logical storage regions on a
// Gen2 tag.
type MemoryBank byte

// Tag memory banks
const (
	BankReserved MemoryBank = 0x00 // Kill and access passwords
	BankEPC      MemoryBank = 0x01 // EPC code and protocol control
	BankTID      MemoryBank = 0x02 // Tag identifier, read-only
	BankUser     MemoryBank = 0x03 // Free-form user memory
)

func (b MemoryBank) String() string {
	switch b {
	case BankReserved:
		return "reserved"
	case BankEPC:
		return "epc"
	case BankTID:
		return "tid"
	case BankUser:
		return "user"
	default:
		return "unknown"
	}
}

// WordSize is the tag memory word size in bytes. All memory access is
// word-addressed.
const WordSize = 2
