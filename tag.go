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
	"encoding/hex"
	"fmt"
	"time"
)

// Tag is one tag observed during inventory. Immutable once returned;
// the caller owns it.
type Tag struct {
	// DetectedAt is when the inventory response carrying this tag was
	// decoded.
	DetectedAt time.Time
	// EPC is the tag's Electronic Product Code, variable length.
	EPC []byte
	// RSSI is the received signal strength byte as reported by the
	// module. The module documentation does not state signedness, so
	// the raw byte is preserved.
	RSSI byte
	// Antenna is the antenna number that observed the tag.
	Antenna byte
}

// EPCString returns the EPC as a lowercase hex string.
func (t *Tag) EPCString() string {
	return hex.EncodeToString(t.EPC)
}

func (t *Tag) String() string {
	return fmt.Sprintf("Tag(EPC: %s, RSSI: %d)", t.EPCString(), t.RSSI)
}
