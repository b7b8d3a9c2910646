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
	"bytes"
	"errors"
	"fmt"
)

// Decode errors
var (
	ErrFrameTooShort    = errors.New("frame too short")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Response is a decoded response frame header with its raw payload.
type Response struct {
	Payload []byte
	Length  byte
	Address byte
	Command byte // Echoed command code
	Status  byte
}

// OK reports whether the module signalled success.
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

// StatusError returns the module's description for a failure status, or
// "" on success.
func (r *Response) StatusError() string {
	if r.Status == StatusOK {
		return ""
	}
	return StatusText(r.Status)
}

// TagReport is one tag observation from an inventory response payload.
type TagReport struct {
	EPC  []byte
	RSSI byte
}

// Inventory is a decoded inventory response. Tags preserve the order
// they appeared in the payload.
type Inventory struct {
	Response
	Tags    []TagReport
	Antenna byte
	ok      bool
}

// OK reports whether the inventory succeeded. Status 0x03 ("more data
// in following frames") counts as a successful partial batch when the
// frame carried a payload.
func (i *Inventory) OK() bool {
	return i.ok
}

// ReadResult is a decoded read-memory response. Data is the payload
// verbatim on success, empty otherwise.
type ReadResult struct {
	Response
	Data []byte
}

// Parse decodes a complete response frame:
//
//	[len][addr][reCmd][status][payload...][crc_lo][crc_hi]
//
// verifyChecksum may be disabled for frames captured from a trace where
// the trailer was already validated.
func Parse(data []byte, verifyChecksum bool) (*Response, error) {
	if len(data) < MinResponseLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrFrameTooShort, len(data), MinResponseLength)
	}
	if verifyChecksum && !VerifyChecksum(data) {
		return nil, fmt.Errorf("%w: frame %x", ErrChecksumMismatch, data)
	}
	return &Response{
		Length:  data[0],
		Address: data[1],
		Command: data[2],
		Status:  data[3],
		Payload: bytes.Clone(data[4 : len(data)-2]),
	}, nil
}

// ParseInventory decodes an inventory response. The payload layout is
//
//	[antenna][tagCount] then tagCount * [epcLen][epc...][rssi]
//
// Decoding stops early, without error, if a declared EPC length would
// run past the end of the payload.
func ParseInventory(data []byte) (*Inventory, error) {
	resp, err := Parse(data, true)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{Response: *resp, ok: resp.Status == StatusOK}
	if (resp.Status == StatusOK || resp.Status == StatusMoreFrames) && len(resp.Payload) >= 2 {
		inv.Antenna = resp.Payload[0]
		inv.Tags = parseTagList(resp.Payload)
		inv.ok = true
	}
	return inv, nil
}

func parseTagList(payload []byte) []TagReport {
	count := int(payload[1])
	tags := make([]TagReport, 0, count)
	offset := 2
	for i := 0; i < count; i++ {
		if offset >= len(payload) {
			break
		}
		epcLen := int(payload[offset])
		offset++
		if offset+epcLen+1 > len(payload) {
			break
		}
		tags = append(tags, TagReport{
			EPC:  bytes.Clone(payload[offset : offset+epcLen]),
			RSSI: payload[offset+epcLen],
		})
		offset += epcLen + 1
	}
	return tags
}

// ParseReadMemory decodes a read-memory response.
func ParseReadMemory(data []byte) (*ReadResult, error) {
	resp, err := Parse(data, true)
	if err != nil {
		return nil, err
	}
	result := &ReadResult{Response: *resp}
	if resp.OK() {
		result.Data = resp.Payload
	} else {
		result.Data = []byte{}
	}
	return result, nil
}
