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

package testing

import (
	"encoding/binary"
	"sync"

	"github.com/parp-project/go-e310/internal/frame"
)

// VirtualTag simulates one tag in the antenna field with four
// word-addressable memory banks.
type VirtualTag struct {
	EPC            []byte
	Banks          [4][]byte
	AccessPassword uint32
	KillPassword   uint32
	RSSI           byte
	Killed         bool
}

// NewVirtualTag creates a tag with default-sized memory banks and the
// EPC mirrored into the EPC bank.
func NewVirtualTag(epc []byte) *VirtualTag {
	tag := &VirtualTag{
		EPC:  append([]byte(nil), epc...),
		RSSI: 0x50,
	}
	tag.Banks[0] = make([]byte, 8)  // Reserved: kill + access passwords
	tag.Banks[1] = make([]byte, 4+len(epc))
	copy(tag.Banks[1][4:], epc)
	tag.Banks[2] = make([]byte, 12) // TID
	tag.Banks[3] = make([]byte, 64) // User
	return tag
}

// VirtualReader simulates an E310 module behind the byte-channel
// interface. Plug Handle into MockTransport.ResponseFunc to get a full
// request/response loopback.
type VirtualReader struct {
	mu      sync.Mutex
	tags    []*VirtualTag
	Address byte
	Antenna byte
}

// NewVirtualReader creates a reader simulator answering at addr.
func NewVirtualReader(addr byte) *VirtualReader {
	return &VirtualReader{Address: addr, Antenna: 0x01}
}

// AddTag places a tag into the simulated antenna field.
func (r *VirtualReader) AddTag(tag *VirtualTag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tag)
}

// RemoveTag takes a tag out of the simulated antenna field.
func (r *VirtualReader) RemoveTag(tag *VirtualTag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tags {
		if t == tag {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return
		}
	}
}

// Handle decodes one request frame and produces the module's response
// frame.
func (r *VirtualReader) Handle(request []byte) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(request) < 5 {
		return BuildStatusResponse(r.Address, 0x00, frame.StatusFrameError)
	}
	if !frame.VerifyChecksum(request) {
		return BuildStatusResponse(r.Address, request[2], frame.StatusCRCError)
	}

	cmd := request[2]
	switch cmd {
	case frame.CmdInventory:
		return r.handleInventory()
	case frame.CmdReadMemory:
		return r.handleRead(request)
	case frame.CmdWriteMemory:
		return r.handleWrite(request)
	case frame.CmdKillTag:
		return r.handleKill(request)
	default:
		return BuildStatusResponse(r.Address, cmd, frame.StatusCommandFailed)
	}
}

func (r *VirtualReader) live() []*VirtualTag {
	var live []*VirtualTag
	for _, tag := range r.tags {
		if !tag.Killed {
			live = append(live, tag)
		}
	}
	return live
}

func (r *VirtualReader) handleInventory() []byte {
	live := r.live()
	if len(live) == 0 {
		return BuildStatusResponse(r.Address, frame.CmdInventory, frame.StatusNoTags)
	}
	reports := make([]TagData, 0, len(live))
	for _, tag := range live {
		reports = append(reports, TagData{EPC: tag.EPC, RSSI: tag.RSSI})
	}
	return BuildInventoryResponse(r.Address, r.Antenna, frame.StatusOK, reports...)
}

func (r *VirtualReader) handleRead(request []byte) []byte {
	if len(request) != 13 {
		return BuildStatusResponse(r.Address, frame.CmdReadMemory, frame.StatusFrameError)
	}
	bank := request[3]
	wordPtr := binary.BigEndian.Uint16(request[4:6])
	wordCount := request[6]
	password := binary.BigEndian.Uint32(request[7:11])

	tag, status := r.selectTag(bank, password)
	if status != frame.StatusOK {
		return BuildStatusResponse(r.Address, frame.CmdReadMemory, status)
	}

	offset := int(wordPtr) * 2
	end := offset + int(wordCount)*2
	if end > len(tag.Banks[bank]) {
		return BuildStatusResponse(r.Address, frame.CmdReadMemory, frame.StatusMemoryOutOfRange)
	}
	return BuildReadResponse(r.Address, tag.Banks[bank][offset:end])
}

func (r *VirtualReader) handleWrite(request []byte) []byte {
	if len(request) < 15 {
		return BuildStatusResponse(r.Address, frame.CmdWriteMemory, frame.StatusFrameError)
	}
	bank := request[3]
	wordPtr := binary.BigEndian.Uint16(request[4:6])
	wordCount := int(request[6])
	data := request[7 : 7+wordCount*2]
	password := binary.BigEndian.Uint32(request[7+wordCount*2 : 11+wordCount*2])

	tag, status := r.selectTag(bank, password)
	if status != frame.StatusOK {
		return BuildStatusResponse(r.Address, frame.CmdWriteMemory, status)
	}

	offset := int(wordPtr) * 2
	if offset+len(data) > len(tag.Banks[bank]) {
		return BuildStatusResponse(r.Address, frame.CmdWriteMemory, frame.StatusMemoryOutOfRange)
	}
	copy(tag.Banks[bank][offset:], data)
	return BuildStatusResponse(r.Address, frame.CmdWriteMemory, frame.StatusOK)
}

func (r *VirtualReader) handleKill(request []byte) []byte {
	if len(request) != 9 {
		return BuildStatusResponse(r.Address, frame.CmdKillTag, frame.StatusFrameError)
	}
	password := binary.BigEndian.Uint32(request[3:7])
	if password == 0 {
		// A zero kill password never kills, per Gen2.
		return BuildStatusResponse(r.Address, frame.CmdKillTag, frame.StatusKillFailed)
	}
	for _, tag := range r.live() {
		if tag.KillPassword == password {
			tag.Killed = true
			return BuildStatusResponse(r.Address, frame.CmdKillTag, frame.StatusOK)
		}
	}
	return BuildStatusResponse(r.Address, frame.CmdKillTag, frame.StatusKillFailed)
}

// selectTag picks the first live tag and checks its access password
// and the bank number.
func (r *VirtualReader) selectTag(bank byte, password uint32) (*VirtualTag, byte) {
	if bank > frame.MaxBank {
		return nil, frame.StatusParameterError
	}
	live := r.live()
	if len(live) == 0 {
		return nil, frame.StatusNoTags
	}
	tag := live[0]
	if tag.AccessPassword != 0 && password != tag.AccessPassword {
		return nil, frame.StatusPasswordError
	}
	return tag, frame.StatusOK
}
