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
	"testing"
	"time"

	testutil "github.com/parp-project/go-e310/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLoopbackDevice wires a virtual reader module behind a mock byte
// channel, giving a full request/response path through the codec.
func newLoopbackDevice(t *testing.T, reader *testutil.VirtualReader) (*Device, *MockTransport) {
	t.Helper()

	mock := NewMockTransport()
	mock.ResponseFunc = reader.Handle

	device, err := New(mock, WithTimeout(time.Second))
	require.NoError(t, err)
	require.NoError(t, device.Connect())
	return device, mock
}

func TestLoopback_InventoryLifecycle(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x00)
	device, _ := newLoopbackDevice(t, reader)

	// Empty field
	_, err := device.Inventory()
	require.ErrorIs(t, err, ErrNoTagDetected)

	// Two tags appear
	tagA := testutil.NewVirtualTag([]byte{0xE2, 0x00, 0x10, 0x01})
	tagB := testutil.NewVirtualTag([]byte{0xE2, 0x00, 0x10, 0x02})
	reader.AddTag(tagA)
	reader.AddTag(tagB)

	tags, err := device.Inventory()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "e2001001", tags[0].EPCString())
	assert.Equal(t, "e2001002", tags[1].EPCString())

	// One leaves
	reader.RemoveTag(tagA)
	tags, err = device.Inventory()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "e2001002", tags[0].EPCString())
}

func TestLoopback_ReadEPCBank(t *testing.T) {
	t.Parallel()

	epc := []byte{0xAB, 0xCD, 0xEF, 0x01}
	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(testutil.NewVirtualTag(epc))
	device, _ := newLoopbackDevice(t, reader)

	// EPC bank mirrors the EPC after the 4-byte PC/CRC region
	data, err := device.ReadMemory(BankEPC, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, epc, data)
}

func TestLoopback_WriteThenReadBack(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(testutil.NewVirtualTag([]byte{0x01, 0x02}))
	device, _ := newLoopbackDevice(t, reader)

	payload := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	require.NoError(t, device.WriteMemory(BankUser, 3, payload, 0))

	data, err := device.ReadMemory(BankUser, 3, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestLoopback_AccessPassword(t *testing.T) {
	t.Parallel()

	tag := testutil.NewVirtualTag([]byte{0x01, 0x02})
	tag.AccessPassword = 0x1234ABCD

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(tag)
	device, _ := newLoopbackDevice(t, reader)

	// Wrong password rejected
	_, err := device.ReadMemory(BankUser, 0, 2, 0)
	status, ok := IsProtocolError(err)
	require.True(t, ok)
	assert.Equal(t, byte(0x08), status)

	err = device.WriteMemory(BankUser, 0, []byte{0x11, 0x22}, 0xFFFFFFFF)
	_, ok = IsProtocolError(err)
	require.True(t, ok)

	// Correct password accepted
	require.NoError(t, device.WriteMemory(BankUser, 0, []byte{0x11, 0x22}, 0x1234ABCD))
	data, err := device.ReadMemory(BankUser, 0, 1, 0x1234ABCD)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22}, data)
}

func TestLoopback_KillTag(t *testing.T) {
	t.Parallel()

	tag := testutil.NewVirtualTag([]byte{0x0A, 0x0B})
	tag.KillPassword = 0xDEAD0001

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(tag)
	device, _ := newLoopbackDevice(t, reader)

	// Wrong kill password
	err := device.KillTag(0x11111111)
	status, ok := IsProtocolError(err)
	require.True(t, ok)
	assert.Equal(t, byte(0x04), status)

	// Zero kill password never kills
	err = device.KillTag(0)
	_, ok = IsProtocolError(err)
	require.True(t, ok)

	// Correct password kills; the tag drops out of inventory
	require.NoError(t, device.KillTag(0xDEAD0001))
	_, err = device.Inventory()
	require.ErrorIs(t, err, ErrNoTagDetected)
}

func TestLoopback_OutOfRangeRead(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(testutil.NewVirtualTag([]byte{0x01, 0x02}))
	device, _ := newLoopbackDevice(t, reader)

	_, err := device.ReadMemory(BankTID, 0x1000, 8, 0)
	status, ok := IsProtocolError(err)
	require.True(t, ok)
	assert.Equal(t, byte(0x07), status)
}

func TestLoopback_ChunkedChannel(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(testutil.NewVirtualTag([]byte{
		0x85, 0x04, 0x70, 0x00, 0x21, 0x39, 0x43, 0x4B,
		0x32, 0x57, 0x30, 0x32, 0x00, 0x70, 0x01, 0x05,
	}))
	device, mock := newLoopbackDevice(t, reader)
	mock.SetChunkSize(3)
	mock.SetResponseDelay(5 * time.Millisecond)

	tags, err := device.Inventory()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "850470002139434b3257303200700105", tags[0].EPCString())
}

func TestLoopback_NonDefaultAddress(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x04)
	reader.AddTag(testutil.NewVirtualTag([]byte{0x01, 0x02}))

	mock := NewMockTransport()
	mock.ResponseFunc = reader.Handle

	device, err := New(mock, WithAddress(0x04), WithTimeout(time.Second))
	require.NoError(t, err)

	tags, err := device.Inventory()
	require.NoError(t, err)
	require.Len(t, tags, 1)

	// Every request frame must carry the configured address
	for _, frm := range mock.Writes() {
		assert.Equal(t, byte(0x04), frm[1])
	}
}

func TestLoopback_Statistics(t *testing.T) {
	t.Parallel()

	reader := testutil.NewVirtualReader(0x00)
	reader.AddTag(testutil.NewVirtualTag([]byte{0x01, 0x02}))
	device, _ := newLoopbackDevice(t, reader)

	_, err := device.Inventory()
	require.NoError(t, err)
	require.Error(t, device.KillTag(0x22222222))

	stats := device.Statistics()
	assert.Equal(t, uint64(2), stats.CommandCount)
	assert.Equal(t, uint64(1), stats.ErrorCount)
	assert.InDelta(t, 0.5, stats.ErrorRate(), 1e-9)
}
