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

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "defaults",
			opts:    nil,
			wantErr: false,
		},
		{
			name:    "custom address",
			opts:    []Option{WithAddress(0x04)},
			wantErr: false,
		},
		{
			name:    "broadcast address rejected",
			opts:    []Option{WithAddress(0xFF)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			device, err := New(NewMockTransport(), tt.opts...)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameter)
				assert.Nil(t, device)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, device)
			}
		})
	}
}

func TestDevice_Inventory(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueResponse(testutil.BuildInventoryResponse(0x00, 0x01, 0x00,
		testutil.TagData{EPC: []byte{0x11, 0x22, 0x33, 0x44}, RSSI: 0x55},
		testutil.TagData{EPC: []byte{0xAA, 0xBB}, RSSI: 0x42},
	))

	device, err := New(mock)
	require.NoError(t, err)

	tags, err := device.Inventory()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	// Insertion order preserved
	assert.Equal(t, "11223344", tags[0].EPCString())
	assert.Equal(t, byte(0x55), tags[0].RSSI)
	assert.Equal(t, byte(0x01), tags[0].Antenna)
	assert.Equal(t, "aabb", tags[1].EPCString())
	assert.False(t, tags[0].DetectedAt.IsZero())
}

func TestDevice_Inventory_NoTags(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x01, 0x02))

	device, err := New(mock)
	require.NoError(t, err)

	tags, err := device.Inventory()
	require.ErrorIs(t, err, ErrNoTagDetected)
	assert.Empty(t, tags)

	stats := device.Statistics()
	assert.Equal(t, uint64(1), stats.CommandCount)
	assert.Equal(t, uint64(1), stats.ErrorCount)
}

func TestDevice_Inventory_PartialBatch(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	// Status 0x03: more data follows, still a successful batch
	mock.QueueResponse(testutil.BuildInventoryResponse(0x00, 0x01, 0x03,
		testutil.TagData{EPC: []byte{0x01, 0x02}, RSSI: 0x60},
	))

	device, err := New(mock)
	require.NoError(t, err)

	tags, err := device.Inventory()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDevice_ReadMemory(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueResponse(testutil.BuildReadResponse(0x00, []byte{0xDE, 0xAD, 0xBE, 0xEF}))

	device, err := New(mock)
	require.NoError(t, err)

	data, err := device.ReadMemory(BankTID, 0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)

	// The encoded request must carry the read command
	writes := mock.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, byte(0x02), writes[0][2])
	assert.Equal(t, byte(BankTID), writes[0][3])
}

func TestDevice_ReadMemory_ProtocolError(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x02, 0x07))

	device, err := New(mock)
	require.NoError(t, err)

	_, err = device.ReadMemory(BankUser, 0x100, 8, 0)
	require.Error(t, err)

	status, ok := IsProtocolError(err)
	require.True(t, ok)
	assert.Equal(t, byte(0x07), status)
	assert.Contains(t, err.Error(), "memory out of range")
}

func TestDevice_WriteMemory_OddData(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	device, err := New(mock)
	require.NoError(t, err)

	err = device.WriteMemory(BankUser, 0, []byte{0x01, 0x02, 0x03}, 0)
	require.ErrorIs(t, err, ErrInvalidParameter)

	// Nothing reached the channel and no transaction was counted
	assert.Empty(t, mock.Writes())
	assert.Equal(t, uint64(0), device.Statistics().CommandCount)
}

func TestDevice_WriteMemory(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x03, 0x00))

	device, err := New(mock)
	require.NoError(t, err)

	err = device.WriteMemory(BankUser, 2, []byte{0xCA, 0xFE}, 0x12345678)
	require.NoError(t, err)
}

func TestDevice_KillTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     byte
		wantStatus byte
		wantErr    bool
	}{
		{name: "success", status: 0x00, wantErr: false},
		{name: "kill failed", status: 0x04, wantErr: true, wantStatus: 0x04},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := NewMockTransport()
			mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x05, tt.status))

			device, err := New(mock)
			require.NoError(t, err)

			err = device.KillTag(0xDEADBEEF)
			if tt.wantErr {
				require.Error(t, err)
				status, ok := IsProtocolError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStatus, status)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDevice_Statistics_ErrorRate(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	// One success, one protocol failure
	mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x03, 0x00))
	mock.QueueResponse(testutil.BuildStatusResponse(0x00, 0x03, 0x0A))

	device, err := New(mock, WithTimeout(100*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, device.WriteMemory(BankUser, 0, []byte{0x01, 0x02}, 0))
	require.Error(t, device.WriteMemory(BankUser, 0, []byte{0x01, 0x02}, 0))

	stats := device.Statistics()
	assert.Equal(t, uint64(2), stats.CommandCount)
	assert.Equal(t, uint64(1), stats.ErrorCount)
	assert.InDelta(t, 0.5, stats.ErrorRate(), 1e-9)
}

func TestStats_ErrorRate_NoCommands(t *testing.T) {
	t.Parallel()

	var stats Stats
	assert.Zero(t, stats.ErrorRate())
}

func TestDevice_ConnectClose(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	device, err := New(mock)
	require.NoError(t, err)

	require.NoError(t, device.Connect())
	assert.True(t, mock.IsConnected())

	require.NoError(t, device.Close())
	assert.False(t, mock.IsConnected())
}

func TestDevice_Options(t *testing.T) {
	t.Parallel()

	logged := false
	logger := &funcLogger{onInfo: func() { logged = true }}

	device, err := New(NewMockTransport(),
		WithAddress(0x07),
		WithTimeout(time.Second),
		WithInventoryTimeout(5*time.Second),
		WithLogger(logger),
		WithRetryConfig(&RetryConfig{MaxAttempts: 5, Delay: time.Millisecond}),
	)
	require.NoError(t, err)

	assert.Equal(t, byte(0x07), device.Address())
	assert.Equal(t, time.Second, device.Config().ReadTimeout)
	assert.Equal(t, 5*time.Second, device.Config().InventoryTimeout)
	assert.Equal(t, 5, device.Config().RetryConfig.MaxAttempts)

	device.Config().Logger.Infof("hello")
	assert.True(t, logged)
}

// funcLogger counts Infof calls for option plumbing tests.
type funcLogger struct {
	onInfo func()
}

func (*funcLogger) Debugf(string, ...any) {}
func (l *funcLogger) Infof(string, ...any) {
	if l.onInfo != nil {
		l.onInfo()
	}
}
func (*funcLogger) Warnf(string, ...any)  {}
func (*funcLogger) Errorf(string, ...any) {}
