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

import "testing"

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0xFFFF, // Initial register value, nothing folded in
		},
		{
			name: "standard check sequence",
			data: []byte("123456789"),
			want: 0x29B1, // CRC-16/CCITT-FALSE check value
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = %#04x, want %#04x", got, tt.want)
			}
		})
	}
}

func TestVerifyChecksum_RoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
	}{
		{name: "single byte", data: []byte{0x05}},
		{name: "inventory header", data: []byte{0x05, 0x00, 0x01}},
		{name: "longer frame body", data: []byte{0x0D, 0x01, 0x02, 0x03, 0x00, 0x04, 0x02, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frm := AppendChecksum(append([]byte(nil), tt.data...))
			if len(frm) != len(tt.data)+2 {
				t.Fatalf("AppendChecksum() length = %d, want %d", len(frm), len(tt.data)+2)
			}
			if !VerifyChecksum(frm) {
				t.Errorf("VerifyChecksum() = false for freshly appended trailer")
			}
		})
	}
}

func TestVerifyChecksum_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		frm  []byte
	}{
		{name: "empty", frm: []byte{}},
		{name: "one byte", frm: []byte{0x05}},
		{name: "two bytes", frm: []byte{0x05, 0x00}},
		{name: "corrupted trailer", frm: func() []byte {
			frm := AppendChecksum([]byte{0x05, 0x00, 0x01})
			frm[len(frm)-1] ^= 0xFF
			return frm
		}()},
		{name: "corrupted body", frm: func() []byte {
			frm := AppendChecksum([]byte{0x05, 0x00, 0x01})
			frm[1] ^= 0x01
			return frm
		}()},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if VerifyChecksum(tt.frm) {
				t.Errorf("VerifyChecksum() = true, want false")
			}
		})
	}
}

func TestChecksum_TrailerIsLittleEndian(t *testing.T) {
	t.Parallel()
	body := []byte{0x05, 0x00, 0x01}
	sum := Checksum(body)
	frm := AppendChecksum(append([]byte(nil), body...))
	if frm[len(frm)-2] != byte(sum) || frm[len(frm)-1] != byte(sum>>8) {
		t.Errorf("trailer = [%#02x %#02x], want low byte first", frm[len(frm)-2], frm[len(frm)-1])
	}
}
