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

// Package detection discovers serial ports that may host an E310
// reader module.
package detection

import (
	"errors"
	"fmt"

	"go.bug.st/serial/enumerator"
)

// ErrNoPortsFound indicates no candidate serial ports were detected.
var ErrNoPortsFound = errors.New("no serial ports found")

// DeviceInfo describes one detected serial port.
type DeviceInfo struct {
	// Path is the port path, e.g. /dev/ttyUSB0 or COM3.
	Path string
	// VID and PID are USB vendor/product IDs, empty for non-USB
	// ports.
	VID string
	PID string
	// SerialNumber is the USB serial number, if any.
	SerialNumber string
	// IsUSB is true for USB-attached ports.
	IsUSB bool
}

func (d DeviceInfo) String() string {
	if d.IsUSB {
		return fmt.Sprintf("%s (USB %s:%s)", d.Path, d.VID, d.PID)
	}
	return d.Path
}

// DetectPorts lists every serial port on the system. USB-attached
// ports sort first, since E310 modules typically hang off a USB serial
// adapter.
func DetectPorts() ([]DeviceInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var usb, other []DeviceInfo
	for _, port := range ports {
		info := DeviceInfo{
			Path:         port.Name,
			VID:          port.VID,
			PID:          port.PID,
			SerialNumber: port.SerialNumber,
			IsUSB:        port.IsUSB,
		}
		if info.IsUSB {
			usb = append(usb, info)
		} else {
			other = append(other, info)
		}
	}
	return append(usb, other...), nil
}

// FirstPort returns the most likely reader port: the first USB serial
// port, or the first port of any kind if none are USB.
func FirstPort() (DeviceInfo, error) {
	ports, err := DetectPorts()
	if err != nil {
		return DeviceInfo{}, err
	}
	if len(ports) == 0 {
		return DeviceInfo{}, ErrNoPortsFound
	}
	return ports[0], nil
}
