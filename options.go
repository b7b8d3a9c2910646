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
	"time"

	"github.com/parp-project/go-e310/internal/frame"
)

// Option is a functional option for configuring a Device
type Option func(*Device) error

// WithAddress sets the reader address placed in every command frame.
// Addresses above 0xFE are reserved for broadcast and rejected.
func WithAddress(addr byte) Option {
	return func(d *Device) error {
		if addr > frame.MaxAddress {
			return frame.ErrAddressOutOfRange
		}
		d.config.Address = addr
		return nil
	}
}

// WithTimeout sets every per-command timeout to the same value
func WithTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		d.config.CommandTimeout = timeout
		d.config.InventoryTimeout = timeout
		d.config.ReadTimeout = timeout
		d.config.WriteTimeout = timeout
		return nil
	}
}

// WithInventoryTimeout sets the inventory response deadline
func WithInventoryTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		d.config.InventoryTimeout = timeout
		return nil
	}
}

// WithReadTimeout sets the memory-read response deadline
func WithReadTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		d.config.ReadTimeout = timeout
		return nil
	}
}

// WithWriteTimeout sets the memory-write response deadline
func WithWriteTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		d.config.WriteTimeout = timeout
		return nil
	}
}

// WithLogger injects the logging capability used by the device
func WithLogger(logger Logger) Option {
	return func(d *Device) error {
		if logger == nil {
			logger = NoopLogger()
		}
		d.config.Logger = logger
		return nil
	}
}

// WithRetryConfig sets the retry parameters the device advertises to
// callers via Config. The transaction path itself never retries.
func WithRetryConfig(config *RetryConfig) Option {
	return func(d *Device) error {
		d.config.RetryConfig = config
		return nil
	}
}

// Config returns the device configuration.
func (d *Device) Config() *DeviceConfig {
	return d.config
}
