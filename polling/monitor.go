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

// Package polling provides continuous inventory monitoring with
// arrival and removal callbacks.
package polling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	e310 "github.com/parp-project/go-e310"
)

// Config configures the inventory monitor.
type Config struct {
	// PollInterval is the pause between inventory rounds.
	PollInterval time.Duration
	// RemovalTimeout is how long a tag must be absent from inventory
	// rounds before it is reported removed.
	RemovalTimeout time.Duration
}

// DefaultConfig returns the default monitor configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval:   500 * time.Millisecond,
		RemovalTimeout: 2 * time.Second,
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.RemovalTimeout <= 0 {
		return errors.New("removal timeout must be positive")
	}
	return nil
}

// Monitor runs continuous inventory rounds against one device and
// tracks per-EPC presence.
type Monitor struct {
	device *e310.Device
	config *Config

	// OnTagDetected fires when an EPC enters the field.
	OnTagDetected func(tag e310.Tag)
	// OnTagRemoved fires when an EPC has been absent longer than the
	// removal timeout.
	OnTagRemoved func(tag e310.Tag)
	// OnError fires for transaction failures; polling continues.
	OnError func(err error)

	mu    sync.Mutex
	state *fieldState
}

// NewMonitor creates a monitor for the device.
func NewMonitor(device *e310.Device, config *Config) (*Monitor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitor config: %w", err)
	}
	return &Monitor{
		device: device,
		config: config,
		state:  newFieldState(),
	}, nil
}

// Device returns the underlying device.
func (m *Monitor) Device() *e310.Device {
	return m.device
}

// PresentTags returns the tags currently considered present.
func (m *Monitor) PresentTags() []e310.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.tags()
}

// Start runs inventory rounds until the context is cancelled. It
// returns the context's error on cancellation.
func (m *Monitor) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.pollOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.PollInterval):
		}
	}
}

// pollOnce runs one inventory round and fires callbacks for field
// changes.
func (m *Monitor) pollOnce(ctx context.Context) {
	tags, err := m.device.InventoryContext(ctx)
	if err != nil && !errors.Is(err, e310.ErrNoTagDetected) {
		if m.OnError != nil {
			m.OnError(err)
		}
		return
	}

	now := time.Now()
	m.mu.Lock()
	arrived := m.state.observe(tags, now)
	removed := m.state.expire(now, m.config.RemovalTimeout)
	m.mu.Unlock()

	if m.OnTagDetected != nil {
		for _, tag := range arrived {
			m.OnTagDetected(tag)
		}
	}
	if m.OnTagRemoved != nil {
		for _, tag := range removed {
			m.OnTagRemoved(tag)
		}
	}
}
