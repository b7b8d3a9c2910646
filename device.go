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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parp-project/go-e310/internal/frame"
)

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// RetryConfig holds the retry parameters advertised to callers.
	// The transaction path never consults it; retry is caller policy.
	RetryConfig *RetryConfig
	// Logger receives transaction diagnostics. Defaults to a no-op.
	Logger Logger
	// Address is the reader address byte placed in every frame.
	Address byte
	// CommandTimeout is the response deadline for kill and other
	// fixed-length commands.
	CommandTimeout time.Duration
	// InventoryTimeout is the response deadline for inventory.
	// Longest by default, since a population scan takes more time
	// than a fixed-length memory access.
	InventoryTimeout time.Duration
	// ReadTimeout is the response deadline for memory reads.
	ReadTimeout time.Duration
	// WriteTimeout is the response deadline for memory writes.
	WriteTimeout time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		RetryConfig:      DefaultRetryConfig(),
		Logger:           NoopLogger(),
		Address:          0x00,
		CommandTimeout:   2 * time.Second,
		InventoryTimeout: 3 * time.Second,
		ReadTimeout:      2 * time.Second,
		WriteTimeout:     2 * time.Second,
	}
}

// Device drives one E310 reader module over a byte-channel transport.
//
// Thread Safety: Device is NOT thread-safe. The protocol is strictly
// half-duplex request/response, so a second command must not be issued
// until the first completes or times out. Callers sharing a Device
// across goroutines must hold a mutex for the entire method call, not
// just the send.
type Device struct {
	transport Transport
	config    *DeviceConfig
	stats     Stats
}

// New creates a new E310 device with the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// Address returns the configured reader address.
func (d *Device) Address() byte {
	return d.config.Address
}

// Connect opens the underlying transport.
func (d *Device) Connect() error {
	if err := d.transport.Open(); err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}
	d.config.Logger.Infof("reader connected via %s, address 0x%02X", d.transport.Type(), d.config.Address)
	return nil
}

// Close closes the device connection
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

// Statistics returns a snapshot of the transaction counters.
func (d *Device) Statistics() Stats {
	return d.stats
}

// Inventory scans the antenna field and returns every tag observed.
// Returns ErrNoTagDetected when the field is empty.
func (d *Device) Inventory() ([]Tag, error) {
	return d.InventoryContext(context.Background())
}

// InventoryContext is Inventory with cancellation support.
func (d *Device) InventoryContext(ctx context.Context) ([]Tag, error) {
	frm, err := frame.BuildInventory(d.config.Address)
	if err != nil {
		return nil, err
	}

	raw, err := d.transact(ctx, frm, d.config.InventoryTimeout)
	if err != nil {
		return nil, err
	}

	inv, err := frame.ParseInventory(raw)
	if err != nil {
		d.recordError()
		return nil, err
	}
	if !inv.OK() {
		d.recordError()
		if inv.Status == frame.StatusNoTags {
			return nil, ErrNoTagDetected
		}
		return nil, &ProtocolError{Status: inv.Status}
	}

	now := time.Now()
	tags := make([]Tag, 0, len(inv.Tags))
	for _, report := range inv.Tags {
		tags = append(tags, Tag{
			DetectedAt: now,
			EPC:        report.EPC,
			RSSI:       report.RSSI,
			Antenna:    inv.Antenna,
		})
	}
	d.config.Logger.Infof("inventory: %d tags, antenna %d", len(tags), inv.Antenna)
	return tags, nil
}

// ReadMemory reads wordCount words from a tag memory bank starting at
// wordPtr. password is the access password, zero for unlocked tags.
func (d *Device) ReadMemory(bank MemoryBank, wordPtr uint16, wordCount byte, password uint32) ([]byte, error) {
	return d.ReadMemoryContext(context.Background(), bank, wordPtr, wordCount, password)
}

// ReadMemoryContext is ReadMemory with cancellation support.
func (d *Device) ReadMemoryContext(
	ctx context.Context, bank MemoryBank, wordPtr uint16, wordCount byte, password uint32,
) ([]byte, error) {
	frm, err := frame.BuildReadMemory(d.config.Address, byte(bank), wordPtr, wordCount, password)
	if err != nil {
		return nil, err
	}

	raw, err := d.transact(ctx, frm, d.config.ReadTimeout)
	if err != nil {
		return nil, err
	}

	result, err := frame.ParseReadMemory(raw)
	if err != nil {
		d.recordError()
		return nil, err
	}
	if !result.OK() {
		d.recordError()
		return nil, &ProtocolError{Status: result.Status}
	}

	d.config.Logger.Infof("read %s bank: %d bytes at word %d", bank, len(result.Data), wordPtr)
	return result.Data, nil
}

// WriteMemory writes word-aligned data into a tag memory bank starting
// at wordPtr. data must have even length.
func (d *Device) WriteMemory(bank MemoryBank, wordPtr uint16, data []byte, password uint32) error {
	return d.WriteMemoryContext(context.Background(), bank, wordPtr, data, password)
}

// WriteMemoryContext is WriteMemory with cancellation support.
func (d *Device) WriteMemoryContext(
	ctx context.Context, bank MemoryBank, wordPtr uint16, data []byte, password uint32,
) error {
	frm, err := frame.BuildWriteMemory(d.config.Address, byte(bank), wordPtr, data, password)
	if err != nil {
		return err
	}

	raw, err := d.transact(ctx, frm, d.config.WriteTimeout)
	if err != nil {
		return err
	}

	if err := d.checkStatus(raw); err != nil {
		return err
	}
	d.config.Logger.Infof("wrote %d bytes to %s bank at word %d", len(data), bank, wordPtr)
	return nil
}

// KillTag permanently disables the tag matching killPassword. The
// password must be nonzero on real tags; a zero kill password is
// rejected by the module itself.
func (d *Device) KillTag(killPassword uint32) error {
	return d.KillTagContext(context.Background(), killPassword)
}

// KillTagContext is KillTag with cancellation support.
func (d *Device) KillTagContext(ctx context.Context, killPassword uint32) error {
	frm, err := frame.BuildKillTag(d.config.Address, killPassword)
	if err != nil {
		return err
	}

	raw, err := d.transact(ctx, frm, d.config.CommandTimeout)
	if err != nil {
		return err
	}

	if err := d.checkStatus(raw); err != nil {
		return err
	}
	d.config.Logger.Infof("tag killed")
	return nil
}

// checkStatus parses a plain status response and converts a nonzero
// status byte into a ProtocolError.
func (d *Device) checkStatus(raw []byte) error {
	resp, err := frame.Parse(raw, true)
	if err != nil {
		d.recordError()
		return err
	}
	if !resp.OK() {
		d.recordError()
		return &ProtocolError{Status: resp.Status}
	}
	return nil
}

// IsProtocolError reports whether err carries a module status byte,
// and returns it.
func IsProtocolError(err error) (byte, bool) {
	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		return protocolErr.Status, true
	}
	return 0, false
}
