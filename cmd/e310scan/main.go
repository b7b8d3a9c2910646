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

// e310scan exercises an E310 reader over a serial port: inventory
// scans, tag memory access and tag kill.
//
// Usage:
//
//	e310scan -mode scan
//	e310scan -device /dev/ttyUSB0 -mode read -bank epc -word 2 -count 6
//	e310scan -mode write -bank user -word 0 -data cafebabe
//	e310scan -mode kill -password deadbeef
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	e310 "github.com/parp-project/go-e310"
	"github.com/parp-project/go-e310/detection"
	"github.com/parp-project/go-e310/polling"
	"github.com/parp-project/go-e310/transport/uart"
)

func main() {
	var (
		devicePath = flag.String("device", "", "serial port path (auto-detect if empty)")
		baudRate   = flag.Int("baud", 115200, "serial baud rate")
		address    = flag.Uint("address", 0x00, "reader address (0x00-0xFE)")
		timeout    = flag.Duration("timeout", 3*time.Second, "per-command response timeout")
		mode       = flag.String("mode", "scan", "operation: scan, monitor, read, write, kill")
		bankName   = flag.String("bank", "epc", "memory bank: reserved, epc, tid, user")
		wordPtr    = flag.Uint("word", 0, "word offset into the bank")
		wordCount  = flag.Uint("count", 4, "words to read")
		dataHex    = flag.String("data", "", "hex data to write (even byte count)")
		password   = flag.String("password", "0", "access or kill password, hex")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if err := run(*devicePath, *baudRate, byte(*address), *timeout, *mode,
		*bankName, uint16(*wordPtr), byte(*wordCount), *dataHex, *password, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	devicePath string, baudRate int, address byte, timeout time.Duration,
	mode, bankName string, wordPtr uint16, wordCount byte, dataHex, passwordHex string, debug bool,
) error {
	if devicePath == "" {
		port, err := detection.FirstPort()
		if err != nil {
			return fmt.Errorf("no device given and auto-detect failed: %w", err)
		}
		fmt.Printf("Using detected port: %s\n", port)
		devicePath = port.Path
	}

	transport, err := uart.New(devicePath, uart.WithBaudRate(baudRate))
	if err != nil {
		return err
	}

	opts := []e310.Option{
		e310.WithAddress(address),
		e310.WithTimeout(timeout),
	}
	if debug {
		opts = append(opts, e310.WithLogger(e310.StdLogger(true)))
	}

	device, err := e310.New(transport, opts...)
	if err != nil {
		return err
	}
	if err := device.Connect(); err != nil {
		return err
	}
	defer func() { _ = device.Close() }()

	pwd, err := strconv.ParseUint(strings.TrimPrefix(passwordHex, "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("invalid password %q: %w", passwordHex, err)
	}

	switch mode {
	case "scan":
		return runScan(device)
	case "monitor":
		return runMonitor(device)
	case "read":
		return runRead(device, bankName, wordPtr, wordCount, uint32(pwd))
	case "write":
		return runWrite(device, bankName, wordPtr, dataHex, uint32(pwd))
	case "kill":
		return runKill(device, uint32(pwd))
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func runScan(device *e310.Device) error {
	tags, err := device.Inventory()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		fmt.Printf("EPC %s  RSSI %d  antenna %d\n", tag.EPCString(), tag.RSSI, tag.Antenna)
	}
	fmt.Printf("%d tag(s)\n", len(tags))
	return nil
}

func runMonitor(device *e310.Device) error {
	monitor, err := polling.NewMonitor(device, nil)
	if err != nil {
		return err
	}
	monitor.OnTagDetected = func(tag e310.Tag) {
		fmt.Printf("+ %s (RSSI %d)\n", tag.EPCString(), tag.RSSI)
	}
	monitor.OnTagRemoved = func(tag e310.Tag) {
		fmt.Printf("- %s\n", tag.EPCString())
	}
	monitor.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "poll error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Monitoring, Ctrl-C to stop...")
	if err := monitor.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	stats := device.Statistics()
	fmt.Printf("\n%d commands, %d errors (%.1f%%)\n",
		stats.CommandCount, stats.ErrorCount, stats.ErrorRate()*100)
	return nil
}

func runRead(device *e310.Device, bankName string, wordPtr uint16, wordCount byte, password uint32) error {
	bank, err := parseBank(bankName)
	if err != nil {
		return err
	}
	data, err := device.ReadMemory(bank, wordPtr, wordCount, password)
	if err != nil {
		return err
	}
	fmt.Printf("%s[%d..+%d words]: %s\n", bank, wordPtr, wordCount, hex.EncodeToString(data))
	return nil
}

func runWrite(device *e310.Device, bankName string, wordPtr uint16, dataHex string, password uint32) error {
	bank, err := parseBank(bankName)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(dataHex)
	if err != nil {
		return fmt.Errorf("invalid -data hex: %w", err)
	}
	if err := device.WriteMemory(bank, wordPtr, data, password); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes to %s bank at word %d\n", len(data), bank, wordPtr)
	return nil
}

func runKill(device *e310.Device, password uint32) error {
	if password == 0 {
		return fmt.Errorf("kill requires a nonzero -password")
	}
	if err := device.KillTag(password); err != nil {
		return err
	}
	fmt.Println("Tag killed")
	return nil
}

func parseBank(name string) (e310.MemoryBank, error) {
	switch strings.ToLower(name) {
	case "reserved":
		return e310.BankReserved, nil
	case "epc":
		return e310.BankEPC, nil
	case "tid":
		return e310.BankTID, nil
	case "user":
		return e310.BankUser, nil
	default:
		return 0, fmt.Errorf("unknown bank %q", name)
	}
}
