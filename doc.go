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

/*
Package e310 provides a pure Go driver for the Impinj E310 UHF RFID
reader module over a point-to-point serial link.

The module speaks a small length-prefixed binary protocol with a
CRC-16/CCITT trailer. This library encodes its four commands (tag
inventory, read memory, write memory, kill tag), reassembles and
decodes the module's responses, and exposes the exchange as plain Go
method calls.

Basic usage:

	import (
	    e310 "github.com/parp-project/go-e310"
	    "github.com/parp-project/go-e310/transport/uart"
	)

	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}

	device, err := e310.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := device.Connect(); err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	tags, err := device.Inventory()
	if err != nil {
	    log.Fatal(err)
	}
	for _, tag := range tags {
	    fmt.Println(tag.String())
	}

Protocol transactions are strictly half-duplex request/response: one
command at a time per transport, completed or timed out before the
next. Device is NOT thread-safe; callers that share one Device across
goroutines must serialize the whole call, not just the send.

Retry is deliberately a caller concern. The library ships RetryConfig
and a Retry helper, but the transaction path itself never retries; see
the polling package for continuous inventory scanning built on top.
*/
package e310
