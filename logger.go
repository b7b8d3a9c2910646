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
	"fmt"
	"log"
)

// Logger is the logging capability injected into a Device. The default
// is a no-op; pass WithLogger to see wire traffic and transaction
// outcomes.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// NoopLogger returns a Logger that discards everything.
func NoopLogger() Logger {
	return noopLogger{}
}

// stdLogger writes leveled lines through the standard library logger.
type stdLogger struct {
	debug bool
}

// StdLogger returns a Logger backed by the standard library's log
// package. Debug lines (wire hex dumps) are emitted only when debug is
// true.
func StdLogger(debug bool) Logger {
	return &stdLogger{debug: debug}
}

func (l *stdLogger) Debugf(format string, args ...any) {
	if l.debug {
		log.Print("[DEBUG] " + fmt.Sprintf(format, args...))
	}
}

func (*stdLogger) Infof(format string, args ...any) {
	log.Print("[INFO] " + fmt.Sprintf(format, args...))
}

func (*stdLogger) Warnf(format string, args ...any) {
	log.Print("[WARN] " + fmt.Sprintf(format, args...))
}

func (*stdLogger) Errorf(format string, args ...any) {
	log.Print("[ERROR] " + fmt.Sprintf(format, args...))
}
