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
	"errors"
	"fmt"

	"github.com/parp-project/go-e310/internal/frame"
)

// Codec sentinels, shared with the frame package so errors.Is works
// across the decode path.
var (
	// ErrInvalidParameter indicates malformed command parameters
	// rejected before any bytes were encoded.
	ErrInvalidParameter = frame.ErrInvalidParameter
	// ErrFrameTooShort indicates a response below the structural
	// minimum of five bytes.
	ErrFrameTooShort = frame.ErrFrameTooShort
	// ErrChecksumMismatch indicates a response whose trailer did not
	// match the recomputed checksum.
	ErrChecksumMismatch = frame.ErrChecksumMismatch
)

// Transaction sentinels
var (
	// ErrTimeout indicates no complete response frame arrived within
	// the command's deadline.
	ErrTimeout = errors.New("response timeout")
	// ErrTransportWrite indicates the channel accepted zero bytes.
	ErrTransportWrite = errors.New("transport write failed")
	// ErrTransportRead indicates the channel failed while polling.
	ErrTransportRead = errors.New("transport read failed")
	// ErrNotConnected indicates the transport is not open.
	ErrNotConnected = errors.New("transport not connected")
	// ErrNoTagDetected indicates an inventory found no tags in the
	// antenna field.
	ErrNoTagDetected = errors.New("no tag detected")
)

// ErrorType classifies transport errors for retry decisions
type ErrorType int

const (
	// ErrorTypeTransient indicates a temporary failure that may
	// succeed on retry
	ErrorTypeTransient ErrorType = iota
	// ErrorTypeTimeout indicates a deadline expired
	ErrorTypeTimeout
	// ErrorTypePermanent indicates a failure that will not improve
	// with retries
	ErrorTypePermanent
)

// TransportError wraps a failure of the byte channel with context
// about the operation and endpoint
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with retryability derived
// from the error type
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTimeoutError creates a TransportError for an expired deadline
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTimeout, ErrorTypeTimeout)
}

// ProtocolError is a response the module delivered intact but with a
// nonzero status byte.
type ProtocolError struct {
	Status byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("reader status 0x%02X: %s", e.Status, frame.StatusText(e.Status))
}

// Description returns the module's text for the status code.
func (e *ProtocolError) Description() string {
	return frame.StatusText(e.Status)
}

// IsRetryable returns true if the error is likely to succeed on retry.
// Protocol-level failures (bad password, locked memory, parameter
// errors) are not retryable; channel-level failures and timeouts are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Retryable
	}

	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		// Insufficient RF power and module timeouts are field
		// conditions that clear on their own.
		return protocolErr.Status == frame.StatusInsufficientPower ||
			protocolErr.Status == frame.StatusTimeout
	}

	switch {
	case errors.Is(err, ErrTimeout),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrFrameTooShort):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification of err
func GetErrorType(err error) ErrorType {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Type
	}
	if errors.Is(err, ErrTimeout) {
		return ErrorTypeTimeout
	}
	if IsRetryable(err) {
		return ErrorTypeTransient
	}
	return ErrorTypePermanent
}
