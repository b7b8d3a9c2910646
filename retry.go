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
	"time"
)

// RetryConfig configures the caller-level retry policy. The transaction
// path never retries on its own; wrap device calls in Retry to opt in.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the
	// first.
	MaxAttempts int
	// Delay is the pause between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry parameters
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		Delay:       100 * time.Millisecond,
	}
}

// Retry executes op until it succeeds, returns a non-retryable error,
// or exhausts config.MaxAttempts. Retryability is decided by
// IsRetryable.
//
//	tags, err := e310.Retry(ctx, nil, func() ([]e310.Tag, error) {
//	    return device.InventoryContext(ctx)
//	})
func Retry[T any](ctx context.Context, config *RetryConfig, op func() (T, error)) (T, error) {
	var zero T
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if attempt > 0 && config.Delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(config.Delay):
			}
		}

		result, err := op()
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}
