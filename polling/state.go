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

package polling

import (
	"time"

	e310 "github.com/parp-project/go-e310"
)

// tagRecord tracks the presence of one EPC in the antenna field.
type tagRecord struct {
	lastSeen time.Time
	tag      e310.Tag
}

// fieldState is the set of EPCs currently considered present. A tag
// missing from a single inventory round is not removed immediately;
// UHF reads are lossy, so absence must persist past a grace period.
type fieldState struct {
	present map[string]*tagRecord
}

func newFieldState() *fieldState {
	return &fieldState{present: make(map[string]*tagRecord)}
}

// observe folds one inventory round into the state and returns the
// tags seen for the first time.
func (s *fieldState) observe(tags []e310.Tag, now time.Time) []e310.Tag {
	var arrived []e310.Tag
	for _, tag := range tags {
		key := tag.EPCString()
		if record, ok := s.present[key]; ok {
			record.lastSeen = now
			record.tag = tag
			continue
		}
		s.present[key] = &tagRecord{tag: tag, lastSeen: now}
		arrived = append(arrived, tag)
	}
	return arrived
}

// expire drops tags unseen for longer than timeout and returns them.
func (s *fieldState) expire(now time.Time, timeout time.Duration) []e310.Tag {
	var removed []e310.Tag
	for key, record := range s.present {
		if now.Sub(record.lastSeen) > timeout {
			removed = append(removed, record.tag)
			delete(s.present, key)
		}
	}
	return removed
}

// tags returns every tag currently considered present.
func (s *fieldState) tags() []e310.Tag {
	tags := make([]e310.Tag, 0, len(s.present))
	for _, record := range s.present {
		tags = append(tags, record.tag)
	}
	return tags
}
