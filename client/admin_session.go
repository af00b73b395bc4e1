// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"errors"
	"sync"
	"time"
)

var ErrAdminModeDisabled = errors.New("admin mode is disabled")

// DefaultAdminSessionTTL is how long an admin key stays usable after it was entered.
const DefaultAdminSessionTTL = 2 * time.Minute

// AdminSession holds the admin key for a limited time. Expiry clears the key.
// The zero value is a disabled session.
type AdminSession struct {
	mu    sync.Mutex
	key   string
	timer *time.Timer
	// generation invalidates expiry callbacks of replaced timers
	generation uint64
}

func NewAdminSession() *AdminSession {
	return &AdminSession{}
}

func (s *AdminSession) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// Enable replaces any previous key and restarts the expiry timer.
func (s *AdminSession) Enable(key string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if key == "" || ttl <= 0 {
		s.key = ""
		return
	}

	s.key = key
	generation := s.generation
	s.timer = time.AfterFunc(ttl, func() {
		s.expire(generation)
	})
}

func (s *AdminSession) expire(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return
	}
	s.key = ""
	s.timer = nil
}

func (s *AdminSession) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.key = ""
}

func (s *AdminSession) Key() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.key != ""
}

func (s *AdminSession) Active() bool {
	_, ok := s.Key()
	return ok
}
