/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package input fans global keyboard events out to whoever is subscribed.
// Views own their subscription through the returned token and cancel it when
// they stop being active, so handlers never pile up across activations.
package input

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Key names match fyne.KeyName values so the desktop shell can forward them verbatim.
type Key string

const (
	KeyDelete    Key = "Delete"
	KeyBackspace Key = "BackSpace"
	KeyEscape    Key = "Escape"
)

// Handler receives a key press.
type Handler func(Key)

// Dispatcher delivers key presses to subscribers in subscription order.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[uint64]Handler
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher { return &Dispatcher{handlers: make(map[uint64]Handler)} }

var global = NewDispatcher()

// Global returns the process-wide dispatcher fed by the window's key events.
func Global() *Dispatcher { return global }

// Subscribe registers h until the returned subscription is cancelled.
func (d *Dispatcher) Subscribe(h Handler) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.handlers[d.nextID] = h
	return &Subscription{d: d, id: d.nextID}
}

// Dispatch calls every current handler with k. Handlers run outside the lock,
// so a handler may cancel its own subscription.
func (d *Dispatcher) Dispatch(k Key) {
	d.mu.Lock()
	keys := make([]uint64, 0, len(d.handlers))
	for id := range d.handlers {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	hs := make([]Handler, 0, len(keys))
	for _, id := range keys {
		hs = append(hs, d.handlers[id])
	}
	d.mu.Unlock()
	for _, h := range hs {
		h(k)
	}
}

// Len reports the number of live subscriptions.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

func (d *Dispatcher) remove(id uint64) {
	d.mu.Lock()
	delete(d.handlers, id)
	d.mu.Unlock()
}

// Subscription is the lifetime token of a registered handler.
type Subscription struct {
	d    *Dispatcher
	id   uint64
	once sync.Once
	done atomic.Bool
}

// Cancel deregisters the handler. Calling it more than once is harmless.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.d.remove(s.id)
		s.done.Store(true)
	})
}

// Active reports whether the handler is still registered.
func (s *Subscription) Active() bool { return s != nil && !s.done.Load() }
