/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

// Event names published by the editor.
const (
	EventStoreChanged     = "store:changed"
	EventSelectionChanged = "selection:changed"
	EventPageChanged      = "page:changed"
	EventItemDropped      = "item:dropped"
	EventItemDeleted      = "item:deleted"
)

// EventEmitter decouples the editor from whatever listens to it (the desktop
// shell, telemetry, tests).
type EventEmitter interface {
	Emit(event string, data any)
}

// StoreChange is the payload of EventStoreChanged.
type StoreChange struct {
	Version uint64
	Page    int
}

// SelectionChange is the payload of EventSelectionChanged. ID is empty when cleared.
type SelectionChange struct {
	Previous string
	ID       string
}

// PageChange is the payload of EventPageChanged.
type PageChange struct {
	Active int
	Pages  int
}

type nopEmitter struct{}

func (nopEmitter) Emit(string, any) {}

// MultiEmitter fans an event out to several emitters in order.
type MultiEmitter []EventEmitter

func (m MultiEmitter) Emit(event string, data any) {
	for _, e := range m {
		if e != nil {
			e.Emit(event, data)
		}
	}
}

// MockEmitter records every emission for test assertions.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Names returns the recorded event names in order.
func (m *MockEmitter) Names() []string {
	out := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.Event)
	}
	return out
}

// Reset drops the recorded events.
func (m *MockEmitter) Reset() { m.Events = nil }
