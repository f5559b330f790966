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

import "formbuilder/internal/input"

// Activate subscribes the editor to d. The editor holds at most one
// subscription: activating again on the same dispatcher returns the live
// token, activating on another one cancels the old subscription first.
func (e *Editor) Activate(d *input.Dispatcher) *input.Subscription {
	if e.sub.Active() {
		if e.keys == d {
			return e.sub
		}
		e.sub.Cancel()
	}
	e.keys = d
	e.sub = d.Subscribe(e.HandleKey)
	return e.sub
}

// Deactivate ends the key subscription, if any.
func (e *Editor) Deactivate() {
	e.sub.Cancel()
	e.sub = nil
	e.keys = nil
}

// HandleKey applies a key press. Delete removes the selected item; Escape
// clears the selection.
func (e *Editor) HandleKey(k input.Key) {
	switch k {
	case input.KeyDelete:
		e.DeleteSelected()
	case input.KeyEscape:
		e.ClearSelection()
	}
}

// DeleteSelected removes the selected item from the active page and clears
// the selection. It reports whether an item was removed.
func (e *Editor) DeleteSelected() bool {
	id := e.selectedID
	if id == "" {
		return false
	}
	removed := e.commit(e.state.RemoveItem(e.state.Active(), id))
	e.ClearSelection()
	if removed {
		e.emit.Emit(EventItemDeleted, id)
	}
	return removed
}
