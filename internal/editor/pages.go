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

// AddPage appends a page and makes it active.
func (e *Editor) AddPage() {
	e.commit(e.state.AddPage())
	e.ClearSelection()
	e.emit.Emit(EventPageChanged, PageChange{Active: e.state.Active(), Pages: e.state.Len()})
}

// SetActivePage switches pages. Out of range indices are rejected. Switching
// clears the selection since ids are scoped to the page they live on.
func (e *Editor) SetActivePage(i int) bool {
	next, ok := e.state.SetActivePage(i)
	if !ok {
		return false
	}
	e.commit(next)
	e.ClearSelection()
	e.emit.Emit(EventPageChanged, PageChange{Active: e.state.Active(), Pages: e.state.Len()})
	return true
}
