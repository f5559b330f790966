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

import (
	"formbuilder/internal/domain"
	"formbuilder/internal/vector"
)

// SelectItem selects the item and raises it above everything else on the
// active page. The new zIndex is recomputed from the page on every call.
func (e *Editor) SelectItem(id string) bool {
	active := e.state.Active()
	if _, ok := e.state.Find(active, id); !ok {
		return false
	}
	z := e.state.MaxZ(active) + 1
	e.commit(e.state.UpdateItem(active, id, domain.Patch{ZIndex: domain.Int(z)}))
	e.setSelection(id)
	return true
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() { e.setSelection("") }

// ClickAt resolves a click on the canvas. The topmost item under p wins and
// the background only sees clicks no item claimed.
func (e *Editor) ClickAt(p vector.Pt) (string, bool) {
	order := e.state.ActivePage().PaintOrder()
	rects := make([]vector.Rect, len(order))
	for i, it := range order {
		rects[i] = toVector(it.Bounds())
	}
	if i := vector.TopmostHit(rects, p); i >= 0 {
		id := order[i].ID
		e.SelectItem(id)
		return id, true
	}
	e.ClearSelection()
	return "", false
}
