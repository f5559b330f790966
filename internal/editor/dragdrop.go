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

// Zone names the container a drag endpoint belongs to.
type Zone string

const (
	ZonePalette Zone = "palette"
	ZoneCanvas  Zone = "canvas"
)

// Endpoint is one end of a drag gesture.
type Endpoint struct {
	Zone  Zone
	Index int
	// Category selects the palette list; empty means the active category.
	Category string
	// Point is where the pointer was released, in canvas coordinates.
	Point *vector.Pt
}

// Gesture is a completed drag. Destination is nil when the pointer was
// released outside any drop zone.
type Gesture struct {
	Source      Endpoint
	Destination *Endpoint
}

// DragEnd reconciles a finished drag. A palette to canvas drop places a copy
// of the template; a canvas to canvas drag reorders the active page. Anything
// else, including an out of range template index, leaves the state unchanged.
func (e *Editor) DragEnd(g Gesture) bool {
	if g.Destination == nil {
		return false
	}
	src, dst := g.Source, *g.Destination
	switch {
	case src.Zone == ZonePalette && dst.Zone == ZoneCanvas:
		return e.drop(src, dst)
	case src.Zone == ZoneCanvas && dst.Zone == ZoneCanvas:
		return e.commit(e.state.ReorderItem(e.state.Active(), src.Index, dst.Index))
	}
	return false
}

func (e *Editor) drop(src, dst Endpoint) bool {
	cat := src.Category
	if cat == "" {
		cat = e.category
	}
	tpl, ok := e.catalog.Template(cat, src.Index)
	if !ok {
		return false
	}
	active := e.state.Active()
	it := tpl.Instantiate()
	it.X, it.Y = domain.DefaultX, domain.DefaultY
	it.Width, it.Height = domain.DefaultWidth, domain.DefaultHeight
	it.ZIndex = len(e.state.ActivePage().Items) + 1
	if dst.Point != nil {
		r := vector.Clamp(vector.R(dst.Point.X, dst.Point.Y, it.Width, it.Height), e.canvas, e.minSize)
		it.X, it.Y, it.Width, it.Height = r.X, r.Y, r.W, r.H
	}
	next, placed, ok := e.state.AddItem(active, it)
	if !ok || !e.commit(next) {
		return false
	}
	e.emit.Emit(EventItemDropped, placed)
	return true
}
