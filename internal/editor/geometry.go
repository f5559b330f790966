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

// MoveEnd commits the final position of a drag on the canvas. With snapping
// enabled the rect first aligns to nearby items and the canvas edges, then it
// is clamped into the canvas. Only geometry is written.
func (e *Editor) MoveEnd(id string, x, y float64) bool {
	it, ok := e.state.Find(e.state.Active(), id)
	if !ok || !vector.Finite(x) || !vector.Finite(y) {
		return false
	}
	b := it.Bounds()
	r := vector.R(x, y, b.Width, b.Height)
	e.guides = nil
	if e.snap > 0 {
		r, e.guides = vector.ComputeSmartGuides(r, e.anchors(id), vector.SnapOptions{
			Threshold:     e.snap,
			SnapToEdges:   true,
			SnapToCenters: true,
		})
	}
	return e.commitGeometry(id, r)
}

// ResizeEnd commits the final rect of a resize. Width and height keep the
// minimum item size and, for a known canvas, fit inside it.
func (e *Editor) ResizeEnd(id string, r domain.Rect) bool {
	if _, ok := e.state.Find(e.state.Active(), id); !ok {
		return false
	}
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if !vector.Finite(v) {
			return false
		}
	}
	e.guides = nil
	return e.commitGeometry(id, toVector(r))
}

func (e *Editor) commitGeometry(id string, r vector.Rect) bool {
	r = vector.Clamp(r, e.canvas, e.minSize)
	return e.commit(e.state.UpdateItem(e.state.Active(), id, domain.Geometry(toDomain(r))))
}

// anchors lists the rects a moving item may snap to: every other item on the
// active page plus the canvas when its size is known.
func (e *Editor) anchors(skip string) []vector.Anchor {
	pg := e.state.ActivePage()
	out := make([]vector.Anchor, 0, len(pg.Items)+1)
	for _, it := range pg.Items {
		if it.ID == skip {
			continue
		}
		out = append(out, vector.Anchor{Rect: toVector(it.Bounds()), Weight: 1})
	}
	if e.canvas.W > 0 && e.canvas.H > 0 {
		out = append(out, vector.Anchor{Rect: vector.R(0, 0, e.canvas.W, e.canvas.H), Weight: 2})
	}
	return out
}
