/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"math"

	"formbuilder/internal/vector"
)

// viewport maps canvas coordinates to widget pixels. The canvas is centered
// in the widget, scaled by zoom and shifted by the pan offset.
type viewport struct {
	zoom       float64
	offX, offY float64
	canvas     vector.Size
}

const (
	minZoom    = 0.25
	maxZoom    = 4.0
	handleSize = 8.0

	selectionPad = 2.0
)

func newViewport(canvas vector.Size) viewport {
	return viewport{zoom: 1, canvas: canvas}
}

func (v viewport) origin(widget vector.Size) vector.Pt {
	return vector.Pt{
		X: widget.W/2 - v.canvas.W*v.zoom/2 + v.offX,
		Y: widget.H/2 - v.canvas.H*v.zoom/2 + v.offY,
	}
}

func (v viewport) toScreen(p vector.Pt, widget vector.Size) vector.Pt {
	o := v.origin(widget)
	return vector.Pt{X: o.X + p.X*v.zoom, Y: o.Y + p.Y*v.zoom}
}

func (v viewport) toCanvas(p vector.Pt, widget vector.Size) vector.Pt {
	o := v.origin(widget)
	return vector.Pt{X: (p.X - o.X) / v.zoom, Y: (p.Y - o.Y) / v.zoom}
}

func (v viewport) rectToScreen(r vector.Rect, widget vector.Size) vector.Rect {
	p := v.toScreen(r.Min(), widget)
	return vector.R(p.X, p.Y, r.W*v.zoom, r.H*v.zoom)
}

// zoomBy applies a wheel step and keeps the zoom in range.
func (v *viewport) zoomBy(step float64) {
	v.zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom+step))
}

type handle int

const (
	handleNone handle = iota
	handleNW
	handleNE
	handleSW
	handleSE
)

// handleRects returns the corner handles of a screen rect in NW, NE, SW, SE order.
func handleRects(r vector.Rect) [4]vector.Rect {
	corner := func(x, y float64) vector.Rect {
		return vector.R(x, y, 0, 0).Inset(-handleSize/2, -handleSize/2)
	}
	return [4]vector.Rect{
		corner(r.X, r.Y),
		corner(r.X+r.W, r.Y),
		corner(r.X, r.Y+r.H),
		corner(r.X+r.W, r.Y+r.H),
	}
}

// selectionOutline is the frame drawn just outside the selected item.
func selectionOutline(r vector.Rect) vector.Rect {
	return r.Inset(-selectionPad, -selectionPad)
}

func hitHandle(r vector.Rect, p vector.Pt) handle {
	for i, hr := range handleRects(r) {
		if hr.Contains(p) {
			return handle(i + 1)
		}
	}
	return handleNone
}

// resizeFrom drags corner h of start by (dx, dy) canvas units, keeping the
// opposite corner fixed. Sizes may come out below the minimum; the editor
// clamps on commit.
func resizeFrom(start vector.Rect, h handle, dx, dy float64) vector.Rect {
	x0, y0 := start.X, start.Y
	x1, y1 := start.X+start.W, start.Y+start.H
	switch h {
	case handleNW:
		x0, y0 = x0+dx, y0+dy
	case handleNE:
		x1, y0 = x1+dx, y0+dy
	case handleSW:
		x0, y1 = x0+dx, y1+dy
	case handleSE:
		x1, y1 = x1+dx, y1+dy
	default:
		return start
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return vector.R(x0, y0, x1-x0, y1-y0)
}

// inside reports whether the absolute point p falls in the box at pos with size sz.
func inside(p, pos vector.Pt, sz vector.Size) bool {
	return vector.R(pos.X, pos.Y, sz.W, sz.H).Contains(p)
}
