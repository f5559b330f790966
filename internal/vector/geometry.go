/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry for the canvas: hit testing, bounds clamping and rounding.
// Values are float64 to match the item geometry stored in the editor.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Size is a width/height pair. A zero component means "unknown".
type Size struct{ W, H float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt    { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt    { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// ClampSize floors both dimensions at minSize and, when the container is known,
// caps them at the container size. The floor wins if the container is smaller.
func ClampSize(r Rect, container Size, minSize float64) Rect {
	if container.W > 0 && r.W > container.W {
		r.W = container.W
	}
	if container.H > 0 && r.H > container.H {
		r.H = container.H
	}
	if r.W < minSize {
		r.W = minSize
	}
	if r.H < minSize {
		r.H = minSize
	}
	return r
}

// ClampInto keeps r inside the container: never a negative offset and, for a
// known container dimension, never past its far edge. Size is not changed.
func ClampInto(r Rect, container Size) Rect {
	if container.W > 0 && r.X+r.W > container.W {
		r.X = container.W - r.W
	}
	if container.H > 0 && r.Y+r.H > container.H {
		r.Y = container.H - r.H
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// Clamp applies ClampSize then ClampInto.
func Clamp(r Rect, container Size, minSize float64) Rect {
	return ClampInto(ClampSize(r, container, minSize), container)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// TopmostHit returns the index of the last rect in paint order containing p, or -1.
func TopmostHit(paintOrder []Rect, p Pt) int {
	for i := len(paintOrder) - 1; i >= 0; i-- {
		if paintOrder[i].Contains(p) {
			return i
		}
	}
	return -1
}
