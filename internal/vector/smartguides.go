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

// Smart guides snap a moved item to the edges and centers of its neighbours
// and of the canvas. Snapping runs per axis so an item can align horizontally
// with one neighbour and vertically with another.

import "math"

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance in canvas pixels at which snapping occurs.
	Threshold     float64
	SnapToEdges   bool
	SnapToCenters bool
}

// Anchor is a static reference rect (another item or the canvas bounds).
// A higher Weight wins when distances tie.
type Anchor struct {
	Rect   Rect
	Weight float64
}

// Orientation of a guide line.
const (
	Vertical   = "vertical"
	Horizontal = "horizontal"
)

// GuideLine describes a visual guide produced by a snap.
type GuideLine struct {
	Orientation string
	Kind        string // "edge" or "center"
	Position    float64
	From        Pt
	To          Pt
}

type axisCandidate struct {
	delta float64
	dist  float64
	guide GuideLine
	ok    bool
}

func (c *axisCandidate) consider(delta, threshold, weight float64, g GuideLine) {
	dist := math.Abs(delta)
	if dist > threshold {
		return
	}
	score := dist / math.Max(1, weight)
	if !c.ok || score < c.dist {
		c.delta, c.dist, c.guide, c.ok = delta, score, g, true
	}
}

// ComputeSmartGuides returns the snapped rectangle and the guides to draw.
func ComputeSmartGuides(moving Rect, anchors []Anchor, opts SnapOptions) (Rect, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var bx, by axisCandidate
	mc := moving.Center()
	for _, a := range anchors {
		ac := a.Rect.Center()
		if opts.SnapToEdges {
			for _, mx := range []float64{moving.X, moving.X + moving.W} {
				for _, ax := range []float64{a.Rect.X, a.Rect.X + a.Rect.W} {
					bx.consider(mx-ax, opts.Threshold, a.Weight, verticalGuide(ax, moving, a.Rect, "edge"))
				}
			}
			for _, my := range []float64{moving.Y, moving.Y + moving.H} {
				for _, ay := range []float64{a.Rect.Y, a.Rect.Y + a.Rect.H} {
					by.consider(my-ay, opts.Threshold, a.Weight, horizontalGuide(ay, moving, a.Rect, "edge"))
				}
			}
		}
		if opts.SnapToCenters {
			bx.consider(mc.X-ac.X, opts.Threshold, a.Weight, verticalGuide(ac.X, moving, a.Rect, "center"))
			by.consider(mc.Y-ac.Y, opts.Threshold, a.Weight, horizontalGuide(ac.Y, moving, a.Rect, "center"))
		}
	}

	snapped := moving
	var guides []GuideLine
	if bx.ok {
		snapped.X = FloatRound(moving.X-bx.delta, 3)
		guides = append(guides, bx.guide)
	}
	if by.ok {
		snapped.Y = FloatRound(moving.Y-by.delta, 3)
		guides = append(guides, by.guide)
	}
	return snapped, guides
}

func verticalGuide(x float64, a, b Rect, kind string) GuideLine {
	x = FloatRound(x, 3)
	return GuideLine{
		Orientation: Vertical,
		Kind:        kind,
		Position:    x,
		From:        Pt{x, math.Min(a.Y, b.Y)},
		To:          Pt{x, math.Max(a.Y+a.H, b.Y+b.H)},
	}
}

func horizontalGuide(y float64, a, b Rect, kind string) GuideLine {
	y = FloatRound(y, 3)
	return GuideLine{
		Orientation: Horizontal,
		Kind:        kind,
		Position:    y,
		From:        Pt{math.Min(a.X, b.X), y},
		To:          Pt{math.Max(a.X+a.W, b.X+b.W), y},
	}
}
