/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestComputeSmartGuides_SnapToCanvasEdges(t *testing.T) {
	canvas := Rect{X: 0, Y: 0, W: 800, H: 600}
	moving := Rect{X: 3, Y: 4, W: 200, H: 100}
	opts := SnapOptions{Threshold: 6, SnapToEdges: true}

	snapped, guides := ComputeSmartGuides(moving, []Anchor{{Rect: canvas, Weight: 1}}, opts)
	if snapped.X != 0 || snapped.Y != 0 {
		t.Fatalf("expected snap to top-left, got %+v", snapped)
	}
	var vOK, hOK bool
	for _, g := range guides {
		if g.Orientation == Vertical && g.Position == 0 {
			vOK = true
		}
		if g.Orientation == Horizontal && g.Position == 0 {
			hOK = true
		}
	}
	if !vOK || !hOK {
		t.Fatalf("expected guides at x=0 (%v) and y=0 (%v)", vOK, hOK)
	}
}

func TestComputeSmartGuides_SnapToCenters(t *testing.T) {
	other := Rect{X: 0, Y: 0, W: 200, H: 100}
	moving := Rect{X: 200/2 - 50 - 2, Y: 100/2 - 30 - 3, W: 100, H: 60}
	opts := SnapOptions{Threshold: 5, SnapToCenters: true}

	snapped, guides := ComputeSmartGuides(moving, []Anchor{{Rect: other, Weight: 1}}, opts)
	if snapped.X != 50 || snapped.Y != 20 {
		t.Fatalf("expected center snap to (50,20), got %+v", snapped)
	}
	for _, g := range guides {
		if g.Kind != "center" {
			t.Fatalf("expected only center guides, got %+v", g)
		}
	}
	if len(guides) != 2 {
		t.Fatalf("expected one guide per axis, got %d", len(guides))
	}
}

func TestComputeSmartGuides_ThresholdPreventsSnap(t *testing.T) {
	other := Rect{X: 0, Y: 0, W: 200, H: 100}
	moving := Rect{X: 210, Y: 110, W: 50, H: 50}
	snapped, guides := ComputeSmartGuides(moving, []Anchor{{Rect: other, Weight: 1}}, SnapOptions{Threshold: 5, SnapToEdges: true})
	if snapped != moving {
		t.Fatalf("expected no snapping outside threshold; got %+v", snapped)
	}
	if len(guides) != 0 {
		t.Fatalf("expected no guides when no snap")
	}
}

func TestComputeSmartGuides_PicksClosestAxisIndependently(t *testing.T) {
	anchors := []Anchor{
		{Rect: Rect{X: 0, Y: 0, W: 100, H: 100}, Weight: 1},
		{Rect: Rect{X: 300, Y: 0, W: 100, H: 100}, Weight: 1},
	}
	moving := Rect{X: 2, Y: 97, W: 80, H: 80}

	snapped, _ := ComputeSmartGuides(moving, anchors, SnapOptions{Threshold: 5, SnapToEdges: true})
	if snapped.X != 0 {
		t.Fatalf("expected X snapped to 0, got %v", snapped.X)
	}
	if snapped.Y != 100 {
		t.Fatalf("expected Y snapped to 100, got %v", snapped.Y)
	}
}

func TestComputeSmartGuides_DefaultThreshold(t *testing.T) {
	moving := Rect{X: 105, Y: 400, W: 50, H: 50}
	snapped, _ := ComputeSmartGuides(moving, []Anchor{{Rect: Rect{X: 0, Y: 0, W: 100, H: 100}}}, SnapOptions{SnapToEdges: true})
	if snapped.X != 100 {
		t.Fatalf("expected default threshold of 6 to snap 105 -> 100, got %v", snapped.X)
	}
}
