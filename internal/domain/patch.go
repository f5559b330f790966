/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// Patch is a shallow set of field overrides applied by the store's UpdateItem.
// A nil field leaves the item's value untouched.
type Patch struct {
	Content         *string
	X, Y            *float64
	Width, Height   *float64
	ZIndex          *int
	BackgroundColor *string
	Color           *string
	FontFamily      *string
}

// Float, Int and Str build pointer values for patches.
func Float(v float64) *float64 { return &v }
func Int(v int) *int            { return &v }
func Str(v string) *string      { return &v }

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Content == nil && p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.ZIndex == nil && p.BackgroundColor == nil && p.Color == nil && p.FontFamily == nil
}

// Geometry builds a patch carrying exactly the four geometry fields of r.
func Geometry(r Rect) Patch {
	return Patch{X: Float(r.X), Y: Float(r.Y), Width: Float(r.Width), Height: Float(r.Height)}
}

// Apply returns it merged with the set fields of p.
func (p Patch) Apply(it Item) Item {
	if p.Content != nil {
		it.Content = *p.Content
	}
	if p.X != nil {
		it.X = *p.X
	}
	if p.Y != nil {
		it.Y = *p.Y
	}
	if p.Width != nil {
		it.Width = *p.Width
	}
	if p.Height != nil {
		it.Height = *p.Height
	}
	if p.ZIndex != nil {
		it.ZIndex = *p.ZIndex
	}
	if p.BackgroundColor != nil {
		it.Style.BackgroundColor = *p.BackgroundColor
	}
	if p.Color != nil {
		it.Style.Color = *p.Color
	}
	if p.FontFamily != nil {
		it.Style.FontFamily = *p.FontFamily
	}
	return it
}
