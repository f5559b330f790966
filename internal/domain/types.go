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

// This file defines the data model shared by the editor, the renderers and the views.
// Items and pages are plain values; every mutation goes through internal/store which
// hands out fresh copies instead of editing shared slices.

import "sort"

// Geometry defaults applied at placement time and at read time when a field is unset.
const (
	DefaultX      = 20
	DefaultY      = 20
	DefaultWidth  = 200
	DefaultHeight = 100
	MinItemSize   = 50
)

// Inherit is the resolved value of every style field that was never set.
const Inherit = "inherit"

// ComponentType tags which placeholder widget an item renders as.
// The set is open: catalogs may introduce tags the renderers do not know,
// those render through the fallback placeholder.
type ComponentType string

const (
	TypeInput     ComponentType = "input"
	TypeRadio     ComponentType = "radio"
	TypeSlider    ComponentType = "slider"
	TypeButton    ComponentType = "button"
	TypeList      ComponentType = "list"
	TypeAppBar    ComponentType = "appbar"
	TypeImage     ComponentType = "image"
	TypeForm      ComponentType = "form"
	TypeCheckbox  ComponentType = "checkbox"
	TypeSelect    ComponentType = "select"
	TypeContainer ComponentType = "container"
	TypeGrid      ComponentType = "grid"
	TypeFlex      ComponentType = "flex"
	TypeStack     ComponentType = "stack"
)

var knownTypes = []ComponentType{
	TypeInput, TypeRadio, TypeSlider, TypeButton, TypeList, TypeAppBar, TypeImage,
	TypeForm, TypeCheckbox, TypeSelect, TypeContainer, TypeGrid, TypeFlex, TypeStack,
}

// KnownTypes returns the built-in component tags in a stable order.
func KnownTypes() []ComponentType { return append([]ComponentType(nil), knownTypes...) }

// Known reports whether t is one of the built-in component tags.
func (t ComponentType) Known() bool {
	for _, k := range knownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Rect is an axis-aligned box in canvas units (pixels).
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Style holds the optional per-item overrides. Empty means inherit.
type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Color           string `json:"color,omitempty" yaml:"color,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
}

// Resolved returns a copy with every unset field replaced by Inherit.
func (s Style) Resolved() Style {
	return Style{
		BackgroundColor: orInherit(s.BackgroundColor),
		Color:           orInherit(s.Color),
		FontFamily:      orInherit(s.FontFamily),
	}
}

func orInherit(v string) string {
	if v == "" {
		return Inherit
	}
	return v
}

// Item is a placed component instance on a page.
type Item struct {
	ID      string        `json:"id" yaml:"id"`
	Type    ComponentType `json:"type" yaml:"type"`
	Content string        `json:"content,omitempty" yaml:"content,omitempty"`
	Image   string        `json:"image,omitempty" yaml:"image,omitempty"`
	X       float64       `json:"x" yaml:"x"`
	Y       float64       `json:"y" yaml:"y"`
	Width   float64       `json:"width" yaml:"width"`
	Height  float64       `json:"height" yaml:"height"`
	ZIndex  int           `json:"zIndex" yaml:"zIndex"`
	Style   Style         `json:"style,omitempty" yaml:"style,omitempty"`
}

// Bounds returns the item's geometry with read-time defaults for an unset size.
func (it Item) Bounds() Rect {
	r := Rect{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
	return r
}

// Z returns the stacking order, treating an unset zIndex as 1.
func (it Item) Z() int {
	if it.ZIndex == 0 {
		return 1
	}
	return it.ZIndex
}

// Page is a named, ordered container of items.
type Page struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// IndexOf returns the position of the item with id, or -1.
func (p Page) IndexOf(id string) int {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// PaintOrder returns the items sorted bottom to top by zIndex.
// Items sharing a zIndex keep their sequence order.
func (p Page) PaintOrder() []Item {
	out := append([]Item(nil), p.Items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z() < out[j].Z() })
	return out
}

// Template is an immutable catalog entry that is cloned into a new Item on drop.
type Template struct {
	ID      string        `json:"id" yaml:"id"`
	Content string        `json:"content" yaml:"content"`
	Type    ComponentType `json:"type" yaml:"type"`
	Image   string        `json:"image,omitempty" yaml:"image,omitempty"`
}

// Instantiate clones the template into an unplaced item. The store assigns the ID.
func (t Template) Instantiate() Item {
	return Item{Type: t.Type, Content: t.Content, Image: t.Image}
}

// Category groups templates under a palette heading.
type Category struct {
	Name      string     `json:"name" yaml:"name"`
	Templates []Template `json:"templates" yaml:"templates"`
}
