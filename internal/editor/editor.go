/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package editor drives the canvas: it turns pointer gestures, key presses and
// property edits into new store states and tracks the selection.
//
// An Editor is owned by a single goroutine. Every operation replaces the held
// store.State and announces the change through the configured EventEmitter.
package editor

import (
	"fmt"

	"formbuilder/internal/catalog"
	"formbuilder/internal/domain"
	"formbuilder/internal/input"
	"formbuilder/internal/render"
	"formbuilder/internal/store"
	"formbuilder/internal/vector"
)

// Options configures a new Editor. Zero values fall back to the built-in defaults.
type Options struct {
	Catalog  *catalog.Catalog
	Registry *render.Registry
	// Canvas is the drawable area. A zero dimension means unknown and disables
	// clamping against that edge.
	Canvas        vector.Size
	MinItemSize   float64
	SnapThreshold float64
	Category      string
	Emitter       EventEmitter
}

// Editor holds the current state and the selection.
type Editor struct {
	state    store.State
	catalog  *catalog.Catalog
	registry *render.Registry

	canvas  vector.Size
	minSize float64
	snap    float64

	selectedID string
	category   string
	guides     []vector.GuideLine

	emit EventEmitter
	sub  *input.Subscription
	keys *input.Dispatcher
}

// New returns an editor over a fresh store with a single empty page.
func New(opts Options) *Editor {
	e := &Editor{
		state:    store.New(),
		catalog:  opts.Catalog,
		registry: opts.Registry,
		canvas:   opts.Canvas,
		minSize:  opts.MinItemSize,
		snap:     opts.SnapThreshold,
		emit:     opts.Emitter,
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.registry == nil {
		e.registry = render.Default()
	}
	e.minSize = max(domain.MinItemSize, e.minSize)
	if e.emit == nil {
		e.emit = nopEmitter{}
	}
	e.category = e.catalog.First()
	if _, ok := e.catalog.Category(opts.Category); ok {
		e.category = opts.Category
	}
	return e
}

func (e *Editor) State() store.State         { return e.state }
func (e *Editor) Catalog() *catalog.Catalog  { return e.catalog }
func (e *Editor) Registry() *render.Registry { return e.registry }
func (e *Editor) ActivePage() domain.Page    { return e.state.ActivePage() }
func (e *Editor) Canvas() vector.Size        { return e.canvas }
func (e *Editor) MinItemSize() float64       { return e.minSize }
func (e *Editor) ActiveCategory() string     { return e.category }
func (e *Editor) SelectedID() string         { return e.selectedID }
func (e *Editor) Guides() []vector.GuideLine { return append([]vector.GuideLine(nil), e.guides...) }

// SetCanvasSize updates the drawable area, typically after the view resized.
func (e *Editor) SetCanvasSize(sz vector.Size) { e.canvas = sz }

// Selected looks the selected item up in the active page. It never returns a
// stale copy: after any update the lookup reflects the stored values.
func (e *Editor) Selected() (domain.Item, bool) {
	if e.selectedID == "" {
		return domain.Item{}, false
	}
	return e.state.Find(e.state.Active(), e.selectedID)
}

// SelectCategory switches the palette category used by drops without an
// explicit category. Unknown names are ignored.
func (e *Editor) SelectCategory(name string) bool {
	if _, ok := e.catalog.Category(name); !ok {
		return false
	}
	e.category = name
	return true
}

// Summary is a one-line description of the session used in crash reports.
func (e *Editor) Summary() string {
	sel := e.selectedID
	if sel == "" {
		sel = "-"
	}
	return fmt.Sprintf("pages=%d active=%d items=%d selected=%s version=%d",
		e.state.Len(), e.state.Active(), e.state.ItemCount(), sel, e.state.Version())
}

// commit swaps in next when it differs from the held state.
func (e *Editor) commit(next store.State) bool {
	if next.Version() == e.state.Version() {
		return false
	}
	e.state = next
	e.emit.Emit(EventStoreChanged, StoreChange{Version: next.Version(), Page: next.Active()})
	return true
}

func (e *Editor) setSelection(id string) {
	if id == e.selectedID {
		return
	}
	prev := e.selectedID
	e.selectedID = id
	e.emit.Emit(EventSelectionChanged, SelectionChange{Previous: prev, ID: id})
}

func toVector(r domain.Rect) vector.Rect {
	return vector.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

func toDomain(r vector.Rect) domain.Rect {
	return domain.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}
