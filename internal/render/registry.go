/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render maps component type tags to placeholder visuals and draws
// them for the palette (PNG thumbnails) and the terminal (text previews).
//
// Dispatch is an explicit registry: every built-in tag has a renderer and
// anything else resolves to the fallback placeholder instead of failing.
package render

import (
	"fmt"
	"sort"
	"sync"

	"formbuilder/internal/domain"
)

// Shape selects how a placeholder is drawn.
type Shape string

const (
	ShapeField    Shape = "field"    // outlined input box
	ShapePill     Shape = "pill"     // filled button
	ShapeBar      Shape = "bar"      // full-width title bar
	ShapeBox      Shape = "box"      // plain panel with text lines
	ShapeDashed   Shape = "dashed"   // layout container outline
	ShapeTrack    Shape = "track"    // slider track with a thumb
	ShapeFallback Shape = "fallback" // unknown component
)

// Placeholder is the toolkit-neutral description of what an item looks like.
type Placeholder struct {
	Type     domain.ComponentType
	Shape    Shape
	Title    string
	Lines    []string
	Columns  int     // >1 lays Lines out in a grid, row-major
	Value    float64 // slider position in [0,1]
	Fallback bool
}

// Renderer produces a placeholder for an item of the tag it is registered for.
type Renderer interface {
	Placeholder(it domain.Item) Placeholder
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(it domain.Item) Placeholder

func (f RendererFunc) Placeholder(it domain.Item) Placeholder { return f(it) }

// Registry maps type tags to renderers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[domain.ComponentType]Renderer
}

// NewRegistry returns an empty registry. Use Default for the built-in set.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[domain.ComponentType]Renderer)}
}

// Register adds r for tag t. It panics on duplicate registration.
func (r *Registry) Register(t domain.ComponentType, rr Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[t]; exists {
		panic(fmt.Sprintf("render: renderer already registered for %q", t))
	}
	r.renderers[t] = rr
}

// Lookup returns the renderer for t.
func (r *Registry) Lookup(t domain.ComponentType) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rr, ok := r.renderers[t]
	return rr, ok
}

// Types lists the registered tags sorted by name.
func (r *Registry) Types() []domain.ComponentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ComponentType, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Placeholder renders it, falling back for tags nobody registered.
func (r *Registry) Placeholder(it domain.Item) Placeholder {
	rr, ok := r.Lookup(it.Type)
	if !ok {
		return FallbackPlaceholder(it.Type)
	}
	p := rr.Placeholder(it)
	p.Type = it.Type
	return p
}

// FallbackPlaceholder is what unknown tags render as.
func FallbackPlaceholder(t domain.ComponentType) Placeholder {
	return Placeholder{
		Type:     t,
		Shape:    ShapeFallback,
		Title:    fmt.Sprintf("Unknown Component: %s", t),
		Fallback: true,
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry holding every built-in component type.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		for t, rr := range builtins {
			defaultReg.Register(t, rr)
		}
	})
	return defaultReg
}
