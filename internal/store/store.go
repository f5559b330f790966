/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package store holds the editor's pages and items as an immutable value.
//
// Every mutating method returns a new State. The pages slice is reallocated and
// only the targeted page receives a new Items slice, so other pages keep sharing
// their backing arrays and a previously obtained State never changes underneath
// its holder. Slices handed out by accessors are read-only by contract.
package store

import (
	"fmt"

	"formbuilder/internal/domain"
)

// ItemIDPrefix and PageIDPrefix form the minted identifiers ("component-3", "page-2").
const (
	ItemIDPrefix = "component-"
	PageIDPrefix = "page-"
)

// State is the single authoritative page/item collection. The zero value is
// not useful; start from New.
type State struct {
	pages   []domain.Page
	active  int
	lastID  int
	version uint64
}

// New returns a state holding one empty page that is active.
func New() State {
	return State{pages: []domain.Page{newPage(1)}}
}

func newPage(n int) domain.Page {
	return domain.Page{
		ID:    fmt.Sprintf("%s%d", PageIDPrefix, n),
		Name:  fmt.Sprintf("Page %d", n),
		Items: []domain.Item{},
	}
}

// Version increases with every effective mutation. Views compare it to detect change.
func (s State) Version() uint64 { return s.version }

// Len returns the number of pages.
func (s State) Len() int { return len(s.pages) }

// Active returns the active page index.
func (s State) Active() int { return s.active }

// Pages returns a copy of the page list.
func (s State) Pages() []domain.Page { return append([]domain.Page(nil), s.pages...) }

// Page returns the page at index i.
func (s State) Page(i int) (domain.Page, bool) {
	if !s.valid(i) {
		return domain.Page{}, false
	}
	return s.pages[i], true
}

// ActivePage returns the page addressed by the active index.
func (s State) ActivePage() domain.Page {
	pg, _ := s.Page(s.active)
	return pg
}

// Find looks up an item by id on a page.
func (s State) Find(page int, id string) (domain.Item, bool) {
	pg, ok := s.Page(page)
	if !ok {
		return domain.Item{}, false
	}
	if i := pg.IndexOf(id); i >= 0 {
		return pg.Items[i], true
	}
	return domain.Item{}, false
}

// MaxZ returns the highest zIndex on a page, 0 for an empty or unknown page.
func (s State) MaxZ(page int) int {
	pg, ok := s.Page(page)
	if !ok {
		return 0
	}
	maxZ := 0
	for _, it := range pg.Items {
		if z := it.Z(); z > maxZ {
			maxZ = z
		}
	}
	return maxZ
}

// LastIssuedID returns the numeric part of the most recently minted item id.
func (s State) LastIssuedID() int { return s.lastID }

func (s State) valid(page int) bool { return page >= 0 && page < len(s.pages) }

// withItems installs items on the given page of a copied page list.
func (s State) withItems(page int, items []domain.Item) State {
	pages := make([]domain.Page, len(s.pages))
	copy(pages, s.pages)
	pages[page].Items = items
	s.pages = pages
	s.version++
	return s
}

// AddPage appends "Page N" (N = count+1) with no items and makes it active.
func (s State) AddPage() State {
	pages := make([]domain.Page, len(s.pages), len(s.pages)+1)
	copy(pages, s.pages)
	s.pages = append(pages, newPage(len(pages)+1))
	s.active = len(s.pages) - 1
	s.version++
	return s
}

// SetActivePage switches the active page. An index outside the page list is
// rejected and the state is returned unchanged with ok=false.
func (s State) SetActivePage(i int) (State, bool) {
	if !s.valid(i) {
		return s, false
	}
	if i == s.active {
		return s, true
	}
	s.active = i
	s.version++
	return s, true
}

// AddItem appends it to the page under a freshly minted id. Ids come from a
// counter that only grows, so an id is never handed out twice even after the
// item holding it was removed. The stored item is returned.
func (s State) AddItem(page int, it domain.Item) (State, domain.Item, bool) {
	if !s.valid(page) {
		return s, domain.Item{}, false
	}
	s.lastID++
	it.ID = fmt.Sprintf("%s%d", ItemIDPrefix, s.lastID)
	old := s.pages[page].Items
	items := make([]domain.Item, len(old), len(old)+1)
	copy(items, old)
	items = append(items, it)
	return s.withItems(page, items), it, true
}

// RemoveItem filters the item out of the page. Absent ids are a no-op.
func (s State) RemoveItem(page int, id string) State {
	pg, ok := s.Page(page)
	if !ok || pg.IndexOf(id) < 0 {
		return s
	}
	items := make([]domain.Item, 0, len(pg.Items)-1)
	for _, it := range pg.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return s.withItems(page, items)
}

// UpdateItem replaces the matching item with patch applied. Order is preserved
// and every other item passes through unchanged.
func (s State) UpdateItem(page int, id string, patch domain.Patch) State {
	pg, ok := s.Page(page)
	if !ok || patch.Empty() {
		return s
	}
	idx := pg.IndexOf(id)
	if idx < 0 {
		return s
	}
	items := append([]domain.Item(nil), pg.Items...)
	items[idx] = patch.Apply(items[idx])
	return s.withItems(page, items)
}

// ReorderItem moves the item at from to position to, shifting the items in
// between. Indices outside the item list are a no-op.
func (s State) ReorderItem(page, from, to int) State {
	pg, ok := s.Page(page)
	if !ok {
		return s
	}
	n := len(pg.Items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return s
	}
	items := append([]domain.Item(nil), pg.Items...)
	moved := items[from]
	if to < from {
		copy(items[to+1:from+1], items[to:from])
	} else {
		copy(items[from:to], items[from+1:to+1])
	}
	items[to] = moved
	return s.withItems(page, items)
}

// ItemCount returns the total number of items over all pages.
func (s State) ItemCount() int {
	n := 0
	for _, pg := range s.pages {
		n += len(pg.Items)
	}
	return n
}
