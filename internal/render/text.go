/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"formbuilder/internal/domain"
)

// TextOptions tunes the terminal preview.
type TextOptions struct {
	// PixelsPerColumn converts item widths to terminal columns. Default 10.
	PixelsPerColumn float64
	SelectedID      string
}

var dashedBorder = lipgloss.Border{
	Top: "╌", Bottom: "╌", Left: "╎", Right: "╎",
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
}

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	pillStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33"))
)

func borderFor(s Shape) lipgloss.Border {
	switch s {
	case ShapeDashed:
		return dashedBorder
	case ShapePill:
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// placeholderBody returns the inner text lines of a placeholder.
func placeholderBody(p Placeholder) []string {
	var out []string
	switch p.Shape {
	case ShapePill:
		out = append(out, pillStyle.Render(p.Title))
	case ShapeField:
		out = append(out, "["+p.Title+"]")
	case ShapeTrack:
		const n = 16
		k := int(p.Value * n)
		out = append(out, strings.Repeat("━", k)+"●"+strings.Repeat("─", n-k))
	case ShapeBar:
		out = append(out, p.Title+"  "+strings.Join(p.Lines, "  "))
		return out
	case ShapeFallback:
		out = append(out, fallbackStyle.Render(p.Title))
	default:
		if p.Title != "" {
			out = append(out, p.Title)
		}
	}
	if p.Columns > 1 {
		for i := 0; i < len(p.Lines); i += p.Columns {
			end := i + p.Columns
			if end > len(p.Lines) {
				end = len(p.Lines)
			}
			out = append(out, strings.Join(p.Lines[i:end], " │ "))
		}
		return out
	}
	return append(out, p.Lines...)
}

// ItemBox renders one item as a bordered terminal box.
func ItemBox(it domain.Item, reg *Registry, opt TextOptions) string {
	ppc := opt.PixelsPerColumn
	if ppc <= 0 {
		ppc = 10
	}
	p := reg.Placeholder(it)
	b := it.Bounds()
	cols := int(b.Width / ppc)
	if cols < 14 {
		cols = 14
	}
	st := lipgloss.NewStyle().Border(borderFor(p.Shape)).Padding(0, 1)
	if c := it.Style.Color; c != "" && c != domain.Inherit {
		st = st.Foreground(lipgloss.Color(c))
	}
	if bg := it.Style.BackgroundColor; bg != "" && bg != domain.Inherit {
		st = st.Background(lipgloss.Color(bg))
	}
	if it.ID != "" && it.ID == opt.SelectedID {
		st = st.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("33"))
	}
	meta := metaStyle.Render(fmt.Sprintf("%s %s z%d @%g,%g %g×%g", it.ID, it.Type, it.Z(), b.X, b.Y, b.Width, b.Height))
	lines := append([]string{meta}, placeholderBody(p)...)
	// Width includes the horizontal padding; labels never wrap.
	for _, l := range lines {
		if w := lipgloss.Width(l) + 2; w > cols {
			cols = w
		}
	}
	st = st.Width(cols)
	return st.Render(strings.Join(lines, "\n"))
}

// PageTabs renders the page tab strip with the active page highlighted.
func PageTabs(pages []domain.Page, active int) string {
	parts := make([]string, 0, len(pages)+1)
	for i, pg := range pages {
		if i == active {
			parts = append(parts, activeTab.Render(pg.Name))
		} else {
			parts = append(parts, tabStyle.Render(pg.Name))
		}
	}
	parts = append(parts, tabStyle.Render("+"))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// TextPreview renders a page's items bottom to top in paint order.
func TextPreview(pg domain.Page, reg *Registry, opt TextOptions) string {
	if len(pg.Items) == 0 {
		return metaStyle.Render("(empty page)")
	}
	boxes := make([]string, 0, len(pg.Items))
	for _, it := range pg.PaintOrder() {
		boxes = append(boxes, ItemBox(it, reg, opt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}
