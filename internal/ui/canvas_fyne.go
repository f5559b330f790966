//go:build fyne && cgo

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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"formbuilder/internal/domain"
	"formbuilder/internal/editor"
	"formbuilder/internal/vector"
)

var (
	colBackdrop  = color.RGBA{R: 30, G: 30, B: 34, A: 255}
	colPaper     = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	colItem      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colStroke    = color.RGBA{R: 160, G: 174, B: 192, A: 255}
	colInk       = color.RGBA{R: 26, G: 32, B: 44, A: 255}
	colFallback  = color.RGBA{R: 255, G: 245, B: 245, A: 255}
	colSelection = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	colGuide     = color.RGBA{R: 236, G: 72, B: 153, A: 255}
	colGhost     = color.RGBA{R: 0, G: 170, B: 255, A: 60}
)

// dragMode represents the current pointer interaction on the canvas.
type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragMove
	dragResize
)

// FormCanvas draws the active page of an editor and turns taps and drags
// into editor operations.
type FormCanvas struct {
	widget.BaseWidget

	ed   *editor.Editor
	view viewport
	// fixed is the configured canvas size; a zero dimension follows the widget.
	fixed vector.Size

	drag    dragMode
	dragID  string
	handle  handle
	start   vector.Rect
	startPt vector.Pt
	ghost   vector.Rect
}

func NewFormCanvas(ed *editor.Editor, fixed vector.Size) *FormCanvas {
	fc := &FormCanvas{ed: ed, fixed: fixed, view: newViewport(fixed)}
	fc.ExtendBaseWidget(fc)
	return fc
}

func (f *FormCanvas) widgetSize() vector.Size {
	s := f.Size()
	return vector.Size{W: float64(s.Width), H: float64(s.Height)}
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: float64(p.X), Y: float64(p.Y)} }

func toRect(r domain.Rect) vector.Rect { return vector.R(r.X, r.Y, r.Width, r.Height) }

// syncCanvasSize resolves the follow-the-widget dimensions and hands the
// result to the editor, which clamps against it.
func (f *FormCanvas) syncCanvasSize(widget vector.Size) {
	sz := f.fixed
	if sz.W <= 0 {
		sz.W = widget.W / f.view.zoom
	}
	if sz.H <= 0 {
		sz.H = widget.H / f.view.zoom
	}
	f.view.canvas = sz
	f.ed.SetCanvasSize(sz)
}

// CanvasPointAt converts an absolute window position into canvas
// coordinates. ok is false when the position lies outside the page.
func (f *FormCanvas) CanvasPointAt(abs fyne.Position) (vector.Pt, bool) {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(f)
	local := vector.Pt{X: float64(abs.X - origin.X), Y: float64(abs.Y - origin.Y)}
	ws := f.widgetSize()
	if !inside(local, vector.Pt{}, ws) {
		return vector.Pt{}, false
	}
	p := f.view.toCanvas(local, ws)
	return p, inside(p, vector.Pt{}, f.view.canvas)
}

// Tapped selects the topmost item under the pointer or clears the selection.
func (f *FormCanvas) Tapped(e *fyne.PointEvent) {
	f.ed.ClickAt(f.view.toCanvas(toPt(e.Position), f.widgetSize()))
	f.Refresh()
}

func (f *FormCanvas) Dragged(e *fyne.DragEvent) {
	ws := f.widgetSize()
	pos := toPt(e.Position)
	if f.drag == dragNone {
		f.beginDrag(vector.Pt{X: pos.X - float64(e.Dragged.DX), Y: pos.Y - float64(e.Dragged.DY)}, ws)
	}
	switch f.drag {
	case dragPan:
		f.view.offX += float64(e.Dragged.DX)
		f.view.offY += float64(e.Dragged.DY)
	case dragMove:
		cur := f.view.toCanvas(pos, ws)
		f.ghost = vector.R(f.start.X+cur.X-f.startPt.X, f.start.Y+cur.Y-f.startPt.Y, f.start.W, f.start.H)
	case dragResize:
		cur := f.view.toCanvas(pos, ws)
		f.ghost = resizeFrom(f.start, f.handle, cur.X-f.startPt.X, cur.Y-f.startPt.Y)
	}
	f.Refresh()
}

// beginDrag decides between resize, move and pan from where the drag started.
func (f *FormCanvas) beginDrag(at vector.Pt, ws vector.Size) {
	f.startPt = f.view.toCanvas(at, ws)
	if sel, ok := f.ed.Selected(); ok {
		if h := hitHandle(f.view.rectToScreen(toRect(sel.Bounds()), ws), at); h != handleNone {
			f.drag, f.handle, f.dragID = dragResize, h, sel.ID
			f.start, f.ghost = toRect(sel.Bounds()), toRect(sel.Bounds())
			return
		}
	}
	if id, ok := f.ed.ClickAt(f.startPt); ok {
		it, _ := f.ed.Selected()
		f.drag, f.dragID = dragMove, id
		f.start, f.ghost = toRect(it.Bounds()), toRect(it.Bounds())
		return
	}
	f.drag = dragPan
}

// DragEnd commits the gesture. Intermediate positions never reach the store.
func (f *FormCanvas) DragEnd() {
	switch f.drag {
	case dragMove:
		f.ed.MoveEnd(f.dragID, f.ghost.X, f.ghost.Y)
	case dragResize:
		f.ed.ResizeEnd(f.dragID, domain.Rect{X: f.ghost.X, Y: f.ghost.Y, Width: f.ghost.W, Height: f.ghost.H})
	}
	f.drag, f.dragID, f.handle = dragNone, "", handleNone
	f.Refresh()
}

// Scrolled zooms the view with the wheel.
func (f *FormCanvas) Scrolled(e *fyne.ScrollEvent) {
	f.view.zoomBy(float64(e.Scrolled.DY) * 0.05)
	f.Refresh()
}

func (f *FormCanvas) MinSize() fyne.Size { return fyne.NewSize(400, 300) }

func (f *FormCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(colBackdrop)
	paper := canvas.NewRectangle(colPaper)
	paper.StrokeColor = colStroke
	paper.StrokeWidth = 1
	return &formCanvasRenderer{fc: f, bg: bg, paper: paper, objects: []fyne.CanvasObject{bg, paper}}
}

// formCanvasRenderer rebuilds the item visuals on every layout pass.
type formCanvasRenderer struct {
	fc        *FormCanvas
	bg, paper *canvas.Rectangle
	objects   []fyne.CanvasObject
}

func (r *formCanvasRenderer) Destroy()                     {}
func (r *formCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *formCanvasRenderer) MinSize() fyne.Size           { return r.fc.MinSize() }
func (r *formCanvasRenderer) Refresh()                     { r.Layout(r.fc.Size()); canvas.Refresh(r.fc) }

func place(o fyne.CanvasObject, rc vector.Rect) {
	o.Move(fyne.NewPos(float32(rc.X), float32(rc.Y)))
	o.Resize(fyne.NewSize(float32(rc.W), float32(rc.H)))
}

func parsedOr(s string, def color.RGBA) color.RGBA {
	if c, ok := vector.ParseColor(s); ok {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return def
}

func (r *formCanvasRenderer) Layout(size fyne.Size) {
	fc := r.fc
	ws := vector.Size{W: float64(size.Width), H: float64(size.Height)}
	fc.syncCanvasSize(ws)
	v := fc.view

	place(r.bg, vector.R(0, 0, ws.W, ws.H))
	place(r.paper, v.rectToScreen(vector.R(0, 0, v.canvas.W, v.canvas.H), ws))
	objs := []fyne.CanvasObject{r.bg, r.paper}

	reg := fc.ed.Registry()
	for _, it := range fc.ed.ActivePage().PaintOrder() {
		ph := reg.Placeholder(it)
		st := it.Style
		fill := colItem
		if ph.Fallback {
			fill = colFallback
		}
		box := canvas.NewRectangle(parsedOr(st.BackgroundColor, fill))
		box.StrokeColor = colStroke
		box.StrokeWidth = 1
		sr := v.rectToScreen(toRect(it.Bounds()), ws)
		place(box, sr)

		label := canvas.NewText(ph.Title, parsedOr(st.Color, colInk))
		label.TextSize = float32(12 * v.zoom)
		label.Move(fyne.NewPos(float32(sr.X+4), float32(sr.Y+2)))
		objs = append(objs, box, label)
	}

	for _, g := range fc.ed.Guides() {
		ln := canvas.NewLine(colGuide)
		ln.StrokeWidth = 1
		a, b := v.toScreen(g.From, ws), v.toScreen(g.To, ws)
		ln.Position1 = fyne.NewPos(float32(a.X), float32(a.Y))
		ln.Position2 = fyne.NewPos(float32(b.X), float32(b.Y))
		objs = append(objs, ln)
	}

	if fc.drag == dragMove || fc.drag == dragResize {
		ghost := canvas.NewRectangle(colGhost)
		ghost.StrokeColor = colSelection
		ghost.StrokeWidth = 1
		place(ghost, v.rectToScreen(fc.ghost, ws))
		objs = append(objs, ghost)
	}

	if sel, ok := fc.ed.Selected(); ok {
		sr := v.rectToScreen(toRect(sel.Bounds()), ws)
		bbox := canvas.NewRectangle(color.Transparent)
		bbox.StrokeColor = colSelection
		bbox.StrokeWidth = 1
		place(bbox, selectionOutline(sr))
		objs = append(objs, bbox)
		for _, hr := range handleRects(sr) {
			h := canvas.NewRectangle(colSelection)
			place(h, hr)
			objs = append(objs, h)
		}
	}
	r.objects = objs
}
