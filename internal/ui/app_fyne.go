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
	"context"
	"image/color"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"formbuilder/internal/catalog"
	"formbuilder/internal/crash"
	"formbuilder/internal/domain"
	"formbuilder/internal/editor"
	"formbuilder/internal/input"
	applog "formbuilder/internal/log"
	"formbuilder/internal/render"
	"formbuilder/internal/storage"
	"formbuilder/internal/vector"
)

// variantTheme pins the default theme to a light or dark variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

// uiEmitter forwards editor events to the shell so it can redraw.
type uiEmitter struct{ on func(event string) }

func (u *uiEmitter) Emit(event string, _ any) {
	if u.on != nil {
		u.on(event)
	}
}

// paletteTile is a draggable template preview. Releasing it over the canvas
// drops a copy of the template there.
type paletteTile struct {
	widget.BaseWidget
	src     editor.Endpoint
	title   string
	png     []byte
	release fyne.Position
	onDrop  func(src editor.Endpoint, abs fyne.Position)
}

func newPaletteTile(src editor.Endpoint, tpl domain.Template, png []byte, onDrop func(editor.Endpoint, fyne.Position)) *paletteTile {
	t := &paletteTile{src: src, title: tpl.Content, png: png, onDrop: onDrop}
	if t.title == "" {
		t.title = string(tpl.Type)
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *paletteTile) CreateRenderer() fyne.WidgetRenderer {
	var preview fyne.CanvasObject = canvas.NewRectangle(colPaper)
	if len(t.png) > 0 {
		img := canvas.NewImageFromResource(fyne.NewStaticResource(t.title+".png", t.png))
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(120, 60))
		preview = img
	}
	return widget.NewSimpleRenderer(container.NewVBox(preview, widget.NewLabel(t.title)))
}

func (t *paletteTile) Dragged(e *fyne.DragEvent) { t.release = e.AbsolutePosition }
func (t *paletteTile) DragEnd() {
	if t.onDrop != nil {
		t.onDrop(t.src, t.release)
	}
}

// shell owns the widgets around the editor and rebuilds them on events.
type shell struct {
	ed     *editor.Editor
	thumbs Thumbs
	log    *slog.Logger

	win      fyne.Window
	canvas   *FormCanvas
	palette  *fyne.Container
	tabs     *fyne.Container
	props    *fyne.Container
	status   *widget.Label
	category *widget.Select
}

func (s *shell) onEvent(event string) {
	s.log.Debug("editor event", slog.String("event", event))
	switch event {
	case editor.EventPageChanged:
		s.rebuildTabs()
	}
	s.rebuildProps()
	s.canvas.Refresh()
	s.status.SetText(s.ed.Summary())
}

func (s *shell) rebuildPalette() {
	s.palette.RemoveAll()
	cat, ok := s.ed.Catalog().Category(s.ed.ActiveCategory())
	if !ok {
		return
	}
	for i, tpl := range cat.Templates {
		png, err := s.thumbs.ForTemplate(context.Background(), tpl)
		if err != nil {
			s.log.Warn("thumbnail failed", slog.String("template", tpl.ID), slog.Any("err", err))
		}
		src := editor.Endpoint{Zone: editor.ZonePalette, Index: i, Category: cat.Name}
		s.palette.Add(newPaletteTile(src, tpl, png, s.drop))
	}
	s.palette.Refresh()
}

func (s *shell) drop(src editor.Endpoint, abs fyne.Position) {
	g := editor.Gesture{Source: src}
	if pt, ok := s.canvas.CanvasPointAt(abs); ok {
		g.Destination = &editor.Endpoint{Zone: editor.ZoneCanvas, Point: &pt}
	}
	if !s.ed.DragEnd(g) {
		s.status.SetText("Drop outside the canvas ignored")
	}
}

func (s *shell) rebuildTabs() {
	s.tabs.RemoveAll()
	st := s.ed.State()
	for i, pg := range st.Pages() {
		idx := i
		b := widget.NewButton(pg.Name, func() { s.ed.SetActivePage(idx) })
		if i == st.Active() {
			b.Importance = widget.HighImportance
		}
		s.tabs.Add(b)
	}
	s.tabs.Add(widget.NewButtonWithIcon("", theme.ContentAddIcon(), s.ed.AddPage))
	s.tabs.Refresh()
}

func (s *shell) rebuildProps() {
	s.props.RemoveAll()
	props := s.ed.Properties()
	if len(props) == 0 {
		s.props.Add(widget.NewLabel("Select an item to edit its properties"))
		s.props.Refresh()
		return
	}
	form := widget.NewForm()
	for _, p := range props {
		name := p.Name
		entry := widget.NewEntry()
		entry.SetText(p.Value)
		entry.OnSubmitted = func(v string) {
			if err := s.ed.UpdateProperty(name, v); err != nil {
				s.status.SetText(err.Error())
			}
		}
		form.Append(name, entry)
	}
	s.props.Add(form)
	s.props.Refresh()
}

func applyTheme(a fyne.App, name string) {
	switch name {
	case "dark":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	case "light":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	}
}

// Run starts the Fyne-based desktop shell and blocks until the window closes.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	ui := &uiEmitter{}
	ed := editor.New(editor.Options{
		Catalog:       cat,
		Registry:      render.Default(),
		Canvas:        vector.Size{W: opts.Config.Canvas.Width, H: opts.Config.Canvas.Height},
		MinItemSize:   opts.Config.Canvas.MinItemSize,
		SnapThreshold: opts.Config.Canvas.SnapThreshold,
		Category:      opts.Config.Catalog.DefaultCategory,
		Emitter:       editor.MultiEmitter{opts.Emitter, ui},
	})
	crashDir := opts.CrashDir
	if crashDir == "" {
		crashDir = filepath.Join(storage.DefaultDir(), crash.DirName)
	}
	defer crash.Recover(crash.Session{
		Dir:      crashDir,
		Summary:  ed.Summary,
		Snapshot: func() any { return ed.State().Pages() },
	})

	face, err := render.FaceOrDefault(opts.Config.Thumbnails.Font, 11)
	if err != nil {
		l.Warn("thumbnail font not loaded, using default", slog.Any("err", err))
	}
	size := opts.Config.Thumbnails.Size

	fyneApp := app.NewWithID("formbuilder")
	applyTheme(fyneApp, opts.Config.General.Theme)
	w := fyneApp.NewWindow("Form Builder")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1280), 800)
	winH := max(prefs.IntWithFallback("window.height", 800), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	s := &shell{
		ed:      ed,
		thumbs:  Thumbs{Cache: opts.Cache, Registry: ed.Registry(), Width: size, Height: size / 2, Face: face},
		log:     l,
		win:     w,
		canvas:  NewFormCanvas(ed, ed.Canvas()),
		palette: container.NewVBox(),
		tabs:    container.NewHBox(),
		props:   container.NewVBox(),
		status:  widget.NewLabel("Ready"),
	}
	s.category = widget.NewSelect(cat.Names(), func(name string) {
		if ed.SelectCategory(name) {
			s.rebuildPalette()
		}
	})
	s.category.SetSelected(ed.ActiveCategory())
	ui.on = s.onEvent
	s.rebuildPalette()
	s.rebuildTabs()
	s.rebuildProps()

	ed.Activate(input.Global())
	defer ed.Deactivate()
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		input.Global().Dispatch(input.Key(ev.Name))
	})

	left := container.NewBorder(s.category, nil, nil, nil, container.NewVScroll(s.palette))
	right := container.NewVScroll(s.props)
	center := container.NewBorder(container.NewHScroll(s.tabs), nil, nil, nil, s.canvas)
	split := container.NewHSplit(left, container.NewHSplit(center, right))
	split.SetOffset(0.18)
	w.SetContent(container.NewBorder(nil, s.status, nil, nil, split))

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		l.Info("window closed", slog.String("summary", ed.Summary()))
	})
	w.ShowAndRun()
	return nil
}
