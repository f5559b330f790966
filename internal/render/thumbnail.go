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
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"formbuilder/internal/domain"
	"formbuilder/internal/vector"
)

// ThumbRevision changes whenever thumbnail drawing changes, invalidating caches.
const ThumbRevision = 1

// ThumbOptions controls raster placeholder output. Zero values get defaults.
type ThumbOptions struct {
	Width, Height int
	Face          font.Face
}

func (o ThumbOptions) withDefaults() ThumbOptions {
	if o.Width <= 0 {
		o.Width = 160
	}
	if o.Height <= 0 {
		o.Height = 80
	}
	if o.Face == nil {
		o.Face = DefaultFace()
	}
	return o
}

var (
	inkDefault    = color.RGBA{R: 26, G: 32, B: 44, A: 255}
	paperDefault  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outline       = color.RGBA{R: 203, G: 213, B: 224, A: 255}
	accent        = color.RGBA{R: 49, G: 130, B: 206, A: 255}
	subtle        = color.RGBA{R: 237, G: 242, B: 247, A: 255}
	fallbackInk   = color.RGBA{R: 197, G: 48, B: 48, A: 255}
	fallbackPaper = color.RGBA{R: 255, G: 245, B: 245, A: 255}
)

func toRGBA(c vector.Color) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// resolveColors applies the item's style overrides on top of the defaults.
func resolveColors(p Placeholder, st domain.Style) (paper, ink color.RGBA) {
	paper, ink = paperDefault, inkDefault
	if p.Fallback {
		paper, ink = fallbackPaper, fallbackInk
	}
	if c, ok := vector.ParseColor(st.BackgroundColor); ok {
		paper = toRGBA(c)
	}
	if c, ok := vector.ParseColor(st.Color); ok {
		ink = toRGBA(c)
	}
	return paper, ink
}

// Thumbnail rasterizes a placeholder.
func Thumbnail(p Placeholder, st domain.Style, opt ThumbOptions) *image.RGBA {
	opt = opt.withDefaults()
	w, h := opt.Width, opt.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	paper, ink := resolveColors(p, st)
	draw.Draw(img, img.Bounds(), &image.Uniform{C: paper}, image.Point{}, draw.Src)
	strokeRect(img, 0, 0, w-1, h-1, outline)

	lh := lineHeight(opt.Face)
	pad := 6
	y := pad + lh

	switch p.Shape {
	case ShapeField:
		strokeRect(img, pad, pad, w-pad-1, pad+lh+6, outline)
		drawText(img, opt.Face, pad+4, pad+lh+1, p.Title, color.RGBA{R: 113, G: 128, B: 150, A: 255})
		return img
	case ShapePill:
		fillRect(img, pad, pad, w-pad-1, pad+lh+8, accent)
		drawText(img, opt.Face, pad+6, pad+lh+2, p.Title, paperDefault)
		return img
	case ShapeBar:
		fillRect(img, 1, 1, w-2, pad*2+lh, accent)
		drawText(img, opt.Face, pad, pad+lh, p.Title, paperDefault)
		x := w - pad
		for i := len(p.Lines) - 1; i >= 0; i-- {
			x -= textWidth(opt.Face, p.Lines[i])
			drawText(img, opt.Face, x, pad+lh, p.Lines[i], paperDefault)
			x -= pad
		}
		return img
	case ShapeTrack:
		mid := h / 2
		fillRect(img, pad, mid-1, w-pad-1, mid+1, outline)
		knob := pad + int(float64(w-2*pad)*p.Value)
		fillRect(img, pad, mid-1, knob, mid+1, accent)
		fillRect(img, knob-4, mid-5, knob+4, mid+5, accent)
		return img
	case ShapeDashed:
		dashedRect(img, pad/2, pad/2, w-pad/2-1, h-pad/2-1, outline)
	case ShapeFallback:
		strokeRect(img, 1, 1, w-2, h-2, fallbackInk)
	}

	if p.Title != "" {
		drawText(img, opt.Face, pad, y, p.Title, ink)
		y += lh + 2
	}
	cols := p.Columns
	if cols <= 1 {
		for _, ln := range p.Lines {
			if p.Shape == ShapeDashed {
				fillRect(img, pad, y-lh+1, w-pad-1, y+2, subtle)
			}
			drawText(img, opt.Face, pad+2, y, ln, ink)
			y += lh + 3
		}
		return img
	}
	cellW := (w - 2*pad) / cols
	for i, ln := range p.Lines {
		cx := pad + (i%cols)*cellW
		cy := y + (i/cols)*(lh+6)
		strokeRect(img, cx, cy-lh, cx+cellW-2, cy+3, outline)
		drawText(img, opt.Face, cx+3, cy, ln, ink)
	}
	return img
}

// ThumbnailPNG renders and encodes a placeholder as PNG.
func ThumbnailPNG(p Placeholder, st domain.Style, opt ThumbOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Thumbnail(p, st, opt)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func lineHeight(face font.Face) int {
	h := face.Metrics().Height.Ceil()
	if h <= 0 {
		h = 13
	}
	return h
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func drawText(img *image.RGBA, face font.Face, x, y int, s string, col color.RGBA) {
	d := font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func dashedRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	on := func(i int) bool { return (i/4)%2 == 0 }
	for x := x0; x <= x1; x++ {
		if on(x - x0) {
			img.SetRGBA(x, y0, col)
			img.SetRGBA(x, y1, col)
		}
	}
	for y := y0; y <= y1; y++ {
		if on(y - y0) {
			img.SetRGBA(x0, y, col)
			img.SetRGBA(x1, y, col)
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), &image.Uniform{C: col}, image.Point{}, draw.Src)
}
