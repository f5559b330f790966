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
	"log/slog"

	"golang.org/x/image/font"

	"formbuilder/internal/domain"
	applog "formbuilder/internal/log"
	"formbuilder/internal/render"
	"formbuilder/internal/storage"
)

// Thumbs renders palette previews and memoizes them in the thumbnail cache.
// A nil cache renders on every call.
type Thumbs struct {
	Cache    *storage.Cache
	Registry *render.Registry
	Width    int
	Height   int
	Face     font.Face
}

func (t Thumbs) withDefaults() Thumbs {
	if t.Width <= 0 {
		t.Width = 160
	}
	if t.Height <= 0 {
		t.Height = 80
	}
	if t.Registry == nil {
		t.Registry = render.Default()
	}
	return t
}

func (t Thumbs) key(tpl domain.Template) storage.ThumbKey {
	return storage.ThumbKey{
		Type:    string(tpl.Type),
		Content: tpl.Content,
		W:       t.Width,
		H:       t.Height,
		Rev:     render.ThumbRevision,
	}
}

// ForTemplate returns the PNG preview of a palette template.
func (t Thumbs) ForTemplate(ctx context.Context, tpl domain.Template) ([]byte, error) {
	t = t.withDefaults()
	gen := func(context.Context) ([]byte, error) {
		ph := t.Registry.Placeholder(tpl.Instantiate())
		return render.ThumbnailPNG(ph, domain.Style{}, render.ThumbOptions{Width: t.Width, Height: t.Height, Face: t.Face})
	}
	if t.Cache == nil {
		return gen(ctx)
	}
	b, err := t.Cache.GetOrCreate(ctx, t.key(tpl), gen)
	if err != nil {
		applog.WithComponent("ui").Warn("thumbnail cache failed, rendering directly",
			slog.String("type", string(tpl.Type)), slog.Any("err", err))
		return gen(ctx)
	}
	return b, nil
}
