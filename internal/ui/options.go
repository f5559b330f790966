/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui hosts the desktop shell: the palette, the page tabs, the design
// canvas and the properties panel around one editor.Editor.
package ui

import (
	"formbuilder/internal/catalog"
	"formbuilder/internal/config"
	"formbuilder/internal/editor"
	"formbuilder/internal/storage"
)

// Options carries what the command line already resolved for the shell.
type Options struct {
	Config  config.AppConfig
	Catalog *catalog.Catalog
	// Cache memoizes palette thumbnails; nil renders them on demand.
	Cache *storage.Cache
	// Emitter receives editor events next to the shell's own listeners.
	Emitter editor.EventEmitter
	// CrashDir receives crash reports raised while the window is open.
	CrashDir string
}
