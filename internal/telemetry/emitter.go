/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"formbuilder/internal/domain"
	"formbuilder/internal/editor"
)

// EditorEmitter forwards editor events as anonymous usage events. Only event
// kinds and component type tags leave the process, never labels or ids.
type EditorEmitter struct {
	Client *Client
}

var _ editor.EventEmitter = EditorEmitter{}

func (e EditorEmitter) Emit(event string, data any) {
	if !e.Client.Enabled() {
		return
	}
	switch event {
	case editor.EventItemDropped:
		props := map[string]any{}
		if it, ok := data.(domain.Item); ok {
			props["component_type"] = string(it.Type)
			props["known_type"] = it.Type.Known()
		}
		e.Client.Event("item_dropped", props)
	case editor.EventItemDeleted:
		e.Client.Event("item_deleted", nil)
	case editor.EventPageChanged:
		props := map[string]any{}
		if pc, ok := data.(editor.PageChange); ok {
			props["pages"] = pc.Pages
		}
		e.Client.Event("page_changed", props)
	}
}
