/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"

	"formbuilder/internal/domain"
	"formbuilder/internal/editor"
	"formbuilder/internal/input"
	"formbuilder/internal/vector"
)

// Report summarizes a replay.
type Report struct {
	Applied int
	// Ignored lists the source lines whose step left the editor unchanged,
	// such as a drop with an out of range index.
	Ignored []int
}

// Run replays the steps of s against e in order. Steps the editor rejects
// silently are recorded in the report. A property edit the editor refuses
// stops the replay with an Error pointing at the offending line.
func Run(e *editor.Editor, s Script) (Report, error) {
	var rep Report
	for _, st := range s.Steps {
		if st.Op == OpNote {
			continue
		}
		before, sel := e.State().Version(), e.SelectedID()
		ok, err := apply(e, st)
		if err != nil {
			return rep, Error{Line: st.LineNo, Column: 1, Message: err.Error()}
		}
		changed := ok || e.State().Version() != before || e.SelectedID() != sel
		if changed {
			rep.Applied++
		} else {
			rep.Ignored = append(rep.Ignored, st.LineNo)
		}
	}
	return rep, nil
}

func apply(e *editor.Editor, st Step) (bool, error) {
	switch st.Op {
	case OpCanvas:
		e.SetCanvasSize(vector.Size{W: st.W, H: st.H})
		return true, nil
	case OpCategory:
		return e.SelectCategory(st.Category), nil
	case OpDrop:
		dst := &editor.Endpoint{Zone: editor.ZoneCanvas}
		if st.HasPoint {
			dst.Point = &vector.Pt{X: st.X, Y: st.Y}
		}
		return e.DragEnd(editor.Gesture{
			Source:      editor.Endpoint{Zone: editor.ZonePalette, Index: st.Index, Category: st.Category},
			Destination: dst,
		}), nil
	case OpClick:
		e.ClickAt(vector.Pt{X: st.X, Y: st.Y})
		return false, nil
	case OpSelect:
		return e.SelectItem(st.ID), nil
	case OpClear:
		e.ClearSelection()
		return false, nil
	case OpMove:
		return e.MoveEnd(st.ID, st.X, st.Y), nil
	case OpResize:
		return e.ResizeEnd(st.ID, domain.Rect{X: st.X, Y: st.Y, Width: st.W, Height: st.H}), nil
	case OpSet:
		if _, ok := e.Selected(); !ok {
			return false, nil
		}
		if err := e.UpdateProperty(st.Name, st.Value); err != nil {
			return false, fmt.Errorf("set: %w", err)
		}
		return true, nil
	case OpReorder:
		return e.DragEnd(editor.Gesture{
			Source:      editor.Endpoint{Zone: editor.ZoneCanvas, Index: st.Index},
			Destination: &editor.Endpoint{Zone: editor.ZoneCanvas, Index: st.To},
		}), nil
	case OpKey:
		e.HandleKey(input.Key(st.Key))
		return false, nil
	case OpAddPage:
		e.AddPage()
		return true, nil
	case OpPage:
		return e.SetActivePage(st.Index), nil
	}
	return false, fmt.Errorf("unsupported step %s", st.Op)
}
