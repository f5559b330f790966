/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "fmt"

// Script is a recorded editing session that can be replayed headlessly.
// Each non-blank source line becomes one Step, in order.
type Script struct {
	Title string
	Steps []Step
}

// Op identifies what a step does.
type Op int

const (
	OpUnknown Op = iota
	OpNote
	OpCanvas
	OpCategory
	OpDrop
	OpClick
	OpSelect
	OpClear
	OpMove
	OpResize
	OpSet
	OpReorder
	OpKey
	OpAddPage
	OpPage
)

var opNames = map[Op]string{
	OpNote:     "note",
	OpCanvas:   "canvas",
	OpCategory: "category",
	OpDrop:     "drop",
	OpClick:    "click",
	OpSelect:   "select",
	OpClear:    "clear",
	OpMove:     "move",
	OpResize:   "resize",
	OpSet:      "set",
	OpReorder:  "reorder",
	OpKey:      "key",
	OpAddPage:  "add-page",
	OpPage:     "page",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "unknown"
}

// Step is one parsed command. Only the fields relevant to Op are set:
//
//	canvas    W, H
//	category  Category
//	drop      Category (optional), Index, X/Y when HasPoint
//	click     X, Y
//	select    ID
//	move      ID, X, Y
//	resize    ID, X, Y, W, H
//	set       Name, Value
//	reorder   Index, To
//	key       Key
//	page      Index
//	note      Text
type Step struct {
	Op       Op
	Category string
	Index    int
	To       int
	X, Y     float64
	W, H     float64
	HasPoint bool
	ID       string
	Name     string
	Value    string
	Key      string
	Text     string
	LineNo   int // 1-based line number in the source
}

// Error represents a parse or replay error with position context.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
}
