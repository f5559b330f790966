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

import "formbuilder/internal/domain"

func static(p Placeholder) Renderer {
	return RendererFunc(func(domain.Item) Placeholder {
		q := p
		q.Lines = append([]string(nil), p.Lines...)
		return q
	})
}

// builtins mirrors the widget set of the palette; placeholders only, nothing is interactive.
var builtins = map[domain.ComponentType]Renderer{
	domain.TypeInput: static(Placeholder{
		Shape: ShapeField, Title: "Text Field",
	}),
	domain.TypeRadio: static(Placeholder{
		Shape: ShapeBox, Lines: []string{"( ) Option 1", "( ) Option 2"},
	}),
	domain.TypeSlider: static(Placeholder{
		Shape: ShapeTrack, Value: 0.3,
	}),
	domain.TypeButton: static(Placeholder{
		Shape: ShapePill, Title: "Button",
	}),
	domain.TypeList: static(Placeholder{
		Shape: ShapeBox, Lines: []string{"List Item 1", "List Item 2", "List Item 3"},
	}),
	domain.TypeAppBar: static(Placeholder{
		Shape: ShapeBar, Title: "App Title", Lines: []string{"Menu 1", "Menu 2"},
	}),
	domain.TypeImage: static(Placeholder{
		Shape: ShapeBox, Title: "Image Placeholder",
	}),
	domain.TypeForm: static(Placeholder{
		Shape: ShapeBox, Lines: []string{"[Name      ]", "[Email     ]", "(Submit)"},
	}),
	domain.TypeCheckbox: static(Placeholder{
		Shape: ShapeBox, Lines: []string{"[ ] Option 1", "[ ] Option 2"},
	}),
	domain.TypeSelect: static(Placeholder{
		Shape: ShapeField, Title: "Select option ▾",
	}),
	domain.TypeContainer: static(Placeholder{
		Shape: ShapeDashed, Title: "Container",
	}),
	domain.TypeGrid: static(Placeholder{
		Shape: ShapeDashed, Columns: 2, Lines: []string{"Grid 1", "Grid 2", "Grid 3", "Grid 4"},
	}),
	domain.TypeFlex: static(Placeholder{
		Shape: ShapeDashed, Columns: 3, Lines: []string{"Item 1", "Item 2", "Item 3"},
	}),
	domain.TypeStack: static(Placeholder{
		Shape: ShapeDashed, Lines: []string{"Item 1", "Item 2", "Item 3"},
	}),
}
