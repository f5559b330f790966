/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"formbuilder/internal/domain"
	"formbuilder/internal/vector"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidNumber   = errors.New("invalid number")
)

// Editable property names, in the order the properties panel lists them.
const (
	PropContent         = "content"
	PropX               = "x"
	PropY               = "y"
	PropWidth           = "width"
	PropHeight          = "height"
	PropBackgroundColor = "backgroundColor"
	PropColor           = "color"
	PropFontFamily      = "fontFamily"
)

var propertyNames = []string{
	PropContent, PropX, PropY, PropWidth, PropHeight,
	PropBackgroundColor, PropColor, PropFontFamily,
}

// PropertyNames returns the editable property names.
func PropertyNames() []string { return append([]string(nil), propertyNames...) }

// Property is a name/value pair shown in the properties panel.
type Property struct {
	Name  string
	Value string
}

// Properties lists the selected item's editable values. Unset styles read "inherit".
func (e *Editor) Properties() []Property {
	it, ok := e.Selected()
	if !ok {
		return nil
	}
	b, st := it.Bounds(), it.Style.Resolved()
	return []Property{
		{PropContent, it.Content},
		{PropX, formatFloat(b.X)},
		{PropY, formatFloat(b.Y)},
		{PropWidth, formatFloat(b.Width)},
		{PropHeight, formatFloat(b.Height)},
		{PropBackgroundColor, st.BackgroundColor},
		{PropColor, st.Color},
		{PropFontFamily, st.FontFamily},
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// UpdateProperty writes one field of the selected item. Without a selection it
// does nothing. Numeric fields must parse as finite numbers and then go
// through the same clamp as a resize; rejected input leaves the state as is.
// Style fields are stored verbatim and an empty value resets them to inherit.
func (e *Editor) UpdateProperty(name, value string) error {
	it, ok := e.Selected()
	if !ok {
		return nil
	}
	var patch domain.Patch
	switch name {
	case PropX, PropY, PropWidth, PropHeight:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || !vector.Finite(v) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidNumber, name, value)
		}
		r := toVector(it.Bounds())
		switch name {
		case PropX:
			r.X = v
		case PropY:
			r.Y = v
		case PropWidth:
			r.W = v
		case PropHeight:
			r.H = v
		}
		patch = domain.Geometry(toDomain(vector.Clamp(r, e.canvas, e.minSize)))
	case PropContent:
		patch.Content = domain.Str(value)
	case PropBackgroundColor:
		patch.BackgroundColor = domain.Str(strings.TrimSpace(value))
	case PropColor:
		patch.Color = domain.Str(strings.TrimSpace(value))
	case PropFontFamily:
		patch.FontFamily = domain.Str(strings.TrimSpace(value))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	e.commit(e.state.UpdateItem(e.state.Active(), it.ID, patch))
	return nil
}
