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
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// DefaultFace is the built-in bitmap face used when no font file is configured.
func DefaultFace() font.Face { return basicfont.Face7x13 }

// LoadFace parses a TrueType/OpenType file into a face of the given point size at 72 DPI.
func LoadFace(path string, sizePt float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return ParseFace(data, sizePt)
}

// ParseFace builds a face from font bytes.
func ParseFace(data []byte, sizePt float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if sizePt <= 0 {
		sizePt = 12
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// FaceOrDefault loads path when set and falls back to DefaultFace on any error.
// The error is returned so the caller can log it.
func FaceOrDefault(path string, sizePt float64) (font.Face, error) {
	if path == "" {
		return DefaultFace(), nil
	}
	face, err := LoadFace(path, sizePt)
	if err != nil {
		return DefaultFace(), err
	}
	return face, nil
}
