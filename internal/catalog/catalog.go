/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package catalog provides the read-only palette of component templates.
// The editor only ever clones templates out of it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"formbuilder/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

//go:embed catalog.schema.json
var schemaJSON []byte

// Catalog is an ordered, immutable list of categories.
type Catalog struct {
	categories []domain.Category
}

type document struct {
	Version    int               `yaml:"version"`
	Categories []domain.Category `yaml:"categories"`
}

// ValidationError lists every problem found in a catalog document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + strings.Join(e.Problems, "; ")
}

// ErrEmpty is returned for a catalog without categories.
var ErrEmpty = errors.New("catalog has no categories")

// New builds a catalog from categories, copying them.
func New(categories []domain.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrEmpty
	}
	if probs := semanticProblems(categories); len(probs) > 0 {
		return nil, &ValidationError{Problems: probs}
	}
	cp := make([]domain.Category, len(categories))
	for i, c := range categories {
		cp[i] = domain.Category{Name: c.Name, Templates: append([]domain.Template(nil), c.Templates...)}
	}
	return &Catalog{categories: cp}, nil
}

// Default returns the built-in catalog. It panics if the embedded document is broken.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads and validates a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates a YAML document against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Categories)
}

// Validate checks a YAML catalog document against the embedded JSON schema.
func Validate(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse catalog yaml: %w", err)
	}
	if raw == nil {
		return ErrEmpty
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("catalog is not JSON compatible: %w", err)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(asJSON))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !res.Valid() {
		ve := &ValidationError{}
		for _, e := range res.Errors() {
			ve.Problems = append(ve.Problems, e.String())
		}
		return ve
	}
	return nil
}

// semanticProblems covers rules the schema cannot express.
func semanticProblems(categories []domain.Category) []string {
	var probs []string
	names := map[string]bool{}
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			probs = append(probs, "category with empty name")
			continue
		}
		if names[c.Name] {
			probs = append(probs, fmt.Sprintf("duplicate category %q", c.Name))
		}
		names[c.Name] = true
		ids := map[string]bool{}
		for i, t := range c.Templates {
			if t.ID == "" {
				probs = append(probs, fmt.Sprintf("%s[%d]: empty id", c.Name, i))
			} else if ids[t.ID] {
				probs = append(probs, fmt.Sprintf("%s[%d]: duplicate id %q", c.Name, i, t.ID))
			}
			ids[t.ID] = true
			if t.Type == "" {
				probs = append(probs, fmt.Sprintf("%s[%d]: empty type", c.Name, i))
			}
		}
	}
	return probs
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), c.categories...)
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// First returns the name of the first category.
func (c *Catalog) First() string { return c.categories[0].Name }

// Category looks a category up by name.
func (c *Catalog) Category(name string) (domain.Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return domain.Category{}, false
}

// Template returns the template at index within the named category.
// Unknown categories and indices past either end report ok=false.
func (c *Catalog) Template(category string, index int) (domain.Template, bool) {
	cat, ok := c.Category(category)
	if !ok || index < 0 || index >= len(cat.Templates) {
		return domain.Template{}, false
	}
	return cat.Templates[index], true
}

// Types returns every distinct component type used by the catalog, in first-seen order.
func (c *Catalog) Types() []domain.ComponentType {
	seen := map[domain.ComponentType]bool{}
	var out []domain.ComponentType
	for _, cat := range c.categories {
		for _, t := range cat.Templates {
			if !seen[t.Type] {
				seen[t.Type] = true
				out = append(out, t.Type)
			}
		}
	}
	return out
}

// Marshal encodes the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(document{Version: 1, Categories: c.categories})
}
