/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package toolbar holds toolbar definitions (what buttons exist and
// which commands they issue) and the dispatcher that routes button
// presses into an editor.Host.
package toolbar

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// Item is one button. Command is "inline:<style>" or "block:<type>".
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Command  string `json:"command"`
	Shortcut string `json:"shortcut,omitempty"`
}

// Group is a visually separated run of items.
type Group struct {
	Label string `json:"label,omitempty"`
	Items []Item `json:"items"`
}

// Def is a complete toolbar layout, typically loaded from JSON.
type Def struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// ParseDef validates data against the embedded schema and decodes it.
func ParseDef(data []byte) (*Def, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate toolbar definition: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid toolbar definition: %s", strings.Join(msgs, "; "))
	}
	var def Def
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode toolbar definition: %w", err)
	}
	if err := checkUniqueIDs(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDef reads and parses a definition file.
func LoadDef(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read toolbar definition: %w", err)
	}
	return ParseDef(data)
}

// checkUniqueIDs rejects duplicate item IDs; the schema cannot express
// cross-array uniqueness.
func checkUniqueIDs(def *Def) error {
	seen := make(map[string]struct{})
	for _, g := range def.Groups {
		for _, it := range g.Items {
			if _, dup := seen[it.ID]; dup {
				return fmt.Errorf("invalid toolbar definition: duplicate item id %q", it.ID)
			}
			seen[it.ID] = struct{}{}
		}
	}
	return nil
}

// Item returns the item with the given id, or nil.
func (d *Def) Item(id string) *Item {
	for gi := range d.Groups {
		for ii := range d.Groups[gi].Items {
			if d.Groups[gi].Items[ii].ID == id {
				return &d.Groups[gi].Items[ii]
			}
		}
	}
	return nil
}

// Default returns the built-in formatting toolbar used when no
// definition file is supplied.
func Default() *Def {
	return &Def{
		Name: "default",
		Groups: []Group{
			{Label: "inline", Items: []Item{
				{ID: "bold", Label: "Bold", Icon: "bold", Command: "inline:bold", Shortcut: "Ctrl+B"},
				{ID: "italic", Label: "Italic", Icon: "italic", Command: "inline:italic", Shortcut: "Ctrl+I"},
				{ID: "underline", Label: "Underline", Icon: "underline", Command: "inline:underline", Shortcut: "Ctrl+U"},
				{ID: "strike", Label: "Strikethrough", Icon: "strike", Command: "inline:strikethrough"},
				{ID: "code", Label: "Code", Icon: "code", Command: "inline:code"},
			}},
			{Label: "block", Items: []Item{
				{ID: "h1", Label: "Heading 1", Icon: "h1", Command: "block:header_one"},
				{ID: "h2", Label: "Heading 2", Icon: "h2", Command: "block:header_two"},
				{ID: "quote", Label: "Quote", Icon: "quote", Command: "block:blockquote"},
				{ID: "codeblock", Label: "Code Block", Icon: "codeblock", Command: "block:code_block"},
			}},
		},
	}
}
