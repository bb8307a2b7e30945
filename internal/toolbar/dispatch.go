/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package toolbar

import (
	"fmt"
	"strings"

	"inkbar/internal/editor"
	applog "inkbar/internal/log"
	"inkbar/internal/usage"
)

// Dispatcher routes item commands into a host editor. Stats is
// optional; when set, every executed command is recorded for the
// frequently-used ordering in the UI.
type Dispatcher struct {
	Host  editor.Host
	Stats *usage.Store
}

// Execute runs the item's command against the host.
func (d *Dispatcher) Execute(it Item) error {
	kind, arg, err := splitCommand(it.Command)
	if err != nil {
		return err
	}
	switch kind {
	case "inline":
		d.Host.ToggleInlineStyle(editor.InlineStyle(arg))
	case "block":
		d.Host.SetBlockType(editor.BlockType(arg))
	}
	if d.Stats != nil {
		if err := d.Stats.Record(it.Command); err != nil {
			// usage tracking must never block editing
			applog.WithComponent("toolbar").Warn("record command usage", "command", it.Command, "error", err)
		}
	}
	return nil
}

// Active reports whether the item's button should render pressed for
// the current selection.
func (d *Dispatcher) Active(it Item) bool {
	kind, arg, err := splitCommand(it.Command)
	if err != nil {
		return false
	}
	switch kind {
	case "inline":
		return d.Host.HasInlineStyle(editor.InlineStyle(arg))
	case "block":
		sel := d.Host.Selection()
		doc := d.Host.Document()
		if sel.Block < 0 || sel.Block >= len(doc.Blocks) {
			return false
		}
		return doc.Blocks[sel.Block].Type == editor.BlockType(arg)
	}
	return false
}

func splitCommand(cmd string) (kind, arg string, err error) {
	kind, arg, ok := strings.Cut(cmd, ":")
	if !ok || arg == "" || (kind != "inline" && kind != "block") {
		return "", "", fmt.Errorf("unknown toolbar command %q", cmd)
	}
	return kind, arg, nil
}
