/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package toolbar

import (
	"testing"

	"inkbar/internal/editor"
	"inkbar/internal/usage"
)

func newTestDispatcher(t *testing.T, withStats bool) (*Dispatcher, *editor.Buffer) {
	t.Helper()
	buf := editor.NewBuffer(&editor.Document{Blocks: []editor.Block{
		{Type: editor.BlockParagraph, Text: "hello world"},
	}})
	buf.Select(0, 0, 5)
	d := &Dispatcher{Host: buf}
	if withStats {
		st, err := usage.Open(t.TempDir())
		if err != nil {
			t.Fatalf("open usage store: %v", err)
		}
		t.Cleanup(func() { _ = st.Close() })
		d.Stats = st
	}
	return d, buf
}

func TestExecuteInlineCommand(t *testing.T) {
	d, buf := newTestDispatcher(t, false)
	it := Item{ID: "bold", Command: "inline:bold"}
	if d.Active(it) {
		t.Fatal("bold should start inactive")
	}
	if err := d.Execute(it); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !buf.HasInlineStyle(editor.StyleBold) {
		t.Fatal("execute should have applied bold")
	}
	if !d.Active(it) {
		t.Fatal("bold should report active after toggle")
	}
}

func TestExecuteBlockCommand(t *testing.T) {
	d, buf := newTestDispatcher(t, false)
	it := Item{ID: "quote", Command: "block:blockquote"}
	if err := d.Execute(it); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got := buf.BlockTypeAt(0); got != editor.BlockQuote {
		t.Fatalf("block type = %q, want blockquote", got)
	}
	if !d.Active(it) {
		t.Fatal("block button should be active for matching block type")
	}
}

func TestExecuteRejectsUnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t, false)
	for _, cmd := range []string{"noop", "inline:", "paint:red"} {
		if err := d.Execute(Item{ID: "x", Command: cmd}); err == nil {
			t.Fatalf("command %q should be rejected", cmd)
		}
	}
}

func TestExecuteRecordsUsage(t *testing.T) {
	d, _ := newTestDispatcher(t, true)
	it := Item{ID: "bold", Command: "inline:bold"}
	for i := 0; i < 3; i++ {
		if err := d.Execute(it); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
	}
	top, err := d.Stats.Top(5)
	if err != nil {
		t.Fatalf("Top error: %v", err)
	}
	if len(top) != 1 || top[0].Command != "inline:bold" || top[0].Count != 3 {
		t.Fatalf("unexpected stats: %+v", top)
	}
}
