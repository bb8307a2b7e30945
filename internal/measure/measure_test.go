/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package measure

import (
	"testing"

	"inkbar/internal/geom"
	"inkbar/internal/overlay"
)

// Face7x13 advances 7px per glyph; ascent 11, descent 2, so lines are
// 13px tall. All expectations below derive from that.

func TestAdvanceAndLineHeight(t *testing.T) {
	m := New()
	if got := m.Advance("hello"); got != 35 {
		t.Fatalf("Advance = %v, want 35", got)
	}
	if got := m.LineHeight(); got != 13 {
		t.Fatalf("LineHeight = %v, want 13", got)
	}
}

func TestWrapSingleLine(t *testing.T) {
	m := New()
	lines := m.Wrap("hello world", 0)
	if len(lines) != 1 {
		t.Fatalf("lines = %+v, want 1", lines)
	}
	// 11 glyphs * 7px
	if lines[0].Start != 0 || lines[0].End != 11 || lines[0].Width != 77 {
		t.Fatalf("line = %+v", lines[0])
	}
}

func TestWrapBreaksAtSpaces(t *testing.T) {
	m := New()
	// "hello " is 42px; adding "world" (35px) exceeds 60
	lines := m.Wrap("hello world", 60)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2", lines)
	}
	if lines[0].Start != 0 || lines[0].End != 6 {
		t.Fatalf("first line = %+v", lines[0])
	}
	if lines[1].Start != 6 || lines[1].End != 11 || lines[1].Width != 35 {
		t.Fatalf("second line = %+v", lines[1])
	}
}

func TestWrapHonorsNewlines(t *testing.T) {
	m := New()
	lines := m.Wrap("ab\ncd", 0)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v, want 2", lines)
	}
	if lines[0].End != 2 || lines[1].Start != 3 {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestWrapEmptyText(t *testing.T) {
	m := New()
	lines := m.Wrap("", 0)
	if len(lines) != 1 || lines[0].Width != 0 {
		t.Fatalf("lines = %+v, want one empty line", lines)
	}
}

func TestRegionSingleLine(t *testing.T) {
	m := New()
	// select "llo" of "hello" at origin (10, 20)
	r := m.Region("hello", 2, 5, geom.Pt{X: 10, Y: 20}, 0, overlay.TopToBottom)
	if r.StartRect == nil || r.EndRect == nil {
		t.Fatal("rects missing")
	}
	if r.StartRect.Top != 20 || r.EndRect.Top != 20 {
		t.Fatalf("tops = %v/%v, want both 20", r.StartRect.Top, r.EndRect.Top)
	}
	// start at 10 + 2*7 = 24, end at 10 + 5*7 = 45
	if r.StartRect.Left != 24 || r.StartRect.Right != 45 {
		t.Fatalf("start rect = %+v", r.StartRect)
	}
	if r.Top != 20 || r.Bottom != 33 || r.Height != 13 {
		t.Fatalf("region = %+v", r)
	}
	if r.Direction != overlay.TopToBottom {
		t.Fatalf("direction = %v", r.Direction)
	}
}

func TestRegionAcrossWrappedLines(t *testing.T) {
	m := New()
	// wraps into "hello " / "world"; select "lo wor" = offsets 3..9
	r := m.Region("hello world", 3, 9, geom.Pt{X: 0, Y: 0}, 60, overlay.TopToBottom)
	if r.StartRect.Top != 0 || r.EndRect.Top != 13 {
		t.Fatalf("rect tops = %v/%v", r.StartRect.Top, r.EndRect.Top)
	}
	// start x = 3*7 = 21; start line runs to "hello " = 42
	if r.StartRect.Left != 21 || r.StartRect.Right != 42 {
		t.Fatalf("start rect = %+v", r.StartRect)
	}
	// end line starts at x 0; selection covers "wor" = 3*7 = 21
	if r.EndRect.Left != 0 || r.EndRect.Right != 21 {
		t.Fatalf("end rect = %+v", r.EndRect)
	}
	if r.Top != 0 || r.Bottom != 26 || r.Left != 0 || r.Right != 42 {
		t.Fatalf("region = %+v", r)
	}
}

func TestRegionCollapsedSelection(t *testing.T) {
	m := New()
	r := m.Region("hello", 2, 2, geom.Pt{}, 0, overlay.DirectionNone)
	if r.StartRect.Left != 14 || r.StartRect.Right != 14 {
		t.Fatalf("collapsed start rect = %+v", r.StartRect)
	}
	if r.StartRect.Top != r.EndRect.Top {
		t.Fatal("collapsed selection must stay on one line")
	}
}
