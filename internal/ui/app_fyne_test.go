//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne adapters. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a
// display. To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"inkbar/internal/overlay"
)

func TestCursorRuneOffset(t *testing.T) {
	text := "ab\ncde\nf"
	cases := []struct {
		row, col, want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 0, 3},
		{1, 3, 6},
		{2, 1, 8},
	}
	for _, c := range cases {
		if got := cursorRuneOffset(text, c.row, c.col); got != c.want {
			t.Fatalf("offset(%d,%d) = %d, want %d", c.row, c.col, got, c.want)
		}
	}
}

func TestToolbarNodeClassesTrackVisibility(t *testing.T) {
	rect := canvas.NewRectangle(color.Black)
	rect.Resize(fyne.NewSize(120, 30))
	n := newToolbarNode(rect, 0)

	if !n.HasClass(overlay.ClassInvisible) {
		t.Fatal("fresh node should carry the invisible marker")
	}
	if n.Mounted() {
		t.Fatal("node must not report mounted before attach")
	}
	n.setMounted(true)
	if !n.Mounted() {
		t.Fatal("setMounted(true) should stick")
	}

	n.RemoveClass(overlay.ClassInvisible)
	n.AddClass(overlay.ClassVisible)
	if n.HasClass(overlay.ClassInvisible) || !n.HasClass(overlay.ClassVisible) {
		t.Fatal("marker classes out of sync")
	}
}

func TestToolbarNodeOpacityMapsToHidden(t *testing.T) {
	rect := canvas.NewRectangle(color.Black)
	rect.Resize(fyne.NewSize(120, 30))
	n := newToolbarNode(rect, 0)

	if !rect.Hidden {
		t.Fatal("node starts hidden")
	}
	n.SetOpacity(1)
	if rect.Hidden {
		t.Fatal("opacity 1 should show the object")
	}
	n.SetOpacity(0)
	if !rect.Hidden {
		t.Fatal("opacity 0 should hide the object")
	}
}

func TestToolbarNodePositionAndSize(t *testing.T) {
	rect := canvas.NewRectangle(color.Black)
	rect.Resize(fyne.NewSize(120, 30))
	n := newToolbarNode(rect, 0)

	n.SetPosition(40, 25)
	if p := rect.Position(); p.X != 40 || p.Y != 25 {
		t.Fatalf("position = %v", p)
	}
	if n.OffsetTop() != 25 || n.OffsetHeight() != 30 {
		t.Fatalf("offsets = %v/%v", n.OffsetTop(), n.OffsetHeight())
	}
	if sz := n.Size(); sz.W != 120 || sz.H != 30 {
		t.Fatalf("size = %+v", sz)
	}
}

func TestTransitionEndWithoutAnimationFiresInline(t *testing.T) {
	rect := canvas.NewRectangle(color.Black)
	n := newToolbarNode(rect, 0)
	fired := false
	n.NotifyTransitionEnd(func() { fired = true })
	if !fired {
		t.Fatal("zero animation should fire the callback synchronously")
	}
}
