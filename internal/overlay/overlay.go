/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package overlay positions a floating toolbar relative to a text
// selection. It resolves the anchor point for a selection interaction,
// translates anchor + direction + gutter into widget coordinates, keeps
// the widget inside the visible pane, and drives the show/move
// transitions on the widget's visual node.
//
// The package is host-toolkit-agnostic: all platform access goes
// through the VisualNode, ScrollContainer and FrameScheduler interfaces
// (internal/ui provides the Fyne-backed implementations).
package overlay

// Direction describes how a selection was made, which decides the edge
// the toolbar anchors to.
type Direction int

const (
	DirectionNone Direction = iota
	TopToBottom
	BottomToTop
	LeftToRight
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case TopToBottom:
		return "top_to_bottom"
	case BottomToTop:
		return "bottom_to_top"
	case LeftToRight:
		return "left_to_right"
	case RightToLeft:
		return "right_to_left"
	default:
		return "none"
	}
}

// LineRect describes a single line of a multi-line selection. Only the
// edges the placement code reads are carried.
type LineRect struct {
	Top   float32
	Left  float32
	Right float32
}

// SelectionRegion is the geometry of the user's current text selection,
// reported by the host editor per selection change. Read-only to this
// package. StartRect/EndRect, when present, describe the first and last
// line of a multi-line selection.
type SelectionRegion struct {
	Top    float32
	Bottom float32
	Left   float32
	Right  float32
	Width  float32
	Height float32

	Direction Direction
	StartRect *LineRect
	EndRect   *LineRect
}

// PointerEvent carries the page coordinates of a pointer release and
// the node under the pointer. Keyboard-driven selection changes have no
// pointer event.
type PointerEvent struct {
	PageX  float32
	PageY  float32
	Target VisualNode
}

// InteractionEvent is created once per user action and consumed
// immediately by ResolvePoint; it is never stored.
type InteractionEvent struct {
	Pointer   *PointerEvent
	Selection *SelectionRegion
}

// InteractionPoint is the page-coordinate anchor the toolbar attaches
// to, plus the edge direction to place it on. Recomputed on every
// show/update; never cached across events.
type InteractionPoint struct {
	Direction Direction
	X         float32
	Y         float32
}

// Gutter is the fixed pixel offset kept between the anchor point and
// the toolbar edge. Supplied by the toolbar owner, fixed for the
// widget's lifetime.
type Gutter struct {
	Left float32
	Top  float32
}

// Viewport is the visible pane the toolbar must not overflow. Only the
// width takes part in constraining (there is no bottom clamp).
type Viewport struct {
	Width float32
}
