/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "inkbar/internal/geom"

// Marker classes applied to the toolbar's visual node. Visibility is
// derived solely from these markers; no separate state variable is
// allowed to desynchronize from them.
const (
	ClassVisible   = "toolbar--visible"
	ClassInvisible = "toolbar--invisible"
)

// Overflow reports how a node clips its content.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowAuto
	OverflowScroll
)

// VisualNode is the surface the positioning code needs from a platform
// widget: measurement, inline style application and marker classes.
// internal/ui backs it with Fyne canvas objects; tests use a fake.
type VisualNode interface {
	// Mounted reports whether the node is attached to a live widget
	// tree. All style application on an unmounted node is a no-op.
	Mounted() bool

	OffsetTop() float32
	OffsetHeight() float32
	Size() geom.Size
	Overflow() Overflow

	SetPosition(left, top float32)
	SetOpacity(opacity float32)
	SetPointerEventsEnabled(enabled bool)

	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool

	// NotifyTransitionEnd registers a one-shot callback fired when the
	// node's current style transition completes. Edge-triggered; a node
	// with no running transition fires it immediately.
	NotifyTransitionEnd(fn func())
}

// ScrollContainer bounds toolbar placement: the scrollable element the
// editor lives in (the document body when the host has nothing
// narrower). Passed explicitly to the controller, never looked up from
// ambient context.
type ScrollContainer interface {
	ScrollTop() float32
	ClientWidth() float32
	MarginLeft() float32
	MarginRight() float32
}

// FrameHandle identifies a pending frame request. Opaque to callers.
type FrameHandle uint64

// FrameScheduler defers a callback to the next paint. Implementations
// must support cancelling a not-yet-fired request; the controller keeps
// at most one request outstanding.
type FrameScheduler interface {
	Request(fn func()) FrameHandle
	Cancel(h FrameHandle)
}

// immediateScheduler is the fallback when no platform scheduler is
// available: callbacks run synchronously and cancellation is a no-op
// (a synchronous callback can never still be pending).
type immediateScheduler struct{}

func (immediateScheduler) Request(fn func()) FrameHandle {
	fn()
	return 0
}

func (immediateScheduler) Cancel(FrameHandle) {}
