/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"log/slog"

	"inkbar/internal/geom"
	applog "inkbar/internal/log"
)

// Options configures a Controller.
type Options struct {
	Gutter Gutter

	// Scheduler defers position writes to the next paint. When nil,
	// callbacks run immediately and synchronously.
	Scheduler FrameScheduler

	// ViewportFunc reports the current visible pane size. When set, the
	// end position of every show/update is constrained to it.
	ViewportFunc func() Viewport
}

// Controller drives the toolbar's show/move transitions and owns all
// mutation of its visual node. States: hidden, animating, visible, with
// repositioning reachable only from visible. The visible state lives
// exclusively in the node's marker classes.
type Controller struct {
	node      VisualNode
	container ScrollContainer
	opts      Options
	sched     FrameScheduler
	log       *slog.Logger

	// at most one outstanding frame request
	handle  FrameHandle
	pending bool
}

// NewController builds a controller for node, bounded by container.
// container may be nil when the host has no scrollable parent; the
// second-stage clamp is skipped then.
func NewController(node VisualNode, container ScrollContainer, opts Options) *Controller {
	sched := opts.Scheduler
	if sched == nil {
		sched = immediateScheduler{}
	}
	return &Controller{
		node:      node,
		container: container,
		opts:      opts,
		sched:     sched,
		log:       applog.WithComponent("overlay"),
	}
}

// IsVisible reports whether the toolbar currently carries the visible
// marker. Pure query, no side effects.
func (c *Controller) IsVisible() bool {
	return c.node != nil && c.node.HasClass(ClassVisible)
}

// Show animates the toolbar from start to end. It applies the start
// position synchronously with zero opacity and pointer events off, so
// the platform paints the start state before the transition to the end
// state begins. Pointer events come back once the transition completes.
//
// A call while already visible or unmounted is ignored, not queued.
func (c *Controller) Show(start, end InteractionPoint) {
	if c.node == nil || !c.node.Mounted() || c.IsVisible() {
		return
	}
	size := c.node.Size()
	left, top := c.position(start, size)
	c.node.SetPosition(left, top)
	c.node.SetOpacity(0)
	c.node.SetPointerEventsEnabled(false)
	c.node.RemoveClass(ClassInvisible)

	c.schedule(func() {
		left, top := c.position(end, size)
		c.node.SetPosition(left, top)
		c.node.SetOpacity(1)
		c.node.AddClass(ClassVisible)
		c.node.NotifyTransitionEnd(func() {
			c.node.SetPointerEventsEnabled(true)
		})
	})
	c.log.Debug("toolbar show", slog.String("dir", end.Direction.String()))
}

// Hide removes the toolbar from view immediately and cancels any
// pending position write. Calling Hide while hidden is a no-op.
func (c *Controller) Hide() {
	if c.node == nil || !c.IsVisible() {
		return
	}
	c.CancelFrame()
	c.node.SetOpacity(0)
	c.node.SetPointerEventsEnabled(false)
	c.node.RemoveClass(ClassVisible)
	c.node.AddClass(ClassInvisible)
	c.log.Debug("toolbar hide")
}

// UpdatePosition moves an already-visible toolbar to follow pt, e.g. on
// scroll or resize. The write is deferred to the next frame without a
// transition; scheduling again before the frame fires replaces the
// pending write, so only the latest position is ever applied.
func (c *Controller) UpdatePosition(pt InteractionPoint) {
	if c.node == nil || !c.node.Mounted() || !c.IsVisible() {
		return
	}
	size := c.node.Size()
	c.schedule(func() {
		left, top := c.position(pt, size)
		c.node.SetPosition(left, top)
	})
}

// CancelFrame cancels the outstanding frame request, if any. Must run
// before every new request and on unmount so at most one request is
// outstanding at a time.
func (c *Controller) CancelFrame() {
	if c.pending {
		c.sched.Cancel(c.handle)
		c.pending = false
	}
}

// Unmount releases the controller's pending work. The node itself is
// owned by the host and is not touched.
func (c *Controller) Unmount() {
	c.CancelFrame()
}

func (c *Controller) schedule(fn func()) {
	c.CancelFrame()
	c.pending = true
	h := c.sched.Request(func() {
		c.pending = false
		fn()
	})
	// With a synchronous scheduler fn has already run; only remember
	// the handle while the request is still pending.
	if c.pending {
		c.handle = h
	}
}

// position runs the placement translator and both clamping stages for
// one anchor point.
func (c *Controller) position(pt InteractionPoint, size geom.Size) (left, top float32) {
	left, top = PlaceWidget(pt.X, pt.Y, pt.Direction, size.W, size.H, c.opts.Gutter)
	if c.opts.ViewportFunc != nil {
		p := ConstrainToViewport(geom.R(left, top, size.W, size.H), c.opts.ViewportFunc())
		left, top = p.X, p.Y
	}
	if c.container != nil {
		total := c.container.MarginLeft() + c.container.ClientWidth() + c.container.MarginRight()
		if left > total-size.W {
			left = total - size.W
		}
		if left < 0 {
			left = 0
		}
		top += c.container.ScrollTop()
	}
	return left, top
}
