/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "inkbar/internal/geom"

// ConstrainToViewport keeps a proposed widget rect inside the visible
// pane. Only the right edge is clamped horizontally and only the top
// edge vertically; the left/bottom overflows are left to the caller's
// container clamp. Pure and deterministic for identical inputs.
func ConstrainToViewport(rect geom.Rect, vp Viewport) geom.Pt {
	p := rect.Min()
	if over := rect.Max().X - vp.Width; over > 0 {
		p.X -= over
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// PlaceWidget translates an anchor point, direction, widget size and
// gutter into the widget's top-left corner.
//
// Vertical directions center the widget on the anchor and stack it
// below (TopToBottom) or above (BottomToTop) the anchor. Horizontal
// directions center vertically and offset sideways by the widget's
// height. DirectionNone passes the anchor through unmodified. Both
// results are floored at 0.
//
// Callers owning a scroll container apply a second stage: re-clamp left
// against the container's total width minus the widget width and add
// the container's vertical scroll offset to top.
func PlaceWidget(anchorX, anchorY float32, dir Direction, width, height float32, g Gutter) (left, top float32) {
	left, top = anchorX, anchorY
	switch dir {
	case TopToBottom:
		left = anchorX - g.Left - width/2
		top = anchorY + g.Top
	case BottomToTop:
		left = anchorX - g.Left - width/2
		top = anchorY - height - g.Top
	case LeftToRight:
		left = anchorX + height/2 + g.Left
		top = anchorY - g.Top - height/2
	case RightToLeft:
		left = anchorX - 1.5*height - g.Left
		top = anchorY - g.Top - height/2
	}
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return left, top
}
