/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "inkbar/internal/geom"

// ResolvePoint computes the anchor point and edge direction for a
// selection interaction. ok is false when there is no pending
// interaction; callers must skip the update in that case.
//
// A selection whose start and end line rects share the same top edge is
// a single-line selection and anchors like a bottom-up one regardless
// of the direction the region reports.
func ResolvePoint(ev *InteractionEvent) (pt InteractionPoint, ok bool) {
	if ev == nil || ev.Selection == nil {
		return InteractionPoint{}, false
	}
	sel := ev.Selection

	dir := sel.Direction
	if sel.StartRect != nil && sel.EndRect != nil && sel.StartRect.Top == sel.EndRect.Top {
		dir = BottomToTop
	}
	pt.Direction = dir

	if p := ev.Pointer; p != nil {
		pt.X = horizontalAnchor(sel, p.PageX)
		if dir == BottomToTop {
			pt.Y = min(p.PageY, sel.Top)
		} else {
			pt.Y = max(p.PageY, contentBottom(sel, p.Target))
		}
		return pt, true
	}

	// Keyboard-driven selection: no pointer to bias toward, anchor on
	// the horizontal midpoint.
	pt.X = sel.Left + sel.Width/2
	if dir == TopToBottom {
		pt.Y = contentBottom(sel, nil)
	} else {
		pt.Y = sel.Top
	}
	return pt, true
}

// horizontalAnchor picks the x coordinate of the anchor. A pointer
// released strictly inside the selection bound wins unchanged;
// otherwise the closer of the two edges is used. On an exact tie the
// right edge wins (long-standing behavior, kept as is).
func horizontalAnchor(sel *SelectionRegion, pointerX float32) float32 {
	left := sel.Left
	if sel.StartRect != nil {
		left = sel.StartRect.Left
	}
	right := sel.Right
	if sel.EndRect != nil {
		right = sel.EndRect.Right
	}
	if pointerX > left && pointerX < right {
		return pointerX
	}
	p := geom.Pt{X: pointerX}
	if geom.Dist(geom.Pt{X: left}, p) < geom.Dist(geom.Pt{X: right}, p) {
		return left
	}
	return right
}

// contentBottom returns the bottom edge to anchor below. Selections
// inside a scrollable sub-container anchor to that container's content
// bottom rather than the selection's own bottom edge. Missing inputs
// resolve to 0 so a stale event degrades to a no-op placement.
func contentBottom(sel *SelectionRegion, target VisualNode) float32 {
	if sel == nil || target == nil {
		return 0
	}
	if target.Overflow() == OverflowAuto {
		return target.OffsetTop() + target.OffsetHeight()
	}
	return sel.Bottom
}
