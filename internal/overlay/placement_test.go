/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"testing"

	"inkbar/internal/geom"
)

func TestConstrainToViewportRightClamp(t *testing.T) {
	// Overflowing the right edge by 30 pulls x back by the overflow:
	// 100 - (100+50-120) = 70. Negative top floors at 0.
	p := ConstrainToViewport(geom.R(100, -5, 50, 20), Viewport{Width: 120})
	if p.X != 70 || p.Y != 0 {
		t.Fatalf("got (%v,%v), want (70,0)", p.X, p.Y)
	}
	// The clamped rect sits flush with the viewport's right edge.
	if p.X+50 != 120 {
		t.Fatalf("right edge at %v, want flush with 120", p.X+50)
	}
}

func TestConstrainToViewportNoClampNeeded(t *testing.T) {
	p := ConstrainToViewport(geom.R(10, 20, 50, 20), Viewport{Width: 120})
	if p.X != 10 || p.Y != 20 {
		t.Fatalf("got (%v,%v), want (10,20)", p.X, p.Y)
	}
	// No left-edge horizontal clamp here; a negative left passes
	// through (the container clamp owns that edge).
	p = ConstrainToViewport(geom.R(-15, 20, 50, 20), Viewport{Width: 120})
	if p.X != -15 {
		t.Fatalf("left edge should pass through, got %v", p.X)
	}
}

func TestPlaceWidgetVertical(t *testing.T) {
	// TopToBottom centers horizontally: 100-0-80/2=60, drops below the
	// anchor by the gutter: 50+10=60.
	left, top := PlaceWidget(100, 50, TopToBottom, 80, 20, Gutter{Left: 0, Top: 10})
	if left != 60 || top != 60 {
		t.Fatalf("got (%v,%v), want (60,60)", left, top)
	}
	// BottomToTop stacks above: 200-20-10=170.
	left, top = PlaceWidget(100, 200, BottomToTop, 80, 20, Gutter{Left: 0, Top: 10})
	if left != 60 || top != 170 {
		t.Fatalf("got (%v,%v), want (60,170)", left, top)
	}
}

func TestPlaceWidgetHorizontal(t *testing.T) {
	g := Gutter{Left: 4, Top: 6}
	// LeftToRight: right of the anchor by half the widget height plus
	// gutter (100+10+4=114); vertically centered minus gutter
	// (50-6-10=34).
	left, top := PlaceWidget(100, 50, LeftToRight, 80, 20, g)
	if left != 114 || top != 34 {
		t.Fatalf("got (%v,%v), want (114,34)", left, top)
	}
	// RightToLeft: left of the anchor by 1.5 widget heights plus gutter
	// (100-30-4=66).
	left, top = PlaceWidget(100, 50, RightToLeft, 80, 20, g)
	if left != 66 || top != 34 {
		t.Fatalf("got (%v,%v), want (66,34)", left, top)
	}
}

func TestPlaceWidgetNoDirectionPassesThrough(t *testing.T) {
	left, top := PlaceWidget(33, 44, DirectionNone, 80, 20, Gutter{Left: 5, Top: 5})
	if left != 33 || top != 44 {
		t.Fatalf("got (%v,%v), want (33,44)", left, top)
	}
}

func TestPlaceWidgetFloorsAtZero(t *testing.T) {
	// Anchor near the page origin pushes both coordinates negative;
	// they floor at 0.
	left, top := PlaceWidget(10, 5, BottomToTop, 80, 20, Gutter{Left: 0, Top: 10})
	if left != 0 || top != 0 {
		t.Fatalf("got (%v,%v), want (0,0)", left, top)
	}
}
