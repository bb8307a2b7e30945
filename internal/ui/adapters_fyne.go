//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"inkbar/internal/geom"
	"inkbar/internal/overlay"
)

// frameInterval approximates one paint at 60Hz.
const frameInterval = 16 * time.Millisecond

// frameScheduler defers callbacks to the next frame on the Fyne event
// loop. Safe for concurrent use.
type frameScheduler struct {
	mu     sync.Mutex
	next   overlay.FrameHandle
	timers map[overlay.FrameHandle]*time.Timer
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{timers: map[overlay.FrameHandle]*time.Timer{}}
}

func (s *frameScheduler) Request(fn func()) overlay.FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(frameInterval, func() {
		s.mu.Lock()
		delete(s.timers, h)
		s.mu.Unlock()
		fyne.Do(fn)
	})
	return h
}

func (s *frameScheduler) Cancel(h overlay.FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// toolbarNode adapts a Fyne container to overlay.VisualNode. Fyne has
// no per-object opacity, so opacity zero maps to hiding the object;
// the show transition becomes an instant reveal at the end position.
type toolbarNode struct {
	obj        fyne.CanvasObject
	animation  time.Duration
	mounted    bool
	pointersOn bool
	classes    map[string]struct{}
}

func newToolbarNode(obj fyne.CanvasObject, animation time.Duration) *toolbarNode {
	n := &toolbarNode{
		obj:       obj,
		animation: animation,
		classes:   map[string]struct{}{overlay.ClassInvisible: {}},
	}
	obj.Hide()
	return n
}

func (n *toolbarNode) setMounted(m bool) { n.mounted = m }

func (n *toolbarNode) Mounted() bool { return n.mounted }

func (n *toolbarNode) OffsetTop() float32 { return n.obj.Position().Y }

func (n *toolbarNode) OffsetHeight() float32 { return n.obj.Size().Height }

func (n *toolbarNode) Size() geom.Size {
	sz := n.obj.Size()
	if sz.Width == 0 || sz.Height == 0 {
		sz = n.obj.MinSize()
	}
	return geom.Size{W: sz.Width, H: sz.Height}
}

func (n *toolbarNode) Overflow() overlay.Overflow { return overlay.OverflowVisible }

func (n *toolbarNode) SetPosition(left, top float32) {
	n.obj.Move(fyne.NewPos(left, top))
}

func (n *toolbarNode) SetOpacity(opacity float32) {
	if opacity <= 0 {
		n.obj.Hide()
	} else {
		n.obj.Show()
		n.obj.Refresh()
	}
}

func (n *toolbarNode) SetPointerEventsEnabled(enabled bool) { n.pointersOn = enabled }

func (n *toolbarNode) PointerEventsEnabled() bool { return n.pointersOn }

func (n *toolbarNode) AddClass(name string) { n.classes[name] = struct{}{} }

func (n *toolbarNode) RemoveClass(name string) { delete(n.classes, name) }

func (n *toolbarNode) HasClass(name string) bool {
	_, ok := n.classes[name]
	return ok
}

func (n *toolbarNode) NotifyTransitionEnd(fn func()) {
	if n.animation <= 0 {
		fn()
		return
	}
	time.AfterFunc(n.animation, func() { fyne.Do(fn) })
}

// scrollPane adapts a Fyne scroll container to overlay.ScrollContainer.
// Fyne scroll containers have no margins of their own.
type scrollPane struct {
	scroll *container.Scroll
}

func (p *scrollPane) ScrollTop() float32 { return p.scroll.Offset.Y }

func (p *scrollPane) ClientWidth() float32 { return p.scroll.Size().Width }

func (p *scrollPane) MarginLeft() float32 { return 0 }

func (p *scrollPane) MarginRight() float32 { return 0 }
