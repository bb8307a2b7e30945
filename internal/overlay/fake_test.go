/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import "inkbar/internal/geom"

// fakeNode records every mutation the controller applies so tests can
// assert on ordering and counts.
type fakeNode struct {
	mounted      bool
	size         geom.Size
	offsetTop    float32
	offsetHeight float32
	overflow     Overflow

	classes map[string]bool

	left, top     float32
	positionCalls int
	opacity       float32
	opacityCalls  int
	pointerOn     bool
	mutations     int

	transitionFn func()
}

func newFakeNode(w, h float32) *fakeNode {
	return &fakeNode{
		mounted: true,
		size:    geom.Size{W: w, H: h},
		classes: map[string]bool{ClassInvisible: true},
	}
}

func (n *fakeNode) Mounted() bool         { return n.mounted }
func (n *fakeNode) OffsetTop() float32    { return n.offsetTop }
func (n *fakeNode) OffsetHeight() float32 { return n.offsetHeight }
func (n *fakeNode) Size() geom.Size       { return n.size }
func (n *fakeNode) Overflow() Overflow    { return n.overflow }

func (n *fakeNode) SetPosition(left, top float32) {
	n.left, n.top = left, top
	n.positionCalls++
	n.mutations++
}

func (n *fakeNode) SetOpacity(o float32) {
	n.opacity = o
	n.opacityCalls++
	n.mutations++
}

func (n *fakeNode) SetPointerEventsEnabled(on bool) {
	n.pointerOn = on
	n.mutations++
}

func (n *fakeNode) AddClass(name string) {
	n.classes[name] = true
	n.mutations++
}

func (n *fakeNode) RemoveClass(name string) {
	delete(n.classes, name)
	n.mutations++
}

func (n *fakeNode) HasClass(name string) bool { return n.classes[name] }

func (n *fakeNode) NotifyTransitionEnd(fn func()) { n.transitionFn = fn }

// finishTransition fires the one-shot transition-end edge.
func (n *fakeNode) finishTransition() {
	if fn := n.transitionFn; fn != nil {
		n.transitionFn = nil
		fn()
	}
}

// manualScheduler queues frame callbacks until the test fires them.
type manualScheduler struct {
	next     FrameHandle
	queued   map[FrameHandle]func()
	order    []FrameHandle
	requests int
	cancels  int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{queued: map[FrameHandle]func(){}}
}

func (s *manualScheduler) Request(fn func()) FrameHandle {
	s.next++
	s.queued[s.next] = fn
	s.order = append(s.order, s.next)
	s.requests++
	return s.next
}

func (s *manualScheduler) Cancel(h FrameHandle) {
	delete(s.queued, h)
	s.cancels++
}

// fire runs all still-queued callbacks in request order.
func (s *manualScheduler) fire() {
	for _, h := range s.order {
		if fn, ok := s.queued[h]; ok {
			delete(s.queued, h)
			fn()
		}
	}
	s.order = nil
}

// fixedContainer is a ScrollContainer with constant metrics.
type fixedContainer struct {
	scrollTop   float32
	clientWidth float32
	marginLeft  float32
	marginRight float32
}

func (c fixedContainer) ScrollTop() float32   { return c.scrollTop }
func (c fixedContainer) ClientWidth() float32 { return c.clientWidth }
func (c fixedContainer) MarginLeft() float32  { return c.marginLeft }
func (c fixedContainer) MarginRight() float32 { return c.marginRight }
