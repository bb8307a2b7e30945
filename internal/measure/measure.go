/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package measure turns text plus a selection into the line geometry the
// anchor resolver consumes. Measurement is isolated behind a face so
// tests stay deterministic.
package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"inkbar/internal/geom"
	"inkbar/internal/overlay"
)

// Measurer measures text with a fixed font face.
type Measurer struct {
	face    font.Face
	ascent  float32
	descent float32
	lineGap float32
}

// New returns a measurer backed by x/image basicfont Face7x13 so that
// results are identical on every platform.
func New() *Measurer {
	return NewWithFace(basicfont.Face7x13)
}

// NewWithFace wraps an arbitrary face, e.g. one resolved from the UI
// theme.
func NewWithFace(face font.Face) *Measurer {
	m := face.Metrics()
	return &Measurer{
		face:    face,
		ascent:  float32(m.Ascent.Round()),
		descent: float32(m.Descent.Round()),
		lineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// LineHeight is the vertical extent of one laid out line.
func (m *Measurer) LineHeight() float32 {
	return m.ascent + m.descent + m.lineGap
}

// Advance returns the horizontal extent of s.
func (m *Measurer) Advance(s string) float32 {
	d := &font.Drawer{Face: m.face}
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Line is a wrapped run of text addressed by rune offsets.
type Line struct {
	Start int
	End   int
	Width float32
}

// Wrap breaks text into lines at spaces. A word longer than maxWidth is
// placed alone on its line rather than split.
func (m *Measurer) Wrap(text string, maxWidth float32) []Line {
	runes := []rune(text)
	var lines []Line
	cur := Line{}
	flush := func(next int) {
		lines = append(lines, cur)
		cur = Line{Start: next, End: next}
	}

	wordStart := 0
	for i := 0; i <= len(runes); i++ {
		atEnd := i == len(runes)
		if !atEnd && runes[i] != ' ' && runes[i] != '\n' {
			continue
		}
		word := string(runes[wordStart:i])
		w := m.Advance(word)
		if maxWidth > 0 && cur.Width > 0 && cur.Width+w > maxWidth {
			flush(wordStart)
		}
		if word != "" {
			if cur.Width == 0 {
				cur.Start = wordStart
			}
			cur.End = i
			cur.Width += w
		}
		if !atEnd && runes[i] == ' ' {
			cur.End = i + 1
			cur.Width += m.Advance(" ")
		}
		if !atEnd && runes[i] == '\n' {
			flush(i + 1)
		}
		wordStart = i + 1
	}
	if cur.Width > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// Region computes the selection geometry for [start,end) rune offsets
// of text wrapped to maxWidth, with the text block's top-left at
// origin. dir carries the drag direction observed by the caller.
func (m *Measurer) Region(text string, start, end int, origin geom.Pt, maxWidth float32, dir overlay.Direction) overlay.SelectionRegion {
	lines := m.Wrap(text, maxWidth)
	lineH := m.LineHeight()

	startLine := m.lineAt(lines, start)
	endLine := m.lineAt(lines, max(start, end-1))

	runes := []rune(text)
	offsetX := func(li int, off int) float32 {
		l := lines[li]
		off = min(max(off, l.Start), l.End)
		return origin.X + m.Advance(string(runes[l.Start:off]))
	}

	startRect := overlay.LineRect{
		Top:   origin.Y + float32(startLine)*lineH,
		Left:  offsetX(startLine, start),
		Right: origin.X + lines[startLine].Width,
	}
	endRect := overlay.LineRect{
		Top:   origin.Y + float32(endLine)*lineH,
		Left:  origin.X,
		Right: offsetX(endLine, end),
	}
	if startLine == endLine {
		startRect.Right = endRect.Right
		endRect.Left = startRect.Left
	}

	left := min(startRect.Left, endRect.Left)
	right := max(startRect.Right, endRect.Right)
	top := startRect.Top
	bottom := endRect.Top + lineH
	return overlay.SelectionRegion{
		Top:       top,
		Bottom:    bottom,
		Left:      left,
		Right:     right,
		Width:     right - left,
		Height:    bottom - top,
		Direction: dir,
		StartRect: &startRect,
		EndRect:   &endRect,
	}
}

// lineAt returns the index of the line containing rune offset off.
func (m *Measurer) lineAt(lines []Line, off int) int {
	for i, l := range lines {
		if off < l.End || (off == l.End && i == len(lines)-1) {
			return i
		}
	}
	return len(lines) - 1
}
