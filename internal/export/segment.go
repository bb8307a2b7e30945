/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders documents to interchange formats (PDF, EPUB).
package export

import (
	"sort"

	"inkbar/internal/editor"
)

// Segment is a maximal run of a block's text with a constant style set.
type Segment struct {
	Text          string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
}

// SegmentBlock flattens a block's overlapping style ranges into
// consecutive segments covering the whole text. Offsets are rune
// offsets, matching the editor model.
func SegmentBlock(b editor.Block) []Segment {
	runes := []rune(b.Text)
	if len(runes) == 0 {
		return nil
	}

	// collect cut points where any range starts or ends
	cuts := map[int]struct{}{0: {}, len(runes): {}}
	for _, r := range b.Styles {
		if r.Offset >= 0 && r.Offset < len(runes) {
			cuts[r.Offset] = struct{}{}
		}
		if end := r.Offset + r.Length; end > 0 && end <= len(runes) {
			cuts[end] = struct{}{}
		}
	}
	offsets := make([]int, 0, len(cuts))
	for o := range cuts {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)

	segs := make([]Segment, 0, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		lo, hi := offsets[i], offsets[i+1]
		seg := Segment{Text: string(runes[lo:hi])}
		for _, r := range b.Styles {
			if r.Offset <= lo && hi <= r.Offset+r.Length {
				switch r.Style {
				case editor.StyleBold:
					seg.Bold = true
				case editor.StyleItalic:
					seg.Italic = true
				case editor.StyleUnderline:
					seg.Underline = true
				case editor.StyleStrikethrough:
					seg.Strikethrough = true
				case editor.StyleCode:
					seg.Code = true
				}
			}
		}
		segs = append(segs, seg)
	}
	return segs
}
