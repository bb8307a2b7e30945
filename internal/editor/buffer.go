/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"encoding/json"
	"sort"
	"time"
	"unicode/utf8"
)

// Buffer is a reference Host backed by an in-memory Document. The demo
// shell uses it; real integrations supply their own Host.
type Buffer struct {
	doc  Document
	sel  Selection
	hist *History
}

// NewBuffer wraps doc. A nil doc yields a single empty paragraph.
func NewBuffer(doc *Document) *Buffer {
	b := &Buffer{}
	if doc != nil {
		b.doc = *doc
	}
	if len(b.doc.Blocks) == 0 {
		b.doc.Blocks = []Block{{Type: BlockParagraph}}
	}
	return b
}

func (b *Buffer) Document() *Document { return &b.doc }

func (b *Buffer) Selection() Selection { return b.sel }

// Select clamps the range to the addressed block and stores it.
func (b *Buffer) Select(block, start, end int) {
	if block < 0 {
		block = 0
	}
	if block >= len(b.doc.Blocks) {
		block = len(b.doc.Blocks) - 1
	}
	n := utf8.RuneCountInString(b.doc.Blocks[block].Text)
	start = clampOffset(start, n)
	end = clampOffset(end, n)
	if end < start {
		start, end = end, start
	}
	b.sel = Selection{Block: block, Start: start, End: end}
}

func clampOffset(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

// EnableHistory attaches an undo/redo history to the buffer. Mutations
// snapshot the affected block before changing it.
func (b *Buffer) EnableHistory(cfg HistoryConfig) {
	b.hist = NewHistory(cfg)
}

func (b *Buffer) checkpoint() {
	if b.hist == nil {
		return
	}
	blob, err := json.Marshal(b.doc.Blocks[b.sel.Block])
	if err != nil {
		return
	}
	b.hist.Push(BlockSnapshot{Block: b.sel.Block, Blob: blob, TS: time.Now()})
}

// Undo restores the selected block's previous state.
func (b *Buffer) Undo() bool {
	return b.restore(func(cur []byte) (BlockSnapshot, bool) {
		return b.hist.Undo(b.sel.Block, cur)
	})
}

// Redo reverses the most recent Undo on the selected block.
func (b *Buffer) Redo() bool {
	return b.restore(func(cur []byte) (BlockSnapshot, bool) {
		return b.hist.Redo(b.sel.Block, cur)
	})
}

func (b *Buffer) restore(pop func(cur []byte) (BlockSnapshot, bool)) bool {
	if b.hist == nil {
		return false
	}
	cur, err := json.Marshal(b.doc.Blocks[b.sel.Block])
	if err != nil {
		return false
	}
	s, ok := pop(cur)
	if !ok {
		return false
	}
	var blk Block
	if err := json.Unmarshal(s.Blob, &blk); err != nil {
		return false
	}
	b.doc.Blocks[b.sel.Block] = blk
	// re-clamp in case the restored text is shorter
	b.Select(b.sel.Block, b.sel.Start, b.sel.End)
	return true
}

func (b *Buffer) ToggleInlineStyle(style InlineStyle) {
	if b.sel.Collapsed() {
		return
	}
	b.checkpoint()
	blk := &b.doc.Blocks[b.sel.Block]
	if rangeCovered(blk.Styles, b.sel.Start, b.sel.End, style) {
		blk.Styles = removeStyle(blk.Styles, b.sel.Start, b.sel.End, style)
	} else {
		blk.Styles = addStyle(blk.Styles, b.sel.Start, b.sel.End, style)
	}
}

func (b *Buffer) SetBlockType(bt BlockType) {
	b.checkpoint()
	b.doc.Blocks[b.sel.Block].Type = bt
}

func (b *Buffer) HasInlineStyle(style InlineStyle) bool {
	if b.sel.Collapsed() {
		return false
	}
	return rangeCovered(b.doc.Blocks[b.sel.Block].Styles, b.sel.Start, b.sel.End, style)
}

// BlockTypeAt returns the type of block i, or BlockParagraph when i is
// out of range.
func (b *Buffer) BlockTypeAt(i int) BlockType {
	if i < 0 || i >= len(b.doc.Blocks) {
		return BlockParagraph
	}
	return b.doc.Blocks[i].Type
}

// rangeCovered reports whether [start,end) is fully inside the union of
// the ranges carrying style.
func rangeCovered(ranges []StyleRange, start, end int, style InlineStyle) bool {
	pos := start
	for pos < end {
		advanced := false
		for _, r := range ranges {
			if r.Style != style {
				continue
			}
			if r.Offset <= pos && pos < r.Offset+r.Length {
				pos = r.Offset + r.Length
				advanced = true
			}
		}
		if !advanced {
			return false
		}
	}
	return true
}

// addStyle inserts [start,end) and merges overlapping or adjacent
// ranges of the same style so Styles stays canonical.
func addStyle(ranges []StyleRange, start, end int, style InlineStyle) []StyleRange {
	out := make([]StyleRange, 0, len(ranges)+1)
	lo, hi := start, end
	for _, r := range ranges {
		if r.Style != style {
			out = append(out, r)
			continue
		}
		if r.Offset+r.Length < lo || r.Offset > hi {
			out = append(out, r)
			continue
		}
		// overlaps or touches the new range; absorb it
		if r.Offset < lo {
			lo = r.Offset
		}
		if r.Offset+r.Length > hi {
			hi = r.Offset + r.Length
		}
	}
	out = append(out, StyleRange{Offset: lo, Length: hi - lo, Style: style})
	sortRanges(out)
	return out
}

// removeStyle subtracts [start,end) from every range of the style,
// splitting ranges that straddle the cut.
func removeStyle(ranges []StyleRange, start, end int, style InlineStyle) []StyleRange {
	out := make([]StyleRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Style != style || r.Offset+r.Length <= start || r.Offset >= end {
			out = append(out, r)
			continue
		}
		if r.Offset < start {
			out = append(out, StyleRange{Offset: r.Offset, Length: start - r.Offset, Style: style})
		}
		if r.Offset+r.Length > end {
			out = append(out, StyleRange{Offset: end, Length: r.Offset + r.Length - end, Style: style})
		}
	}
	sortRanges(out)
	return out
}

func sortRanges(rs []StyleRange) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Offset != rs[j].Offset {
			return rs[i].Offset < rs[j].Offset
		}
		return rs[i].Style < rs[j].Style
	})
}
