/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"
	"time"
)

func TestHistoryUndoRedoBasic(t *testing.T) {
	h := NewHistory(HistoryConfig{MaxBytes: 1024 * 1024, MaxPerBlock: 10, MinInterval: 10 * time.Millisecond})
	blk := 1
	h.Push(BlockSnapshot{Block: blk, Blob: []byte("a"), TS: time.Now()})
	h.Push(BlockSnapshot{Block: blk, Blob: []byte("b"), TS: time.Now().Add(20 * time.Millisecond)})
	if _, blocks, total := h.Stats(); blocks != 1 || total != 2 {
		t.Fatalf("expected 1 block and 2 snapshots, got blocks=%d total=%d", blocks, total)
	}
	s, ok := h.Undo(blk, []byte("c"))
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("undo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
	// redo restores the state in place when Undo ran
	s, ok = h.Redo(blk, []byte("b"))
	if !ok || string(s.Blob) != "c" {
		t.Fatalf("redo expected 'c', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestHistoryCoalesce(t *testing.T) {
	h := NewHistory(HistoryConfig{MaxBytes: 1024 * 1024, MaxPerBlock: 10, MinInterval: 50 * time.Millisecond})
	blk := 2
	t0 := time.Now()
	h.Push(BlockSnapshot{Block: blk, Blob: []byte("1"), TS: t0})
	h.Push(BlockSnapshot{Block: blk, Blob: []byte("2"), TS: t0.Add(10 * time.Millisecond)}) // coalesce
	_, _, total := h.Stats()
	if total != 1 {
		t.Fatalf("expected coalesced to 1 snapshot, got %d", total)
	}
	s, ok := h.Undo(blk, nil)
	if !ok || string(s.Blob) != "2" {
		t.Fatalf("expected coalesced snapshot '2', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestHistoryCaps(t *testing.T) {
	h := NewHistory(HistoryConfig{MaxBytes: 20, MaxPerBlock: 2, MinInterval: 1 * time.Millisecond})
	blk := 3
	for i := 0; i < 10; i++ {
		h.Push(BlockSnapshot{Block: blk, Blob: []byte("xxxxx"), TS: time.Now().Add(time.Duration(i) * time.Millisecond)})
	}
	_, _, total := h.Stats()
	if total > 2 {
		t.Fatalf("expected MaxPerBlock cap to limit to 2, got %d", total)
	}
}

func TestHistoryClearBlock(t *testing.T) {
	h := NewHistory(HistoryConfig{MinInterval: -1})
	h.Push(BlockSnapshot{Block: 0, Blob: []byte("abc"), TS: time.Now()})
	h.ClearBlock(0)
	if bytes, blocks, total := h.Stats(); bytes != 0 || blocks != 0 || total != 0 {
		t.Fatalf("clear left state: bytes=%d blocks=%d total=%d", bytes, blocks, total)
	}
	if _, ok := h.Undo(0, nil); ok {
		t.Fatal("undo after clear should fail")
	}
}

func TestBufferUndoRedoRoundTrip(t *testing.T) {
	b := NewBuffer(sampleDoc())
	b.EnableHistory(HistoryConfig{MinInterval: -1})
	b.Select(0, 0, 5)

	b.ToggleInlineStyle(StyleBold)
	if !b.HasInlineStyle(StyleBold) {
		t.Fatal("toggle should apply bold")
	}
	if !b.Undo() {
		t.Fatal("undo should succeed")
	}
	if b.HasInlineStyle(StyleBold) {
		t.Fatal("undo should remove bold")
	}
	if !b.Redo() {
		t.Fatal("redo should succeed")
	}
	if !b.HasInlineStyle(StyleBold) {
		t.Fatal("redo should reapply bold")
	}
}

func TestBufferUndoBlockType(t *testing.T) {
	b := NewBuffer(sampleDoc())
	b.EnableHistory(HistoryConfig{MinInterval: -1})
	b.Select(1, 0, 0)
	b.SetBlockType(BlockQuote)
	if got := b.BlockTypeAt(1); got != BlockQuote {
		t.Fatalf("type = %q", got)
	}
	if !b.Undo() {
		t.Fatal("undo should succeed")
	}
	if got := b.BlockTypeAt(1); got != BlockParagraph {
		t.Fatalf("undo left type %q", got)
	}
}

func TestBufferUndoWithoutHistory(t *testing.T) {
	b := NewBuffer(sampleDoc())
	if b.Undo() || b.Redo() {
		t.Fatal("undo/redo without history must report false")
	}
}
