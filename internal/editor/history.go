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
	"sync"
	"time"
)

// BlockSnapshot is a reversible state blob for one block. Blob content
// is opaque to the history; size is estimated as len(Blob).
type BlockSnapshot struct {
	Block int
	Blob  []byte
	TS    time.Time
}

// HistoryConfig controls memory and depth caps and coalescing behavior.
type HistoryConfig struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerBlock limits snapshots per block kept in memory (0 means unlimited).
	MaxPerBlock int
	// MinInterval coalesces snapshots captured within the interval for
	// the same block, replacing the previous one instead of pushing a
	// new entry. Negative disables coalescing.
	MinInterval time.Duration
}

// History is an in-memory undo/redo stack per block with performance
// safeguards. It is safe for concurrent use.
type History struct {
	cfg HistoryConfig
	mu  sync.Mutex
	// per-block stacks
	undo map[int][]BlockSnapshot
	redo map[int][]BlockSnapshot
	// accounting
	totalBytes int
}

func NewHistory(cfg HistoryConfig) *History {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 4 * 1024 * 1024 // 4 MiB
	}
	if cfg.MinInterval == 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &History{cfg: cfg, undo: make(map[int][]BlockSnapshot), redo: make(map[int][]BlockSnapshot)}
}

// Push records a snapshot for a block. If within MinInterval from the
// last snapshot on the same block, it replaces the last one. Clears the
// redo stack for that block.
func (h *History) Push(s BlockSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	stack := h.undo[s.Block]
	if n := len(stack); n > 0 && h.cfg.MinInterval > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < h.cfg.MinInterval {
			h.totalBytes -= len(last.Blob)
			h.totalBytes += len(s.Blob)
			stack[n-1] = s
			h.undo[s.Block] = stack
			h.redo[s.Block] = nil
			h.enforceCapsLocked(s.Block)
			return
		}
	}
	stack = append(stack, s)
	h.undo[s.Block] = stack
	h.totalBytes += len(s.Blob)
	// any new change invalidates redo for the block
	h.redo[s.Block] = nil
	h.enforceCapsLocked(s.Block)
}

// Undo pops the block's last snapshot and stores current on the redo
// stack, so a following Redo restores the state being left.
func (h *History) Undo(block int, current []byte) (BlockSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	stack := h.undo[block]
	if len(stack) == 0 {
		return BlockSnapshot{}, false
	}
	s := stack[len(stack)-1]
	h.undo[block] = stack[:len(stack)-1]
	h.totalBytes -= len(s.Blob)
	h.redo[block] = append(h.redo[block], BlockSnapshot{Block: block, Blob: current, TS: time.Now()})
	h.totalBytes += len(current)
	return s, true
}

// Redo pops the block's last redone state and stores current back on
// the undo stack.
func (h *History) Redo(block int, current []byte) (BlockSnapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := h.redo[block]
	if len(r) == 0 {
		return BlockSnapshot{}, false
	}
	s := r[len(r)-1]
	h.redo[block] = r[:len(r)-1]
	h.totalBytes -= len(s.Blob)
	h.undo[block] = append(h.undo[block], BlockSnapshot{Block: block, Blob: current, TS: time.Now()})
	h.totalBytes += len(current)
	h.enforceCapsLocked(block)
	return s, true
}

// ClearBlock clears undo/redo stacks for a block to free memory.
func (h *History) ClearBlock(block int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.undo[block] {
		h.totalBytes -= len(s.Blob)
	}
	for _, s := range h.redo[block] {
		h.totalBytes -= len(s.Blob)
	}
	delete(h.undo, block)
	delete(h.redo, block)
	if h.totalBytes < 0 {
		h.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (totalBytes int, blocks int, totalSnapshots int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	blocks = len(h.undo)
	for _, v := range h.undo {
		totalSnapshots += len(v)
	}
	return h.totalBytes, blocks, totalSnapshots
}

func (h *History) enforceCapsLocked(block int) {
	if h.cfg.MaxPerBlock > 0 {
		stack := h.undo[block]
		if len(stack) > h.cfg.MaxPerBlock {
			toDrop := len(stack) - h.cfg.MaxPerBlock
			for i := 0; i < toDrop; i++ {
				h.totalBytes -= len(stack[i].Blob)
			}
			h.undo[block] = append([]BlockSnapshot{}, stack[toDrop:]...)
		}
	}
	// global memory cap: prune oldest across all blocks
	for h.cfg.MaxBytes > 0 && h.totalBytes > h.cfg.MaxBytes {
		oldestBlock := 0
		oldestIdx := -1
		var oldestTS time.Time
		for b, stack := range h.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].TS.Before(oldestTS) {
				oldestBlock = b
				oldestIdx = 0
				oldestTS = stack[0].TS
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := h.undo[oldestBlock]
		h.totalBytes -= len(stack[0].Blob)
		h.undo[oldestBlock] = stack[1:]
		if len(h.undo[oldestBlock]) == 0 {
			delete(h.undo, oldestBlock)
		}
	}
}
