/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

// This file defines the document model the toolbar operates on and the
// contract a host editor exposes to toolbar commands. The toolkit never
// mutates documents directly; it always goes through the Host.

// InlineStyle is a character-level formatting flag.
type InlineStyle string

const (
	StyleBold          InlineStyle = "bold"
	StyleItalic        InlineStyle = "italic"
	StyleUnderline     InlineStyle = "underline"
	StyleStrikethrough InlineStyle = "strikethrough"
	StyleCode          InlineStyle = "code"
)

// BlockType is a paragraph-level formatting kind.
type BlockType string

const (
	BlockParagraph  BlockType = "paragraph"
	BlockHeaderOne  BlockType = "header_one"
	BlockHeaderTwo  BlockType = "header_two"
	BlockQuote      BlockType = "blockquote"
	BlockOrdered    BlockType = "ordered_list_item"
	BlockUnordered  BlockType = "unordered_list_item"
	BlockCodeFence  BlockType = "code_block"
)

// StyleRange marks [Offset, Offset+Length) of a block's text with a style.
type StyleRange struct {
	Offset int         `json:"offset"`
	Length int         `json:"length"`
	Style  InlineStyle `json:"style"`
}

// Block is one paragraph-level unit of a document.
type Block struct {
	Type   BlockType    `json:"type"`
	Text   string       `json:"text"`
	Styles []StyleRange `json:"styles,omitempty"`
}

// Document is a flat list of blocks; rich enough for toolbar commands
// and PDF export without reimplementing a full editing engine.
type Document struct {
	Title  string  `json:"title,omitempty"`
	Blocks []Block `json:"blocks"`
}

// Selection addresses a rune range inside one block. Collapsed
// selections have Start == End.
type Selection struct {
	Block int
	Start int
	End   int
}

// Collapsed reports whether the selection spans no text.
func (s Selection) Collapsed() bool { return s.Start >= s.End }

// Host is the command surface a text-editing engine exposes to the
// toolbar. Buttons are glue: they delegate here and never reach into
// the engine's internals.
type Host interface {
	Document() *Document
	Selection() Selection

	// ToggleInlineStyle applies style to the current selection, or
	// removes it when the whole selection already carries it.
	ToggleInlineStyle(style InlineStyle)

	// SetBlockType changes the block containing the selection.
	SetBlockType(bt BlockType)

	// HasInlineStyle reports whether the whole current selection
	// carries style (drives button active states).
	HasInlineStyle(style InlineStyle) bool
}
