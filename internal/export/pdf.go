/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"inkbar/internal/editor"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt). We rely on built-in Helvetica and Courier for
// portability; font embedding can be added later.
type PDFOptions struct {
	PageWidth  float64 // defaults to A4 (595pt)
	PageHeight float64 // defaults to A4 (842pt)
	Margin     float64 // defaults to 54pt (0.75in)
	BaseSize   float64 // body font size, defaults to 12pt
}

func (o *PDFOptions) fillDefaults() {
	if o.PageWidth <= 0 {
		o.PageWidth = 595
	}
	if o.PageHeight <= 0 {
		o.PageHeight = 842
	}
	if o.Margin <= 0 {
		o.Margin = 54
	}
	if o.BaseSize <= 0 {
		o.BaseSize = 12
	}
}

// ExportDocumentPDF writes doc as a flowing multi-page PDF at outPath.
func ExportDocumentPDF(doc *editor.Document, outPath string, opt PDFOptions) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	opt.fillDefaults()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: opt.PageWidth, Ht: opt.PageHeight},
		OrientationStr: "",
	})
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor("Inkbar", false)
	pdf.SetMargins(opt.Margin, opt.Margin, opt.Margin)
	pdf.SetAutoPageBreak(true, opt.Margin)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Helvetica", "B", opt.BaseSize*2)
		pdf.MultiCell(0, opt.BaseSize*2.4, doc.Title, "", "L", false)
		pdf.Ln(opt.BaseSize)
	}

	for _, blk := range doc.Blocks {
		writeBlockPDF(pdf, blk, opt)
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// blockFont returns family, base style and size for a block type.
func blockFont(bt editor.BlockType, base float64) (family, style string, size float64) {
	switch bt {
	case editor.BlockHeaderOne:
		return "Helvetica", "B", base * 1.7
	case editor.BlockHeaderTwo:
		return "Helvetica", "B", base * 1.35
	case editor.BlockQuote:
		return "Helvetica", "I", base
	case editor.BlockCodeFence:
		return "Courier", "", base * 0.9
	default:
		return "Helvetica", "", base
	}
}

func writeBlockPDF(pdf *gofpdf.Fpdf, blk editor.Block, opt PDFOptions) {
	family, baseStyle, size := blockFont(blk.Type, opt.BaseSize)
	lineH := size * 1.4

	indent := 0.0
	switch blk.Type {
	case editor.BlockQuote, editor.BlockOrdered, editor.BlockUnordered:
		indent = opt.BaseSize * 1.5
	}
	if indent > 0 {
		pdf.SetLeftMargin(opt.Margin + indent)
		pdf.SetX(opt.Margin + indent)
	}

	if blk.Type == editor.BlockUnordered || blk.Type == editor.BlockOrdered {
		pdf.SetFont(family, baseStyle, size)
		pdf.SetX(opt.Margin)
		pdf.CellFormat(indent, lineH, "•", "", 0, "L", false, 0, "")
	}

	if blk.Text == "" {
		pdf.Ln(lineH)
	}
	for _, seg := range SegmentBlock(blk) {
		fam, styleStr := family, baseStyle
		if seg.Code {
			fam = "Courier"
		}
		if seg.Bold && baseStyle != "B" {
			styleStr += "B"
		}
		if seg.Italic && baseStyle != "I" {
			styleStr += "I"
		}
		if seg.Underline {
			styleStr += "U"
		}
		if seg.Strikethrough {
			styleStr += "S"
		}
		pdf.SetFont(fam, styleStr, size)
		pdf.Write(lineH, seg.Text)
	}
	if blk.Text != "" {
		pdf.Ln(lineH)
	}
	pdf.Ln(size * 0.5)

	if indent > 0 {
		pdf.SetLeftMargin(opt.Margin)
	}
}
