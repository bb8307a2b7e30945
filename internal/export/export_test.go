/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkbar/internal/editor"
)

func sampleDoc() *editor.Document {
	return &editor.Document{
		Title: "Export Sample",
		Blocks: []editor.Block{
			{Type: editor.BlockHeaderOne, Text: "Intro"},
			{Type: editor.BlockParagraph, Text: "hello bold world", Styles: []editor.StyleRange{
				{Offset: 6, Length: 4, Style: editor.StyleBold},
			}},
			{Type: editor.BlockQuote, Text: "a quoted line"},
			{Type: editor.BlockUnordered, Text: "first item"},
			{Type: editor.BlockUnordered, Text: "second item"},
			{Type: editor.BlockCodeFence, Text: "x := 1 < 2"},
		},
	}
}

func TestSegmentBlockSplitsOnStyleBoundaries(t *testing.T) {
	blk := editor.Block{Text: "hello bold world", Styles: []editor.StyleRange{
		{Offset: 6, Length: 4, Style: editor.StyleBold},
		{Offset: 0, Length: 5, Style: editor.StyleItalic},
	}}
	segs := SegmentBlock(blk)
	if len(segs) != 4 {
		t.Fatalf("segments = %d (%+v), want 4", len(segs), segs)
	}
	if segs[0].Text != "hello" || !segs[0].Italic || segs[0].Bold {
		t.Fatalf("seg 0 = %+v", segs[0])
	}
	if segs[1].Text != " " || segs[1].Bold || segs[1].Italic {
		t.Fatalf("seg 1 = %+v", segs[1])
	}
	if segs[2].Text != "bold" || !segs[2].Bold {
		t.Fatalf("seg 2 = %+v", segs[2])
	}
	if segs[3].Text != " world" || segs[3].Bold {
		t.Fatalf("seg 3 = %+v", segs[3])
	}
}

func TestSegmentBlockEmptyText(t *testing.T) {
	if segs := SegmentBlock(editor.Block{}); segs != nil {
		t.Fatalf("segments for empty block = %v, want nil", segs)
	}
}

func TestExportDocumentPDFCreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sub", "doc.pdf")
	if err := ExportDocumentPDF(sampleDoc(), out, PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestExportDocumentPDFNilDoc(t *testing.T) {
	if err := ExportDocumentPDF(nil, "x.pdf", PDFOptions{}); err == nil {
		t.Fatal("expected error for nil document")
	}
}

func TestExportDocumentEPUBStructure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "doc")
	if err := ExportDocumentEPUB(sampleDoc(), out, EPUBOptions{Author: "Tester"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	// extension is appended when missing
	zr, err := zip.OpenReader(out + ".epub")
	if err != nil {
		t.Fatalf("open epub: %v", err)
	}
	defer func() { _ = zr.Close() }()

	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[f.Name] = f
	}
	for _, name := range []string{"mimetype", "META-INF/container.xml", "OEBPS/content.opf", "OEBPS/nav.xhtml", "OEBPS/chapter.xhtml", "OEBPS/styles/epub.css"} {
		if files[name] == nil {
			t.Fatalf("missing entry %s", name)
		}
	}
	// mimetype must be the first entry and stored uncompressed
	if zr.File[0].Name != "mimetype" || zr.File[0].Method != zip.Store {
		t.Fatalf("mimetype entry wrong: name=%s method=%d", zr.File[0].Name, zr.File[0].Method)
	}

	rc, err := files["OEBPS/chapter.xhtml"].Open()
	if err != nil {
		t.Fatalf("open chapter: %v", err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read chapter: %v", err)
	}
	html := string(data)
	for _, want := range []string{
		"<h2>Intro</h2>",
		"<strong>bold</strong>",
		"<blockquote><p>a quoted line</p></blockquote>",
		"<ul>",
		"<li>first item</li>",
		"<pre><code>x := 1 &lt; 2</code></pre>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("chapter missing %q:\n%s", want, html)
		}
	}
	// two consecutive list items share one list element
	if strings.Count(html, "<ul>") != 1 {
		t.Fatalf("expected a single <ul>, got:\n%s", html)
	}
}

func TestDocumentHTMLEscapesText(t *testing.T) {
	doc := &editor.Document{Blocks: []editor.Block{
		{Type: editor.BlockParagraph, Text: "a < b & c"},
	}}
	html := documentHTML(doc)
	if !strings.Contains(html, "a &lt; b &amp; c") {
		t.Fatalf("text not escaped: %s", html)
	}
}
