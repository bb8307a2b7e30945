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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkbar/internal/editor"
)

// EPUBOptions controls EPUB export behavior.
type EPUBOptions struct {
	Title       string
	Author      string
	Language    string // e.g., "en"
	Publisher   string
	Description string
}

// ExportDocumentEPUB writes doc as a reflowable EPUB 3 package.
func ExportDocumentEPUB(doc *editor.Document, outPath string, opt EPUBOptions) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if opt.Language == "" {
		opt.Language = "en"
	}
	if opt.Title == "" {
		if doc.Title != "" {
			opt.Title = doc.Title
		} else {
			opt.Title = "Untitled"
		}
	}

	if !strings.HasSuffix(strings.ToLower(outPath), ".epub") {
		outPath += ".epub"
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create epub: %w", err)
	}
	defer func() { _ = f.Close() }()
	zw := zip.NewWriter(f)

	// mimetype first, uncompressed
	if err := addStoredZipFile(zw, "mimetype", []byte("application/epub+zip")); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write mimetype: %w", err)
	}

	containerXML := "" +
		"<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<container version=\"1.0\" xmlns=\"urn:oasis:names:tc:opendocument:xmlns:container\">\n" +
		"  <rootfiles>\n" +
		"    <rootfile full-path=\"OEBPS/content.opf\" media-type=\"application/oebps-package+xml\"/>\n" +
		"  </rootfiles>\n" +
		"</container>\n"
	if err := addZipFile(zw, "META-INF/container.xml", []byte(containerXML)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write container.xml: %w", err)
	}

	css := "body { font-family: serif; line-height: 1.5; margin: 1em; }\n" +
		"blockquote { font-style: italic; margin-left: 1.5em; }\n" +
		"pre, code { font-family: monospace; }\n" +
		"pre { background: #f4f4f4; padding: 0.5em; }\n"
	if err := addZipFile(zw, "OEBPS/styles/epub.css", []byte(css)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write css: %w", err)
	}

	body := documentHTML(doc)
	chapterXHTML := fmt.Sprintf("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"+
		"<html xmlns=\"http://www.w3.org/1999/xhtml\">\n<head>\n"+
		"<meta charset=\"utf-8\"/>\n"+
		"<title>%s</title>\n"+
		"<link rel=\"stylesheet\" type=\"text/css\" href=\"styles/epub.css\"/>\n"+
		"</head>\n<body>\n%s</body>\n</html>\n", xmlEsc(opt.Title), body)
	if err := addZipFile(zw, "OEBPS/chapter.xhtml", []byte(chapterXHTML)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write chapter xhtml: %w", err)
	}

	navXHTML := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<html xmlns=\"http://www.w3.org/1999/xhtml\" xmlns:epub=\"http://www.idpf.org/2007/ops\">\n" +
		"<head><title>Table of Contents</title></head>\n<body>\n" +
		"<nav epub:type=\"toc\" id=\"toc\"><ol>\n" +
		fmt.Sprintf("<li><a href=\"chapter.xhtml\">%s</a></li>\n", xmlEsc(opt.Title)) +
		"</ol></nav>\n</body>\n</html>\n"
	if err := addZipFile(zw, "OEBPS/nav.xhtml", []byte(navXHTML)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write nav.xhtml: %w", err)
	}

	mod := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	uid := fmt.Sprintf("urn:uuid:%d", time.Now().UnixNano())
	opf := &bytes.Buffer{}
	opf.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	opf.WriteString("<package version=\"3.0\" unique-identifier=\"pub-id\" xmlns=\"http://www.idpf.org/2007/opf\">\n")
	opf.WriteString("  <metadata xmlns:dc=\"http://purl.org/dc/elements/1.1/\" xmlns:opf=\"http://www.idpf.org/2007/opf\">\n")
	opf.WriteString(fmt.Sprintf("    <dc:identifier id=\"pub-id\">%s</dc:identifier>\n", uid))
	opf.WriteString(fmt.Sprintf("    <dc:title>%s</dc:title>\n", xmlEsc(opt.Title)))
	opf.WriteString(fmt.Sprintf("    <dc:language>%s</dc:language>\n", xmlEsc(opt.Language)))
	if strings.TrimSpace(opt.Author) != "" {
		opf.WriteString(fmt.Sprintf("    <dc:creator>%s</dc:creator>\n", xmlEsc(opt.Author)))
	}
	if strings.TrimSpace(opt.Publisher) != "" {
		opf.WriteString(fmt.Sprintf("    <dc:publisher>%s</dc:publisher>\n", xmlEsc(opt.Publisher)))
	}
	if strings.TrimSpace(opt.Description) != "" {
		opf.WriteString(fmt.Sprintf("    <dc:description>%s</dc:description>\n", xmlEsc(opt.Description)))
	}
	opf.WriteString(fmt.Sprintf("    <meta property=\"dcterms:modified\">%s</meta>\n", mod))
	opf.WriteString("  </metadata>\n")
	opf.WriteString("  <manifest>\n")
	opf.WriteString("    <item id=\"nav\" href=\"nav.xhtml\" media-type=\"application/xhtml+xml\" properties=\"nav\"/>\n")
	opf.WriteString("    <item id=\"css\" href=\"styles/epub.css\" media-type=\"text/css\"/>\n")
	opf.WriteString("    <item id=\"chapter\" href=\"chapter.xhtml\" media-type=\"application/xhtml+xml\"/>\n")
	opf.WriteString("  </manifest>\n")
	opf.WriteString("  <spine>\n")
	opf.WriteString("    <itemref idref=\"chapter\"/>\n")
	opf.WriteString("  </spine>\n")
	opf.WriteString("</package>\n")
	if err := addZipFile(zw, "OEBPS/content.opf", opf.Bytes()); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write content.opf: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

// documentHTML renders blocks to XHTML, grouping consecutive list items
// into a single list element.
func documentHTML(doc *editor.Document) string {
	buf := &bytes.Buffer{}
	if doc.Title != "" {
		fmt.Fprintf(buf, "<h1>%s</h1>\n", xmlEsc(doc.Title))
	}
	var openList editor.BlockType
	closeList := func() {
		switch openList {
		case editor.BlockOrdered:
			buf.WriteString("</ol>\n")
		case editor.BlockUnordered:
			buf.WriteString("</ul>\n")
		}
		openList = ""
	}
	for _, blk := range doc.Blocks {
		if blk.Type != openList {
			closeList()
		}
		switch blk.Type {
		case editor.BlockHeaderOne:
			fmt.Fprintf(buf, "<h2>%s</h2>\n", inlineHTML(blk))
		case editor.BlockHeaderTwo:
			fmt.Fprintf(buf, "<h3>%s</h3>\n", inlineHTML(blk))
		case editor.BlockQuote:
			fmt.Fprintf(buf, "<blockquote><p>%s</p></blockquote>\n", inlineHTML(blk))
		case editor.BlockCodeFence:
			fmt.Fprintf(buf, "<pre><code>%s</code></pre>\n", xmlEsc(blk.Text))
		case editor.BlockOrdered:
			if openList != editor.BlockOrdered {
				buf.WriteString("<ol>\n")
				openList = editor.BlockOrdered
			}
			fmt.Fprintf(buf, "<li>%s</li>\n", inlineHTML(blk))
		case editor.BlockUnordered:
			if openList != editor.BlockUnordered {
				buf.WriteString("<ul>\n")
				openList = editor.BlockUnordered
			}
			fmt.Fprintf(buf, "<li>%s</li>\n", inlineHTML(blk))
		default:
			fmt.Fprintf(buf, "<p>%s</p>\n", inlineHTML(blk))
		}
	}
	closeList()
	return buf.String()
}

// inlineHTML renders a block's segments with nested style tags.
func inlineHTML(blk editor.Block) string {
	buf := &strings.Builder{}
	for _, seg := range SegmentBlock(blk) {
		var openTags, closeTags []string
		if seg.Bold {
			openTags, closeTags = append(openTags, "<strong>"), append(closeTags, "</strong>")
		}
		if seg.Italic {
			openTags, closeTags = append(openTags, "<em>"), append(closeTags, "</em>")
		}
		if seg.Underline {
			openTags, closeTags = append(openTags, "<u>"), append(closeTags, "</u>")
		}
		if seg.Strikethrough {
			openTags, closeTags = append(openTags, "<s>"), append(closeTags, "</s>")
		}
		if seg.Code {
			openTags, closeTags = append(openTags, "<code>"), append(closeTags, "</code>")
		}
		for _, t := range openTags {
			buf.WriteString(t)
		}
		buf.WriteString(xmlEsc(seg.Text))
		for i := len(closeTags) - 1; i >= 0; i-- {
			buf.WriteString(closeTags[i])
		}
	}
	return buf.String()
}

// addStoredZipFile writes an entry with STORE method (no compression),
// required for the EPUB mimetype entry.
func addStoredZipFile(zw *zip.Writer, name string, data []byte) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Store}
	hdr.Modified = time.Now()
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func xmlEsc(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
