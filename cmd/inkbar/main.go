/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"inkbar/internal/crash"
	"inkbar/internal/editor"
	"inkbar/internal/export"
	applog "inkbar/internal/log"
	"inkbar/internal/toolbar"
	"inkbar/internal/ui"
	"inkbar/internal/usage"
	"inkbar/internal/version"
)

func usageText() {
	fmt.Println("Inkbar — floating toolbar toolkit")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inkbar version|-v|--version            Show version")
	fmt.Println("  inkbar validate <toolbar.json>          Validate a toolbar definition")
	fmt.Println("  inkbar export <doc.json> <out>          Export a document (format by extension: .pdf, .epub)")
	fmt.Println("  inkbar stats [n]                        Show the n most used toolbar commands")
	fmt.Println("  inkbar ui [<toolbar.json>]              Launch demo editor (build with -tags fyne for full UI)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var st *usage.Store
	defer func() { crash.Recover(st) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Inkbar — floating toolbar toolkit")
			fmt.Println(version.String())
			return
		case "validate":
			if len(args) < 3 {
				fmt.Println("validate requires <toolbar.json>")
				usageText()
				os.Exit(2)
			}
			path := args[2]
			l.Info("validate definition", slog.String("path", path))
			def, err := toolbar.LoadDef(path)
			if err != nil {
				l.Error("validate failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			items := 0
			for _, g := range def.Groups {
				items += len(g.Items)
			}
			fmt.Printf("Valid definition %q: %d groups, %d items\n", def.Name, len(def.Groups), items)
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <doc.json> and <out>")
				usageText()
				os.Exit(2)
			}
			doc, err := loadDocument(args[2])
			if err != nil {
				l.Error("load document failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			out := args[3]
			l.Info("export document", slog.String("out", out))
			switch strings.ToLower(filepath.Ext(out)) {
			case ".pdf":
				err = export.ExportDocumentPDF(doc, out, export.PDFOptions{})
			case ".epub":
				err = export.ExportDocumentEPUB(doc, out, export.EPUBOptions{})
			default:
				err = fmt.Errorf("unknown output format %q (use .pdf or .epub)", filepath.Ext(out))
			}
			if err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported", out)
			return
		case "stats":
			n := 10
			if len(args) >= 3 {
				if v, err := strconv.Atoi(args[2]); err == nil && v > 0 {
					n = v
				}
			}
			dir, err := os.UserConfigDir()
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			st, err = usage.Open(filepath.Join(dir, "inkbar"))
			if err != nil {
				l.Error("open usage store failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			top, err := st.Top(n)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(top) == 0 {
				fmt.Println("No recorded commands yet.")
			}
			for _, it := range top {
				fmt.Printf("%6d  %s\n", it.Count, it.Command)
			}
			_ = st.Close()
			st = nil
			return
		case "ui":
			var defPath string
			if len(args) >= 3 {
				defPath = args[2]
			}
			if err := ui.Run(defPath); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usageText()
}

func loadDocument(path string) (*editor.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc editor.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
