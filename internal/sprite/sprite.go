/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sprite packs toolbar button icons into a single sprite sheet
// with a YAML manifest mapping icon names to sheet coordinates.
package sprite

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"
	yaml "gopkg.in/yaml.v3"

	applog "inkbar/internal/log"
)

// Entry locates one icon inside the sheet.
type Entry struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Manifest describes a generated sprite sheet.
type Manifest struct {
	Image   string  `yaml:"image"`
	Cell    int     `yaml:"cell"`
	Columns int     `yaml:"columns"`
	Entries []Entry `yaml:"entries"`
}

// Pack reads all PNG files in srcDir, scales each to cell x cell pixels
// and writes a grid sprite sheet plus its manifest. Icon names are the
// file names without extension, packed in sorted order so output is
// deterministic.
func Pack(srcDir, outImage, outManifest string, cell int) (*Manifest, error) {
	if cell <= 0 {
		cell = 24
	}
	log := applog.WithComponent("sprite")

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("read icon dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no png icons in %s", srcDir)
	}
	sort.Strings(names)

	cols := int(math.Ceil(math.Sqrt(float64(len(names)))))
	rows := (len(names) + cols - 1) / cols
	sheet := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))

	man := &Manifest{Image: filepath.Base(outImage), Cell: cell, Columns: cols}
	for i, name := range names {
		src, err := loadPNG(filepath.Join(srcDir, name))
		if err != nil {
			return nil, err
		}
		col, row := i%cols, i/cols
		dst := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)
		draw.CatmullRom.Scale(sheet, dst, src, src.Bounds(), draw.Over, nil)
		man.Entries = append(man.Entries, Entry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			X:    dst.Min.X,
			Y:    dst.Min.Y,
		})
	}

	if err := writePNG(outImage, sheet); err != nil {
		return nil, err
	}
	if err := writeManifest(outManifest, man); err != nil {
		return nil, err
	}
	log.Info("sprite sheet written", "icons", len(names), "image", outImage, "manifest", outManifest)
	return man, nil
}

// LoadManifest reads a manifest written by Pack.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &man, nil
}

// Find returns the entry for name, or nil.
func (m *Manifest) Find(name string) *Entry {
	for i := range m.Entries {
		if m.Entries[i].Name == name {
			return &m.Entries[i]
		}
	}
	return nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	return nil
}

func writeManifest(path string, man *Manifest) error {
	data, err := yaml.Marshal(man)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
