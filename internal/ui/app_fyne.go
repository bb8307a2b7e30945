//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"inkbar/internal/config"
	"inkbar/internal/crash"
	"inkbar/internal/editor"
	"inkbar/internal/geom"
	applog "inkbar/internal/log"
	"inkbar/internal/measure"
	"inkbar/internal/overlay"
	"inkbar/internal/telemetry"
	"inkbar/internal/toolbar"
	"inkbar/internal/usage"
)

// selectionEntry reports pointer releases and key releases so the shell
// can recompute the selection anchor after every interaction.
type selectionEntry struct {
	widget.Entry
	onPointerUp func(ev *desktop.MouseEvent)
	onKeyUp     func()
}

func newSelectionEntry() *selectionEntry {
	e := &selectionEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *selectionEntry) MouseUp(ev *desktop.MouseEvent) {
	e.Entry.MouseUp(ev)
	if e.onPointerUp != nil {
		e.onPointerUp(ev)
	}
}

func (e *selectionEntry) KeyUp(ev *fyne.KeyEvent) {
	e.Entry.KeyUp(ev)
	if e.onKeyUp != nil {
		e.onKeyUp()
	}
}

// Run starts the Fyne demo shell: a multi-line editor with a floating
// formatting toolbar that follows the text selection.
func Run(defPath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, token, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	// The upload token lives in the OS keyring only; hand it to the
	// telemetry client so authenticated endpoints work.
	tcfg := telemetry.FromEnv()
	tcfg.Token = token
	telemetry.NewDefault(tcfg)

	var st *usage.Store
	defer func() { crash.Recover(st) }()
	if dir, derr := os.UserConfigDir(); derr == nil {
		st, err = usage.Open(filepath.Join(dir, "inkbar"))
		if err != nil {
			l.Warn("usage store unavailable", slog.Any("err", err))
			st = nil
		}
	}

	def := toolbar.Default()
	if defPath != "" {
		def, err = toolbar.LoadDef(defPath)
		if err != nil {
			return err
		}
	}

	fyneApp := app.NewWithID("inkbar")
	w := fyneApp.NewWindow("Inkbar")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 900)
	winH := prefs.IntWithFallback("window.height", 600)
	if winW < 600 {
		winW = 600
	}
	if winH < 400 {
		winH = 400
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	buf := editor.NewBuffer(&editor.Document{
		Title: "Untitled",
		Blocks: []editor.Block{
			{Type: editor.BlockParagraph, Text: "Select some text to see the floating toolbar."},
		},
	})
	disp := &toolbar.Dispatcher{Host: buf, Stats: st}

	entry := newSelectionEntry()
	entry.SetText(buf.Document().Blocks[0].Text)

	// toolbar widget
	node, bar, refresh := buildToolbar(def, disp)
	node.animation = time.Duration(cfg.Toolbar.AnimationMs) * time.Millisecond

	scroll := container.NewVScroll(entry)
	ctrl := overlay.NewController(node, &scrollPane{scroll: scroll}, overlay.Options{
		Gutter: overlay.Gutter{
			Left: float32(cfg.Toolbar.GutterLeft),
			Top:  float32(cfg.Toolbar.GutterTop),
		},
		Scheduler: newFrameScheduler(),
		ViewportFunc: func() overlay.Viewport {
			if !cfg.Toolbar.FitViewport {
				return overlay.Viewport{}
			}
			return overlay.Viewport{Width: w.Canvas().Size().Width}
		},
	})

	meas := measure.New()
	react := func(pointer *overlay.PointerEvent) {
		start, end := entrySelection(entry)
		buf.Document().Blocks[0].Text = entry.Text
		buf.Select(0, start, end)
		if start == end {
			ctrl.Hide()
			return
		}
		region := meas.Region(entry.Text, start, end, geom.Pt{}, entry.Size().Width, overlay.DirectionNone)
		pt, ok := overlay.ResolvePoint(&overlay.InteractionEvent{Pointer: pointer, Selection: &region})
		if !ok {
			ctrl.Hide()
			return
		}
		if ctrl.IsVisible() {
			ctrl.UpdatePosition(pt)
		} else {
			ctrl.Show(pt, pt)
		}
		refresh()
	}
	entry.onPointerUp = func(ev *desktop.MouseEvent) {
		react(&overlay.PointerEvent{PageX: ev.AbsolutePosition.X, PageY: ev.AbsolutePosition.Y})
	}
	entry.onKeyUp = func() { react(nil) }
	scroll.OnScrolled = func(fyne.Position) {
		start, end := entrySelection(entry)
		if start == end {
			return
		}
		region := meas.Region(entry.Text, start, end, geom.Pt{}, entry.Size().Width, overlay.DirectionNone)
		if pt, ok := overlay.ResolvePoint(&overlay.InteractionEvent{Selection: &region}); ok {
			ctrl.UpdatePosition(pt)
		}
	}

	floating := container.NewWithoutLayout(bar)
	node.setMounted(true)

	w.SetContent(container.NewStack(scroll, floating))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		ctrl.Unmount()
		if st != nil {
			_ = st.Close()
		}
	})
	w.ShowAndRun()
	return nil
}

// buildToolbar renders a definition into a row of buttons and wraps it
// in a visual node. refresh re-derives every button's pressed state
// from the host selection.
func buildToolbar(def *toolbar.Def, disp *toolbar.Dispatcher) (*toolbarNode, fyne.CanvasObject, func()) {
	var objects []fyne.CanvasObject
	type bound struct {
		btn  *widget.Button
		item toolbar.Item
	}
	var bounds []bound
	var node *toolbarNode

	for gi, g := range def.Groups {
		if gi > 0 {
			objects = append(objects, widget.NewSeparator())
		}
		for _, it := range g.Items {
			it := it
			label := it.Label
			if label == "" {
				label = it.ID
			}
			btn := widget.NewButton(label, nil)
			btn.OnTapped = func() {
				if node != nil && !node.PointerEventsEnabled() {
					return
				}
				if err := disp.Execute(it); err != nil {
					applog.WithComponent("ui").Warn("toolbar command failed", slog.Any("err", err))
				}
			}
			objects = append(objects, btn)
			bounds = append(bounds, bound{btn: btn, item: it})
		}
	}

	bar := container.NewHBox(objects...)
	bar.Resize(bar.MinSize())
	node = newToolbarNode(bar, 0)

	refresh := func() {
		for _, b := range bounds {
			if disp.Active(b.item) {
				b.btn.Importance = widget.HighImportance
			} else {
				b.btn.Importance = widget.MediumImportance
			}
			b.btn.Refresh()
		}
	}
	return node, bar, refresh
}

// entrySelection approximates the selected rune range from the entry's
// cursor and selected text. The cursor sits at one end of the
// selection; we treat it as the end and clamp.
func entrySelection(e *selectionEntry) (start, end int) {
	cursor := cursorRuneOffset(e.Text, e.CursorRow, e.CursorColumn)
	selLen := utf8.RuneCountInString(e.SelectedText())
	start = cursor - selLen
	if start < 0 {
		start = 0
		end = selLen
		return start, end
	}
	return start, cursor
}

func cursorRuneOffset(text string, row, col int) int {
	off := 0
	line := 0
	for _, r := range text {
		if line == row {
			break
		}
		off++
		if r == '\n' {
			line++
		}
	}
	return off + col
}
