// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/window.go
// Summary: Virtual window state: geometry, stacking, decorations, content.

package texelwin

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// WindowID is an opaque handle for a virtual window. Ids come from a
// monotonic counter and are never reused for the lifetime of a registry;
// 0 is never issued.
type WindowID uint64

// WindowAttrs carries the decoration attributes given at creation time.
// Windows are created visible; use Registry.SetVisible to hide one.
type WindowAttrs struct {
	Bordered bool
	Titled   bool
	Closable bool
	Title    string
	Fg, Bg   Color
}

// Window is one virtual rectangular surface. All mutation goes through the
// Registry so the vacated and newly covered screen regions get damaged;
// Window itself only exposes read access.
type Window struct {
	id   WindowID
	seq  uint64 // creation order, breaks z ties
	x, y int
	z    int
	w, h int

	visible  bool
	bordered bool
	titled   bool
	closable bool
	title    string
	fg, bg   Color

	content *Buffer

	// Cached top-row title overlay; 0 entries fall through to the border
	// glyph. Rebuilt lazily after any decoration or width change.
	titleRow  []rune
	titleRowW int
}

func (win *Window) ID() WindowID   { return win.id }
func (win *Window) Z() int         { return win.z }
func (win *Window) Visible() bool  { return win.visible }
func (win *Window) Bordered() bool { return win.bordered }
func (win *Window) Titled() bool   { return win.titled }
func (win *Window) Closable() bool { return win.closable }
func (win *Window) Title() string  { return win.title }

// Bounds returns the window's outer rectangle in screen coordinates.
func (win *Window) Bounds() Rect {
	return Rect{X: win.x, Y: win.y, W: win.w, H: win.h}
}

// Content returns the window's interior buffer. Treat it as read-only;
// writes go through Registry.WriteContent so damage is tracked.
func (win *Window) Content() *Buffer {
	return win.content
}

func (win *Window) inset() int {
	if win.bordered {
		return 1
	}
	return 0
}

// Interior returns the content area in screen coordinates (the outer
// rectangle shrunk by the border ring).
func (win *Window) Interior() Rect {
	i := win.inset()
	return Rect{X: win.x + i, Y: win.y + i, W: win.w - 2*i, H: win.h - 2*i}
}

func (win *Window) contentSize() (int, int) {
	i := win.inset()
	return max(0, win.w-2*i), max(0, win.h-2*i)
}

// cellAt resolves the cell at window-local coordinates: border ring and
// title first, content behind them. Unwritten content shows the window's
// background fill.
func (win *Window) cellAt(lx, ly int) Cell {
	if win.bordered {
		if lx == 0 || ly == 0 || lx == win.w-1 || ly == win.h-1 {
			// Too small for a ring: a 1-wide or 1-high window is all border.
			if win.w < 2 || win.h < 2 {
				return Cell{Ch: tcell.RuneHLine, Fg: win.fg, Bg: win.bg}
			}
			if win.titled && ly == 0 {
				if row := win.titleOverlay(); lx < len(row) && row[lx] != 0 {
					return Cell{Ch: row[lx], Fg: win.fg, Bg: win.bg, Attr: AttrBold}
				}
			}
			return Cell{Ch: win.borderGlyph(lx, ly), Fg: win.fg, Bg: win.bg}
		}
		return win.content.At(lx-1, ly-1)
	}
	return win.content.At(lx, ly)
}

func (win *Window) borderGlyph(lx, ly int) rune {
	switch {
	case lx == 0 && ly == 0:
		return tcell.RuneULCorner
	case lx == win.w-1 && ly == 0:
		return tcell.RuneURCorner
	case lx == 0 && ly == win.h-1:
		return tcell.RuneLLCorner
	case lx == win.w-1 && ly == win.h-1:
		return tcell.RuneLRCorner
	case ly == 0 || ly == win.h-1:
		return tcell.RuneHLine
	default:
		return tcell.RuneVLine
	}
}

// titleOverlay expands " title " into per-column runes for the top border
// row, truncated with an ellipsis when the window is narrow. Entries left 0
// keep the border glyph.
func (win *Window) titleOverlay() []rune {
	if win.titleRow != nil && win.titleRowW == win.w {
		return win.titleRow
	}
	row := make([]rune, win.w)
	if win.title != "" && win.w > 4 {
		t := runewidth.Truncate(win.title, win.w-4, "…")
		i := 1
		for _, ch := range " " + t + " " {
			if i >= win.w-1 {
				break
			}
			row[i] = ch
			i++
			if runewidth.RuneWidth(ch) == 2 && i < win.w-1 {
				row[i] = ' '
				i++
			}
		}
	}
	win.titleRow, win.titleRowW = row, win.w
	return row
}

func (win *Window) invalidateDecor() {
	win.titleRow, win.titleRowW = nil, 0
}
