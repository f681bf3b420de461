// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/compositor.go
// Summary: Paints windows back-to-front into the screen frame with clipping.

package texelwin

// Compositor produces the screen-resolution frame from a registry. It never
// fails on valid registry state: clipping absorbs off-screen and oversized
// windows.
type Compositor struct {
	frame      *Buffer
	background Cell
}

// NewCompositor creates a compositor filling uncovered cells with bg.
func NewCompositor(bg Cell) *Compositor {
	return &Compositor{background: bg}
}

// Compose rebuilds the w×h frame: background fill, then every visible
// window in ascending z-order (ties: later-created on top), each clipped to
// the screen. Cost is bounded by the visible on-screen cells; windows with
// no on-screen intersection are skipped before any cell work.
//
// The returned buffer is owned by the compositor and reused across calls;
// callers must not mutate or retain it past the next Compose.
func (c *Compositor) Compose(reg *Registry, w, h int) *Buffer {
	if c.frame == nil {
		c.frame = NewBuffer(w, h, c.background)
	} else if fw, fh := c.frame.Size(); fw != w || fh != h {
		c.frame = NewBuffer(w, h, c.background)
	} else {
		c.frame.Fill(c.background)
	}
	screen := Rect{W: w, H: h}
	for _, win := range reg.windowsInPaintOrder() {
		if !win.visible {
			continue
		}
		vis := win.Bounds().Intersect(screen)
		if vis.Empty() {
			continue
		}
		for sy := vis.Y; sy < vis.Y+vis.H; sy++ {
			ly := sy - win.y
			for sx := vis.X; sx < vis.X+vis.W; sx++ {
				c.frame.Set(sx, sy, win.cellAt(sx-win.x, ly))
			}
		}
	}
	return c.frame
}
