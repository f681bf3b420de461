// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/registry.go
// Summary: Owns the window set; every mutation damages the affected regions.

package texelwin

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

// DamageSink receives the screen rectangles a mutation touched. The
// compositor's DamageTracker implements it.
type DamageSink interface {
	Mark(Rect)
	MarkFull()
}

type nopDamage struct{}

func (nopDamage) Mark(Rect) {}
func (nopDamage) MarkFull() {}

// Registry owns the set of virtual windows. It is not safe for concurrent
// use; the engine serialises all mutations on its event loop.
//
// Every mutating operation marks both the vacated and the newly covered
// screen rectangle on the damage sink, and on failure leaves the registry
// exactly as it was.
type Registry struct {
	windows map[WindowID]*Window
	order   []*Window // creation order
	nextID  WindowID
	nextSeq uint64
	damage  DamageSink
}

// NewRegistry creates an empty registry reporting damage to sink. A nil
// sink disables damage reporting (useful in tests that inspect frames
// directly).
func NewRegistry(sink DamageSink) *Registry {
	if sink == nil {
		sink = nopDamage{}
	}
	return &Registry{
		windows: make(map[WindowID]*Window),
		damage:  sink,
	}
}

// Len returns the number of live windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Create allocates a new window with the given geometry and attributes.
// The content buffer is sized to the interior and filled with the window
// background. Fails with ErrInvalidGeometry when w or h is not positive.
func (r *Registry) Create(x, y, z, w, h int, attrs WindowAttrs) (WindowID, error) {
	if w <= 0 || h <= 0 {
		return 0, ErrInvalidGeometry
	}
	r.nextID++
	r.nextSeq++
	win := &Window{
		id:       r.nextID,
		seq:      r.nextSeq,
		x:        x,
		y:        y,
		z:        z,
		w:        w,
		h:        h,
		visible:  true,
		bordered: attrs.Bordered,
		titled:   attrs.Titled,
		closable: attrs.Closable,
		title:    attrs.Title,
		fg:       attrs.Fg,
		bg:       attrs.Bg,
	}
	cw, ch := win.contentSize()
	win.content = NewBuffer(cw, ch, BlankCell(win.fg, win.bg))
	r.windows[win.id] = win
	r.order = append(r.order, win)
	r.damage.Mark(win.Bounds())
	debugLog.Printf("Registry: created window %d at %d,%d %dx%d z=%d", win.id, x, y, w, h, z)
	return win.id, nil
}

// Get returns the window for id.
func (r *Registry) Get(id WindowID) (*Window, error) {
	win, ok := r.windows[id]
	if !ok {
		return nil, ErrUnknownWindow
	}
	return win, nil
}

// Destroy removes the window and damages the region it occupied so the
// compositor repaints whatever it exposed. Repeat calls fail with
// ErrUnknownWindow.
func (r *Registry) Destroy(id WindowID) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	delete(r.windows, id)
	for i, w := range r.order {
		if w == win {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	win.content = nil
	r.damage.Mark(win.Bounds())
	debugLog.Printf("Registry: destroyed window %d", id)
	return nil
}

// SetGeometry moves and/or resizes a window. The content buffer is resized
// to the new interior, preserving overlapping cells and filling new ones
// with the window background.
func (r *Registry) SetGeometry(id WindowID, x, y, w, h int) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	if w <= 0 || h <= 0 {
		return ErrInvalidGeometry
	}
	r.damage.Mark(win.Bounds())
	win.x, win.y, win.w, win.h = x, y, w, h
	cw, ch := win.contentSize()
	win.content.Resize(cw, ch, BlankCell(win.fg, win.bg))
	win.invalidateDecor()
	r.damage.Mark(win.Bounds())
	return nil
}

// SetZ changes the stacking order value. Z values need not be unique;
// equal z resolves to the later-created window on top.
func (r *Registry) SetZ(id WindowID, z int) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	if win.z == z {
		return nil
	}
	win.z = z
	r.damage.Mark(win.Bounds())
	return nil
}

// SetVisible toggles visibility. Invisible windows are skipped by the
// compositor and the input router.
func (r *Registry) SetVisible(id WindowID, visible bool) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	if win.visible == visible {
		return nil
	}
	win.visible = visible
	r.damage.Mark(win.Bounds())
	return nil
}

// SetTitle replaces the title overlaid on the top border row.
func (r *Registry) SetTitle(id WindowID, title string) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	if win.title == title {
		return nil
	}
	win.title = title
	win.invalidateDecor()
	r.damage.Mark(Rect{X: win.x, Y: win.y, W: win.w, H: 1})
	return nil
}

// WriteContent copies cells (row-major, stride region.W) into the window's
// content buffer at region, which is given in content coordinates. Writes
// falling outside the content area are clipped away. cells must cover the
// full region.
func (r *Registry) WriteContent(id WindowID, region Rect, cells []Cell) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	if region.Empty() {
		return nil
	}
	if len(cells) < region.W*region.H {
		return ErrInvalidGeometry
	}
	cw, ch := win.contentSize()
	vis := region.Intersect(Rect{W: cw, H: ch})
	if vis.Empty() {
		return nil
	}
	for y := vis.Y; y < vis.Y+vis.H; y++ {
		for x := vis.X; x < vis.X+vis.W; x++ {
			win.content.Set(x, y, cells[(y-region.Y)*region.W+(x-region.X)])
		}
	}
	i := win.inset()
	r.damage.Mark(Rect{X: win.x + i + vis.X, Y: win.y + i + vis.Y, W: vis.W, H: vis.H})
	return nil
}

// WriteString writes a string into the content buffer starting at (x, y),
// advancing by display width so wide runes occupy two cells. Convenience
// for callers that do not produce whole buffers.
func (r *Registry) WriteString(id WindowID, x, y int, s string, fg, bg Color, attr AttrMask) error {
	win, ok := r.windows[id]
	if !ok {
		return ErrUnknownWindow
	}
	startX := x
	for _, ch := range s {
		win.content.Set(x, y, Cell{Ch: ch, Fg: fg, Bg: bg, Attr: attr})
		w := runewidth.RuneWidth(ch)
		if w == 2 {
			win.content.Set(x+1, y, Cell{Ch: ' ', Fg: fg, Bg: bg, Attr: attr})
		}
		x += w
	}
	i := win.inset()
	r.damage.Mark(Rect{X: win.x + i + startX, Y: win.y + i + y, W: x - startX, H: 1})
	return nil
}

// PaintOrder returns window ids back-to-front: ascending z, ties resolved
// by creation order so the later-created window paints on top.
func (r *Registry) PaintOrder() []WindowID {
	wins := r.windowsInPaintOrder()
	ids := make([]WindowID, len(wins))
	for i, w := range wins {
		ids[i] = w.id
	}
	return ids
}

func (r *Registry) windowsInPaintOrder() []*Window {
	wins := make([]*Window, len(r.order))
	copy(wins, r.order)
	sort.SliceStable(wins, func(i, j int) bool {
		return wins[i].z < wins[j].z
	})
	return wins
}

// TopmostAt returns the topmost visible window whose outer rectangle
// contains the screen point (x, y).
func (r *Registry) TopmostAt(x, y int) (*Window, bool) {
	wins := r.windowsInPaintOrder()
	for i := len(wins) - 1; i >= 0; i-- {
		if wins[i].visible && wins[i].Bounds().Contains(x, y) {
			return wins[i], true
		}
	}
	return nil, false
}
