// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/damage.go
// Summary: Accumulates dirty screen regions between paint cycles.

package texelwin

// DamageTracker records which screen regions changed since the last flush.
// Regions are merged conservatively: the drained set may cover more cells
// than were touched, never fewer.
type DamageTracker struct {
	w, h  int
	dirty []Rect
	full  bool
}

// NewDamageTracker creates a tracker for a w×h screen with a full repaint
// already pending (the first frame always paints everything).
func NewDamageTracker(w, h int) *DamageTracker {
	return &DamageTracker{w: w, h: h, full: true}
}

// Resize updates the screen bounds and forces a full repaint.
func (d *DamageTracker) Resize(w, h int) {
	d.w, d.h = w, h
	d.MarkFull()
}

// Mark records a dirty rectangle in screen coordinates. Empty rectangles
// are dropped.
func (d *DamageTracker) Mark(r Rect) {
	if d.full || r.Empty() {
		return
	}
	d.dirty = append(d.dirty, r)
}

// MarkFull forces the next drain to cover the whole screen.
func (d *DamageTracker) MarkFull() {
	d.full = true
	d.dirty = nil
}

// Empty reports whether nothing is pending.
func (d *DamageTracker) Empty() bool {
	return !d.full && len(d.dirty) == 0
}

// Drain returns the accumulated regions, merged and clipped to the screen,
// and clears the tracker.
func (d *DamageTracker) Drain() []Rect {
	if d.full {
		d.full = false
		d.dirty = nil
		if d.w <= 0 || d.h <= 0 {
			return nil
		}
		return []Rect{{W: d.w, H: d.h}}
	}
	if len(d.dirty) == 0 {
		return nil
	}
	screen := Rect{W: d.w, H: d.h}
	merged := mergeRects(d.dirty)
	d.dirty = nil
	out := merged[:0]
	for _, r := range merged {
		if c := r.Intersect(screen); !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}
