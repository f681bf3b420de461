// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/damage_test.go
// Summary: Tests for damage accumulation and soundness.

package texelwin

import "testing"

func TestDamageStartsFull(t *testing.T) {
	d := NewDamageTracker(80, 24)
	if d.Empty() {
		t.Fatal("fresh tracker must have a full repaint pending")
	}
	rects := d.Drain()
	if len(rects) != 1 || rects[0] != (Rect{W: 80, H: 24}) {
		t.Fatalf("first drain = %v, want one full-screen rect", rects)
	}
	if !d.Empty() {
		t.Fatal("tracker not empty after drain")
	}
}

func TestDamageMergesOverlappingRects(t *testing.T) {
	d := NewDamageTracker(80, 24)
	d.Drain()
	d.Mark(Rect{X: 0, Y: 0, W: 10, H: 5})
	d.Mark(Rect{X: 5, Y: 2, W: 10, H: 5})
	rects := d.Drain()
	if len(rects) != 1 {
		t.Fatalf("drain = %v, want one merged rect", rects)
	}
	got := rects[0]
	for _, pt := range [][2]int{{0, 0}, {9, 4}, {5, 2}, {14, 6}} {
		if !got.Contains(pt[0], pt[1]) {
			t.Errorf("merged rect %v misses marked cell (%d,%d)", got, pt[0], pt[1])
		}
	}
}

func TestDamageClipsToScreen(t *testing.T) {
	d := NewDamageTracker(80, 24)
	d.Drain()
	d.Mark(Rect{X: 75, Y: 20, W: 20, H: 20})
	rects := d.Drain()
	if len(rects) != 1 {
		t.Fatalf("drain = %v, want one rect", rects)
	}
	if got, want := rects[0], (Rect{X: 75, Y: 20, W: 5, H: 4}); got != want {
		t.Errorf("clipped rect = %v, want %v", got, want)
	}
}

func TestDamageResizeForcesFull(t *testing.T) {
	d := NewDamageTracker(80, 24)
	d.Drain()
	d.Mark(Rect{X: 1, Y: 1, W: 2, H: 2})
	d.Resize(60, 24)
	rects := d.Drain()
	if len(rects) != 1 || rects[0] != (Rect{W: 60, H: 24}) {
		t.Fatalf("drain after resize = %v, want full 60x24 rect", rects)
	}
}

// repaintWithin copies frame cells inside the given rects into dst,
// mimicking a damage-limited flush.
func repaintWithin(dst, frame *Buffer, rects []Rect) {
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				dst.Set(x, y, frame.At(x, y))
			}
		}
	}
}

// TestDamageSoundness drives a series of registry mutations and checks that
// repainting only the drained regions always converges to the same result as
// a full repaint.
func TestDamageSoundness(t *testing.T) {
	const w, h = 80, 24
	dmg := NewDamageTracker(w, h)
	reg := NewRegistry(dmg)
	comp := NewCompositor(BlankCell(ColorDefault, ColorDefault))

	// Screen as a damage-limited painter would see it.
	flushed := NewBuffer(w, h, Cell{})

	step := func(name string, mutate func()) {
		t.Helper()
		mutate()
		frame := comp.Compose(reg, w, h)
		repaintWithin(flushed, frame, dmg.Drain())
		if !flushed.Equal(frame) {
			t.Fatalf("%s: damage-limited repaint diverged from full frame", name)
		}
	}

	var a, b WindowID
	step("create a", func() {
		a, _ = reg.Create(2, 2, 0, 20, 6, WindowAttrs{Bordered: true, Titled: true, Title: "a"})
	})
	step("create b overlapping", func() {
		b, _ = reg.Create(10, 4, 1, 20, 6, WindowAttrs{})
	})
	step("write a", func() {
		_ = reg.WriteString(a, 0, 0, "hello world", ColorGreen, ColorDefault, AttrBold)
	})
	step("move b", func() {
		_ = reg.SetGeometry(b, 30, 1, 20, 6)
	})
	step("retitle a", func() {
		_ = reg.SetTitle(a, "renamed")
	})
	step("restack", func() {
		_ = reg.SetZ(a, 2)
	})
	step("hide b", func() {
		_ = reg.SetVisible(b, false)
	})
	step("destroy a", func() {
		_ = reg.Destroy(a)
	})
}
