// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/rect_test.go
// Summary: Tests for rectangle math and merging.

package texelwin

import "testing"

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}
	got := a.Intersect(b)
	if got != (Rect{X: 5, Y: 5, W: 5, H: 5}) {
		t.Errorf("Intersect = %v", got)
	}
	c := Rect{X: 20, Y: 20, W: 3, H: 3}
	if !a.Intersect(c).Empty() {
		t.Errorf("disjoint Intersect = %v, want empty", a.Intersect(c))
	}
}

func TestRectUnionCoversBoth(t *testing.T) {
	a := Rect{X: 2, Y: 3, W: 4, H: 2}
	b := Rect{X: 10, Y: 1, W: 2, H: 8}
	u := a.Union(b)
	for _, pt := range [][2]int{{2, 3}, {5, 4}, {10, 1}, {11, 8}} {
		if !u.Contains(pt[0], pt[1]) {
			t.Errorf("union %v misses (%d,%d)", u, pt[0], pt[1])
		}
	}
}

func TestMergeRectsChains(t *testing.T) {
	// Three rects where only transitive merging collapses them to one.
	in := []Rect{
		{X: 0, Y: 0, W: 4, H: 4},
		{X: 10, Y: 0, W: 4, H: 4},
		{X: 3, Y: 0, W: 8, H: 4},
	}
	out := mergeRects(in)
	if len(out) != 1 {
		t.Fatalf("mergeRects = %v, want a single rect", out)
	}
	if got, want := out[0], (Rect{X: 0, Y: 0, W: 14, H: 4}); got != want {
		t.Errorf("merged = %v, want %v", got, want)
	}
}

func TestMergeRectsKeepsDisjoint(t *testing.T) {
	in := []Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 50, Y: 20, W: 2, H: 2},
	}
	out := mergeRects(in)
	if len(out) != 2 {
		t.Errorf("mergeRects = %v, want both rects kept", out)
	}
}
