// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/buffer.go
// Summary: Fixed-size row-major cell grid backing window content and frames.

package texelwin

// Buffer is a width×height grid of cells stored row-major. Window content
// and the composed screen frame are both Buffers.
type Buffer struct {
	w, h  int
	cells []Cell
}

// NewBuffer allocates a buffer of the given size with every cell set to fill.
// Negative dimensions are clamped to zero.
func NewBuffer(w, h int, fill Cell) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{w: w, h: h, cells: make([]Cell, w*h)}
	b.Fill(fill)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (int, int) {
	return b.w, b.h
}

// At returns the cell at (x, y). Out-of-range coordinates yield the zero
// cell.
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return Cell{}
	}
	return b.cells[y*b.w+x]
}

// Set writes the cell at (x, y). Out-of-range writes are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = c
}

// Fill sets every cell to c.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Resize changes the buffer dimensions, preserving the overlapping region
// and filling newly exposed cells with fill.
func (b *Buffer) Resize(w, h int, fill Cell) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == b.w && h == b.h {
		return
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = fill
	}
	for y := 0; y < min(h, b.h); y++ {
		copy(cells[y*w:y*w+min(w, b.w)], b.cells[y*b.w:y*b.w+min(w, b.w)])
	}
	b.w, b.h, b.cells = w, h, cells
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{w: b.w, h: b.h, cells: make([]Cell, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Equal reports whether two buffers have the same size and cells.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
