// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shell/parser/cell.go
// Summary: Cell, color and attribute types produced by the VT parser.

package parser

// Attribute defines a single text attribute.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
)

// Color is a palette index; ColorDefault means the terminal default.
type Color int

const ColorDefault Color = -1

// Cell represents a single character cell in the virtual terminal grid.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr Attribute
}

func blankCell(fg, bg Color) Cell {
	return Cell{Rune: ' ', FG: fg, BG: bg}
}
