// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/cell.go
// Summary: Cell and attribute types shared by window content and screen frames.

package texelwin

// Color is a terminal palette index. ColorDefault leaves the terminal's
// configured color untouched; values 0-255 address the standard palette.
type Color int32

const ColorDefault Color = -1

// The basic ANSI palette.
const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// AttrMask holds the style flags of a cell.
type AttrMask uint16

const (
	AttrBold AttrMask = 1 << iota
	AttrUnderline
	AttrReverse
)

// Cell is a single character cell: one rune plus its colors and attributes.
// Cells are value types; comparing two cells with == is the identity used
// for diff painting.
type Cell struct {
	Ch   rune
	Fg   Color
	Bg   Color
	Attr AttrMask
}

// BlankCell returns the fill cell used for unwritten areas with the given
// colors.
func BlankCell(fg, bg Color) Cell {
	return Cell{Ch: ' ', Fg: fg, Bg: bg}
}
