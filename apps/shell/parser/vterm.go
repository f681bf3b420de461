// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shell/parser/vterm.go
// Summary: Virtual terminal grid driven by the parser.

package parser

// VTerm holds the state of a virtual terminal: a character grid, a cursor
// and the current drawing attributes.
type VTerm struct {
	width, height              int
	cursorX, cursorY           int
	savedCursorX, savedCursorY int
	grid                       [][]Cell
	currentFG, currentBG       Color
	currentAttr                Attribute
	cursorVisible              bool
	wrapNext                   bool
	autoWrap                   bool

	// TitleChanged fires on OSC title updates.
	TitleChanged func(string)
}

// NewVTerm creates and initializes a virtual terminal grid.
func NewVTerm(width, height int) *VTerm {
	v := &VTerm{
		width:         width,
		height:        height,
		currentFG:     ColorDefault,
		currentBG:     ColorDefault,
		cursorVisible: true,
		autoWrap:      true,
	}
	v.grid = make([][]Cell, height)
	for y := range v.grid {
		v.grid[y] = make([]Cell, width)
	}
	v.clearScreen()
	return v
}

// Resize changes the grid size, preserving the overlapping content.
func (v *VTerm) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	newGrid := make([][]Cell, height)
	for y := range newGrid {
		newGrid[y] = make([]Cell, width)
		for x := range newGrid[y] {
			newGrid[y][x] = blankCell(ColorDefault, ColorDefault)
		}
	}
	for y := 0; y < min(v.height, height); y++ {
		copy(newGrid[y], v.grid[y][:min(v.width, width)])
	}
	v.grid = newGrid
	v.width, v.height = width, height
	v.setCursorPos(v.cursorY, v.cursorX)
}

// Grid exposes the current cell grid. Callers must treat it as read-only.
func (v *VTerm) Grid() [][]Cell { return v.grid }

// Cursor returns the cursor position (x, y).
func (v *VTerm) Cursor() (int, int) { return v.cursorX, v.cursorY }

// CursorVisible reports whether the cursor should be drawn.
func (v *VTerm) CursorVisible() bool { return v.cursorVisible }

func (v *VTerm) setTitle(title string) {
	if v.TitleChanged != nil {
		v.TitleChanged(title)
	}
}

func (v *VTerm) placeRune(r rune) {
	if v.wrapNext {
		v.cursorX = 0
		v.lineFeed()
		v.wrapNext = false
	}
	if v.cursorY >= 0 && v.cursorY < v.height && v.cursorX >= 0 && v.cursorX < v.width {
		v.grid[v.cursorY][v.cursorX] = Cell{
			Rune: r,
			FG:   v.currentFG,
			BG:   v.currentBG,
			Attr: v.currentAttr,
		}
	}
	if v.autoWrap && v.cursorX == v.width-1 {
		v.wrapNext = true
	} else if v.cursorX < v.width-1 {
		v.cursorX++
	}
}

func (v *VTerm) lineFeed() {
	if v.cursorY == v.height-1 {
		v.scrollUp()
	} else {
		v.cursorY++
	}
}

func (v *VTerm) carriageReturn() {
	v.wrapNext = false
	v.cursorX = 0
}

func (v *VTerm) backspace() {
	v.wrapNext = false
	if v.cursorX > 0 {
		v.cursorX--
	}
}

func (v *VTerm) tab() {
	v.wrapNext = false
	next := (v.cursorX/8 + 1) * 8
	if next >= v.width {
		next = v.width - 1
	}
	v.cursorX = next
}

func (v *VTerm) scrollUp() {
	copy(v.grid, v.grid[1:])
	newLine := make([]Cell, v.width)
	for i := range newLine {
		newLine[i] = blankCell(v.currentFG, v.currentBG)
	}
	v.grid[v.height-1] = newLine
}

func (v *VTerm) setCursorPos(row, col int) {
	v.wrapNext = false
	v.cursorY = clamp(row, 0, v.height-1)
	v.cursorX = clamp(col, 0, v.width-1)
}

func (v *VTerm) processCSI(command byte, params []int, private bool) {
	if private {
		v.processPrivateCSI(command, params)
		return
	}
	param := func(i, def int) int {
		if i < len(params) && params[i] != 0 {
			return params[i]
		}
		return def
	}

	switch command {
	case 'A':
		v.setCursorPos(v.cursorY-param(0, 1), v.cursorX)
	case 'B':
		v.setCursorPos(v.cursorY+param(0, 1), v.cursorX)
	case 'C':
		v.setCursorPos(v.cursorY, v.cursorX+param(0, 1))
	case 'D':
		v.setCursorPos(v.cursorY, v.cursorX-param(0, 1))
	case 'G':
		v.setCursorPos(v.cursorY, param(0, 1)-1)
	case 'd':
		v.setCursorPos(param(0, 1)-1, v.cursorX)
	case 'H', 'f':
		v.setCursorPos(param(0, 1)-1, param(1, 1)-1)
	case 'J':
		v.clearScreenMode(param(0, 0))
	case 'K':
		v.clearLine(param(0, 0))
	case 'P':
		v.deleteCharacters(param(0, 1))
	case 'X':
		v.eraseCharacters(param(0, 1))
	case 's':
		v.savedCursorX, v.savedCursorY = v.cursorX, v.cursorY
	case 'u':
		v.cursorX, v.cursorY = v.savedCursorX, v.savedCursorY
	case 'm':
		v.processSGR(params)
	}
}

func (v *VTerm) processPrivateCSI(command byte, params []int) {
	if len(params) == 0 {
		return
	}
	switch command {
	case 'h':
		switch params[0] {
		case 7:
			v.autoWrap = true
		case 25:
			v.cursorVisible = true
		}
	case 'l':
		switch params[0] {
		case 7:
			v.autoWrap = false
		case 25:
			v.cursorVisible = false
		}
	}
}

func (v *VTerm) processSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			v.currentFG, v.currentBG, v.currentAttr = ColorDefault, ColorDefault, 0
		case p == 1:
			v.currentAttr |= AttrBold
		case p == 4:
			v.currentAttr |= AttrUnderline
		case p == 7:
			v.currentAttr |= AttrReverse
		case p == 22:
			v.currentAttr &^= AttrBold
		case p == 24:
			v.currentAttr &^= AttrUnderline
		case p == 27:
			v.currentAttr &^= AttrReverse
		case p == 39:
			v.currentFG = ColorDefault
		case p == 49:
			v.currentBG = ColorDefault
		case p >= 30 && p <= 37:
			v.currentFG = Color(p - 30)
		case p >= 40 && p <= 47:
			v.currentBG = Color(p - 40)
		case p >= 90 && p <= 97:
			v.currentFG = Color(p - 90 + 8)
		case p >= 100 && p <= 107:
			v.currentBG = Color(p - 100 + 8)
		case p == 38 || p == 48:
			// Extended color: 38;5;n uses the 256 palette, 38;2;r;g;b is
			// consumed but approximated to the default color.
			var c Color = ColorDefault
			if i+2 < len(params) && params[i+1] == 5 {
				c = Color(params[i+2])
				i += 2
			} else if i+4 < len(params) && params[i+1] == 2 {
				i += 4
			}
			if p == 38 {
				v.currentFG = c
			} else {
				v.currentBG = c
			}
		}
		i++
	}
}

func (v *VTerm) clearScreenMode(mode int) {
	switch mode {
	case 0:
		v.clearLine(0)
		for y := v.cursorY + 1; y < v.height; y++ {
			v.clearRow(y)
		}
	case 1:
		v.clearLine(1)
		for y := 0; y < v.cursorY; y++ {
			v.clearRow(y)
		}
	case 2:
		v.clearScreen()
		v.setCursorPos(0, 0)
	}
}

func (v *VTerm) clearScreen() {
	for y := 0; y < v.height; y++ {
		v.clearRow(y)
	}
}

func (v *VTerm) clearRow(y int) {
	for x := 0; x < v.width; x++ {
		v.grid[y][x] = blankCell(v.currentFG, v.currentBG)
	}
}

func (v *VTerm) clearLine(mode int) {
	start, end := 0, 0
	switch mode {
	case 0:
		start, end = v.cursorX, v.width-1
	case 1:
		start, end = 0, v.cursorX
	case 2:
		start, end = 0, v.width-1
	}
	for x := start; x <= end && x < v.width; x++ {
		v.grid[v.cursorY][x] = blankCell(v.currentFG, v.currentBG)
	}
}

func (v *VTerm) eraseCharacters(n int) {
	for i := 0; i < n && v.cursorX+i < v.width; i++ {
		v.grid[v.cursorY][v.cursorX+i] = blankCell(v.currentFG, v.currentBG)
	}
}

func (v *VTerm) deleteCharacters(n int) {
	line := v.grid[v.cursorY]
	if n > v.width-v.cursorX {
		n = v.width - v.cursorX
	}
	copy(line[v.cursorX:], line[v.cursorX+n:])
	for x := v.width - n; x < v.width; x++ {
		line[x] = blankCell(v.currentFG, v.currentBG)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
