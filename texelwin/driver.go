// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/driver.go
// Summary: Backend abstraction the engine paints through.

package texelwin

import "github.com/gdamore/tcell/v2"

// ScreenDriver is the terminal backend contract. The engine calls
// SetContent only for cells inside drained damage regions, then Show once
// per frame. tcell is the production implementation; tests use a
// SimulationScreen behind the same adapter.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	Show()
	Sync()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
}
