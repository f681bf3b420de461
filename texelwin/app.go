// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/app.go
// Summary: Contract for applications hosted inside a virtual window.

package texelwin

import "github.com/gdamore/tcell/v2"

// App is a content producer hosted by a window. The engine resizes it to
// the window interior, pulls its buffer after each refresh signal, and
// delivers routed key events to it.
type App interface {
	// Run blocks until the app terminates. It is started on its own
	// goroutine by the engine.
	Run() error
	Stop()
	// Render returns the app's current buffer, rows of cells. Rows may be
	// shorter than the interior width; the remainder keeps the window
	// background.
	Render() [][]Cell
	Resize(cols, rows int)
	HandleKey(ev *tcell.EventKey)
	GetTitle() string
	// SetRefreshNotifier hands the app the engine's refresh channel. Apps
	// signal it (non-blocking) whenever their content changed.
	SetRefreshNotifier(ch chan<- bool)
}

// MouseHandler is implemented by apps that consume pointer events. The
// event coordinates are already translated to content space.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}
