// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/clock.go
// Summary: Ticker-driven sample app rendering the current time.

package clock

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelwin/texelwin"
)

type clockApp struct {
	width, height int
	currentTime   string
	mu            sync.RWMutex
	stop          chan struct{}
	refreshChan   chan<- bool
}

// New creates a clock app.
func New() texelwin.App {
	return &clockApp{
		stop: make(chan struct{}),
	}
}

// HandleKey does nothing for the clock app.
func (a *clockApp) HandleKey(ev *tcell.EventKey) {}

func (a *clockApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

// Run starts a ticker to update the time every second.
func (a *clockApp) Run() error {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	updateTime := func() {
		a.mu.Lock()
		a.currentTime = time.Now().Format("15:04:05")
		a.mu.Unlock()
	}
	updateTime()

	for {
		select {
		case <-ticker.C:
			updateTime()
			if a.refreshChan != nil {
				select {
				case a.refreshChan <- true:
				default:
				}
			}
		case <-a.stop:
			return nil
		}
	}
}

// Stop signals the Run loop to terminate.
func (a *clockApp) Stop() {
	close(a.stop)
}

// Resize stores the new dimensions of the window interior.
func (a *clockApp) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

func (a *clockApp) GetTitle() string { return "Clock" }

// Render centers the time string in the available area.
func (a *clockApp) Render() [][]texelwin.Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.width <= 0 || a.height <= 0 {
		return nil
	}
	buf := make([][]texelwin.Cell, a.height)
	for y := range buf {
		buf[y] = make([]texelwin.Cell, a.width)
		for x := range buf[y] {
			buf[y][x] = texelwin.BlankCell(texelwin.ColorDefault, texelwin.ColorDefault)
		}
	}
	row := a.height / 2
	col := (a.width - len(a.currentTime)) / 2
	if col < 0 {
		col = 0
	}
	for i, ch := range a.currentTime {
		if col+i >= a.width {
			break
		}
		buf[row][col+i] = texelwin.Cell{
			Ch:   ch,
			Fg:   texelwin.ColorGreen,
			Bg:   texelwin.ColorDefault,
			Attr: texelwin.AttrBold,
		}
	}
	return buf
}
