// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/screen_test.go
// Summary: Engine tests against a tcell simulation screen.

package texelwin

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func simFixture(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewScreenWithDriver(NewTcellScreenDriver(sim))
	if err != nil {
		t.Fatalf("NewScreenWithDriver: %v", err)
	}
	t.Cleanup(scr.Close)
	return scr, sim
}

func simRune(t *testing.T, sim tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, w, _ := sim.GetContents()
	cell := cells[y*w+x]
	if len(cell.Runes) == 0 {
		return 0
	}
	return cell.Runes[0]
}

func TestRedrawFlushesComposedFrame(t *testing.T) {
	scr, sim := simFixture(t)

	id, err := scr.AddWindow(0, 0, 0, 20, 5, WindowAttrs{Bordered: true}, nil)
	if err != nil {
		t.Fatalf("AddWindow: %v", err)
	}
	if err := scr.Registry().WriteString(id, 0, 0, "hi", ColorDefault, ColorDefault, 0); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := scr.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}

	if got := simRune(t, sim, 0, 0); got != tcell.RuneULCorner {
		t.Errorf("terminal (0,0) = %q, want corner", got)
	}
	if got := simRune(t, sim, 1, 1); got != 'h' {
		t.Errorf("terminal (1,1) = %q, want 'h'", got)
	}
}

func TestRedrawRepaintsExposedRegion(t *testing.T) {
	scr, sim := simFixture(t)

	under, _ := scr.AddWindow(0, 0, 0, 20, 5, WindowAttrs{}, nil)
	_ = scr.Registry().WriteString(under, 2, 2, "under", ColorDefault, ColorDefault, 0)
	over, _ := scr.AddWindow(0, 0, 1, 20, 5, WindowAttrs{}, nil)
	_ = scr.Registry().WriteString(over, 2, 2, "OVER!", ColorDefault, ColorDefault, 0)
	if err := scr.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if got := simRune(t, sim, 2, 2); got != 'O' {
		t.Fatalf("terminal (2,2) = %q, want 'O'", got)
	}

	if err := scr.DestroyWindow(over); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}
	if err := scr.Redraw(); err != nil {
		t.Fatalf("Redraw after destroy: %v", err)
	}
	if got := simRune(t, sim, 2, 2); got != 'u' {
		t.Errorf("terminal (2,2) = %q after destroy, want exposed 'u'", got)
	}
}

func TestFirstWindowTakesFocus(t *testing.T) {
	scr, _ := simFixture(t)
	a, _ := scr.AddWindow(0, 0, 0, 10, 4, WindowAttrs{}, nil)
	_, _ = scr.AddWindow(20, 0, 0, 10, 4, WindowAttrs{}, nil)
	if scr.Router().Focus() != a {
		t.Errorf("focus = %d, want first window %d", scr.Router().Focus(), a)
	}
}

func TestHandleResizeBroadcastsInterior(t *testing.T) {
	scr, _ := simFixture(t)
	app := &recordingApp{}
	_, err := scr.AddWindow(0, 0, 0, 20, 10, WindowAttrs{Bordered: true}, app)
	if err != nil {
		t.Fatalf("AddWindow: %v", err)
	}
	if app.cols != 18 || app.rows != 8 {
		t.Fatalf("initial app size = %dx%d, want interior 18x8", app.cols, app.rows)
	}

	scr.handleResize(tcell.NewEventResize(60, 20))
	// Window geometry is untouched by a terminal resize, so the interior
	// broadcast repeats the same dimensions.
	if app.cols != 18 || app.rows != 8 {
		t.Errorf("post-resize app size = %dx%d, want 18x8", app.cols, app.rows)
	}
	if scr.damage.Empty() {
		t.Error("terminal resize left no damage")
	}
}

func TestAppContentReachesTerminal(t *testing.T) {
	scr, sim := simFixture(t)
	app := &recordingApp{text: "ping"}
	_, err := scr.AddWindow(0, 0, 0, 10, 3, WindowAttrs{}, app)
	if err != nil {
		t.Fatalf("AddWindow: %v", err)
	}
	if err := scr.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if got := simRune(t, sim, 0, 0); got != 'p' {
		t.Errorf("terminal (0,0) = %q, want 'p' from the app", got)
	}
}

// recordingApp is a minimal App that renders a fixed string on its first row
// and records the sizes it was given.
type recordingApp struct {
	cols, rows int
	text       string
	stopped    bool
}

func (a *recordingApp) Run() error                     { return nil }
func (a *recordingApp) Stop()                          { a.stopped = true }
func (a *recordingApp) GetTitle() string               { return "recording" }
func (a *recordingApp) HandleKey(*tcell.EventKey)      {}
func (a *recordingApp) SetRefreshNotifier(chan<- bool) {}
func (a *recordingApp) Resize(cols, rows int)          { a.cols, a.rows = cols, rows }

func (a *recordingApp) Render() [][]Cell {
	if a.cols <= 0 || a.rows <= 0 {
		return nil
	}
	row := make([]Cell, 0, len(a.text))
	for _, ch := range a.text {
		row = append(row, Cell{Ch: ch, Fg: ColorDefault, Bg: ColorDefault})
	}
	return [][]Cell{row}
}
