// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/screen.go
// Summary: Engine: event loop, app hosting, damage-limited flushing.

package texelwin

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelwin/config"
)

// Engine key bindings. Everything else is delegated to the focused window.
const (
	keyQuit       = tcell.KeyCtrlQ
	keyCycleFocus = tcell.KeyCtrlA
	keyCloseWin   = tcell.KeyCtrlW
)

type styleKey struct {
	fg, bg Color
	attr   AttrMask
}

// Screen is the engine tying registry, compositor, damage tracker and
// router to a terminal backend. One event loop alternates between routing
// input and flushing damaged cells; all window mutation happens on that
// loop.
type Screen struct {
	driver     ScreenDriver
	registry   *Registry
	compositor *Compositor
	damage     *DamageTracker
	router     *Router

	prev       *Buffer
	styleCache map[styleKey]tcell.Style
	apps       map[WindowID]App

	quit        chan struct{}
	refreshChan chan bool
	closeOnce   sync.Once
}

// NewScreen initializes the terminal with tcell and builds the engine on
// top of it.
func NewScreen() (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, &BackendError{Op: "new", Err: err}
	}
	return NewScreenWithDriver(NewTcellScreenDriver(tcellScreen))
}

// NewScreenWithDriver builds the engine over an already-constructed
// driver. Tests and simulations hand in a tcell SimulationScreen here.
func NewScreenWithDriver(driver ScreenDriver) (*Screen, error) {
	if err := driver.Init(); err != nil {
		return nil, &BackendError{Op: "init", Err: err}
	}
	driver.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	driver.HideCursor()

	fg := Color(config.Int("desktop", "default_fg", int(ColorDefault)))
	bg := Color(config.Int("desktop", "default_bg", int(ColorDefault)))

	w, h := driver.Size()
	damage := NewDamageTracker(w, h)
	registry := NewRegistry(damage)
	s := &Screen{
		driver:      driver,
		registry:    registry,
		compositor:  NewCompositor(BlankCell(fg, bg)),
		damage:      damage,
		router:      NewRouter(registry, damage),
		styleCache:  make(map[styleKey]tcell.Style),
		apps:        make(map[WindowID]App),
		quit:        make(chan struct{}),
		refreshChan: make(chan bool, 1),
	}
	return s, nil
}

// Registry exposes the window registry for direct mutation between frames.
func (s *Screen) Registry() *Registry { return s.registry }

// Router exposes the input router (focus, modal capture).
func (s *Screen) Router() *Router { return s.router }

// Size returns the current terminal dimensions.
func (s *Screen) Size() (int, int) { return s.driver.Size() }

// AddWindow creates a window and, when app is non-nil, attaches and starts
// it. The first window added takes focus.
func (s *Screen) AddWindow(x, y, z, w, h int, attrs WindowAttrs, app App) (WindowID, error) {
	id, err := s.registry.Create(x, y, z, w, h, attrs)
	if err != nil {
		return 0, err
	}
	if app != nil {
		s.apps[id] = app
		app.SetRefreshNotifier(s.refreshChan)
		win, _ := s.registry.Get(id)
		interior := win.Interior()
		app.Resize(interior.W, interior.H)
		s.syncApp(id, app)
		go func() {
			if err := app.Run(); err != nil {
				log.Printf("App '%s' exited with error: %v", app.GetTitle(), err)
			}
		}()
	}
	if s.router.Focus() == 0 {
		_ = s.router.SetFocus(id)
	}
	return id, nil
}

// DestroyWindow stops the hosted app (if any) and removes the window.
func (s *Screen) DestroyWindow(id WindowID) error {
	s.stopApp(id)
	if err := s.registry.Destroy(id); err != nil {
		return err
	}
	if s.router.Focus() == id {
		s.router.focusTopmost()
	}
	return nil
}

func (s *Screen) stopApp(id WindowID) {
	if app, ok := s.apps[id]; ok {
		app.Stop()
		delete(s.apps, id)
	}
}

// Run starts the main event and rendering loop. It returns when the engine
// is closed or the backend fails.
func (s *Screen) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := s.driver.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-s.quit:
				return
			}
		}
	}()

	tick := time.Duration(config.Int("engine", "tick_ms", 16)) * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case <-sigChan:
			s.driver.Sync()
			w, h := s.driver.Size()
			s.handleResize(tcell.NewEventResize(w, h))
			dirty = true
		case ev := <-eventChan:
			s.handleEvent(ev)
			dirty = true
		case <-s.refreshChan:
			s.syncApps()
			dirty = true
		case <-ticker.C:
			// Damage from a whole input-handling step flushes in one
			// batch here, so multi-mutation updates never tear.
			if dirty {
				if err := s.Redraw(); err != nil {
					return err
				}
				dirty = false
			}
		case <-s.quit:
			return nil
		}
	}
}

// handleEvent processes engine keys, then routes the rest.
func (s *Screen) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case keyQuit:
			s.Close()
			return
		case keyCycleFocus:
			s.router.CycleFocus()
			s.Refresh()
			return
		case keyCloseWin:
			if id, ok := s.router.CloseFocused(); ok {
				s.stopApp(id)
			}
			return
		}
		if routed, ok := s.router.Route(ev); ok {
			if app, hosted := s.apps[routed.Target]; hosted {
				app.HandleKey(routed.Event.(*tcell.EventKey))
			}
		}
	case *tcell.EventMouse:
		if routed, ok := s.router.Route(ev); ok {
			if app, hosted := s.apps[routed.Target]; hosted {
				if mh, aware := app.(MouseHandler); aware {
					mh.HandleMouse(routed.Event.(*tcell.EventMouse))
				}
			}
		}
	case *tcell.EventResize:
		s.handleResize(ev)
	}
}

// handleResize recomputes screen-dependent state and broadcasts the new
// viewport to every hosted app. Window geometry is untouched: the
// compositor's clipping absorbs windows that ended up off-screen.
func (s *Screen) handleResize(ev *tcell.EventResize) {
	w, h := ev.Size()
	s.damage.Resize(w, h)
	s.prev = nil
	_, _ = s.router.Route(ev)
	for id, app := range s.apps {
		win, err := s.registry.Get(id)
		if err != nil {
			continue
		}
		interior := win.Interior()
		app.Resize(interior.W, interior.H)
	}
}

// syncApps pulls fresh content from every hosted app into its window.
func (s *Screen) syncApps() {
	for id, app := range s.apps {
		s.syncApp(id, app)
	}
}

func (s *Screen) syncApp(id WindowID, app App) {
	rows := app.Render()
	if len(rows) == 0 {
		return
	}
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	if w == 0 {
		return
	}
	cells := make([]Cell, w*len(rows))
	win, err := s.registry.Get(id)
	if err != nil {
		s.stopApp(id)
		return
	}
	blank := BlankCell(win.fg, win.bg)
	for i := range cells {
		cells[i] = blank
	}
	for y, row := range rows {
		copy(cells[y*w:y*w+len(row)], row)
	}
	_ = s.registry.WriteContent(id, Rect{W: w, H: len(rows)}, cells)
}

// Redraw composes the frame and flushes only the cells inside drained
// damage regions that actually changed, then presents the frame.
func (s *Screen) Redraw() error {
	w, h := s.driver.Size()
	frame := s.compositor.Compose(s.registry, w, h)
	if s.prev == nil {
		s.prev = NewBuffer(w, h, Cell{})
		s.damage.MarkFull()
	} else if pw, ph := s.prev.Size(); pw != w || ph != h {
		s.prev = NewBuffer(w, h, Cell{})
		s.damage.MarkFull()
	}
	for _, r := range s.damage.Drain() {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				c := frame.At(x, y)
				if c != s.prev.At(x, y) {
					s.driver.SetContent(x, y, c.Ch, nil, s.style(c))
					s.prev.Set(x, y, c)
				}
			}
		}
	}
	s.driver.Show()
	return nil
}

// Refresh signals the main loop to redraw.
func (s *Screen) Refresh() {
	select {
	case s.refreshChan <- true:
	default:
	}
}

// style translates a cell's colors and attributes into a cached
// tcell.Style.
func (s *Screen) style(c Cell) tcell.Style {
	key := styleKey{fg: c.Fg, bg: c.Bg, attr: c.Attr}
	if st, ok := s.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
	if c.Attr&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attr&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attr&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	s.styleCache[key] = st
	return st
}

func tcellColor(c Color) tcell.Color {
	if c < 0 {
		return tcell.ColorReset
	}
	return tcell.PaletteColor(int(c))
}

// Close shuts down the backend and stops all hosted apps.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		for id := range s.apps {
			s.stopApp(id)
		}
		s.driver.Fini()
	})
}
