// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/router.go
// Summary: Maps backend input events to the focused or topmost window.

package texelwin

import "github.com/gdamore/tcell/v2"

// RouterMode is the input routing state.
type RouterMode int

const (
	// ModeNormal sends key input to the focused window and resolves
	// pointer events by hit test.
	ModeNormal RouterMode = iota
	// ModeModal sends all input to one capturing window; focus changes
	// are rejected until the modal window releases or is destroyed.
	ModeModal
)

// RoutedEvent is an input event resolved to its target window. Pointer
// coordinates are translated into the target's content coordinate space.
type RoutedEvent struct {
	Target WindowID
	Event  tcell.Event
}

// Router owns logical focus. It stores window ids, never window references,
// so destroying a window cannot leave a dangling pointer here.
type Router struct {
	reg    *Registry
	damage *DamageTracker
	mode   RouterMode
	focus  WindowID
	modal  WindowID
}

// NewRouter creates a router over the given registry and damage tracker.
func NewRouter(reg *Registry, damage *DamageTracker) *Router {
	return &Router{reg: reg, damage: damage}
}

// Mode returns the current routing state.
func (r *Router) Mode() RouterMode { return r.mode }

// Focus returns the focused window id, 0 if none.
func (r *Router) Focus() WindowID { return r.focus }

// SetFocus moves logical focus. Fails with ErrModalCapture while a modal
// window other than id holds the input, and with ErrUnknownWindow for dead
// ids. Passing 0 clears focus.
func (r *Router) SetFocus(id WindowID) error {
	if r.mode == ModeModal && id != r.modal {
		return ErrModalCapture
	}
	if id != 0 {
		if _, err := r.reg.Get(id); err != nil {
			return err
		}
	}
	r.focus = id
	return nil
}

// EnterModal routes all subsequent input exclusively to id.
func (r *Router) EnterModal(id WindowID) error {
	if _, err := r.reg.Get(id); err != nil {
		return err
	}
	r.mode = ModeModal
	r.modal = id
	r.focus = id
	return nil
}

// ExitModal returns to normal focus-based routing.
func (r *Router) ExitModal() {
	r.mode = ModeNormal
	r.modal = 0
}

// CycleFocus advances focus to the next visible window in paint order.
// Ignored while modal.
func (r *Router) CycleFocus() {
	if r.mode == ModeModal {
		return
	}
	wins := r.reg.windowsInPaintOrder()
	visible := wins[:0]
	for _, w := range wins {
		if w.visible {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		r.focus = 0
		return
	}
	cur := -1
	for i, w := range visible {
		if w.id == r.focus {
			cur = i
			break
		}
	}
	r.focus = visible[(cur+1)%len(visible)].id
}

// target is the window that currently receives key input.
func (r *Router) target() WindowID {
	if r.mode == ModeModal {
		return r.modal
	}
	return r.focus
}

// CloseFocused destroys the current input target if it is closable.
// Returns the destroyed id. Non-closable targets ignore the close event.
func (r *Router) CloseFocused() (WindowID, bool) {
	id := r.target()
	win, err := r.reg.Get(id)
	if err != nil {
		return 0, false
	}
	if !win.closable {
		debugLog.Printf("Router: close ignored for non-closable window %d", id)
		return 0, false
	}
	if err := r.reg.Destroy(id); err != nil {
		return 0, false
	}
	if r.modal == id {
		r.ExitModal()
	}
	r.focusTopmost()
	return id, true
}

// focusTopmost drops focus onto the topmost visible window, or clears it.
func (r *Router) focusTopmost() {
	wins := r.reg.windowsInPaintOrder()
	for i := len(wins) - 1; i >= 0; i-- {
		if wins[i].visible {
			r.focus = wins[i].id
			return
		}
	}
	r.focus = 0
}

// Route resolves an input event to its target window.
//
// The second return is false when the event found no recipient. A true
// return with Target 0 means the router consumed the event itself (resize).
// Key events go to the current target if it is alive and visible, and are
// otherwise dropped. Pointer events go to the topmost visible window under
// the pointer and raise it to focus (logical focus only, z is unchanged);
// in modal state pointer events outside the capturing window are dropped.
// Resize events are never delivered to a window: the router forces a full
// repaint and leaves per-window viewport updates to the engine's broadcast.
func (r *Router) Route(ev tcell.Event) (RoutedEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		id := r.target()
		win, err := r.reg.Get(id)
		if err != nil || !win.visible {
			debugLog.Printf("Router: dropped key event, no visible target")
			return RoutedEvent{}, false
		}
		return RoutedEvent{Target: id, Event: ev}, true

	case *tcell.EventMouse:
		x, y := ev.Position()
		if r.mode == ModeModal {
			win, err := r.reg.Get(r.modal)
			if err != nil || !win.visible || !win.Bounds().Contains(x, y) {
				return RoutedEvent{}, false
			}
			return RoutedEvent{Target: r.modal, Event: translateMouse(ev, win)}, true
		}
		win, ok := r.reg.TopmostAt(x, y)
		if !ok {
			return RoutedEvent{}, false
		}
		r.focus = win.id
		return RoutedEvent{Target: win.id, Event: translateMouse(ev, win)}, true

	case *tcell.EventResize:
		r.damage.MarkFull()
		return RoutedEvent{}, true
	}
	return RoutedEvent{}, false
}

// translateMouse rebases pointer coordinates into the window's content
// space (border ring excluded).
func translateMouse(ev *tcell.EventMouse, win *Window) *tcell.EventMouse {
	x, y := ev.Position()
	i := win.inset()
	return tcell.NewEventMouse(x-win.x-i, y-win.y-i, ev.Buttons(), ev.Modifiers())
}
