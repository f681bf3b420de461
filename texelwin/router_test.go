// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelwin/router_test.go
// Summary: Tests for focus, modal capture and event routing.

package texelwin

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func routerFixture(t *testing.T) (*Registry, *Router, *DamageTracker) {
	t.Helper()
	dmg := NewDamageTracker(80, 24)
	dmg.Drain()
	reg := NewRegistry(dmg)
	return reg, NewRouter(reg, dmg), dmg
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouseEvent(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

func TestKeyRoutesToFocus(t *testing.T) {
	reg, router, _ := routerFixture(t)
	a, _ := reg.Create(0, 0, 0, 10, 5, WindowAttrs{})
	b, _ := reg.Create(20, 0, 0, 10, 5, WindowAttrs{})

	if err := router.SetFocus(b); err != nil {
		t.Fatalf("SetFocus: %v", err)
	}
	routed, ok := router.Route(keyEvent('x'))
	if !ok || routed.Target != b {
		t.Errorf("key went to %d, want focused %d", routed.Target, b)
	}

	_ = a
}

func TestKeyDroppedWithoutVisibleTarget(t *testing.T) {
	reg, router, _ := routerFixture(t)

	// No focus at all.
	if _, ok := router.Route(keyEvent('x')); ok {
		t.Error("key delivered with no focus set")
	}

	// Focused but hidden.
	id, _ := reg.Create(0, 0, 0, 10, 5, WindowAttrs{})
	_ = router.SetFocus(id)
	_ = reg.SetVisible(id, false)
	if _, ok := router.Route(keyEvent('x')); ok {
		t.Error("key delivered to hidden window")
	}

	// Focused but destroyed.
	_ = reg.SetVisible(id, true)
	_ = reg.Destroy(id)
	if _, ok := router.Route(keyEvent('x')); ok {
		t.Error("key delivered to destroyed window")
	}
}

func TestMouseHitsTopmostAndRaisesFocus(t *testing.T) {
	reg, router, _ := routerFixture(t)
	bottom, _ := reg.Create(0, 0, 0, 20, 10, WindowAttrs{})
	top, _ := reg.Create(5, 2, 1, 10, 5, WindowAttrs{Bordered: true})
	_ = router.SetFocus(bottom)

	routed, ok := router.Route(mouseEvent(7, 4))
	if !ok || routed.Target != top {
		t.Fatalf("mouse went to %d, want topmost %d", routed.Target, top)
	}
	if router.Focus() != top {
		t.Errorf("focus = %d after click, want %d", router.Focus(), top)
	}

	// Coordinates arrive in content space: screen (7,4) inside a bordered
	// window at (5,2) is content (1,1).
	mev := routed.Event.(*tcell.EventMouse)
	x, y := mev.Position()
	if x != 1 || y != 1 {
		t.Errorf("translated position = (%d,%d), want (1,1)", x, y)
	}

	// A click on empty desktop finds nothing and focus stays put.
	if _, ok := router.Route(mouseEvent(70, 20)); ok {
		t.Error("mouse on empty desktop found a target")
	}
	if router.Focus() != top {
		t.Errorf("focus moved to %d on a desktop click", router.Focus())
	}
}

func TestModalCapturesInput(t *testing.T) {
	reg, router, _ := routerFixture(t)
	normal, _ := reg.Create(0, 0, 0, 20, 10, WindowAttrs{})
	modal, _ := reg.Create(30, 5, 1, 10, 5, WindowAttrs{})

	if err := router.EnterModal(modal); err != nil {
		t.Fatalf("EnterModal: %v", err)
	}

	if err := router.SetFocus(normal); !errors.Is(err, ErrModalCapture) {
		t.Errorf("SetFocus during modal: err = %v, want ErrModalCapture", err)
	}

	routed, ok := router.Route(keyEvent('x'))
	if !ok || routed.Target != modal {
		t.Errorf("key during modal went to %d, want %d", routed.Target, modal)
	}

	// Clicks outside the modal window are dropped, inside are delivered.
	if _, ok := router.Route(mouseEvent(2, 2)); ok {
		t.Error("click outside modal window delivered")
	}
	routed, ok = router.Route(mouseEvent(32, 6))
	if !ok || routed.Target != modal {
		t.Errorf("click inside modal went to %d, want %d", routed.Target, modal)
	}

	router.ExitModal()
	if err := router.SetFocus(normal); err != nil {
		t.Errorf("SetFocus after ExitModal: %v", err)
	}
}

func TestCycleFocusVisitsVisibleWindows(t *testing.T) {
	reg, router, _ := routerFixture(t)
	a, _ := reg.Create(0, 0, 0, 5, 5, WindowAttrs{})
	b, _ := reg.Create(10, 0, 0, 5, 5, WindowAttrs{})
	c, _ := reg.Create(20, 0, 0, 5, 5, WindowAttrs{})
	_ = reg.SetVisible(b, false)

	_ = router.SetFocus(a)
	router.CycleFocus()
	if router.Focus() != c {
		t.Errorf("cycle from %d landed on %d, want %d (skipping hidden)", a, router.Focus(), c)
	}
	router.CycleFocus()
	if router.Focus() != a {
		t.Errorf("cycle wrapped to %d, want %d", router.Focus(), a)
	}
}

func TestCloseFocusedHonorsClosable(t *testing.T) {
	reg, router, _ := routerFixture(t)
	keeper, _ := reg.Create(0, 0, 0, 5, 5, WindowAttrs{})
	victim, _ := reg.Create(10, 0, 1, 5, 5, WindowAttrs{Closable: true})

	_ = router.SetFocus(keeper)
	if _, ok := router.CloseFocused(); ok {
		t.Error("non-closable window was closed")
	}
	if _, err := reg.Get(keeper); err != nil {
		t.Fatal("non-closable window vanished")
	}

	_ = router.SetFocus(victim)
	id, ok := router.CloseFocused()
	if !ok || id != victim {
		t.Fatalf("CloseFocused = (%d,%v), want (%d,true)", id, ok, victim)
	}
	if _, err := reg.Get(victim); !errors.Is(err, ErrUnknownWindow) {
		t.Error("closed window still registered")
	}
	if router.Focus() != keeper {
		t.Errorf("focus = %d after close, want fallback to %d", router.Focus(), keeper)
	}
}

func TestResizeForcesFullDamage(t *testing.T) {
	reg, router, dmg := routerFixture(t)
	// A window hanging past the new, smaller width must not break routing.
	id, _ := reg.Create(70, 0, 0, 8, 4, WindowAttrs{})
	dmg.Drain()

	_, consumed := router.Route(tcell.NewEventResize(60, 24))
	if !consumed {
		t.Fatal("resize event not consumed")
	}
	if dmg.Empty() {
		t.Fatal("resize left no damage pending")
	}

	// The off-screen window is still alive and still routable by key.
	_ = router.SetFocus(id)
	if _, ok := router.Route(keyEvent('x')); !ok {
		t.Error("window past the new edge stopped receiving keys")
	}
}
