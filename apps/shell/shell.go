// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shell/shell.go
// Summary: Interactive shell app backed by a PTY and the VT parser.

package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelwin/apps/shell/parser"
	"github.com/framegrace/texelwin/texelwin"
)

type shellApp struct {
	cmd    *exec.Cmd
	ptyFd  *os.File
	vterm  *parser.VTerm
	parser *parser.Parser

	mu          sync.RWMutex
	title       string
	width       int
	height      int
	refreshChan chan<- bool
	stopOnce    sync.Once
	stopped     chan struct{}
}

// New creates a shell app running the user's login shell ($SHELL,
// falling back to /bin/bash).
func New() texelwin.App {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		shellPath = "/bin/bash"
	}
	return NewCommand(shellPath)
}

// NewCommand creates a shell app running an arbitrary command.
func NewCommand(name string, args ...string) texelwin.App {
	vt := parser.NewVTerm(80, 24)
	app := &shellApp{
		cmd:     exec.Command(name, args...),
		vterm:   vt,
		title:   name,
		width:   80,
		height:  24,
		stopped: make(chan struct{}),
	}
	app.parser = parser.NewParser(vt)
	vt.TitleChanged = func(t string) {
		app.mu.Lock()
		app.title = t
		app.mu.Unlock()
		app.notify()
	}
	return app
}

func (a *shellApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

func (a *shellApp) notify() {
	if a.refreshChan == nil {
		return
	}
	select {
	case a.refreshChan <- true:
	default:
	}
}

// Run starts the child process on a PTY and pumps its output through
// the parser until the process exits or Stop is called.
func (a *shellApp) Run() error {
	a.cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	ptmx, err := pty.Start(a.cmd)
	if err != nil {
		return fmt.Errorf("shell: start %s: %w", a.cmd.Path, err)
	}
	a.mu.Lock()
	a.ptyFd = ptmx
	w, h := a.width, a.height
	a.mu.Unlock()
	a.resizePty(w, h)

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			a.mu.Lock()
			a.parser.Parse(buf[:n])
			a.mu.Unlock()
			a.notify()
		}
		if err != nil {
			// EIO is the normal read error after the child exits.
			if err == io.EOF {
				return nil
			}
			select {
			case <-a.stopped:
				return nil
			default:
			}
			return nil
		}
	}
}

// Stop terminates the child process and releases the PTY.
func (a *shellApp) Stop() {
	a.stopOnce.Do(func() {
		close(a.stopped)
		if a.cmd.Process != nil {
			a.cmd.Process.Kill()
		}
		a.mu.Lock()
		if a.ptyFd != nil {
			a.ptyFd.Close()
		}
		a.mu.Unlock()
	})
}

// Resize adjusts both the virtual terminal grid and the kernel PTY size.
func (a *shellApp) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	a.mu.Lock()
	a.width, a.height = cols, rows
	a.vterm.Resize(cols, rows)
	a.mu.Unlock()
	a.resizePty(cols, rows)
}

func (a *shellApp) resizePty(cols, rows int) {
	a.mu.RLock()
	ptmx := a.ptyFd
	a.mu.RUnlock()
	if ptmx == nil {
		return
	}
	pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

func (a *shellApp) GetTitle() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.title
}

// HandleKey encodes a key event as terminal input bytes and writes
// them to the PTY.
func (a *shellApp) HandleKey(ev *tcell.EventKey) {
	a.mu.RLock()
	ptmx := a.ptyFd
	a.mu.RUnlock()
	if ptmx == nil {
		return
	}
	if b := keyToBytes(ev); len(b) > 0 {
		ptmx.Write(b)
	}
}

// keyToBytes translates a tcell key event into the byte sequence a
// terminal would send.
func keyToBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return append([]byte{0x1b}, []byte(string(r))...)
		}
		return []byte(string(r))
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyTab:
		return []byte{'\t'}
	case tcell.KeyBacktab:
		return []byte("\x1b[Z")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7f}
	case tcell.KeyEsc:
		return []byte{0x1b}
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyHome:
		return []byte("\x1b[H")
	case tcell.KeyEnd:
		return []byte("\x1b[F")
	case tcell.KeyPgUp:
		return []byte("\x1b[5~")
	case tcell.KeyPgDn:
		return []byte("\x1b[6~")
	case tcell.KeyDelete:
		return []byte("\x1b[3~")
	case tcell.KeyInsert:
		return []byte("\x1b[2~")
	case tcell.KeyF1:
		return []byte("\x1bOP")
	case tcell.KeyF2:
		return []byte("\x1bOQ")
	case tcell.KeyF3:
		return []byte("\x1bOR")
	case tcell.KeyF4:
		return []byte("\x1bOS")
	case tcell.KeyF5:
		return []byte("\x1b[15~")
	case tcell.KeyF6:
		return []byte("\x1b[17~")
	case tcell.KeyF7:
		return []byte("\x1b[18~")
	case tcell.KeyF8:
		return []byte("\x1b[19~")
	case tcell.KeyF9:
		return []byte("\x1b[20~")
	case tcell.KeyF10:
		return []byte("\x1b[21~")
	case tcell.KeyF11:
		return []byte("\x1b[23~")
	case tcell.KeyF12:
		return []byte("\x1b[24~")
	default:
		// Ctrl-A..Ctrl-Z and friends map directly to their byte value.
		if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
			return []byte{byte(ev.Key())}
		}
	}
	return nil
}

// Render converts the virtual terminal grid into compositor cells,
// overlaying the cursor in reverse video when visible.
func (a *shellApp) Render() [][]texelwin.Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	grid := a.vterm.Grid()
	curX, curY := a.vterm.Cursor()
	showCursor := a.vterm.CursorVisible()

	out := make([][]texelwin.Cell, len(grid))
	for y, row := range grid {
		out[y] = make([]texelwin.Cell, len(row))
		for x, c := range row {
			cell := texelwin.Cell{
				Ch:   c.Rune,
				Fg:   texelwin.Color(c.FG),
				Bg:   texelwin.Color(c.BG),
				Attr: convertAttr(c.Attr),
			}
			if cell.Ch == 0 {
				cell.Ch = ' '
			}
			if showCursor && x == curX && y == curY {
				cell.Attr ^= texelwin.AttrReverse
			}
			out[y][x] = cell
		}
	}
	return out
}

func convertAttr(attr parser.Attribute) texelwin.AttrMask {
	var m texelwin.AttrMask
	if attr&parser.AttrBold != 0 {
		m |= texelwin.AttrBold
	}
	if attr&parser.AttrUnderline != 0 {
		m |= texelwin.AttrUnderline
	}
	if attr&parser.AttrReverse != 0 {
		m |= texelwin.AttrReverse
	}
	return m
}
