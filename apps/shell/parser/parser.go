// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/shell/parser/parser.go
// Summary: Byte-stream state machine feeding a virtual terminal.

package parser

import (
	"bytes"
	"unicode/utf8"
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateCSI
	stateOSC
	stateCharset
)

// Parser is a small VT100/ANSI stream parser. It covers the sequences
// ordinary shell sessions emit; full terminal emulation is not the goal.
type Parser struct {
	state        state
	vterm        *VTerm
	params       []int
	currentParam int
	private      bool
	oscBuffer    []byte
	runeBuffer   []byte // partial UTF-8 sequence across Parse calls
}

// NewParser creates a parser associated with a virtual terminal.
func NewParser(v *VTerm) *Parser {
	return &Parser{
		state:     stateGround,
		vterm:     v,
		params:    make([]int, 0, 16),
		oscBuffer: make([]byte, 0, 128),
	}
}

// Parse processes a slice of bytes from the PTY.
func (p *Parser) Parse(data []byte) {
	for _, b := range data {
		switch p.state {
		case stateGround:
			switch {
			case b == 0x1b:
				p.runeBuffer = p.runeBuffer[:0]
				p.state = stateEscape
			case b == '\n':
				p.vterm.lineFeed()
			case b == '\r':
				p.vterm.carriageReturn()
			case b == '\b':
				p.vterm.backspace()
			case b == '\t':
				p.vterm.tab()
			case b == 0x07:
				// BEL in ground state, drop.
			case b < 0x20:
				// Other C0 controls are ignored.
			default:
				p.feedRune(b)
			}
		case stateEscape:
			switch b {
			case '[':
				p.state = stateCSI
				p.params = p.params[:0]
				p.currentParam = 0
				p.private = false
			case ']':
				p.state = stateOSC
				p.oscBuffer = p.oscBuffer[:0]
			case '(', ')':
				p.state = stateCharset
			default:
				p.state = stateGround
			}
		case stateCSI:
			switch {
			case b >= '0' && b <= '9':
				p.currentParam = p.currentParam*10 + int(b-'0')
			case b == ';':
				p.params = append(p.params, p.currentParam)
				p.currentParam = 0
			case b == '?':
				p.private = true
			case b >= '@' && b <= '~':
				p.params = append(p.params, p.currentParam)
				p.vterm.processCSI(b, p.params, p.private)
				p.state = stateGround
			}
		case stateOSC:
			if b == 0x07 {
				p.handleOSC()
				p.state = stateGround
			} else {
				p.oscBuffer = append(p.oscBuffer, b)
			}
		case stateCharset:
			p.state = stateGround
		}
	}
}

// feedRune assembles multi-byte UTF-8 sequences that may span Parse calls.
func (p *Parser) feedRune(b byte) {
	p.runeBuffer = append(p.runeBuffer, b)
	if !utf8.FullRune(p.runeBuffer) {
		if len(p.runeBuffer) < utf8.UTFMax {
			return
		}
		// Hopeless sequence, emit replacement and resync.
		p.vterm.placeRune(utf8.RuneError)
		p.runeBuffer = p.runeBuffer[:0]
		return
	}
	r, _ := utf8.DecodeRune(p.runeBuffer)
	p.runeBuffer = p.runeBuffer[:0]
	p.vterm.placeRune(r)
}

// handleOSC processes an Operating System Command. Only title updates
// (OSC 0 and 2) are acted on.
func (p *Parser) handleOSC() {
	parts := bytes.SplitN(p.oscBuffer, []byte{';'}, 2)
	if len(parts) != 2 {
		return
	}
	switch string(parts[0]) {
	case "0", "2":
		p.vterm.setTitle(string(parts[1]))
	}
}
