// Package joypad tracks button state and the P1 selection register.
package joypad

import (
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/types"
)

// Button identifies one of the eight physical buttons.
type Button = uint8

const (
	A Button = iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
)

const (
	actionMask    = 0x0F // A, B, Select, Start packed into the low nibble
	directionMask = 0xF0 // Right, Left, Up, Down packed into the high nibble
)

// State holds the pressed/released bitmap and the P1 select lines.
type State struct {
	pressed  uint8 // bit per Button, 1 = held down
	p1select uint8 // bits 4-5 of P1, as written by the game

	irq *interrupts.Controller
}

// New returns a State wired to irq for joypad-edge interrupts.
func New(irq *interrupts.Controller) *State {
	return &State{irq: irq, p1select: 0x30}
}

func buttonBit(key Button) uint8 {
	switch key {
	case A, Right:
		return types.Bit0
	case B, Left:
		return types.Bit1
	case Select, Up:
		return types.Bit2
	case Start, Down:
		return types.Bit3
	}
	return 0
}

func isAction(key Button) bool {
	return key <= Start
}

// Set presses or releases key. A transition from released to pressed while
// the corresponding select line is active (low) requests a Joypad
// interrupt, waking the CPU from HALT even with IME=0.
func (s *State) Set(key Button, down bool) {
	bit := buttonBit(key)
	var group uint8
	if isAction(key) {
		group = bit
	} else {
		group = bit << 4
	}

	wasDown := s.pressed&group != 0
	if down {
		s.pressed |= group
	} else {
		s.pressed &^= group
	}

	selects := isAction(key) && s.p1select&types.Bit5 == 0 ||
		!isAction(key) && s.p1select&types.Bit4 == 0
	if down && !wasDown && selects {
		s.irq.Request(interrupts.Joypad)
	}
}

// ReadP1 returns the P1 register: selected group's buttons, active-low.
func (s *State) ReadP1() uint8 {
	v := uint8(0xC0) | s.p1select | 0x0F
	if s.p1select&types.Bit4 == 0 {
		v &^= (s.pressed & directionMask) >> 4
	}
	if s.p1select&types.Bit5 == 0 {
		v &^= s.pressed & actionMask
	}
	return v
}

// WriteP1 writes the selection bits (4 and 5); the low nibble is read-only.
func (s *State) WriteP1(v uint8) {
	s.p1select = v & 0x30
}

var _ types.Stater = (*State)(nil)

func (s *State) Save(st *types.State) {
	st.Write8(s.pressed)
	st.Write8(s.p1select)
}

func (s *State) Load(st *types.State) {
	s.pressed = st.Read8()
	s.p1select = st.Read8()
}
