// Package cpu implements the Sharp LR35902 instruction set: decode/execute,
// interrupt dispatch, and the HALT/STOP/double-speed state machine.
package cpu

import (
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/mmu"
	"github.com/coldiron/gbcore/internal/types"
)

type runMode uint8

const (
	modeNormal runMode = iota
	modeHalt
	modeHaltBug
	modeStop
)

// CPU executes the LR35902 instruction set against a Bus, one instruction
// at a time, paying its documented m-cycle cost before returning control to
// the tick driver.
type CPU struct {
	Registers
	PC, SP uint16

	IME        bool
	imePending bool

	Locked bool // set by an illegal/undocumented opcode; CPU halts-and-locks

	mode runMode

	Bus *mmu.Bus
	IRQ *interrupts.Controller
}

// New returns a CPU wired to bus/irq, with registers at their documented
// post-boot-ROM values for a DMG/CGB cartridge boot.
func New(bus *mmu.Bus, irq *interrupts.Controller) *CPU {
	c := &CPU{Bus: bus, IRQ: irq}
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.IME = false
	return c
}

func (c *CPU) read(addr uint16) uint8      { return c.Bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8)  { c.Bus.Write(addr, v) }

func (c *CPU) fetch() uint8 {
	v := c.read(c.PC)
	if c.mode == modeHaltBug {
		c.mode = modeNormal
	} else {
		c.PC++
	}
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// Step executes the interrupt check, then either services one pending
// interrupt or decodes and executes one instruction. It returns the number
// of t-cycles consumed, for the tick driver to account against other
// subsystems (this core pays cost atomically rather than cycle-stepping
// inside an instruction, per spec.md §1's stated Non-goal).
func (c *CPU) Step() int {
	applyEI := c.imePending
	c.imePending = false

	if cycles, serviced := c.serviceInterrupt(); serviced {
		if applyEI {
			c.IME = true
		}
		return cycles
	}

	if c.mode == modeHalt {
		if c.IRQ.HasPending() {
			c.mode = modeNormal
		}
		if applyEI {
			c.IME = true
		}
		return 4
	}

	if c.mode == modeStop {
		if c.IRQ.Pending()&(1<<interrupts.Joypad) != 0 {
			c.mode = modeNormal
		}
		if applyEI {
			c.IME = true
		}
		return 4
	}

	if c.Locked {
		if applyEI {
			c.IME = true
		}
		return 4
	}

	opcode := c.fetch()
	cycles := c.execute(opcode)
	if applyEI {
		c.IME = true
	}
	return cycles
}

// serviceInterrupt dispatches the lowest-priority-numbered pending,
// enabled interrupt when IME is set, costing 20 t-cycles.
func (c *CPU) serviceInterrupt() (int, bool) {
	if !c.IME {
		if c.mode == modeHalt && c.IRQ.HasPending() {
			c.mode = modeNormal
		}
		return 0, false
	}
	src, ok := c.IRQ.NextSource()
	if !ok {
		return 0, false
	}
	c.mode = modeNormal
	c.IME = false
	c.IRQ.Clear(src)
	c.pushStack(c.PC)
	c.PC = interrupts.Vector[src]
	return 20, true
}

func (c *CPU) pushStack(v uint16) {
	c.SP -= 2
	c.write(c.SP, uint8(v))
	c.write(c.SP+1, uint8(v>>8))
}

func (c *CPU) popStack() uint16 {
	lo := uint16(c.read(c.SP))
	hi := uint16(c.read(c.SP + 1))
	c.SP += 2
	return hi<<8 | lo
}

// halt enters HALT, reproducing the documented HALT bug: if IME=0 and an
// interrupt is already pending, the next fetch does not advance PC.
func (c *CPU) halt() {
	if !c.IME && c.IRQ.HasPending() {
		c.mode = modeHaltBug
		return
	}
	c.mode = modeHalt
}

// stop enters STOP. If KEY1 had armed a speed switch, it completes the
// switch and execution resumes immediately; otherwise the CPU actually
// stops, waking only when a joypad line goes low (matching HALT's
// IME-independent wake condition, since STOP also ignores IME entirely).
func (c *CPU) stop() {
	if !c.Bus.TriggerSpeedSwitch() {
		c.mode = modeStop
	}
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.PC)
	s.Write16(c.SP)
	s.WriteBool(c.IME)
	s.WriteBool(c.imePending)
	s.WriteBool(c.Locked)
	s.Write8(uint8(c.mode))
}

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.PC = s.Read16()
	c.SP = s.Read16()
	c.IME = s.ReadBool()
	c.imePending = s.ReadBool()
	c.Locked = s.ReadBool()
	c.mode = runMode(s.Read8())
}

var _ types.Stater = (*CPU)(nil)

