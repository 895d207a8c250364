// Package timer implements the DIV/TIMA/TMA/TAC divider chain.
package timer

import (
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/types"
)

// selectedBit maps TAC[1:0] to the bit of the internal 16-bit divider that
// drives TIMA: rates 4096/262144/65536/16384 Hz at bits 9/3/5/7.
var selectedBit = [4]uint8{9, 3, 5, 7}

// Controller reproduces the falling-edge TIMA increment and the four-cycle
// overflow-to-reload delay.
type Controller struct {
	div  uint16 // internal 16-bit divider; DIV exposes bits 8-15
	tima uint8
	tma  uint8
	tac  uint8

	// overflow delay state: TIMA held at 0x00 for 4 t-cycles before TMA is
	// latched in and the Timer IRQ raised. A write to TIMA during the delay
	// cancels the pending reload.
	reloadPending  bool
	reloadCountdown uint8

	irq *interrupts.Controller
}

// New returns a Controller wired to irq for overflow notifications.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq, div: 0xABCC}
}

func (c *Controller) selectedBit() uint8 {
	return selectedBit[c.tac&0b11]
}

func (c *Controller) enabled() bool {
	return c.tac&types.Bit2 != 0
}

// divBitHigh reports whether the selected divider bit is currently set.
func (c *Controller) divBitHigh() bool {
	return c.div&(1<<c.selectedBit()) != 0
}

// Tick advances the divider by one t-cycle and increments TIMA on a falling
// edge of the selected bit.
func (c *Controller) Tick() {
	if c.reloadPending {
		if c.reloadCountdown > 0 {
			c.reloadCountdown--
		}
		if c.reloadCountdown == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.Timer)
			c.reloadPending = false
		}
	}

	before := c.divBitHigh()
	c.div++
	after := c.divBitHigh()

	if before && !after && c.enabled() {
		c.incrementTIMA()
	}
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.reloadPending = true
		c.reloadCountdown = 4
	}
}

// ReadDIV returns the upper 8 bits of the internal divider.
func (c *Controller) ReadDIV() uint8 {
	return uint8(c.div >> 8)
}

// DivBit8 reports bit 8 of the internal divider, the serial port's nominal
// 8192 Hz internal-clock source.
func (c *Controller) DivBit8() bool {
	return c.div&(1<<8) != 0
}

// WriteDIV resets the internal divider to 0. If the selected bit was high
// at the moment of reset, the resulting falling edge ticks TIMA once,
// matching hardware.
func (c *Controller) WriteDIV() {
	wasHigh := c.divBitHigh() && c.enabled()
	c.div = 0
	if wasHigh {
		c.incrementTIMA()
	}
}

func (c *Controller) ReadTIMA() uint8 { return c.tima }

// WriteTIMA writes TIMA. A write during the reload delay cancels the
// pending TMA reload and IRQ.
func (c *Controller) WriteTIMA(v uint8) {
	c.tima = v
	c.reloadPending = false
}

func (c *Controller) ReadTMA() uint8 { return c.tma }

func (c *Controller) WriteTMA(v uint8) {
	c.tma = v
}

func (c *Controller) ReadTAC() uint8 {
	return c.tac | 0xF8
}

func (c *Controller) WriteTAC(v uint8) {
	wasEnabled := c.enabled()
	wasHigh := c.divBitHigh()
	c.tac = v & 0x07

	// disabling the timer while the selected bit is high causes an
	// immediate spurious increment, since the bit falls to 0.
	if wasEnabled && wasHigh && !c.enabled() {
		c.incrementTIMA()
	}
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.WriteBool(c.reloadPending)
	s.Write8(c.reloadCountdown)
}

func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.reloadPending = s.ReadBool()
	c.reloadCountdown = s.Read8()
}
