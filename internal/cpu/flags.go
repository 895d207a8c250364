package cpu

import "github.com/coldiron/gbcore/internal/types"

const (
	flagZ = types.FlagZero
	flagN = types.FlagSubtract
	flagH = types.FlagHalfCarry
	flagC = types.FlagCarry
)

func (c *CPU) setFlag(f types.Flag, v bool) {
	if v {
		c.F |= f
	} else {
		c.F &^= f
	}
	c.F &= 0xF0
}

func (c *CPU) flag(f types.Flag) bool { return c.F&f != 0 }

func (c *CPU) setFlags(z, n, h, cy bool) {
	c.F = 0
	c.setFlag(types.FlagZero, z)
	c.setFlag(types.FlagSubtract, n)
	c.setFlag(types.FlagHalfCarry, h)
	c.setFlag(types.FlagCarry, cy)
}
