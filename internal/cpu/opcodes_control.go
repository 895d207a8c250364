package cpu

// executeControl handles the remaining 0xC0-0xFF control-flow and stack
// instructions: RET cc, JP cc,a16, CALL cc,a16, RST n, PUSH rr, POP rr.
func (c *CPU) executeControl(op uint8) (bool, int) {
	if op < 0xC0 {
		return false, 0
	}

	// RET cc
	switch op {
	case 0xC0, 0xC8, 0xD0, 0xD8:
		cond := (op >> 3) & 0x03
		if c.cc(cond) {
			c.PC = c.popStack()
			return true, 20
		}
		return true, 8
	}

	// JP cc,a16
	switch op {
	case 0xC2, 0xCA, 0xD2, 0xDA:
		cond := (op >> 3) & 0x03
		target := c.fetch16()
		if c.cc(cond) {
			c.PC = target
			return true, 16
		}
		return true, 12
	}

	// CALL cc,a16
	switch op {
	case 0xC4, 0xCC, 0xD4, 0xDC:
		cond := (op >> 3) & 0x03
		target := c.fetch16()
		if c.cc(cond) {
			c.pushStack(c.PC)
			c.PC = target
			return true, 24
		}
		return true, 12
	}

	// RST n
	switch op {
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		c.pushStack(c.PC)
		c.PC = uint16(op & 0x38)
		return true, 16
	}

	// PUSH rr
	switch op {
	case 0xC5, 0xD5, 0xE5, 0xF5:
		idx := (op >> 4) & 0x03
		c.pushStack(c.r16af(idx))
		return true, 16
	}

	// POP rr
	switch op {
	case 0xC1, 0xD1, 0xE1, 0xF1:
		idx := (op >> 4) & 0x03
		c.setR16af(idx, c.popStack())
		return true, 12
	}

	return false, 0
}
