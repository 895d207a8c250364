package cpu

// r8 reads one of the eight 3-bit-encoded operands: B,C,D,E,H,L,(HL),A.
func (c *CPU) r8(index uint8) uint8 {
	switch index & 0x07 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setR8(index uint8, v uint8) {
	switch index & 0x07 {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write(c.HL(), v)
	default:
		c.A = v
	}
}

// r16sp reads one of the four 2-bit-encoded 16-bit pairs in SP-form: BC,DE,HL,SP.
func (c *CPU) r16sp(index uint8) uint16 {
	switch index & 0x03 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setR16sp(index uint8, v uint16) {
	switch index & 0x03 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// r16af reads one of the four 2-bit-encoded 16-bit pairs in AF-form (used
// by PUSH/POP): BC,DE,HL,AF.
func (c *CPU) r16af(index uint8) uint16 {
	switch index & 0x03 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.AF()
	}
}

func (c *CPU) setR16af(index uint8, v uint16) {
	switch index & 0x03 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SetAF(v)
	}
}

// cc evaluates one of the four 2-bit-encoded branch conditions: NZ,Z,NC,C.
func (c *CPU) cc(index uint8) bool {
	switch index & 0x03 {
	case 0:
		return !c.flag(flagZ)
	case 1:
		return c.flag(flagZ)
	case 2:
		return !c.flag(flagC)
	default:
		return c.flag(flagC)
	}
}
