package cpu

// executeCB decodes and runs a 0xCB-prefixed instruction. All CB opcodes
// cost 8 t-cycles, except the (HL) operand forms of BIT (12) and the
// RES/SET/rotate (HL) forms (16).
func (c *CPU) executeCB() int {
	op := c.fetch()
	reg := op & 0x07
	isHL := reg == 6
	group := op >> 6
	bitN := (op >> 3) & 0x07

	if group == 0 {
		// rotate/shift group, selected by bits 5-3
		v := c.r8(reg)
		var r uint8
		switch bitN {
		case 0:
			r = c.rlc(v, false)
		case 1:
			r = c.rrc(v, false)
		case 2:
			r = c.rl(v, false)
		case 3:
			r = c.rr(v, false)
		case 4:
			r = c.sla(v)
		case 5:
			r = c.sra(v)
		case 6:
			r = c.swap(v)
		default:
			r = c.srl(v)
		}
		c.setR8(reg, r)
		if isHL {
			return 16
		}
		return 8
	}

	v := c.r8(reg)
	switch group {
	case 1: // BIT n,r
		c.bit(v, bitN)
		if isHL {
			return 12
		}
		return 8
	case 2: // RES n,r
		c.setR8(reg, v&^(1<<bitN))
	default: // SET n,r
		c.setR8(reg, v|(1<<bitN))
	}
	if isHL {
		return 16
	}
	return 8
}
