package mmu

import "github.com/coldiron/gbcore/internal/types"

// readIO dispatches register-level reads to the owning subsystem, falling
// back to the flat I/O byte array for registers with no side effects.
func (b *Bus) readIO(addr uint16) uint8 {
	if addr >= 0xFF10 && addr <= 0xFF3F {
		return b.APU.Read(addr)
	}
	switch addr { //nolint:exhaustive
	case types.P1:
		return b.Joypad.ReadP1()
	case types.SB:
		return b.Serial.ReadSB()
	case types.SC:
		return b.Serial.ReadSC()
	case types.DIV:
		return b.Timer.ReadDIV()
	case types.TIMA:
		return b.Timer.ReadTIMA()
	case types.TMA:
		return b.Timer.ReadTMA()
	case types.TAC:
		return b.Timer.ReadTAC()
	case types.IF:
		return b.IRQ.ReadIF()
	case types.HDMA5:
		return b.hdma.status()
	case types.BCPD:
		return b.bgPalette.read()
	case types.BCPS:
		return b.bgPalette.readSpec()
	case types.OCPD:
		return b.objPalette.read()
	case types.OCPS:
		return b.objPalette.readSpec()
	case types.VBK:
		if !b.CGB {
			return 0xFF
		}
		return b.vbk | 0xFE
	case types.SVBK:
		if !b.CGB {
			return 0xFF
		}
		return b.svbk | 0xF8
	case types.KEY1:
		v := uint8(0)
		if b.DoubleSpeed {
			v |= types.Bit7
		}
		if b.speedPrepare {
			v |= types.Bit0
		}
		return v
	}
	return b.io[addr-0xFF00]
}

// writeIO dispatches register-level writes, handling every side effect
// SPEC_FULL.md/spec.md §4.1 documents.
func (b *Bus) writeIO(addr uint16, val uint8) {
	if addr >= 0xFF10 && addr <= 0xFF3F && addr != types.NR52 {
		b.APU.Write(addr, val)
		return
	}
	switch addr {
	case types.P1:
		b.Joypad.WriteP1(val)
	case types.SB:
		b.Serial.WriteSB(val)
	case types.SC:
		b.Serial.WriteSC(val)
	case types.DIV:
		b.Timer.WriteDIV()
	case types.TIMA:
		b.Timer.WriteTIMA(val)
	case types.TMA:
		b.Timer.WriteTMA(val)
	case types.TAC:
		b.Timer.WriteTAC(val)
	case types.IF:
		b.IRQ.WriteIF(val)
	case types.LY:
		// read-only on real hardware; writes are ignored.
	case types.STAT:
		// bits 0-2 are hardware-driven; only the interrupt-source enables
		// (bits 3-6) are writable.
		b.io[types.STAT-0xFF00] = b.io[types.STAT-0xFF00]&0x07 | val&0x78
	case types.DMA:
		b.io[addr-0xFF00] = val
		b.dma.start(val)
	case types.NR52:
		b.APU.Write(addr, val)
	case types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4:
		b.io[addr-0xFF00] = val
	case types.HDMA5:
		b.hdma.start(b.io[types.HDMA1-0xFF00], b.io[types.HDMA2-0xFF00], b.io[types.HDMA3-0xFF00], b.io[types.HDMA4-0xFF00], val, b.DoubleSpeed)
	case types.BCPD:
		b.bgPalette.write(val)
	case types.BCPS:
		b.bgPalette.writeSpec(val)
	case types.OCPD:
		b.objPalette.write(val)
	case types.OCPS:
		b.objPalette.writeSpec(val)
	case types.VBK:
		if b.CGB {
			b.vbk = val & 0x01
		}
	case types.SVBK:
		if b.CGB {
			b.svbk = val & 0x07
		}
	case types.KEY1:
		if b.CGB {
			b.speedPrepare = val&types.Bit0 != 0
		}
	default:
		b.io[addr-0xFF00] = val
	}
}

// BGPaletteColour/OBJPaletteColour expose the 64-byte CGB palette memories
// to the PPU as packed little-endian 5-5-5 colour words.
func (b *Bus) BGPaletteColour(palette, index uint8) uint16 {
	off := int(palette)*8 + int(index)*2
	return uint16(b.bgPalette.data[off]) | uint16(b.bgPalette.data[off+1])<<8
}

func (b *Bus) OBJPaletteColour(palette, index uint8) uint16 {
	off := int(palette)*8 + int(index)*2
	return uint16(b.objPalette.data[off]) | uint16(b.objPalette.data[off+1])<<8
}
