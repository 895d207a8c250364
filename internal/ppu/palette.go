package ppu

// dmgShades is the classic four-shade green-tinted DMG palette, used when
// running a DMG cartridge (or a CGB one in DMG-compatibility mode without a
// loaded compatibility palette).
var dmgShades = [4]Colour{
	{R: 0xE0, G: 0xF8, B: 0xD0},
	{R: 0x88, G: 0xC0, B: 0x70},
	{R: 0x34, G: 0x68, B: 0x56},
	{R: 0x08, G: 0x18, B: 0x20},
}

func decode555(v uint16) Colour {
	r := uint8(v & 0x1F)
	g := uint8((v >> 5) & 0x1F)
	b := uint8((v >> 10) & 0x1F)
	scale := func(c uint8) uint8 { return c<<3 | c>>2 }
	return Colour{R: scale(r), G: scale(g), B: scale(b)}
}

func (p *PPU) resolveBGColour(idx, palette uint8) Colour {
	if p.CGB {
		return decode555(p.Bus.BGPaletteColour(palette, idx))
	}
	shade := (p.Bus.BGP() >> (idx * 2)) & 0x03
	return dmgShades[shade]
}

func (p *PPU) resolveOBJColour(idx, palette uint8) Colour {
	return decode555(p.Bus.OBJPaletteColour(palette, idx))
}

func (p *PPU) resolveDMGOBJColour(idx, palette uint8) Colour {
	reg := p.Bus.OBP0()
	if palette == 1 {
		reg = p.Bus.OBP1()
	}
	shade := (reg >> (idx * 2)) & 0x03
	return dmgShades[shade]
}
