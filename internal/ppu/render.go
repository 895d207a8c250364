package ppu

// tilePixel returns the 2-bit colour index at (row,col) within an 8x8 tile
// whose data starts at vramAddr (0x8000-space) in the given VRAM bank.
func (p *PPU) tilePixel(bank int, vramAddr uint16, row, col uint8) uint8 {
	lo := p.Bus.VRAMByte(bank, vramAddr+uint16(row)*2)
	hi := p.Bus.VRAMByte(bank, vramAddr+uint16(row)*2+1)
	bit := 7 - col
	return (lo>>bit)&1 | (hi>>bit)&1<<1
}

// tileAddr resolves a tile ID to its VRAM data address per LCDC bit 4's
// unsigned (0x8000-based) or signed (0x9000-based) addressing mode.
func tileAddr(lcdc uint8, id uint8) uint16 {
	if lcdc&0x10 != 0 {
		return 0x8000 + uint16(id)*16
	}
	return uint16(0x9000 + int16(int8(id))*16)
}

type bgAttr struct {
	palette  uint8
	bank     int
	xFlip    bool
	yFlip    bool
	priority bool
}

func decodeBGAttr(v uint8) bgAttr {
	bank := 0
	if v&0x08 != 0 {
		bank = 1
	}
	return bgAttr{
		palette:  v & 0x07,
		bank:     bank,
		xFlip:    v&0x20 != 0,
		yFlip:    v&0x40 != 0,
		priority: v&0x80 != 0,
	}
}

// colourIdx and bgPriority record, per pixel, what renderSprites needs
// to resolve OBJ-to-BG priority correctly.
func (p *PPU) renderScanline() {
	ly := p.Bus.LY()
	if ly >= ScreenHeight {
		return
	}
	lcdc := p.Bus.LCDC()

	var colourIdx [ScreenWidth]uint8
	var bgPriority [ScreenWidth]bool
	var bgPalIdx [ScreenWidth]uint8

	bgEnabled := lcdc&0x01 != 0 || p.CGB
	if bgEnabled {
		p.renderBackground(ly, lcdc, &colourIdx, &bgPriority, &bgPalIdx)
	}
	if lcdc&0x20 != 0 && p.Bus.WY() <= ly {
		p.renderWindow(ly, lcdc, &colourIdx, &bgPriority, &bgPalIdx)
	}

	for x := 0; x < ScreenWidth; x++ {
		p.back[ly][x] = p.resolveBGColour(colourIdx[x], bgPalIdx[x])
	}

	if lcdc&0x02 != 0 {
		p.renderSprites(ly, lcdc, &colourIdx, &bgPriority)
	}
}

func (p *PPU) renderBackground(ly, lcdc uint8, colourIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool, bgPalIdx *[ScreenWidth]uint8) {
	scy, scx := p.Bus.SCY(), p.Bus.SCX()
	y := ly + scy
	mapBase := uint16(0x9800)
	if lcdc&0x08 != 0 {
		mapBase = 0x9C00
	}
	tileRow := uint16(y/8) * 32

	for x := 0; x < ScreenWidth; x++ {
		px := uint8(x) + scx
		tileCol := uint16(px / 8)
		mapAddr := mapBase + tileRow + tileCol
		id := p.Bus.VRAMByte(0, mapAddr)

		attr := bgAttr{}
		if p.CGB {
			attr = decodeBGAttr(p.Bus.VRAMByte(1, mapAddr))
		}

		row := y % 8
		col := px % 8
		if attr.yFlip {
			row = 7 - row
		}
		if attr.xFlip {
			col = 7 - col
		}

		idx := p.tilePixel(attr.bank, tileAddr(lcdc, id), row, col)
		colourIdx[x] = idx
		bgPriority[x] = attr.priority
		bgPalIdx[x] = attr.palette
	}
}

func (p *PPU) renderWindow(ly, lcdc uint8, colourIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool, bgPalIdx *[ScreenWidth]uint8) {
	wx := int(p.Bus.WX()) - 7
	if wx >= ScreenWidth {
		return
	}
	mapBase := uint16(0x9800)
	if lcdc&0x40 != 0 {
		mapBase = 0x9C00
	}
	tileRow := uint16(p.windowLine/8) * 32
	drew := false

	for x := 0; x < ScreenWidth; x++ {
		if x < wx {
			continue
		}
		wxPix := uint8(x - wx)
		tileCol := uint16(wxPix / 8)
		mapAddr := mapBase + tileRow + tileCol
		id := p.Bus.VRAMByte(0, mapAddr)

		attr := bgAttr{}
		if p.CGB {
			attr = decodeBGAttr(p.Bus.VRAMByte(1, mapAddr))
		}

		row := p.windowLine % 8
		col := wxPix % 8
		if attr.yFlip {
			row = 7 - row
		}
		if attr.xFlip {
			col = 7 - col
		}

		colourIdx[x] = p.tilePixel(attr.bank, tileAddr(lcdc, id), row, col)
		bgPriority[x] = attr.priority
		bgPalIdx[x] = attr.palette
		drew = true
	}
	if drew {
		p.windowLine++
	}
}

type spriteEntry struct {
	y, x, tile, attr uint8
}

// scanSprites collects up to 10 sprites intersecting scanline ly, in OAM
// order (the order hardware's priority resolution uses on DMG; CGB uses
// the same OAM order regardless of X, per OPRI).
func (p *PPU) scanSprites(ly, lcdc uint8) []spriteEntry {
	height := uint8(8)
	if lcdc&0x04 != 0 {
		height = 16
	}
	oam := p.Bus.OAMBytes()
	var found []spriteEntry
	for i := 0; i < 40 && len(found) < 10; i++ {
		y := int(oam[i*4]) - 16
		if int(ly) < y || int(ly) >= y+int(height) {
			continue
		}
		found = append(found, spriteEntry{
			y:    oam[i*4],
			x:    oam[i*4+1],
			tile: oam[i*4+2],
			attr: oam[i*4+3],
		})
	}
	return found
}

func (p *PPU) renderSprites(ly, lcdc uint8, colourIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	height := uint8(8)
	if lcdc&0x04 != 0 {
		height = 16
	}
	sprites := p.scanSprites(ly, lcdc)

	// DMG priority: lower X wins, ties broken by OAM order. CGB defaults
	// to pure OAM-order priority; OPRI bit 0 opts back into X-priority.
	xPriority := !p.CGB || p.Bus.OPRI()&0x01 != 0

	// Render back-to-front so the highest-priority sprite is painted last.
	if xPriority {
		for i := 1; i < len(sprites); i++ {
			for j := i; j > 0 && sprites[j].x >= sprites[j-1].x; j-- {
				sprites[j], sprites[j-1] = sprites[j-1], sprites[j]
			}
		}
	} else {
		for i, j := 0, len(sprites)-1; i < j; i, j = i+1, j-1 {
			sprites[i], sprites[j] = sprites[j], sprites[i]
		}
	}

	for _, sp := range sprites {
		spy := sp.y - 16
		spx := int(sp.x) - 8
		row := ly - spy
		yFlip := sp.attr&0x40 != 0
		xFlip := sp.attr&0x20 != 0
		if yFlip {
			row = height - 1 - row
		}

		tile := sp.tile
		if height == 16 {
			tile &^= 1
			if row >= 8 {
				tile |= 1
				row -= 8
			}
		}

		bank := 0
		if p.CGB && sp.attr&0x08 != 0 {
			bank = 1
		}
		behindBG := sp.attr&0x80 != 0
		dmgPalette := (sp.attr >> 4) & 0x01
		cgbPalette := sp.attr & 0x07

		for col := uint8(0); col < 8; col++ {
			x := spx + int(col)
			if x < 0 || x >= ScreenWidth {
				continue
			}
			sc := col
			if xFlip {
				sc = 7 - col
			}
			idx := p.tilePixel(bank, 0x8000+uint16(tile)*16, row, sc)
			if idx == 0 {
				continue
			}
			if behindBG && colourIdx[x] != 0 {
				continue
			}
			if p.CGB && bgPriority[x] && colourIdx[x] != 0 {
				continue
			}
			if p.CGB {
				p.back[ly][x] = p.resolveOBJColour(idx, cgbPalette)
			} else {
				p.back[ly][x] = p.resolveDMGOBJColour(idx, dmgPalette)
			}
		}
	}
}
