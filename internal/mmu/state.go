package mmu

import "github.com/coldiron/gbcore/internal/types"

// Save serialises every byte array and register this bus owns directly; the
// cartridge, interrupt controller, timer, joypad, and serial controller are
// serialised separately by the orchestrator, in the component order
// SPEC_FULL.md §6 fixes.
func (b *Bus) Save(s *types.State) {
	for _, bank := range b.vram {
		s.WriteData(bank[:])
	}
	for _, bank := range b.wram {
		s.WriteData(bank[:])
	}
	s.WriteData(b.oam[:])
	s.WriteData(b.io[:])
	s.WriteData(b.hram[:])
	s.Write8(b.ie)
	s.Write8(b.vbk)
	s.Write8(b.svbk)
	s.WriteBool(b.DoubleSpeed)
	s.WriteBool(b.speedPrepare)
	s.WriteData(b.bgPalette.data[:])
	s.Write8(b.bgPalette.idx)
	s.WriteBool(b.bgPalette.auto)
	s.WriteData(b.objPalette.data[:])
	s.Write8(b.objPalette.idx)
	s.WriteBool(b.objPalette.auto)

	s.WriteBool(b.dma.active)
	s.Write16(b.dma.source)
	s.Write32(uint32(b.dma.index))
	s.Write8(b.dma.delay)

	s.WriteBool(b.hdma.active)
	s.WriteBool(b.hdma.hblankMode)
	s.WriteBool(b.hdma.cancelled)
	s.Write16(b.hdma.source)
	s.Write16(b.hdma.dest)
	s.Write16(b.hdma.blocksLeft)
	s.Write32(uint32(b.hdma.chunkDelay))
}

func (b *Bus) Load(s *types.State) {
	for i := range b.vram {
		s.ReadData(b.vram[i][:])
	}
	for i := range b.wram {
		s.ReadData(b.wram[i][:])
	}
	s.ReadData(b.oam[:])
	s.ReadData(b.io[:])
	s.ReadData(b.hram[:])
	b.ie = s.Read8()
	b.vbk = s.Read8()
	b.svbk = s.Read8()
	b.DoubleSpeed = s.ReadBool()
	b.speedPrepare = s.ReadBool()
	s.ReadData(b.bgPalette.data[:])
	b.bgPalette.idx = s.Read8()
	b.bgPalette.auto = s.ReadBool()
	s.ReadData(b.objPalette.data[:])
	b.objPalette.idx = s.Read8()
	b.objPalette.auto = s.ReadBool()

	b.dma.active = s.ReadBool()
	b.dma.source = s.Read16()
	b.dma.index = int(s.Read32())
	b.dma.delay = s.Read8()

	b.hdma.active = s.ReadBool()
	b.hdma.hblankMode = s.ReadBool()
	b.hdma.cancelled = s.ReadBool()
	b.hdma.source = s.Read16()
	b.hdma.dest = s.Read16()
	b.hdma.blocksLeft = s.Read16()
	b.hdma.chunkDelay = int(s.Read32())
}

var _ types.Stater = (*Bus)(nil)
