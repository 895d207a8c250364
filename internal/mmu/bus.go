// Package mmu implements the 64 KiB logical address space: bank routing to
// the loaded cartridge's MBC, VRAM/WRAM arrays, the I/O register file with
// its side-effecting writes, and the OAM DMA / HDMA engines.
package mmu

import (
	"github.com/coldiron/gbcore/internal/apu"
	"github.com/coldiron/gbcore/internal/cartridge"
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/joypad"
	"github.com/coldiron/gbcore/internal/serial"
	"github.com/coldiron/gbcore/internal/timer"
	"github.com/coldiron/gbcore/internal/types"
)

// Bus is the memory-mapped address space. It owns VRAM/WRAM/OAM/HRAM/IO
// storage directly and delegates ROM/SRAM access to the loaded cartridge's
// MBC and register-level I/O to the owning subsystems.
type Bus struct {
	Cart *cartridge.Cartridge

	CGB bool

	vram [2][0x2000]byte
	wram [8][0x1000]byte
	oam  [0xA0]byte
	io   [0x80]byte
	hram [0x7F]byte
	ie   uint8

	vbk  uint8
	svbk uint8

	DoubleSpeed  bool
	speedPrepare bool

	IRQ    *interrupts.Controller
	Timer  *timer.Controller
	Joypad *joypad.State
	Serial *serial.Controller
	APU    *apu.APU

	dma  dmaState
	hdma hdmaState

	bgPalette  paletteRAM
	objPalette paletteRAM
}

// New returns a Bus wired to the given cartridge and subsystem controllers.
func New(cart *cartridge.Cartridge, cgb bool, irq *interrupts.Controller, t *timer.Controller, jp *joypad.State, sr *serial.Controller, au *apu.APU) *Bus {
	b := &Bus{Cart: cart, CGB: cgb, IRQ: irq, Timer: t, Joypad: jp, Serial: sr, APU: au, svbk: 1, vbk: 0}
	b.io[types.STAT-0xFF00] = 0x80
	b.io[types.P1-0xFF00] = 0xCF
	return b
}

// wramBank returns the currently-selected WRAMX bank (1-7, always 1 on DMG).
func (b *Bus) wramBank() int {
	if !b.CGB {
		return 1
	}
	bank := int(b.svbk & 0x07)
	if bank == 0 {
		bank = 1
	}
	return bank
}

// Read performs a normal CPU-side read: VRAM/OAM accesses are blocked while
// the PPU owns them, exactly as real hardware returns 0xFF in that window.
func (b *Bus) Read(addr uint16) uint8 {
	if b.dma.active && addr < 0xFF80 {
		return 0xFF
	}
	switch {
	case addr < 0x8000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xA000:
		if b.vramBlocked() {
			return 0xFF
		}
		return b.vram[b.vbk][addr-0x8000]
	case addr < 0xC000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xD000:
		return b.wram[0][addr-0xC000]
	case addr < 0xE000:
		return b.wram[b.wramBank()][addr-0xD000]
	case addr < 0xFE00:
		return b.ReadPrivileged(addr - 0x2000)
	case addr < 0xFEA0:
		if b.oamBlocked() {
			return 0xFF
		}
		return b.oam[addr-0xFE00]
	case addr < 0xFF00:
		return 0xFF // UNUSED region
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.ie
	}
}

// ReadPrivileged bypasses PPU-mode access restrictions; used by the PPU's
// own rendering pipeline and the DMA/HDMA engines.
func (b *Bus) ReadPrivileged(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xA000:
		return b.vram[b.vbk][addr-0x8000]
	case addr < 0xC000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xD000:
		return b.wram[0][addr-0xC000]
	case addr < 0xE000:
		return b.wram[b.wramBank()][addr-0xD000]
	case addr < 0xFE00:
		return b.ReadPrivileged(addr - 0x2000)
	case addr < 0xFEA0:
		return b.oam[addr-0xFE00]
	case addr < 0xFF00:
		return 0xFF
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.ie
	}
}

// Write performs a normal CPU-side write, applying access restrictions and
// register side effects.
func (b *Bus) Write(addr uint16, val uint8) {
	if b.dma.active && addr < 0xFF80 && !(addr >= 0xFF00 && addr <= 0xFF7F) {
		return
	}
	switch {
	case addr < 0x8000:
		b.Cart.MBC.Write(addr, val)
	case addr < 0xA000:
		if b.vramBlocked() {
			return
		}
		b.vram[b.vbk][addr-0x8000] = val
	case addr < 0xC000:
		b.Cart.MBC.Write(addr, val)
	case addr < 0xD000:
		b.wram[0][addr-0xC000] = val
	case addr < 0xE000:
		b.wram[b.wramBank()][addr-0xD000] = val
	case addr < 0xFE00:
		b.Write(addr-0x2000, val)
	case addr < 0xFEA0:
		if b.oamBlocked() {
			return
		}
		b.oam[addr-0xFE00] = val
	case addr < 0xFF00:
		// UNUSED: writes silently dropped.
	case addr < 0xFF80:
		b.writeIO(addr, val)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = val
	default:
		b.ie = val
	}
}

// WritePrivileged bypasses PPU-mode access restrictions; used by DMA/HDMA.
func (b *Bus) WritePrivileged(addr uint16, val uint8) {
	switch {
	case addr < 0x8000:
		b.Cart.MBC.Write(addr, val)
	case addr < 0xA000:
		b.vram[b.vbk][addr-0x8000] = val
	case addr < 0xC000:
		b.Cart.MBC.Write(addr, val)
	case addr < 0xD000:
		b.wram[0][addr-0xC000] = val
	case addr < 0xE000:
		b.wram[b.wramBank()][addr-0xD000] = val
	case addr < 0xFE00:
		b.WritePrivileged(addr-0x2000, val)
	case addr < 0xFEA0:
		b.oam[addr-0xFE00] = val
	case addr < 0xFF00:
	case addr < 0xFF80:
		b.writeIO(addr, val)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = val
	default:
		b.ie = val
	}
}

func (b *Bus) vramBlocked() bool {
	if !b.lcdOn() {
		return false
	}
	return b.ppuMode() == 3
}

func (b *Bus) oamBlocked() bool {
	if !b.lcdOn() {
		return false
	}
	mode := b.ppuMode()
	return mode == 2 || mode == 3
}

func (b *Bus) lcdOn() bool {
	return b.io[types.LCDC-0xFF00]&0x80 != 0
}

func (b *Bus) ppuMode() uint8 {
	return b.io[types.STAT-0xFF00] & 0x03
}

// SetPPUMode updates STAT's mode bits; called by the PPU, never by the CPU.
func (b *Bus) SetPPUMode(mode uint8) {
	b.io[types.STAT-0xFF00] = b.io[types.STAT-0xFF00]&0xFC | mode&0x03
}

// SetLYCFlag updates STAT bit 2 (LY==LYC).
func (b *Bus) SetLYCFlag(v bool) {
	if v {
		b.io[types.STAT-0xFF00] |= types.Bit2
	} else {
		b.io[types.STAT-0xFF00] &^= types.Bit2
	}
}

// LY/SetLY/LCDC/SCY/SCX/LYC/BGP/OBP0/OBP1/WY/WX are thin accessors the PPU
// uses so it doesn't need to know the I/O file's layout.
func (b *Bus) LY() uint8        { return b.io[types.LY-0xFF00] }
func (b *Bus) SetLY(v uint8)    { b.io[types.LY-0xFF00] = v }
func (b *Bus) LCDC() uint8      { return b.io[types.LCDC-0xFF00] }
func (b *Bus) STAT() uint8      { return b.io[types.STAT-0xFF00] }
func (b *Bus) SCY() uint8       { return b.io[types.SCY-0xFF00] }
func (b *Bus) SCX() uint8       { return b.io[types.SCX-0xFF00] }
func (b *Bus) LYC() uint8       { return b.io[types.LYC-0xFF00] }
func (b *Bus) BGP() uint8       { return b.io[types.BGP-0xFF00] }
func (b *Bus) OBP0() uint8      { return b.io[types.OBP0-0xFF00] }
func (b *Bus) OBP1() uint8      { return b.io[types.OBP1-0xFF00] }
func (b *Bus) WY() uint8        { return b.io[types.WY-0xFF00] }
func (b *Bus) WX() uint8        { return b.io[types.WX-0xFF00] }
func (b *Bus) OPRI() uint8      { return b.io[types.OPRI-0xFF00] }
func (b *Bus) VBK() uint8       { return b.vbk }
func (b *Bus) OAMBytes() []byte { return b.oam[:] }

// VRAMByte reads a VRAM byte bypassing mode restrictions, for a specific
// bank (0 or 1), used by the PPU's own rendering pipeline.
func (b *Bus) VRAMByte(bank int, addr uint16) uint8 { return b.vram[bank][addr-0x8000] }

// paletteRAM backs BCPS/BCPD (bgPalette) and OCPS/OCPD (objPalette); stored
// inline here since it's only ever touched through those four registers.
type paletteRAM struct {
	data [64]byte
	idx  uint8
	auto bool
}

func (p *paletteRAM) read() uint8 { return p.data[p.idx] }
func (p *paletteRAM) write(v uint8) {
	p.data[p.idx] = v
	if p.auto {
		p.idx = (p.idx + 1) & 0x3F
	}
}
func (p *paletteRAM) writeSpec(v uint8) {
	p.idx = v & 0x3F
	p.auto = v&0x80 != 0
}
func (p *paletteRAM) readSpec() uint8 {
	v := p.idx | 0x40
	if p.auto {
		v |= 0x80
	}
	return v
}
