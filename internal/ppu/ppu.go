// Package ppu renders the 160x144 framebuffer: background, window and
// sprite line composition, STAT/LYC interrupt generation, and the mode-0/1/
// 2/3 dot-timed state machine driving OAM DMA blocking and H-blank HDMA.
package ppu

import (
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/mmu"
	"github.com/coldiron/gbcore/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

const (
	modeHBlank uint8 = iota
	modeVBlank
	modeOAM
	modeVRAM
)

// Colour is a resolved RGB triple ready for host presentation.
type Colour struct{ R, G, B uint8 }

// PPU owns the scanline renderer and its two framebuffers; Bus owns the
// actual VRAM/OAM/palette storage the PPU reads through.
type PPU struct {
	Bus *mmu.Bus
	IRQ *interrupts.Controller
	CGB bool

	dot  uint16
	mode uint8

	windowLine uint8
	statLine   bool // tracks the STAT-interrupt line for edge-triggering

	// vblankPending defers the VBlank IRQ request and frontbuffer swap to
	// dot 4 of line 144, matching documented timing: STAT's mode bits flip
	// to VBlank immediately at the LY=144 transition, but the IF bit 0
	// assertion (and the swap visible to that instant) lag it by 4 dots.
	vblankPending bool

	front, back [ScreenHeight][ScreenWidth]Colour
	frameReady  bool
}

// New returns a PPU driven by bus/irq. cgb selects CGB palette resolution.
func New(bus *mmu.Bus, irq *interrupts.Controller, cgb bool) *PPU {
	return &PPU{Bus: bus, IRQ: irq, CGB: cgb, mode: modeOAM}
}

// hblankCycles mirrors real hardware's SCX-dependent mode-3 length: the
// background fetcher stalls for (SCX mod 8) extra dots before its first
// tile, rounded up here to a whole m-cycle (0, 4 or 8 dots), lengthening
// mode 3 and shortening mode 0 by that amount so a line stays 456 dots.
var hblankCycles = [8]uint16{204, 200, 200, 200, 200, 196, 196, 196}

// Tick advances the PPU by one t-cycle. Call once per t-cycle the CPU (or
// DMA/HDMA stall) consumed, exactly like Timer.Tick.
func (p *PPU) Tick() {
	if p.Bus.LCDC()&0x80 == 0 {
		return
	}

	p.dot++

	switch p.mode {
	case modeOAM:
		if p.dot == 80 {
			p.dot = 0
			p.setMode(modeVRAM)
		}
	case modeVRAM:
		if p.dot == 172+(204-hblankCycles[p.Bus.SCX()&0x07]) {
			p.dot = 0
			p.setMode(modeHBlank)
			p.renderScanline()
			p.Bus.OnHBlankStart()
		}
	case modeHBlank:
		if p.dot == hblankCycles[p.Bus.SCX()&0x07] {
			p.dot = 0
			ly := p.Bus.LY() + 1
			p.Bus.SetLY(ly)
			p.checkLYC()
			if ly == 144 {
				p.setMode(modeVBlank)
				p.vblankPending = true
			} else {
				p.setMode(modeOAM)
			}
		}
	case modeVBlank:
		if p.vblankPending && p.dot == 4 {
			p.IRQ.Request(interrupts.VBlank)
			p.swapFrame()
			p.vblankPending = false
		}
		if p.dot == 456 {
			p.dot = 0
			ly := p.Bus.LY() + 1
			if ly > 153 {
				ly = 0
				p.windowLine = 0
			}
			p.Bus.SetLY(ly)
			p.checkLYC()
			if ly == 0 {
				p.setMode(modeOAM)
			}
		}
	}
}

func (p *PPU) setMode(m uint8) {
	p.mode = m
	p.Bus.SetPPUMode(m)
	p.checkStatInterrupt()
}

func (p *PPU) checkLYC() {
	match := p.Bus.LY() == p.Bus.LYC()
	p.Bus.SetLYCFlag(match)
	p.checkStatInterrupt()
}

// checkStatInterrupt requests LCDStat on the rising edge of the OR of its
// four enabled sources, matching the documented STAT-IRQ "glitch" behaviour.
func (p *PPU) checkStatInterrupt() {
	stat := p.Bus.STAT()
	line := stat&0x40 != 0 && stat&0x04 != 0 || // LYC=LY
		stat&0x08 != 0 && p.mode == modeHBlank ||
		stat&0x10 != 0 && p.mode == modeVBlank ||
		stat&0x20 != 0 && p.mode == modeOAM

	if line && !p.statLine {
		p.IRQ.Request(interrupts.LCDStat)
	}
	p.statLine = line
}

// swapFrame publishes the just-completed back buffer as the front buffer.
func (p *PPU) swapFrame() {
	p.front = p.back
	p.frameReady = true
}

// HasFrame reports whether a new frame is ready since the last Framebuffer
// call cleared the flag.
func (p *PPU) HasFrame() bool { return p.frameReady }

// Framebuffer returns the most recently completed frame and clears the
// ready flag.
func (p *PPU) Framebuffer() *[ScreenHeight][ScreenWidth]Colour {
	p.frameReady = false
	return &p.front
}

func (p *PPU) Save(s *types.State) {
	s.Write16(p.dot)
	s.Write8(p.mode)
	s.Write8(p.windowLine)
	s.WriteBool(p.statLine)
	s.WriteBool(p.vblankPending)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			s.Write8(p.back[y][x].R)
			s.Write8(p.back[y][x].G)
			s.Write8(p.back[y][x].B)
		}
	}
}

func (p *PPU) Load(s *types.State) {
	p.dot = s.Read16()
	p.mode = s.Read8()
	p.windowLine = s.Read8()
	p.statLine = s.ReadBool()
	p.vblankPending = s.ReadBool()
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.back[y][x] = Colour{R: s.Read8(), G: s.Read8(), B: s.Read8()}
		}
	}
}

var _ types.Stater = (*PPU)(nil)
