package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldiron/gbcore/internal/apu"
	"github.com/coldiron/gbcore/internal/cartridge"
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/joypad"
	"github.com/coldiron/gbcore/internal/mmu"
	"github.com/coldiron/gbcore/internal/serial"
	"github.com/coldiron/gbcore/internal/timer"
	"github.com/coldiron/gbcore/internal/types"
)

func testPPU(t *testing.T) (*PPU, *mmu.Bus, *interrupts.Controller) {
	t.Helper()
	rom := make([]byte, 0x8000)
	rom[0x0148] = 0x00
	var x uint8
	for a := 0x0134; a <= 0x014C; a++ {
		x = x - rom[a] - 1
	}
	rom[0x014D] = x

	cart, cerr := cartridge.New(rom)
	require.Nil(t, cerr)

	irq := interrupts.NewController()
	irq.Enable = 1 << interrupts.VBlank
	bus := mmu.New(cart, false, irq, timer.New(irq), joypad.New(irq), serial.New(irq), apu.New())
	bus.Write(uint16(types.LCDC), 0x91) // LCD on, BG on

	return New(bus, irq, false), bus, irq
}

func TestVBlank_IRQAndSwapLagTheModeTransitionByFourDots(t *testing.T) {
	p, _, irq := testPPU(t)

	const cyclesPerLine = 80 + 172 + 204
	for i := 0; i < cyclesPerLine*144; i++ {
		p.Tick()
	}
	require.Equal(t, modeVBlank, p.mode, "mode flips to VBlank immediately on the LY=144 transition")
	assert.False(t, irq.HasPending(), "the VBlank IRQ has not been requested yet at dot 0")
	assert.False(t, p.HasFrame(), "the frontbuffer swap has not happened yet at dot 0")

	for i := 0; i < 3; i++ {
		p.Tick()
	}
	assert.False(t, irq.HasPending(), "still not requested before dot 4")
	assert.False(t, p.HasFrame())

	p.Tick()
	assert.True(t, irq.HasPending(), "VBlank IRQ requested at dot 4 of line 144")
	assert.True(t, p.HasFrame(), "frontbuffer swap happens at the same dot 4 instant")
}

func TestSTATMode1_SetsImmediatelyOnLY144EvenBeforeTheIRQLags(t *testing.T) {
	p, bus, _ := testPPU(t)
	bus.Write(0xFF41, 0x10) // enable the mode-1 STAT interrupt source

	const cyclesPerLine = 80 + 172 + 204
	for i := 0; i < cyclesPerLine*144; i++ {
		p.Tick()
	}
	assert.Equal(t, uint8(1), bus.STAT()&0x03, "STAT mode bits read back as VBlank (1) right at the transition")
}
