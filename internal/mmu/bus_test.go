package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldiron/gbcore/internal/apu"
	"github.com/coldiron/gbcore/internal/cartridge"
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/joypad"
	"github.com/coldiron/gbcore/internal/serial"
	"github.com/coldiron/gbcore/internal/timer"
)

func testBus(t *testing.T) *Bus {
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
	return New(cart, false, irq, timer.New(irq), joypad.New(irq), serial.New(irq), apu.New())
}

func TestEchoRAM_MirrorsWorkRAM(t *testing.T) {
	b := testBus(t)

	b.Write(0xC123, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0xE123), "0xE123 mirrors 0xC123")

	b.Write(0xF000, 0x99)
	assert.Equal(t, uint8(0x99), b.Read(0xD000), "writing through the echo region lands in work RAM too")
}

func TestDMA_BlanksNonHRAMReadsWhileActive(t *testing.T) {
	b := testBus(t)
	b.Write(0xC000, 0x7F)
	b.Write(0xFF80, 0x11) // HRAM

	b.Write(0xFF46, 0xC0) // trigger an OAM DMA source at 0xC000

	assert.Equal(t, uint8(0xFF), b.Read(0xC000), "reads below HRAM return 0xFF while DMA is active")
	assert.Equal(t, uint8(0x11), b.Read(0xFF80), "HRAM stays readable during DMA")
}

func TestHDMA_NaturalCompletionReadsBackAsFF(t *testing.T) {
	b := testBus(t)
	b.Write(0xFF51, 0x00) // HDMA1: source high
	b.Write(0xFF52, 0x00) // HDMA2: source low
	b.Write(0xFF53, 0x80) // HDMA3: dest high (0x8000-region VRAM)
	b.Write(0xFF54, 0x00) // HDMA4: dest low
	b.Write(0xFF55, 0x00) // general-purpose, 1 block

	for i := 0; i < 16; i++ {
		b.TickHDMA()
	}
	assert.Equal(t, uint8(0xFF), b.Read(0xFF55), "a transfer that runs to completion reads back as 0xFF")
}

func TestHDMA_CancellingMidTransferPreservesRemainingLength(t *testing.T) {
	b := testBus(t)
	b.Write(0xFF51, 0x00)
	b.Write(0xFF52, 0x00)
	b.Write(0xFF53, 0x80)
	b.Write(0xFF54, 0x00)
	b.Write(0xFF55, 0x82) // H-blank mode (bit7=1), 3 blocks (0x02+1)

	b.Write(0xFF55, 0x00) // bit7=0 write cancels the still-armed H-blank transfer

	assert.Equal(t, uint8(0x82), b.Read(0xFF55), "cancellation reports bit7=1 with the 3 remaining blocks encoded as 0x02")
}
