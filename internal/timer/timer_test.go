package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldiron/gbcore/internal/interrupts"
)

func TestTick_IncrementsTIMAOnSelectedFallingEdge(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.WriteDIV()        // div = 0
	c.WriteTAC(0x05)    // enabled, rate select 01 -> bit 3

	for i := 0; i < 16; i++ {
		c.Tick()
	}
	assert.Equal(t, uint8(1), c.ReadTIMA(), "bit 3 should have risen and fallen once in 16 t-cycles")
}

func TestTIMAOverflow_DelaysReloadAndRequestsIRQ(t *testing.T) {
	irq := interrupts.NewController()
	irq.Enable = 1 << interrupts.Timer
	c := New(irq)
	c.WriteDIV()
	c.WriteTAC(0x05)
	c.WriteTMA(0x42)
	c.WriteTIMA(0xFF)

	for i := 0; i < 16; i++ { // bit 3 first falls on the 16th tick, overflowing TIMA
		c.Tick()
	}
	require.Equal(t, uint8(0x00), c.ReadTIMA(), "TIMA holds at 0x00 during the reload delay")
	assert.False(t, irq.HasPending(), "IRQ not yet requested mid-delay")

	for i := 0; i < 4; i++ {
		c.Tick()
	}
	assert.Equal(t, uint8(0x42), c.ReadTIMA(), "TIMA reloads from TMA after the 4-cycle delay")
	assert.True(t, irq.HasPending(), "Timer IRQ requested once the reload completes")
}

func TestWriteTIMADuringDelay_CancelsReload(t *testing.T) {
	irq := interrupts.NewController()
	irq.Enable = 1 << interrupts.Timer
	c := New(irq)
	c.WriteDIV()
	c.WriteTAC(0x05)
	c.WriteTMA(0x42)
	c.WriteTIMA(0xFF)

	for i := 0; i < 16; i++ { // bit 3 first falls on the 16th tick, overflowing TIMA
		c.Tick()
	}
	c.WriteTIMA(0x10)

	for i := 0; i < 4; i++ {
		c.Tick()
	}
	assert.Equal(t, uint8(0x10), c.ReadTIMA(), "a write during the delay cancels the pending TMA reload")
	assert.False(t, irq.HasPending(), "cancelled reload never requests the IRQ")
}

func TestWriteTAC_DisablingOnHighBitSpuriouslyIncrements(t *testing.T) {
	irq := interrupts.NewController()
	c := New(irq)
	c.WriteDIV()
	c.WriteTAC(0x05) // enabled, bit 3
	for i := 0; i < 8; i++ {
		c.Tick()
	}
	require.True(t, c.divBitHigh(), "bit 3 should be high after 8 ticks from a zeroed divider")

	c.WriteTAC(0x00) // disable while the selected bit is high
	assert.Equal(t, uint8(1), c.ReadTIMA(), "disabling mid-high-bit causes one spurious TIMA increment")
}
