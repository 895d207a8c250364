package mmu

// TickDMA advances the OAM DMA engine by one t-cycle.
func (b *Bus) TickDMA() {
	b.dma.tick(
		func(addr uint16) uint8 { return b.ReadPrivileged(addr) },
		func(i int, v uint8) { b.oam[i] = v },
	)
}

// TickHDMA advances an active general-purpose HDMA transfer by one t-cycle.
// Returns true while the CPU should remain stalled.
func (b *Bus) TickHDMA() bool {
	return b.hdma.tickGeneral(b.DoubleSpeed, func(src, dst uint16) {
		for i := uint16(0); i < hdmaChunkBytes; i++ {
			b.WritePrivileged(dst+i, b.ReadPrivileged(src+i))
		}
	})
}

// OnHBlankStart services an armed H-blank HDMA transfer; called by the PPU
// exactly once per scanline's HBlank entry.
func (b *Bus) OnHBlankStart() {
	b.hdma.onHBlankStart(func(src, dst uint16) {
		for i := uint16(0); i < hdmaChunkBytes; i++ {
			b.WritePrivileged(dst+i, b.ReadPrivileged(src+i))
		}
	})
}

// Busy reports whether the CPU must be held (OAM DMA blanks its reads; an
// active general-purpose HDMA stalls it outright).
func (b *Bus) Busy() bool {
	return b.hdma.active && !b.hdma.hblankMode
}

// TriggerSpeedSwitch toggles double-speed mode if KEY1's arm bit was set,
// reporting whether a switch happened. Called by the CPU's STOP handler:
// STOP with an armed switch performs the switch and resumes immediately;
// STOP without one actually stops the CPU until a joypad line wakes it.
func (b *Bus) TriggerSpeedSwitch() bool {
	if !b.speedPrepare {
		return false
	}
	b.DoubleSpeed = !b.DoubleSpeed
	b.speedPrepare = false
	return true
}
