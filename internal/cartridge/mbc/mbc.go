// Package mbc implements the per-cartridge memory bank controller variants:
// the sum type over MBC kinds the design notes call for, dispatched
// uniformly by the cartridge package through the MBC interface rather than
// through per-variant function-pointer tables.
package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC is implemented by every mapper variant. Read/Write cover the full
// cartridge-owned address space: 0x0000-0x7FFF (ROM, bank-switched) and
// 0xA000-0xBFFF (SRAM/RTC/EEPROM, if present).
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	types.Stater
}

// SRAMBacked is implemented by variants with battery-backed external RAM,
// so the cartridge package can persist/restore it independently of the
// save-state format.
type SRAMBacked interface {
	SRAM() []byte
	LoadSRAM(data []byte)
}

// RealTimeClock is implemented by MBC3 and HuC3, which carry a battery RTC
// alongside SRAM.
type RealTimeClock interface {
	TickSeconds(n uint64)
	RTCBytes() []byte
	LoadRTCBytes(data []byte)
}

// Accelerometer is implemented by MBC7.
type Accelerometer interface {
	SetAxes(x, y float32)
}

// clampBank masks an oversized bank index down to the number of banks that
// physically exist, per the invariant that romx_bank always selects a real
// bank.
func clampBank(bank, count int) int {
	if count == 0 {
		return 0
	}
	return bank % count
}
