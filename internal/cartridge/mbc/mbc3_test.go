package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRTCCart(t *testing.T) *MBC3 {
	t.Helper()
	return NewMBC3(markedROM(4), 0x2000, true)
}

// selectAndLatch points the 0xA000 window at RTC register reg (written to
// the 0x4000-0x5FFF bank-select latch) and latches the running clock into
// it via the documented 0x00-then-0x01 write pair to 0x6000-0x7FFF.
func selectAndLatch(m *MBC3, reg uint8) {
	m.Write(0x4000, reg)
	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01)
}

func TestMBC3_TickSecondsAdvancesTheSecondsRegister(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A) // RAMG enable, needed to read back through 0xA000

	m.TickSeconds(37)
	selectAndLatch(m, 0x08)
	assert.Equal(t, uint8(37), m.Read(0xA000), "37 ticked seconds should read back as 37")
}

func TestMBC3_SecondsDriftOverNHostSecondsIsNModulo60(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A)

	const n = 185 // 3 minutes and 5 seconds
	m.TickSeconds(n)
	selectAndLatch(m, 0x08)
	assert.Equal(t, uint8(n%60), m.Read(0xA000), "seconds register tracks N mod 60 after N host seconds")
}

func TestMBC3_SecondsRolloverCarriesIntoMinutesAndHours(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A)

	m.TickSeconds(3661) // 1h 1m 1s
	selectAndLatch(m, 0x08)
	assert.Equal(t, uint8(1), m.Read(0xA000), "seconds")
	selectAndLatch(m, 0x09)
	assert.Equal(t, uint8(1), m.Read(0xA000), "minutes")
	selectAndLatch(m, 0x0A)
	assert.Equal(t, uint8(1), m.Read(0xA000), "hours")
}

func TestMBC3_HaltStopsTheClock(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A)

	m.Write(0x4000, 0x0C) // select the day-high/halt/carry register
	m.Write(0xA000, 0x40) // bit6 = halt
	assert.True(t, m.rtc.halt)

	m.TickSeconds(120)
	selectAndLatch(m, 0x08)
	assert.Equal(t, uint8(0), m.Read(0xA000), "seconds must not advance while halted")
}

func TestMBC3_DaysOverflowSetsCarryFlag(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A)

	const secondsPerDay = 24 * 60 * 60
	m.TickSeconds(uint64(secondsPerDay) * 512) // wraps days past 0x1FF
	selectAndLatch(m, 0x0C)
	assert.NotEqual(t, uint8(0), m.Read(0xA000)&0x80, "day counter overflow sets the carry bit")
}

func TestMBC3_LatchRequiresTheZeroThenOneWritePair(t *testing.T) {
	m := newRTCCart(t)
	m.Write(0x0000, 0x0A)

	m.TickSeconds(10)
	m.Write(0x4000, 0x08) // select seconds register
	m.Write(0x6000, 0x01) // no preceding 0x00: must not latch
	assert.NotEqual(t, uint8(10), m.Read(0xA000), "a bare 0x01 write with no armed 0x00 must not latch")

	m.Write(0x6000, 0x00)
	m.Write(0x6000, 0x01)
	assert.Equal(t, uint8(10), m.Read(0xA000), "the documented 0x00-then-0x01 pair latches the running clock")
}

func TestMBC3_SRAMRoundTripsThroughAllFourBanks(t *testing.T) {
	m := NewMBC3(markedROM(4), 4*0x2000, false)
	m.Write(0x0000, 0x0A) // RAMG enable

	for bank := uint8(0); bank < 4; bank++ {
		m.Write(0x4000, bank)
		m.Write(0xA000, 0x10+bank)
	}
	for bank := uint8(0); bank < 4; bank++ {
		m.Write(0x4000, bank)
		assert.Equal(t, 0x10+bank, m.Read(0xA000), "bank %d must retain the byte written to it", bank)
	}

	saved := append([]byte(nil), m.SRAM()...)
	reloaded := NewMBC3(markedROM(4), 4*0x2000, false)
	reloaded.LoadSRAM(saved)
	reloaded.Write(0x0000, 0x0A)
	for bank := uint8(0); bank < 4; bank++ {
		reloaded.Write(0x4000, bank)
		assert.Equal(t, 0x10+bank, reloaded.Read(0xA000), "SRAM round-trips through SRAM()/LoadSRAM() for bank %d", bank)
	}
}

func TestMBC3_RTCBytesRoundTripTheRunningClock(t *testing.T) {
	m := newRTCCart(t)
	m.TickSeconds(3661)

	saved := m.RTCBytes()
	reloaded := NewMBC3(markedROM(4), 0x2000, true)
	reloaded.LoadRTCBytes(saved)

	assert.Equal(t, m.rtc, reloaded.rtc, "RTCBytes/LoadRTCBytes must round-trip every register exactly")
}
