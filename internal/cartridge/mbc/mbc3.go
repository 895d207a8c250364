package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC3 implements the 7-bit ROM bank mapper with a 4-bank SRAM window, or
// (for RTC-equipped cartridges) a battery-backed real time clock mapped
// into SRAM bank indices 0x08-0x0C.
type MBC3 struct {
	rom []byte
	ram []byte

	ramg     bool
	romBank  uint8
	ramBank  uint8 // 0x00-0x03 SRAM, 0x08-0x0C RTC register select
	romBanks int

	hasRTC bool
	rtc    rtcRegs
	latch  rtcRegs
	latchArmed bool // saw a 0x00 write, waiting for 0x01 to complete the latch
}

type rtcRegs struct {
	seconds, minutes, hours uint8
	days                    uint16 // 9 bits
	halt                    bool
	carry                   bool
}

// NewMBC3 returns an MBC3 mapper. hasRTC selects whether SRAM bank indices
// 0x08-0x0C map to the RTC register file instead of SRAM.
func NewMBC3(rom []byte, ramSize int, hasRTC bool) *MBC3 {
	return &MBC3{
		rom:      rom,
		ram:      make([]byte, ramSize),
		romBank:  1,
		romBanks: len(rom) / 0x4000,
		hasRTC:   hasRTC,
	}
}

// TickSeconds advances the running clock by n seconds, unless halted.
func (m *MBC3) TickSeconds(n uint64) {
	if !m.hasRTC || m.rtc.halt {
		return
	}
	for ; n > 0; n-- {
		m.rtc.seconds++
		if m.rtc.seconds < 60 {
			continue
		}
		m.rtc.seconds = 0
		m.rtc.minutes++
		if m.rtc.minutes < 60 {
			continue
		}
		m.rtc.minutes = 0
		m.rtc.hours++
		if m.rtc.hours < 24 {
			continue
		}
		m.rtc.hours = 0
		m.rtc.days++
		if m.rtc.days > 0x1FF {
			m.rtc.days = 0
			m.rtc.carry = true
		}
	}
}

func (m *MBC3) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x8000:
		off := clampBank(int(m.romBank), m.romBanks)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramg {
			return 0xFF
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			return m.readRTC(m.latch)
		}
		if len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *MBC3) readRTC(r rtcRegs) uint8 {
	switch m.ramBank {
	case 0x08:
		return r.seconds
	case 0x09:
		return r.minutes
	case 0x0A:
		return r.hours
	case 0x0B:
		return uint8(r.days)
	case 0x0C:
		v := uint8(r.days>>8) & 0x01
		if r.halt {
			v |= types.Bit6
		}
		if r.carry {
			v |= types.Bit7
		}
		return v
	}
	return 0xFF
}

func (m *MBC3) writeRTC(val uint8) {
	switch m.ramBank {
	case 0x08:
		m.rtc.seconds = val % 60
	case 0x09:
		m.rtc.minutes = val % 60
	case 0x0A:
		m.rtc.hours = val % 24
	case 0x0B:
		m.rtc.days = m.rtc.days&0x100 | uint16(val)
	case 0x0C:
		m.rtc.days = m.rtc.days&0xFF | uint16(val&0x01)<<8
		m.rtc.halt = val&types.Bit6 != 0
		m.rtc.carry = val&types.Bit7 != 0
	}
}

func (m *MBC3) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
	case addr < 0x4000:
		bank := val & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = val
	case addr < 0x8000:
		if val == 0x00 {
			m.latchArmed = true
		} else if val == 0x01 && m.latchArmed {
			m.latch = m.rtc
			m.latchArmed = false
		} else {
			m.latchArmed = false
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramg {
			return
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			m.writeRTC(val)
			return
		}
		if len(m.ram) == 0 {
			return
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = val
		}
	}
}

func (m *MBC3) SRAM() []byte         { return m.ram }
func (m *MBC3) LoadSRAM(data []byte) { copy(m.ram, data) }

// RTCBytes serialises the five running registers as little-endian 32-bit
// values, matching the SRAM file format's RTC block layout.
func (m *MBC3) RTCBytes() []byte {
	return encodeRTC(m.rtc)
}

func encodeRTC(r rtcRegs) []byte {
	b := make([]byte, 20)
	put32(b[0:], uint32(r.seconds))
	put32(b[4:], uint32(r.minutes))
	put32(b[8:], uint32(r.hours))
	put32(b[12:], uint32(uint8(r.days)))
	dh := uint32(r.days >> 8 & 1)
	if r.halt {
		dh |= 1 << 6
	}
	if r.carry {
		dh |= 1 << 7
	}
	put32(b[16:], dh)
	return b
}

func (m *MBC3) LoadRTCBytes(data []byte) {
	m.rtc = decodeRTC(data)
	m.latch = m.rtc
}

func decodeRTC(data []byte) rtcRegs {
	if len(data) < 20 {
		return rtcRegs{}
	}
	var r rtcRegs
	r.seconds = uint8(get32(data[0:]))
	r.minutes = uint8(get32(data[4:]))
	r.hours = uint8(get32(data[8:]))
	dl := uint8(get32(data[12:]))
	dh := get32(data[16:])
	r.days = uint16(dh&1)<<8 | uint16(dl)
	r.halt = dh&(1<<6) != 0
	r.carry = dh&(1<<7) != 0
	return r
}

func put32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func get32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

var _ MBC = (*MBC3)(nil)
var _ SRAMBacked = (*MBC3)(nil)
var _ RealTimeClock = (*MBC3)(nil)

func (m *MBC3) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteData(encodeRTC(m.rtc))
	s.WriteBool(m.latchArmed)
	s.WriteData(encodeRTC(m.latch))
}

func (m *MBC3) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	buf := make([]byte, 20)
	s.ReadData(buf)
	m.rtc = decodeRTC(buf)
	m.latchArmed = s.ReadBool()
	s.ReadData(buf)
	m.latch = decodeRTC(buf)
}
