package mbc

import "github.com/coldiron/gbcore/internal/types"

// HuC3 pairs an MBC3-like ROM/RAM mapper with a running RTC and a command
// register used for IR communication and RTC access, selected by writing
// 0x0B-0x0D (rather than MBC3's bank-index scheme) to the RAM-enable latch.
type HuC3 struct {
	rom []byte
	ram []byte

	mode    uint8 // low nibble written to 0x0000-0x1FFF: selects RAM, RTC-read, RTC-write, IR, or semaphore mode
	romBank uint8
	ramBank uint8

	romBanks int

	rtc rtcRegs

	cmdReg  uint8
	cmdArg  uint8
	shiftPos uint8
}

// NewHuC3 returns a HuC3 mapper.
func NewHuC3(rom []byte, ramSize int) *HuC3 {
	return &HuC3{rom: rom, ram: make([]byte, ramSize), romBank: 1, romBanks: len(rom) / 0x4000}
}

// TickSeconds advances the running clock by n seconds.
func (m *HuC3) TickSeconds(n uint64) {
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
	}
}

func (m *HuC3) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x8000:
		off := clampBank(int(m.romBank), m.romBanks)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		switch m.mode {
		case 0x0A:
			if len(m.ram) == 0 {
				return 0xFF
			}
			off := int(m.ramBank)*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				return m.ram[off]
			}
		case 0x0C:
			return m.readCommand()
		case 0x0D:
			return 0x80 // IR receiver idle (no host IR transport wired)
		}
	}
	return 0xFF
}

func (m *HuC3) readCommand() uint8 {
	switch m.cmdReg & 0xF0 {
	case 0x10:
		return uint8(m.rtc.minutes) & 0x0F
	case 0x20:
		return uint8(m.rtc.minutes)>>4&0x03 | uint8(m.rtc.hours)<<2&0x0F
	case 0x30:
		return uint8(m.rtc.days)
	case 0x40:
		return uint8(m.rtc.days >> 8)
	}
	return 0x01
}

func (m *HuC3) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.mode = val & 0x0F
	case addr < 0x4000:
		bank := val & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = val & 0x0F
	case addr >= 0xA000 && addr < 0xC000:
		switch m.mode {
		case 0x0A:
			if len(m.ram) > 0 {
				off := int(m.ramBank)*0x2000 + int(addr-0xA000)
				if off < len(m.ram) {
					m.ram[off] = val
				}
			}
		case 0x0B:
			m.cmdReg = val
		}
	}
}

func (m *HuC3) SRAM() []byte         { return m.ram }
func (m *HuC3) LoadSRAM(data []byte) { copy(m.ram, data) }

// RTCBytes serialises the running registers the same way MBC3 does.
func (m *HuC3) RTCBytes() []byte         { return encodeRTC(m.rtc) }
func (m *HuC3) LoadRTCBytes(data []byte) { m.rtc = decodeRTC(data) }

var _ MBC = (*HuC3)(nil)
var _ SRAMBacked = (*HuC3)(nil)
var _ RealTimeClock = (*HuC3)(nil)

func (m *HuC3) Save(s *types.State) {
	s.WriteData(m.ram)
	s.Write8(m.mode)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.Write8(m.cmdReg)
	s.WriteData(encodeRTC(m.rtc))
}

func (m *HuC3) Load(s *types.State) {
	s.ReadData(m.ram)
	m.mode = s.Read8()
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.cmdReg = s.Read8()
	buf := make([]byte, 20)
	s.ReadData(buf)
	m.rtc = decodeRTC(buf)
}
