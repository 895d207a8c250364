package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC1 implements the 5-bit ROM-low / 2-bit ROM-high-or-RAM-bank / mode-select
// mapper, including the banks 0x20/0x40/0x60 alias bug: bank1==0 is coerced
// to 1, so a bank2 value that would otherwise select one of those banks
// instead selects the next one up.
type MBC1 struct {
	rom []byte
	ram []byte

	ramg  bool
	bank1 uint8 // 5 bits, 0x2000-0x3FFF
	bank2 uint8 // 2 bits, 0x4000-0x5FFF
	mode  bool  // 0x6000-0x7FFF

	romBanks int
	multicart bool
}

// NewMBC1 returns an MBC1 mapper. Multicart (MBC1M) ROMs are detected by
// a logo heuristic: a 1 MiB ROM in which at least two of its four 256 KiB
// quadrants (the first one included) carry the same logo bytes as the
// cartridge header is treated as a multicart, which shifts bank1 into bits
// 0-3 instead of 0-4 for the composite bank number.
func NewMBC1(rom []byte, ramSize int, logo [48]byte) *MBC1 {
	m := &MBC1{
		rom:      rom,
		ram:      make([]byte, ramSize),
		bank1:    1,
		romBanks: len(rom) / 0x4000,
	}
	m.detectMulticart(logo)
	return m
}

func (m *MBC1) detectMulticart(logo [48]byte) {
	if len(m.rom) != 1024*1024 {
		return
	}
	matches := 0
	for bank := 0; bank < 4; bank++ {
		base := bank * 0x40000
		if base+0x0134 > len(m.rom) {
			continue
		}
		if string(m.rom[base+0x0104:base+0x0134]) == string(logo[:]) {
			matches++
		}
	}
	m.multicart = matches > 1
}

func (m *MBC1) bankShift() uint8 {
	if m.multicart {
		return 4
	}
	return 5
}

func (m *MBC1) lowBank() uint8 {
	if m.multicart {
		return m.bank1 & 0x0F
	}
	return m.bank1
}

func (m *MBC1) romxBank() int {
	bank := int(m.lowBank()) | int(m.bank2)<<int(m.bankShift())
	return clampBank(bank, m.romBanks)
}

// rom0Bank is the bank visible at 0x0000-0x3FFF: fixed at 0 in mode 0, but
// follows bank2 (shifted) in mode 1.
func (m *MBC1) rom0Bank() int {
	if !m.mode {
		return 0
	}
	return clampBank(int(m.bank2)<<int(m.bankShift()), m.romBanks)
}

func (m *MBC1) ramBank() int {
	if !m.mode || len(m.ram) <= 0x2000 {
		return 0
	}
	return int(m.bank2) % max1(len(m.ram)/0x2000)
}

func max1(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		off := m.rom0Bank()*0x4000 + int(addr)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr < 0x8000:
		off := m.romxBank()*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		off := m.ramBank()*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *MBC1) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
	case addr < 0x4000:
		val &= 0x1F
		if val == 0 {
			val = 1
		}
		m.bank1 = val
	case addr < 0x6000:
		m.bank2 = val & 0b11
	case addr < 0x8000:
		m.mode = val&1 == 1
	case addr >= 0xA000 && addr < 0xC000:
		if m.ramg && len(m.ram) > 0 {
			off := m.ramBank()*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				m.ram[off] = val
			}
		}
	}
}

func (m *MBC1) SRAM() []byte        { return m.ram }
func (m *MBC1) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*MBC1)(nil)
var _ SRAMBacked = (*MBC1)(nil)

func (m *MBC1) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
}

func (m *MBC1) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
}
