package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC5 implements the 9-bit ROM bank (split across two registers), 4-bit
// SRAM bank mapper used by the majority of late-era cartridges, optionally
// carrying a rumble motor wired to RAM bank bit 3.
type MBC5 struct {
	rom []byte
	ram []byte

	ramg     bool
	romBankLo uint8
	romBankHi uint8
	ramBank   uint8
	romBanks  int
	rumble    bool

	rumbleActive bool
}

// NewMBC5 returns an MBC5 mapper. rumble enables treating RAM bank bit 3 as
// the rumble motor control instead of part of the bank number.
func NewMBC5(rom []byte, ramSize int, rumble bool) *MBC5 {
	return &MBC5{rom: rom, ram: make([]byte, ramSize), romBankLo: 1, romBanks: len(rom) / 0x4000, rumble: rumble}
}

func (m *MBC5) romBank() int {
	return clampBank(int(m.romBankHi)<<8|int(m.romBankLo), m.romBanks)
}

func (m *MBC5) ramBankIndex() uint8 {
	if m.rumble {
		return m.ramBank & 0x07
	}
	return m.ramBank & 0x0F
}

func (m *MBC5) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x8000:
		off := m.romBank()*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBankIndex())*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *MBC5) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
	case addr < 0x3000:
		m.romBankLo = val
	case addr < 0x4000:
		m.romBankHi = val & 0x01
	case addr < 0x6000:
		m.ramBank = val & 0x0F
		if m.rumble {
			m.rumbleActive = val&0x08 != 0
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.ramg && len(m.ram) > 0 {
			off := int(m.ramBankIndex())*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				m.ram[off] = val
			}
		}
	}
}

// RumbleActive reports whether the rumble motor bit is currently set; a
// host presenter would use this to drive haptics, which is outside the
// core's scope.
func (m *MBC5) RumbleActive() bool { return m.rumbleActive }

func (m *MBC5) SRAM() []byte         { return m.ram }
func (m *MBC5) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*MBC5)(nil)
var _ SRAMBacked = (*MBC5)(nil)

func (m *MBC5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.romBankLo)
	s.Write8(m.romBankHi)
	s.Write8(m.ramBank)
	s.WriteBool(m.rumbleActive)
}

func (m *MBC5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.romBankLo = s.Read8()
	m.romBankHi = s.Read8()
	m.ramBank = s.Read8()
	m.rumbleActive = s.ReadBool()
}
