package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC2 selects its 4-bit ROM bank via address bit 8 of the write, and
// carries a 512x4-bit internal RAM array whose upper nibble always reads
// back as 1s.
type MBC2 struct {
	rom []byte
	ram [512]uint8 // only the low nibble of each byte is meaningful

	ramg     bool
	romBank  uint8
	romBanks int
}

// NewMBC2 returns an MBC2 mapper.
func NewMBC2(rom []byte) *MBC2 {
	return &MBC2{rom: rom, romBank: 1, romBanks: len(rom) / 0x4000}
}

func (m *MBC2) Read(addr uint16) uint8 {
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
		return m.ram[addr&0x1FF] | 0xF0
	}
	return 0xFF
}

func (m *MBC2) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x4000:
		if addr&0x0100 != 0 {
			bank := val & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBank = bank
		} else {
			m.ramg = val&0x0F == 0x0A
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.ramg {
			m.ram[addr&0x1FF] = val & 0x0F
		}
	}
}

func (m *MBC2) SRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram[:])
	return out
}

func (m *MBC2) LoadSRAM(data []byte) {
	n := copy(m.ram[:], data)
	_ = n
}

var _ MBC = (*MBC2)(nil)
var _ SRAMBacked = (*MBC2)(nil)

func (m *MBC2) Save(s *types.State) {
	s.WriteData(m.ram[:])
	s.WriteBool(m.ramg)
	s.Write8(m.romBank)
}

func (m *MBC2) Load(s *types.State) {
	s.ReadData(m.ram[:])
	m.ramg = s.ReadBool()
	m.romBank = s.Read8()
}
