package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC6 splits the ROMX window into two independently-banked 0x2000 halves
// (0x4000-0x5FFF and 0x6000-0x7FFF), each with its own flash/bank register
// pair. Only the ROM-bank-select subset exercised by licensed MBC6 titles
// (Net de Get: Minigame @ 100) is modelled; flash-write programming is not.
type MBC6 struct {
	rom []byte
	ram []byte

	ramgA, ramgB   bool
	bankA, bankB   uint8
	romBanks       int
}

// NewMBC6 returns an MBC6 mapper.
func NewMBC6(rom []byte, ramSize int) *MBC6 {
	return &MBC6{rom: rom, ram: make([]byte, ramSize), bankA: 0, bankB: 1, romBanks: len(rom) / 0x2000}
}

func (m *MBC6) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x6000:
		off := clampBank(int(m.bankA), m.romBanks)*0x2000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr < 0x8000:
		off := clampBank(int(m.bankB), m.romBanks)*0x2000 + int(addr-0x6000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[int(addr-0xA000)%len(m.ram)]
	}
	return 0xFF
}

func (m *MBC6) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x1000:
		m.ramgA = val&0x0F == 0x0A
	case addr < 0x2000:
		m.ramgB = val&0x0F == 0x0A
	case addr < 0x3000:
		m.bankA = val
	case addr < 0x4000:
		m.bankB = val
	case addr >= 0xA000 && addr < 0xC000:
		if (m.ramgA || m.ramgB) && len(m.ram) > 0 {
			m.ram[int(addr-0xA000)%len(m.ram)] = val
		}
	}
}

func (m *MBC6) SRAM() []byte         { return m.ram }
func (m *MBC6) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*MBC6)(nil)
var _ SRAMBacked = (*MBC6)(nil)

func (m *MBC6) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramgA)
	s.WriteBool(m.ramgB)
	s.Write8(m.bankA)
	s.Write8(m.bankB)
}

func (m *MBC6) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramgA = s.ReadBool()
	m.ramgB = s.ReadBool()
	m.bankA = s.Read8()
	m.bankB = s.Read8()
}
