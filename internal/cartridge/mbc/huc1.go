package mbc

import "github.com/coldiron/gbcore/internal/types"

// HuC1 is MBC1-like (6-bit ROM bank, 2-bit RAM bank, no mode register) with
// an infrared transceiver exposed through the SRAM window instead of
// battery-backed RAM when IR mode is selected.
type HuC1 struct {
	rom []byte
	ram []byte

	ramg     bool // also gates IR mode: 0x0E enables the IR register, 0x0A enables RAM
	irMode   bool
	irLED    bool
	romBank  uint8
	ramBank  uint8
	romBanks int
}

// NewHuC1 returns a HuC1 mapper.
func NewHuC1(rom []byte, ramSize int) *HuC1 {
	return &HuC1{rom: rom, ram: make([]byte, ramSize), romBank: 1, romBanks: len(rom) / 0x4000}
}

func (m *HuC1) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x8000:
		off := clampBank(int(m.romBank), m.romBanks)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.irMode {
			if m.irLED {
				return 0xC0
			}
			return 0xC1
		}
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *HuC1) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
		m.irMode = val&0x0F == 0x0E
	case addr < 0x4000:
		bank := val & 0x3F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = val & 0x03
	case addr >= 0xA000 && addr < 0xC000:
		if m.irMode {
			m.irLED = val&0x01 != 0
			return
		}
		if m.ramg && len(m.ram) > 0 {
			off := int(m.ramBank)*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				m.ram[off] = val
			}
		}
	}
}

func (m *HuC1) SRAM() []byte         { return m.ram }
func (m *HuC1) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*HuC1)(nil)
var _ SRAMBacked = (*HuC1)(nil)

func (m *HuC1) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.WriteBool(m.irMode)
	s.WriteBool(m.irLED)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
}

func (m *HuC1) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.irMode = s.ReadBool()
	m.irLED = s.ReadBool()
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
}
