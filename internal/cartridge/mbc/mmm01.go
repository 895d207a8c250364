package mbc

import "github.com/coldiron/gbcore/internal/types"

// MMM01 is a multi-game mapper: before unlock, bank 0 is fixed to the last
// ROM bank (the menu program) and ROMX to bank 1, regardless of bank-select
// writes. Unlocking is simplified to one rule: any ROM-bank-select write
// with bit 6 set unlocks the mapper permanently. After unlock it maps banks
// as an MBC1 does, counted from the start of the ROM; there is no per-game
// base offset register, so bank numbers are never shifted to a selected
// game's region.
type MMM01 struct {
	rom []byte
	ram []byte

	unlocked bool

	ramg    bool
	bank1   uint8
	bank2   uint8
	mode    bool

	romBanks int
}

// NewMMM01 returns an MMM01 mapper.
func NewMMM01(rom []byte, ramSize int) *MMM01 {
	return &MMM01{rom: rom, ram: make([]byte, ramSize), bank1: 1, romBanks: len(rom) / 0x4000}
}

func (m *MMM01) rom0Bank() int {
	if !m.unlocked {
		return clampBank(m.romBanks-1, m.romBanks)
	}
	if m.mode {
		return clampBank(int(m.bank2)<<5, m.romBanks)
	}
	return 0
}

func (m *MMM01) romxBank() int {
	if !m.unlocked {
		return clampBank(int(m.bank1), m.romBanks)
	}
	return clampBank(int(m.bank2)<<5|int(m.bank1), m.romBanks)
}

func (m *MMM01) Read(addr uint16) uint8 {
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
		bank := 0
		if m.mode {
			bank = int(m.bank2 & 0x03)
		}
		off := bank*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *MMM01) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
	case addr < 0x4000:
		if !m.unlocked {
			if val&0x40 != 0 {
				m.unlocked = true
			}
			return
		}
		bank := val & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.bank1 = bank
	case addr < 0x6000:
		if m.unlocked {
			m.bank2 = val & 0x03
		}
	case addr < 0x8000:
		if m.unlocked {
			m.mode = val&0x01 != 0
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.ramg && len(m.ram) > 0 {
			bank := 0
			if m.mode {
				bank = int(m.bank2 & 0x03)
			}
			off := bank*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				m.ram[off] = val
			}
		}
	}
}

func (m *MMM01) SRAM() []byte         { return m.ram }
func (m *MMM01) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*MMM01)(nil)
var _ SRAMBacked = (*MMM01)(nil)

func (m *MMM01) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.unlocked)
	s.WriteBool(m.ramg)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
}

func (m *MMM01) Load(s *types.State) {
	s.ReadData(m.ram)
	m.unlocked = s.ReadBool()
	m.ramg = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
}
