package mbc

import "github.com/coldiron/gbcore/internal/types"

// None is a fixed 32 KiB cartridge with no banking, optionally carrying a
// small fixed SRAM window.
type None struct {
	rom []byte
	ram []byte
}

// NewNone returns a None mapper over rom, with an optional ram window.
func NewNone(rom []byte, ramSize int) *None {
	return &None{rom: rom, ram: make([]byte, ramSize)}
}

func (m *None) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr >= 0xA000 && addr < 0xC000:
		if len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[int(addr-0xA000)%len(m.ram)]
	}
	return 0xFF
}

func (m *None) Write(addr uint16, val uint8) {
	if addr >= 0xA000 && addr < 0xC000 && len(m.ram) > 0 {
		m.ram[int(addr-0xA000)%len(m.ram)] = val
	}
}

func (m *None) SRAM() []byte { return m.ram }

func (m *None) LoadSRAM(data []byte) { copy(m.ram, data) }

var _ MBC = (*None)(nil)
var _ SRAMBacked = (*None)(nil)

func (m *None) Save(s *types.State) { s.WriteData(m.ram) }
func (m *None) Load(s *types.State) { s.ReadData(m.ram) }
