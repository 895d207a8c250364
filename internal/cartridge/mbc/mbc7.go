package mbc

import "github.com/coldiron/gbcore/internal/types"

// MBC7 pairs a 2-axis accelerometer with a 128x16-bit serial EEPROM (93C46
// protocol), both exposed through the 0xA000-0xA0FF window.
type MBC7 struct {
	rom []byte

	ramg     bool
	romBank  uint8
	romBanks int

	accelX, accelY         int16 // raw centred 12-bit range, host-supplied
	latchedX, latchedY     uint16
	latchStage             uint8 // 0=idle, 1=saw 0x55

	eeprom eeprom
}

// NewMBC7 returns an MBC7 mapper.
func NewMBC7(rom []byte) *MBC7 {
	return &MBC7{rom: rom, romBank: 1, romBanks: len(rom) / 0x4000, accelX: 0x8000 >> 4, accelY: 0x8000 >> 4}
}

// SetAxes stores the host-supplied tilt in [-1.0, 1.0], converted to the
// 12-bit centred range the game reads back after a latch.
func (m *MBC7) SetAxes(x, y float32) {
	m.accelX = int16(2048 + clampF(x)*2047)
	m.accelY = int16(2048 + clampF(y)*2047)
}

func clampF(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (m *MBC7) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return m.rom[addr]
	case addr < 0x8000:
		off := clampBank(int(m.romBank), m.romBanks)*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		return m.readRegister(addr)
	}
	return 0xFF
}

func (m *MBC7) readRegister(addr uint16) uint8 {
	switch addr & 0xF0 {
	case 0x20:
		return uint8(m.latchedX)
	case 0x30:
		return uint8(m.latchedX >> 8)
	case 0x40:
		return uint8(m.latchedY)
	case 0x50:
		return uint8(m.latchedY >> 8)
	case 0x80:
		return m.eeprom.readPins()
	}
	return 0xFF
}

func (m *MBC7) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ramg = val&0x0F == 0x0A
	case addr < 0x4000:
		bank := val & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr >= 0xA000 && addr < 0xC000:
		m.writeRegister(addr, val)
	}
}

func (m *MBC7) writeRegister(addr uint16, val uint8) {
	switch addr & 0xF0 {
	case 0x00:
		// latch sequence: 0x55 then 0xAA written to the 0xA000-0xA00F
		// window arms and completes the accelerometer latch.
		if val == 0x55 {
			m.latchStage = 1
		} else if val == 0xAA && m.latchStage == 1 {
			m.latchedX = uint16(m.accelX)
			m.latchedY = uint16(m.accelY)
			m.latchStage = 0
		} else {
			m.latchStage = 0
		}
	case 0x80:
		m.eeprom.writePins(val)
	}
}

// eeprom models the 93C46-style bit-serial store: a start bit, 2-bit
// opcode, 6-bit address, and (for WRITE) 16 bits of data, clocked MSB-first
// on CLK's rising edge while CS is held high.
type eeprom struct {
	words [128]uint16

	cs, clk, di, do bool
	prevClk         bool

	shiftIn  uint32 // must hold the full 25-bit start+opcode+address+data frame
	bitCount uint8

	writeEnabled bool

	outBits  uint16
	outCount uint8
	outputting bool
}

const (
	opWrite = 0b01
	opRead  = 0b10
	opErase = 0b11
)

func (e *eeprom) readPins() uint8 {
	v := uint8(0)
	if e.do {
		v |= types.Bit0
	}
	return v
}

func (e *eeprom) writePins(val uint8) {
	cs := val&types.Bit1 != 0
	clk := val&types.Bit2 != 0
	di := val&types.Bit0 != 0

	if !cs {
		e.cs = false
		e.bitCount = 0
		e.outputting = false
		e.prevClk = clk
		return
	}

	risingEdge := clk && !e.prevClk
	e.prevClk = clk
	e.cs = cs
	e.di = di

	if !risingEdge {
		return
	}

	if e.outputting {
		e.do = e.outBits&(1<<15) != 0
		e.outBits <<= 1
		e.outCount++
		if e.outCount >= 16 {
			e.outputting = false
		}
		return
	}

	e.shiftIn = e.shiftIn<<1 | b2u32(di)
	e.bitCount++

	// start bit (1) + 2-bit opcode + 6-bit address = 9 bits before we know
	// whether a data phase follows.
	if e.bitCount == 9 {
		e.handleCommand()
	} else if e.bitCount == 25 {
		e.handleWriteData()
	}
}

func (e *eeprom) handleCommand() uint8 {
	op := uint8(e.shiftIn>>6) & 0b11
	addr := uint8(e.shiftIn) & 0x3F

	switch op {
	case opRead:
		e.outBits = e.words[addr]
		e.outputting = true
		e.outCount = 0
		e.bitCount = 0
	case opErase:
		if e.writeEnabled {
			e.words[addr] = 0xFFFF
		}
		e.bitCount = 0
	case opWrite:
		// wait for the 16-bit data phase
	default: // 0b00 - EWEN/EWDS/ERAL/WRAL by address sub-bits
		switch addr >> 4 {
		case 0b11:
			e.writeEnabled = true
		case 0b00:
			e.writeEnabled = false
		case 0b10:
			if e.writeEnabled {
				for i := range e.words {
					e.words[i] = 0xFFFF
				}
			}
		}
		e.bitCount = 0
	}
	return op
}

func (e *eeprom) handleWriteData() {
	op := uint8(e.shiftIn>>22) & 0b11
	addr := uint8(e.shiftIn>>16) & 0x3F
	data := uint16(e.shiftIn)
	if op == opWrite && e.writeEnabled {
		e.words[addr] = data
	}
	e.bitCount = 0
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (m *MBC7) eepromBytes() []byte {
	out := make([]byte, 256)
	for i, w := range m.eeprom.words {
		out[i*2] = byte(w)
		out[i*2+1] = byte(w >> 8)
	}
	return out
}

func (m *MBC7) loadEEPROM(data []byte) {
	for i := 0; i < 128 && i*2+1 < len(data); i++ {
		m.eeprom.words[i] = uint16(data[i*2]) | uint16(data[i*2+1])<<8
	}
}

func (m *MBC7) SRAM() []byte         { return m.eepromBytes() }
func (m *MBC7) LoadSRAM(data []byte) { m.loadEEPROM(data) }

var _ MBC = (*MBC7)(nil)
var _ SRAMBacked = (*MBC7)(nil)
var _ Accelerometer = (*MBC7)(nil)

func (m *MBC7) Save(s *types.State) {
	s.WriteData(m.eepromBytes())
	s.WriteBool(m.ramg)
	s.Write8(m.romBank)
	s.Write16(m.latchedX)
	s.Write16(m.latchedY)
}

func (m *MBC7) Load(s *types.State) {
	buf := make([]byte, 256)
	s.ReadData(buf)
	m.loadEEPROM(buf)
	m.ramg = s.ReadBool()
	m.romBank = s.Read8()
	m.latchedX = s.Read16()
	m.latchedY = s.Read16()
}
