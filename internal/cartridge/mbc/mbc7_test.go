package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	eepromCS  = 0x02
	eepromCLK = 0x04
	eepromDI  = 0x01
)

// eepromClockBit drives one rising CLK edge with di held at bit, CS held
// high throughout, mirroring the 93C46 serial protocol's bit-banged timing.
func eepromClockBit(m *MBC7, bit uint8) {
	m.Write(0xA080, eepromCS|bit)
	m.Write(0xA080, eepromCS|eepromCLK|bit)
}

// eepromReadBit clocks one bit out of the chip's DO line without driving DI.
func eepromReadBit(m *MBC7) uint8 {
	m.Write(0xA080, eepromCS)
	m.Write(0xA080, eepromCS|eepromCLK)
	return m.Read(0xA080) & 0x01
}

func eepromDeselect(m *MBC7) {
	m.Write(0xA080, 0x00)
}

func eepromSendBits(m *MBC7, val uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		eepromClockBit(m, uint8((val>>uint(i))&1))
	}
}

func eepromEnableWrites(m *MBC7) {
	eepromDeselect(m)
	// start(1) + op(00) + addr(110000): EWEN, enables subsequent writes.
	eepromSendBits(m, 0x130, 9)
	eepromDeselect(m)
}

func eepromWriteWord(m *MBC7, addr uint8, data uint16) {
	eepromDeselect(m)
	// start(1) + op(01=WRITE) + addr(6) + data(16), one continuous frame.
	frame := uint32(1)<<24 | uint32(0b01)<<22 | uint32(addr&0x3F)<<16 | uint32(data)
	eepromSendBits(m, frame, 25)
	eepromDeselect(m)
}

func eepromReadWord(m *MBC7, addr uint8) uint16 {
	eepromDeselect(m)
	// start(1) + op(10=READ) + addr(6); the chip then drives 16 data bits out.
	frame := uint32(1)<<8 | uint32(0b10)<<6 | uint32(addr&0x3F)
	eepromSendBits(m, frame, 9)

	var out uint16
	for i := 0; i < 16; i++ {
		out = out<<1 | uint16(eepromReadBit(m))
	}
	eepromDeselect(m)
	return out
}

func TestMBC7_EEPROMWriteThenReadRoundTripsOverTheSerialProtocol(t *testing.T) {
	m := NewMBC7(markedROM(4))

	eepromEnableWrites(m)
	eepromWriteWord(m, 0x07, 0xBEEF)

	assert.Equal(t, uint16(0xBEEF), m.eeprom.words[0x07], "the serial WRITE command must land in the addressed word")
	assert.Equal(t, uint16(0xBEEF), eepromReadWord(m, 0x07), "a serial READ of the same address must return what was written")
}

func TestMBC7_EEPROMWriteRequiresEWENFirst(t *testing.T) {
	m := NewMBC7(markedROM(4))

	eepromWriteWord(m, 0x03, 0xABCD) // no EWEN: the chip must refuse the write
	assert.Equal(t, uint16(0), m.eeprom.words[0x03], "writes before EWEN must be ignored")
}

func TestMBC7_EEPROMBytesRoundTripThroughSaveLoad(t *testing.T) {
	m := NewMBC7(markedROM(4))
	eepromEnableWrites(m)
	eepromWriteWord(m, 0x00, 0x1234)
	eepromWriteWord(m, 0x7F, 0x5678)

	saved := m.SRAM()
	reloaded := NewMBC7(markedROM(4))
	reloaded.LoadSRAM(saved)

	assert.Equal(t, m.eeprom.words, reloaded.eeprom.words, "SRAM()/LoadSRAM() must round-trip every EEPROM word")
}

func TestMBC7_AccelerometerAxesLatchOnTheDocumentedSequence(t *testing.T) {
	m := NewMBC7(markedROM(4))
	m.SetAxes(1.0, -1.0)

	m.Write(0xA000, 0x55)
	m.Write(0xA000, 0xAA)

	x := uint16(m.Read(0xA020)) | uint16(m.Read(0xA030))<<8
	y := uint16(m.Read(0xA040)) | uint16(m.Read(0xA050))<<8
	assert.Equal(t, uint16(2048+2047), x, "full positive tilt latches to the top of the centred 12-bit range")
	assert.Equal(t, uint16(2048-2047), y, "full negative tilt latches to the bottom of the centred range")
}
