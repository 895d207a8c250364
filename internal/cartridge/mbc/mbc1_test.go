package mbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// markedROM returns a ROM with banks banks, each 0x4000 bytes, whose first
// byte identifies the bank index, so ROMX reads can be checked by value.
func markedROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = uint8(b)
	}
	return rom
}

func TestMBC1_Bank0WriteAliasesToBank1(t *testing.T) {
	m := NewMBC1(markedROM(128), 0, [48]byte{})

	m.Write(0x2000, 0x00) // bank1 register write of 0 is coerced to 1
	assert.Equal(t, uint8(1), m.Read(0x4000), "a bank1 write of 0 must never select bank 0 at ROMX")
}

func TestMBC1_Bank1SelectsTheWrittenBank(t *testing.T) {
	m := NewMBC1(markedROM(128), 0, [48]byte{})

	m.Write(0x2000, 0x05)
	assert.Equal(t, uint8(5), m.Read(0x4000))
}

func TestMBC1_Mode0KeepsROM0FixedAtBank0RegardlessOfBank2(t *testing.T) {
	m := NewMBC1(markedROM(128), 0, [48]byte{})

	m.Write(0x6000, 0x00) // mode 0
	m.Write(0x4000, 0x01) // bank2 = 1 (would select bank 0x20 in mode 1)
	assert.Equal(t, uint8(0), m.Read(0x0000), "ROM0 stays at bank 0 in mode 0 no matter what bank2 holds")
}

func TestMBC1_Mode1LetsBank2SelectROM0(t *testing.T) {
	m := NewMBC1(markedROM(128), 0, [48]byte{})

	m.Write(0x6000, 0x01) // mode 1
	m.Write(0x4000, 0x01) // bank2 = 1 -> ROM0 bank 0x20
	assert.Equal(t, uint8(0x20), m.Read(0x0000), "mode 1 lets bank2 page the ROM0 window too")
}

func TestMBC1_RAMGatesReadsAndWrites(t *testing.T) {
	m := NewMBC1(markedROM(4), 0x2000, [48]byte{})

	m.Write(0xA000, 0x42) // RAM not yet enabled
	assert.Equal(t, uint8(0xFF), m.Read(0xA000), "SRAM reads return 0xFF while RAMG is disabled")

	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xA000), "SRAM is readable/writable once RAMG is enabled")
}
