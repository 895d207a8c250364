// Package cartridge parses ROM headers and wraps the per-kind mapper
// implementations in internal/cartridge/mbc behind a single Cartridge type
// that the bus talks to uniformly.
package cartridge

import (
	"github.com/cespare/xxhash"

	"github.com/coldiron/gbcore/internal/cartridge/mbc"
	"github.com/coldiron/gbcore/internal/types"
)

// rtcTailSize is the 48-byte MBC3/HuC3 RTC tail appended to a save file:
// ten 32-bit little-endian registers (running + latched) followed by a
// 64-bit seconds-since-epoch timestamp of when the file was written.
const rtcTailSize = 48

// Cartridge owns the parsed header and the constructed MBC instance, and
// knows how to round-trip the SRAM file format described for save data.
type Cartridge struct {
	Header *Header
	MBC    mbc.MBC

	// ROMHash identifies the loaded image independent of its filename;
	// used to key any externally-stored save data.
	ROMHash uint64
}

// New parses rom's header and constructs the matching MBC. Every Kind has a
// mapper here, and a cartridge-type byte that the header table does not
// list parses as KindNone, so such a ROM loads as an unbanked cartridge:
// New does not reject unknown cartridge types.
func New(rom []byte) (*Cartridge, *types.CoreError) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	m, err := newMBC(h, rom)
	if err != nil {
		return nil, err
	}

	return &Cartridge{Header: h, MBC: m, ROMHash: xxhash.Sum64(rom)}, nil
}

func newMBC(h *Header, rom []byte) (mbc.MBC, *types.CoreError) {
	switch h.Kind {
	case KindNone:
		return mbc.NewNone(rom, h.RAMSize), nil
	case KindMBC1:
		return mbc.NewMBC1(rom, h.RAMSize, h.Logo), nil
	case KindMBC2:
		return mbc.NewMBC2(rom), nil
	case KindMBC3:
		return mbc.NewMBC3(rom, h.RAMSize, h.HasRTC), nil
	case KindMBC5:
		return mbc.NewMBC5(rom, h.RAMSize, h.HasRumble), nil
	case KindMBC6:
		return mbc.NewMBC6(rom, h.RAMSize), nil
	case KindMBC7:
		return mbc.NewMBC7(rom), nil
	case KindHuC1:
		return mbc.NewHuC1(rom, h.RAMSize), nil
	case KindHuC3:
		return mbc.NewHuC3(rom, h.RAMSize), nil
	case KindMMM01:
		return mbc.NewMMM01(rom, h.RAMSize), nil
	}
	return nil, types.NewError(types.UnsupportedMbc, "cartridge type %d has no mapper", rom[0x0147])
}

// TickSeconds advances any onboard real-time clock by n wall-clock seconds.
// It is a no-op for mappers without a RealTimeClock.
func (c *Cartridge) TickSeconds(n uint64) {
	if rtc, ok := c.MBC.(mbc.RealTimeClock); ok {
		rtc.TickSeconds(n)
	}
}

// SetAxes forwards accelerometer input to an MBC7 mapper; a no-op otherwise.
func (c *Cartridge) SetAxes(x, y float32) {
	if a, ok := c.MBC.(mbc.Accelerometer); ok {
		a.SetAxes(x, y)
	}
}

// SaveData serialises the SRAM file format: a raw little-endian dump of the
// backing RAM (or EEPROM, for MBC7), with an RTC tail for clock-equipped
// mappers. epochNow is the caller-supplied wall-clock time in seconds,
// stamped into the tail so a later Load can fast-forward the clock across
// time elapsed while the core wasn't running.
func (c *Cartridge) SaveData(epochNow uint64) []byte {
	backed, ok := c.MBC.(mbc.SRAMBacked)
	if !ok {
		return nil
	}
	out := append([]byte(nil), backed.SRAM()...)

	rtc, ok := c.MBC.(mbc.RealTimeClock)
	if !ok {
		return out
	}
	tail := make([]byte, rtcTailSize)
	copy(tail, rtc.RTCBytes())
	// RTCBytes returns the 20-byte running-register block; the latched
	// block is not separately observable through the MBC interface, so the
	// tail's second half mirrors the running registers. A mapper that needs
	// its own latch round-trip persists that separately through Save/Load.
	copy(tail[20:40], rtc.RTCBytes())
	putEpoch(tail[40:48], epochNow)
	return append(out, tail...)
}

// LoadData restores SRAM (and, for clock-equipped mappers, the RTC tail)
// from a previously-saved file, fast-forwarding the clock by the wall-clock
// seconds elapsed between the time stamped in the tail at save time and
// epochNow.
func (c *Cartridge) LoadData(data []byte, epochNow uint64) *types.CoreError {
	backed, hasRAM := c.MBC.(mbc.SRAMBacked)
	rtc, hasRTC := c.MBC.(mbc.RealTimeClock)

	ramLen := len(data)
	if hasRTC {
		ramLen -= rtcTailSize
	}
	if ramLen < 0 {
		return types.NewError(types.SramSizeMismatch, "save data too short for RTC tail")
	}

	if hasRAM {
		backed.LoadSRAM(data[:ramLen])
	}
	if !hasRTC {
		return nil
	}

	tail := data[ramLen:]
	if len(tail) < rtcTailSize {
		return types.NewError(types.SramSizeMismatch, "rtc tail is %d bytes, want %d", len(tail), rtcTailSize)
	}
	rtc.LoadRTCBytes(tail[0:20])
	savedAt := getEpoch(tail[40:48])
	if epochNow > savedAt {
		rtc.TickSeconds(epochNow - savedAt)
	}
	return nil
}

func putEpoch(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getEpoch(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// Save and Load delegate save-state serialisation to the underlying mapper,
// which every mbc.MBC implementation provides directly.
func (c *Cartridge) Save(s *types.State) { c.MBC.Save(s) }
func (c *Cartridge) Load(s *types.State) { c.MBC.Load(s) }

var _ types.Stater = (*Cartridge)(nil)
