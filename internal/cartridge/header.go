package cartridge

import "github.com/coldiron/gbcore/internal/types"

// Kind is the MBC variant named by a cartridge's header byte 0x0147.
type Kind uint8

const (
	KindNone Kind = iota
	KindMBC1
	KindMBC2
	KindMBC3
	KindMBC5
	KindMBC6
	KindMBC7
	KindHuC1
	KindHuC3
	KindMMM01
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	case KindMBC6:
		return "MBC6"
	case KindMBC7:
		return "MBC7"
	case KindHuC1:
		return "HuC1"
	case KindHuC3:
		return "HuC3"
	case KindMMM01:
		return "MMM01"
	}
	return "UNKNOWN"
}

// cartType is the raw header byte at 0x0147.
type cartType uint8

// hasRAM, hasBattery, hasRTC, hasRumble classify a cartType's accessories.
func (t cartType) kind() (Kind, bool, bool, bool, bool) {
	switch t {
	case 0x00:
		return KindNone, false, false, false, false
	case 0x01:
		return KindMBC1, false, false, false, false
	case 0x02:
		return KindMBC1, true, false, false, false
	case 0x03:
		return KindMBC1, true, true, false, false
	case 0x05:
		return KindMBC2, true, false, false, false
	case 0x06:
		return KindMBC2, true, true, false, false
	case 0x08:
		return KindNone, true, false, false, false
	case 0x09:
		return KindNone, true, true, false, false
	case 0x0B:
		return KindMMM01, false, false, false, false
	case 0x0C:
		return KindMMM01, true, false, false, false
	case 0x0D:
		return KindMMM01, true, true, false, false
	case 0x0F:
		return KindMBC3, false, true, true, false
	case 0x10:
		return KindMBC3, true, true, true, false
	case 0x11:
		return KindMBC3, false, false, false, false
	case 0x12:
		return KindMBC3, true, false, false, false
	case 0x13:
		return KindMBC3, true, true, false, false
	case 0x19:
		return KindMBC5, false, false, false, false
	case 0x1A:
		return KindMBC5, true, false, false, false
	case 0x1B:
		return KindMBC5, true, true, false, false
	case 0x1C:
		return KindMBC5, false, false, false, true
	case 0x1D:
		return KindMBC5, true, false, false, true
	case 0x1E:
		return KindMBC5, true, true, false, true
	case 0x20:
		return KindMBC6, true, true, false, false
	case 0x22:
		return KindMBC7, true, true, false, false
	case 0xFE:
		return KindHuC3, true, true, true, false
	case 0xFF:
		return KindHuC1, true, true, false, false
	}
	return KindNone, false, false, false, false
}

// romBanks returns the number of 16 KiB ROM banks declared by header byte
// 0x0148: 0 -> 2 banks (32 KiB), doubling per increment up to 8 MiB.
func romBanksFromHeader(b uint8) int {
	if b > 8 {
		return 2
	}
	return 2 << b
}

// ramSizeFromHeader maps header byte 0x0149 to a byte count.
func ramSizeFromHeader(b uint8) int {
	switch b {
	case 0x00:
		return 0
	case 0x01:
		return 2 * 1024 // unofficial, rarely used
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	}
	return 0
}

// Header is the parsed cartridge header at 0x0100-0x014F.
type Header struct {
	Title       string
	CGBFlag     uint8
	Kind        Kind
	HasBattery  bool
	HasRTC      bool
	HasRumble   bool
	ROMBanks    int
	RAMSize     int
	HeaderCheck uint8
	Logo        [48]byte
}

// CGBSupported reports whether the cartridge declares CGB compatibility.
func (h *Header) CGBSupported() bool {
	return h.CGBFlag == 0x80 || h.CGBFlag == 0xC0
}

// CGBOnly reports whether the cartridge refuses to run on DMG hardware.
func (h *Header) CGBOnly() bool {
	return h.CGBFlag == 0xC0
}

// checksum reproduces the header checksum algorithm documented at 0x014D:
// x = 0; for a in 0x0134..=0x014C { x = (x - rom[a] - 1) & 0xFF }
func checksum(rom []byte) uint8 {
	var x uint8
	for a := 0x0134; a <= 0x014C; a++ {
		x = x - rom[a] - 1
	}
	return x
}

// ParseHeader validates and parses the ROM header, returning a BadHeader or
// RomTooSmall CoreError on failure.
func ParseHeader(rom []byte) (*Header, *types.CoreError) {
	if len(rom) < 0x150 {
		return nil, types.NewError(types.RomTooSmall, "rom is only %d bytes", len(rom))
	}

	h := &Header{}
	copy(h.Logo[:], rom[0x0104:0x0134])

	h.CGBFlag = rom[0x0143]
	if h.CGBFlag == 0xC0 {
		h.Title = string(rom[0x0134:0x0143])
	} else {
		h.Title = string(rom[0x0134:0x0144])
	}
	for i := len(h.Title) - 1; i >= 0 && h.Title[i] == 0; i-- {
		h.Title = h.Title[:i]
	}

	h.HeaderCheck = rom[0x014D]
	want := checksum(rom)
	if want != h.HeaderCheck {
		return nil, types.NewError(types.BadHeader, "checksum mismatch: got %02X want %02X", want, h.HeaderCheck)
	}

	kind, hasRAM, hasBattery, hasRTC, hasRumble := cartType(rom[0x0147]).kind()
	h.Kind = kind
	h.HasBattery = hasBattery
	h.HasRTC = hasRTC
	h.HasRumble = hasRumble

	h.ROMBanks = romBanksFromHeader(rom[0x0148])
	if len(rom) < h.ROMBanks*0x4000 {
		return nil, types.NewError(types.RomTooSmall, "header declares %d banks, rom has %d bytes", h.ROMBanks, len(rom))
	}

	h.RAMSize = ramSizeFromHeader(rom[0x0149])
	if !hasRAM {
		h.RAMSize = 0
	}
	if h.Kind == KindMBC2 {
		h.RAMSize = 512 // 512x4-bit internal RAM, not header-declared
	}
	if h.Kind == KindMBC7 {
		h.RAMSize = 256 // EEPROM, addressed like SRAM
	}

	return h, nil
}
