package types

import "fmt"

// ErrorKind distinguishes the load-time and save-state failures the core can
// report. Every other runtime condition (illegal opcodes, out-of-range bank
// selects, writes to read-only locations) is handled in place and never
// surfaces as an error.
type ErrorKind uint8

const (
	// BadHeader means the ROM header checksum didn't match. An unknown
	// cartridge-type byte is not reported as BadHeader; it parses as an
	// unbanked cartridge.
	BadHeader ErrorKind = iota
	// UnsupportedMbc means the header named a recognised but unimplemented
	// mapper.
	UnsupportedMbc
	// RomTooSmall means the image is shorter than the 0x150-byte header or
	// than its header's declared ROM size. An image that is longer than
	// declared, or not a power-of-two multiple of 16 KiB, is not rejected.
	RomTooSmall
	// SramSizeMismatch means supplied SRAM bytes didn't match the header's
	// declared SRAM size.
	SramSizeMismatch
	// SaveStateMismatch means a save-state's magic, version, or cartridge
	// title didn't match what's being loaded into.
	SaveStateMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case BadHeader:
		return "bad header"
	case UnsupportedMbc:
		return "unsupported mbc"
	case RomTooSmall:
		return "rom too small"
	case SramSizeMismatch:
		return "sram size mismatch"
	case SaveStateMismatch:
		return "save state mismatch"
	}
	return "unknown error"
}

// CoreError is the typed error returned by New and Deserialise.
type CoreError struct {
	Kind    ErrorKind
	Message string
}

func (e *CoreError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a CoreError with a formatted detail message.
func NewError(kind ErrorKind, format string, args ...interface{}) *CoreError {
	return &CoreError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
