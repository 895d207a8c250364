package gameboy

import "github.com/coldiron/gbcore/internal/types"

// Serialise snapshots every component's state into a single byte slice,
// magic- and version-stamped, and cartridge-title-stamped so Deserialise can
// reject a save-state that doesn't belong to the ROM it's handed.
func (c *Core) Serialise() []byte {
	s := types.NewState()
	s.WriteData([]byte(types.StateMagic))
	s.Write32(types.StateVersion)
	title := c.Cart.Header.Title
	s.Write32(uint32(len(title)))
	s.WriteData([]byte(title))

	c.CPU.Save(s)
	c.Bus.Save(s)
	c.PPU.Save(s)
	c.APU.Save(s)
	c.Timer.Save(s)
	c.IRQ.Save(s)
	c.Pad.Save(s)
	c.Serial.Save(s)
	c.Cart.Save(s)

	return s.Bytes()
}

// Deserialise reconstructs a Core from a Serialise blob and the original
// ROM image (save-states never embed the ROM itself). It returns
// SaveStateMismatch if the magic, version, or cartridge title don't match.
func Deserialise(data []byte, rom []byte, opts ...Option) (*Core, *types.CoreError) {
	c, cerr := New(rom, nil, opts...)
	if cerr != nil {
		return nil, cerr
	}

	s := types.StateFromBytes(data)
	if len(data) < len(types.StateMagic) {
		return nil, types.NewError(types.SaveStateMismatch, "save state is truncated")
	}
	magic := make([]byte, len(types.StateMagic))
	s.ReadData(magic)
	if string(magic) != types.StateMagic {
		return nil, types.NewError(types.SaveStateMismatch, "bad magic %q", magic)
	}
	if version := s.Read32(); version != types.StateVersion {
		return nil, types.NewError(types.SaveStateMismatch, "save state version %d, want %d", version, types.StateVersion)
	}
	titleLen := s.Read32()
	title := make([]byte, titleLen)
	s.ReadData(title)
	if string(title) != c.Cart.Header.Title {
		return nil, types.NewError(types.SaveStateMismatch, "save state is for %q, not %q", title, c.Cart.Header.Title)
	}

	c.CPU.Load(s)
	c.Bus.Load(s)
	c.PPU.Load(s)
	c.APU.Load(s)
	c.Timer.Load(s)
	c.IRQ.Load(s)
	c.Pad.Load(s)
	c.Serial.Load(s)
	c.Cart.Load(s)

	return c, nil
}
