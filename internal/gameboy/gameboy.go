// Package gameboy is the Core orchestrator: it owns every subsystem and
// drives them through one t-cycle at a time in the fixed order documented
// below, exposing the embedder-facing API (StepTick, StepFrame, SetButton,
// Framebuffer, DrainAudio, Serialise/Deserialise).
package gameboy

import (
	"github.com/coldiron/gbcore/internal/apu"
	"github.com/coldiron/gbcore/internal/cartridge"
	"github.com/coldiron/gbcore/internal/cpu"
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/joypad"
	"github.com/coldiron/gbcore/internal/mmu"
	"github.com/coldiron/gbcore/internal/ppu"
	"github.com/coldiron/gbcore/internal/serial"
	"github.com/coldiron/gbcore/internal/timer"
	"github.com/coldiron/gbcore/internal/types"
	"github.com/coldiron/gbcore/pkg/log"
)

// ClockSpeed is the single-speed t-cycle rate in Hz.
const ClockSpeed = 4194304

// Core owns every subsystem of one Game Boy / Game Boy Color instance. It
// has no internal goroutines or timers: the embedding host supplies the
// loop by calling StepTick (or the StepFrame convenience) as fast or as
// slow as it likes.
type Core struct {
	CPU    *cpu.CPU
	Bus    *mmu.Bus
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Controller
	IRQ    *interrupts.Controller
	Pad    *joypad.State
	Serial *serial.Controller
	Cart   *cartridge.Cartridge

	log      log.Logger
	forceDMG bool

	// rtcAccum counts t-cycles toward the next whole-second RTC advance;
	// real time and emulated time run 1:1 regardless of CGB double speed,
	// since double speed only changes how many t-cycles a CPU instruction
	// costs, not the t-cycle rate itself.
	rtcAccum int

	framebuffer [ppu.ScreenHeight * ppu.ScreenWidth]uint32
}

// Option configures a Core at construction.
type Option func(*Core)

// WithLogger installs a non-default Logger; the default is log.Null.
func WithLogger(l log.Logger) Option {
	return func(c *Core) { c.log = l }
}

// ForceDMG runs a CGB-capable cartridge in DMG compatibility mode even
// though the header advertises CGB support. CGB-only cartridges ignore
// this option, since they refuse to boot on real DMG hardware either.
func ForceDMG() Option {
	return func(c *Core) { c.forceDMG = true }
}

// New parses rom, constructs every subsystem, and returns a Core ready to
// run from the cartridge's entry point. sram is a previously-saved SRAM
// file (cartridge.SaveData's output) to preload, or nil for a blank save.
func New(rom []byte, sram []byte, opts ...Option) (*Core, *types.CoreError) {
	cart, cerr := cartridge.New(rom)
	if cerr != nil {
		return nil, cerr
	}

	c := &Core{Cart: cart, log: log.Null()}
	for _, opt := range opts {
		opt(c)
	}

	cgb := cart.Header.CGBSupported() && !c.forceDMG || cart.Header.CGBOnly()

	c.IRQ = interrupts.NewController()
	c.Timer = timer.New(c.IRQ)
	c.Pad = joypad.New(c.IRQ)
	c.Serial = serial.New(c.IRQ)
	c.APU = apu.New()
	c.Bus = mmu.New(cart, cgb, c.IRQ, c.Timer, c.Pad, c.Serial, c.APU)
	c.PPU = ppu.New(c.Bus, c.IRQ, cgb)
	c.CPU = cpu.New(c.Bus, c.IRQ)

	if cgb {
		c.CPU.SetAF(0x1180)
		c.CPU.SetBC(0x0000)
		c.CPU.SetDE(0xFF56)
		c.CPU.SetHL(0x000D)
	}

	for addr, val := range postBootRegisters {
		c.Bus.Write(addr, val)
	}
	c.Bus.SetPPUMode(2)

	if len(sram) > 0 {
		if err := cart.LoadData(sram, 0); err != nil {
			c.log.Warnf("sram load: %s", err)
		}
	}

	return c, nil
}

// postBootRegisters holds the documented I/O register values left behind by
// the DMG/CGB boot ROM once it hands off at PC=0x100; this core starts
// every cartridge post-boot, so these are applied directly rather than
// executing the (unowned, copyrighted) boot ROM image.
var postBootRegisters = map[types.HardwareAddress]uint8{
	types.NR10: 0x80,
	types.NR11: 0xBF,
	types.NR12: 0xF3,
	types.NR14: 0xBF,
	types.NR21: 0x3F,
	types.NR24: 0xBF,
	types.NR30: 0x7F,
	types.NR31: 0xFF,
	types.NR32: 0x9F,
	types.NR33: 0xBF,
	types.NR41: 0xFF,
	types.NR44: 0xBF,
	types.NR50: 0x77,
	types.NR51: 0xF3,
	types.NR52: 0xF1,
	types.LCDC: 0x91,
	types.BGP:  0xFC,
}

// tick advances every non-CPU subsystem by exactly one t-cycle, in the
// fixed order SPEC_FULL.md §5 requires: timer, then PPU, then the DMA/HDMA
// engines, then serial, then APU. It also accumulates t-cycles toward the
// next whole-second RTC advance, so any MBC3/HuC3 clock keeps pace with
// emulated time as the core runs, not only at load time. It returns
// whether an active general-purpose HDMA transfer stalled the CPU this
// t-cycle.
func (c *Core) tick() bool {
	c.Timer.Tick()
	c.PPU.Tick()
	c.Bus.TickDMA()
	hdmaBusy := c.Bus.TickHDMA()
	c.Serial.Tick(c.Timer.DivBit8())
	c.APU.Tick()

	c.rtcAccum++
	if c.rtcAccum >= ClockSpeed {
		c.rtcAccum -= ClockSpeed
		c.Cart.TickSeconds(1)
	}

	return hdmaBusy
}

// StepTick runs one step of the machine. It always ticks every non-CPU
// subsystem once; unless an active general-purpose HDMA transfer is
// stalling the CPU, it then executes one whole CPU instruction and ticks
// the other subsystems once more for each remaining t-cycle of that
// instruction's cost. A call therefore advances one t-cycle while the CPU
// is stalled and a full instruction's cost otherwise; it never stops
// partway through an instruction. OAM DMA does not stall the CPU (it only
// blanks the CPU's reads below HRAM), and an HDMA stall holds only the
// CPU, never the other subsystems.
func (c *Core) StepTick() {
	hdmaBusy := c.tick()

	if !hdmaBusy && !c.Bus.Busy() {
		cycles := c.CPU.Step()
		for i := 1; i < cycles; i++ {
			c.tick()
		}
	}
}

// StepFrame ticks until the PPU has completed one frame's worth of
// scanlines and swapped a new framebuffer into place, then returns it.
// It is built entirely from repeated StepTick calls: no new scheduling
// concept is introduced, per SPEC_FULL.md §5's "no internal yielding" rule.
func (c *Core) StepFrame() *[ppu.ScreenHeight * ppu.ScreenWidth]uint32 {
	for !c.PPU.HasFrame() {
		c.StepTick()
	}
	return c.Framebuffer()
}

// SetButton presses or releases one of the eight physical buttons.
func (c *Core) SetButton(key joypad.Button, down bool) {
	c.Pad.Set(key, down)
}

// SetAccelerometer forwards tilt input to an MBC7 cartridge's
// accelerometer; a no-op for any other mapper.
func (c *Core) SetAccelerometer(x, y float32) {
	c.Cart.SetAxes(x, y)
}

// Framebuffer packs the PPU's most recently completed frame into a flat
// row-major buffer of 0x00RRGGBB pixels and returns it.
func (c *Core) Framebuffer() *[ppu.ScreenHeight * ppu.ScreenWidth]uint32 {
	fb := c.PPU.Framebuffer()
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			col := fb[y][x]
			c.framebuffer[y*ppu.ScreenWidth+x] = uint32(col.R)<<16 | uint32(col.G)<<8 | uint32(col.B)
		}
	}
	return &c.framebuffer
}

// DrainAudio returns interleaved stereo samples (L0, R0, L1, R1, ...)
// accumulated since the last call.
func (c *Core) DrainAudio() []int16 {
	samples := c.APU.DrainAudio()
	out := make([]int16, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, s.L, s.R)
	}
	return out
}

// SaveData serialises the cartridge's battery-backed SRAM (and any onboard
// RTC) to the SRAM file format, stamped with epochSeconds so a later Load
// can fast-forward a clock-equipped cartridge's RTC. It returns nil for
// cartridges with no battery-backed RAM.
func (c *Core) SaveData(epochSeconds uint64) []byte {
	return c.Cart.SaveData(epochSeconds)
}
