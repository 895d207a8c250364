package apu

// square wave duty-cycle patterns, 8 steps each, matching hardware's four
// documented duties (12.5%, 25%, 50%, 75%).
var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// pulseChannel implements channel 1 (with sweep) and channel 2 (without,
// sweep is simply never stepped for it).
type pulseChannel struct {
	hasSweep bool

	enabled    bool
	dacEnabled bool

	duty      uint8
	dutyPos   uint8
	frequency uint16
	timer     int32

	length        uint16
	lengthEnabled bool

	startVolume uint8
	envAdd      bool
	envPeriod   uint8
	envTimer    uint8
	volume      uint8

	sweepPeriod uint8
	sweepAdd    bool
	sweepShift  uint8
	sweepTimer  uint8
	sweepEnabled bool
	shadowFreq  uint16
}

func newPulseChannel(sweep bool) *pulseChannel {
	return &pulseChannel{hasSweep: sweep}
}

func (c *pulseChannel) tickFrequency() {
	if !c.enabled {
		return
	}
	c.timer--
	if c.timer <= 0 {
		c.timer = int32((2048 - c.frequency) * 4)
		c.dutyPos = (c.dutyPos + 1) % 8
	}
}

func (c *pulseChannel) lengthStep() {
	if c.lengthEnabled && c.length > 0 {
		c.length--
		if c.length == 0 {
			c.enabled = false
		}
	}
}

func (c *pulseChannel) envelopeStep() {
	if c.envPeriod == 0 {
		return
	}
	if c.envTimer > 0 {
		c.envTimer--
		if c.envTimer == 0 {
			c.envTimer = c.envPeriod
			if c.envAdd && c.volume < 15 {
				c.volume++
			} else if !c.envAdd && c.volume > 0 {
				c.volume--
			}
		}
	}
}

func (c *pulseChannel) sweepStep() {
	if !c.hasSweep || !c.sweepEnabled || c.sweepPeriod == 0 {
		return
	}
	if c.sweepTimer > 0 {
		c.sweepTimer--
		if c.sweepTimer == 0 {
			c.sweepTimer = c.sweepPeriod
			newFreq := c.sweepCalc()
			if newFreq <= 2047 && c.sweepShift > 0 {
				c.shadowFreq = newFreq
				c.frequency = newFreq
				c.sweepCalc() // overflow re-check, result discarded
			}
		}
	}
}

func (c *pulseChannel) sweepCalc() uint16 {
	delta := c.shadowFreq >> c.sweepShift
	var newFreq uint16
	if c.sweepAdd {
		newFreq = c.shadowFreq + delta
	} else {
		newFreq = c.shadowFreq - delta
	}
	if newFreq > 2047 {
		c.enabled = false
	}
	return newFreq
}

func (c *pulseChannel) trigger() {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 64
	}
	c.timer = int32((2048 - c.frequency) * 4)
	c.envTimer = c.envPeriod
	c.volume = c.startVolume
	c.shadowFreq = c.frequency
	c.sweepTimer = c.sweepPeriod
	c.sweepEnabled = c.sweepPeriod != 0 || c.sweepShift != 0
	if c.hasSweep && c.sweepShift != 0 {
		c.sweepCalc()
	}
}

func (c *pulseChannel) output() uint8 {
	if !c.enabled || !c.dacEnabled {
		return 0
	}
	return dutyTable[c.duty][c.dutyPos] * c.volume
}

// waveChannel is channel 3: an arbitrary 32-sample 4-bit waveform played
// back from wave RAM.
type waveChannel struct {
	enabled    bool
	dacEnabled bool

	frequency uint16
	timer     int32

	length        uint16
	lengthEnabled bool

	volumeShift uint8 // 0=mute, 1=100%, 2=50%, 3=25%
	position    uint8

	ram *[16]byte
}

func newWaveChannel() *waveChannel {
	return &waveChannel{}
}

func (c *waveChannel) attachRAM(ram *[16]byte) { c.ram = ram }

func (c *waveChannel) tickFrequency() {
	if !c.enabled {
		return
	}
	c.timer--
	if c.timer <= 0 {
		c.timer = int32((2048 - c.frequency) * 2)
		c.position = (c.position + 1) % 32
	}
}

func (c *waveChannel) lengthStep() {
	if c.lengthEnabled && c.length > 0 {
		c.length--
		if c.length == 0 {
			c.enabled = false
		}
	}
}

func (c *waveChannel) trigger() {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 256
	}
	c.timer = int32((2048 - c.frequency) * 2)
	c.position = 0
}

func (c *waveChannel) output() uint8 {
	if !c.enabled || !c.dacEnabled || c.ram == nil {
		return 0
	}
	b := c.ram[c.position/2]
	var sample uint8
	if c.position%2 == 0 {
		sample = b >> 4
	} else {
		sample = b & 0x0F
	}
	if c.volumeShift == 0 {
		return 0
	}
	return sample >> (c.volumeShift - 1)
}

// noiseChannel is channel 4: a pseudo-random LFSR noise generator.
type noiseChannel struct {
	enabled    bool
	dacEnabled bool

	length        uint16
	lengthEnabled bool

	startVolume uint8
	envAdd      bool
	envPeriod   uint8
	envTimer    uint8
	volume      uint8

	shiftAmount uint8
	widthMode   bool // true = 7-bit LFSR
	divisorCode uint8

	lfsr  uint16
	timer int32
}

var noiseDivisors = [8]int32{8, 16, 32, 48, 64, 80, 96, 112}

func newNoiseChannel() *noiseChannel {
	return &noiseChannel{lfsr: 0x7FFF}
}

func (c *noiseChannel) tickFrequency() {
	if !c.enabled {
		return
	}
	c.timer--
	if c.timer <= 0 {
		c.timer = noiseDivisors[c.divisorCode] << c.shiftAmount
		bit := (c.lfsr ^ (c.lfsr >> 1)) & 1
		c.lfsr = c.lfsr>>1 | bit<<14
		if c.widthMode {
			c.lfsr &^= 1 << 6
			c.lfsr |= bit << 6
		}
	}
}

func (c *noiseChannel) lengthStep() {
	if c.lengthEnabled && c.length > 0 {
		c.length--
		if c.length == 0 {
			c.enabled = false
		}
	}
}

func (c *noiseChannel) envelopeStep() {
	if c.envPeriod == 0 {
		return
	}
	if c.envTimer > 0 {
		c.envTimer--
		if c.envTimer == 0 {
			c.envTimer = c.envPeriod
			if c.envAdd && c.volume < 15 {
				c.volume++
			} else if !c.envAdd && c.volume > 0 {
				c.volume--
			}
		}
	}
}

func (c *noiseChannel) trigger() {
	c.enabled = c.dacEnabled
	if c.length == 0 {
		c.length = 64
	}
	c.timer = noiseDivisors[c.divisorCode] << c.shiftAmount
	c.envTimer = c.envPeriod
	c.volume = c.startVolume
	c.lfsr = 0x7FFF
}

func (c *noiseChannel) output() uint8 {
	if !c.enabled || !c.dacEnabled {
		return 0
	}
	if c.lfsr&1 == 0 {
		return c.volume
	}
	return 0
}
