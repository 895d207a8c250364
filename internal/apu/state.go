package apu

import "github.com/coldiron/gbcore/internal/types"

func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	a.savePulse(s, a.ch1, true)
	a.savePulse(s, a.ch2, false)

	s.WriteBool(a.ch3.enabled)
	s.WriteBool(a.ch3.dacEnabled)
	s.Write16(a.ch3.frequency)
	s.Write32(uint32(a.ch3.timer))
	s.Write16(a.ch3.length)
	s.WriteBool(a.ch3.lengthEnabled)
	s.Write8(a.ch3.volumeShift)
	s.Write8(a.ch3.position)
	s.WriteData(a.waveRAM[:])

	s.WriteBool(a.ch4.enabled)
	s.WriteBool(a.ch4.dacEnabled)
	s.Write16(a.ch4.length)
	s.WriteBool(a.ch4.lengthEnabled)
	s.Write8(a.ch4.startVolume)
	s.WriteBool(a.ch4.envAdd)
	s.Write8(a.ch4.envPeriod)
	s.Write8(a.ch4.envTimer)
	s.Write8(a.ch4.volume)
	s.Write8(a.ch4.shiftAmount)
	s.WriteBool(a.ch4.widthMode)
	s.Write8(a.ch4.divisorCode)
	s.Write16(a.ch4.lfsr)
	s.Write32(uint32(a.ch4.timer))

	s.WriteBool(a.vinLeft)
	s.WriteBool(a.vinRight)
	s.Write8(a.volumeLeft)
	s.Write8(a.volumeRight)
	for i := 0; i < 4; i++ {
		s.WriteBool(a.enableLeft[i])
		s.WriteBool(a.enableRight[i])
	}
	s.Write32(a.seqCounter)
	s.Write8(a.seqStep)
	s.Write32(a.sampleCounter)
}

func (a *APU) savePulse(s *types.State, c *pulseChannel, sweep bool) {
	s.WriteBool(c.enabled)
	s.WriteBool(c.dacEnabled)
	s.Write8(c.duty)
	s.Write8(c.dutyPos)
	s.Write16(c.frequency)
	s.Write32(uint32(c.timer))
	s.Write16(c.length)
	s.WriteBool(c.lengthEnabled)
	s.Write8(c.startVolume)
	s.WriteBool(c.envAdd)
	s.Write8(c.envPeriod)
	s.Write8(c.envTimer)
	s.Write8(c.volume)
	if sweep {
		s.Write8(c.sweepPeriod)
		s.WriteBool(c.sweepAdd)
		s.Write8(c.sweepShift)
		s.Write8(c.sweepTimer)
		s.WriteBool(c.sweepEnabled)
		s.Write16(c.shadowFreq)
	}
}

func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	a.loadPulse(s, a.ch1, true)
	a.loadPulse(s, a.ch2, false)

	a.ch3.enabled = s.ReadBool()
	a.ch3.dacEnabled = s.ReadBool()
	a.ch3.frequency = s.Read16()
	a.ch3.timer = int32(s.Read32())
	a.ch3.length = s.Read16()
	a.ch3.lengthEnabled = s.ReadBool()
	a.ch3.volumeShift = s.Read8()
	a.ch3.position = s.Read8()
	s.ReadData(a.waveRAM[:])
	a.ch3.attachRAM(&a.waveRAM)

	a.ch4.enabled = s.ReadBool()
	a.ch4.dacEnabled = s.ReadBool()
	a.ch4.length = s.Read16()
	a.ch4.lengthEnabled = s.ReadBool()
	a.ch4.startVolume = s.Read8()
	a.ch4.envAdd = s.ReadBool()
	a.ch4.envPeriod = s.Read8()
	a.ch4.envTimer = s.Read8()
	a.ch4.volume = s.Read8()
	a.ch4.shiftAmount = s.Read8()
	a.ch4.widthMode = s.ReadBool()
	a.ch4.divisorCode = s.Read8()
	a.ch4.lfsr = s.Read16()
	a.ch4.timer = int32(s.Read32())

	a.vinLeft = s.ReadBool()
	a.vinRight = s.ReadBool()
	a.volumeLeft = s.Read8()
	a.volumeRight = s.Read8()
	for i := 0; i < 4; i++ {
		a.enableLeft[i] = s.ReadBool()
		a.enableRight[i] = s.ReadBool()
	}
	a.seqCounter = s.Read32()
	a.seqStep = s.Read8()
	a.sampleCounter = s.Read32()
}

func (a *APU) loadPulse(s *types.State, c *pulseChannel, sweep bool) {
	c.enabled = s.ReadBool()
	c.dacEnabled = s.ReadBool()
	c.duty = s.Read8()
	c.dutyPos = s.Read8()
	c.frequency = s.Read16()
	c.timer = int32(s.Read32())
	c.length = s.Read16()
	c.lengthEnabled = s.ReadBool()
	c.startVolume = s.Read8()
	c.envAdd = s.ReadBool()
	c.envPeriod = s.Read8()
	c.envTimer = s.Read8()
	c.volume = s.Read8()
	if sweep {
		c.sweepPeriod = s.Read8()
		c.sweepAdd = s.ReadBool()
		c.sweepShift = s.Read8()
		c.sweepTimer = s.Read8()
		c.sweepEnabled = s.ReadBool()
		c.shadowFreq = s.Read16()
	}
}
