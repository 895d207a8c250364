// Package apu implements the four-channel audio generator: two pulse
// channels, a programmable wave channel, and a noise channel, mixed
// through NR50/NR51 into a stereo sample stream.
package apu

import "github.com/coldiron/gbcore/internal/types"

const (
	// clockSpeed is the t-cycle rate the frame sequencer and channel
	// frequency timers are driven from.
	clockSpeed = 4194304
	// frameSequencerPeriod ticks the length/envelope/sweep units at 512 Hz.
	frameSequencerPeriod = clockSpeed / 512
	// outputSampleRate is the rate DrainAudio's samples are produced at.
	outputSampleRate = 44100
	samplePeriod     = clockSpeed / outputSampleRate

	bufferCapacity = 8192 // stereo int16 frames
)

// Sample is one stereo output frame.
type Sample struct{ L, R int16 }

// APU owns the four channels, the mixer registers, and the output ring
// buffer DrainAudio reads from.
type APU struct {
	enabled bool

	ch1 *pulseChannel
	ch2 *pulseChannel
	ch3 *waveChannel
	ch4 *noiseChannel

	waveRAM [16]byte

	vinLeft, vinRight       bool
	volumeLeft, volumeRight uint8
	enableLeft, enableRight [4]bool

	seqCounter uint32
	seqStep    uint8

	sampleCounter uint32
	buffer        []Sample
}

// New returns a powered-off APU.
func New() *APU {
	a := &APU{
		ch1: newPulseChannel(true),
		ch2: newPulseChannel(false),
		ch3: newWaveChannel(),
		ch4: newNoiseChannel(),
	}
	a.buffer = make([]Sample, 0, bufferCapacity)
	a.ch3.attachRAM(&a.waveRAM)
	return a
}

// Tick advances every channel and the frame sequencer by one t-cycle,
// pushing a new output sample each time the sample-rate accumulator rolls
// over.
func (a *APU) Tick() {
	if !a.enabled {
		return
	}

	a.ch1.tickFrequency()
	a.ch2.tickFrequency()
	a.ch3.tickFrequency()
	a.ch4.tickFrequency()

	a.seqCounter++
	if a.seqCounter >= frameSequencerPeriod {
		a.seqCounter = 0
		a.stepSequencer()
	}

	a.sampleCounter++
	if a.sampleCounter >= samplePeriod {
		a.sampleCounter = 0
		a.pushSample()
	}
}

// stepSequencer drives length (even steps 0,2,4,6), sweep (steps 2,6) and
// envelope (step 7) at their documented 256/128/64 Hz rates.
func (a *APU) stepSequencer() {
	if a.seqStep%2 == 0 {
		a.ch1.lengthStep()
		a.ch2.lengthStep()
		a.ch3.lengthStep()
		a.ch4.lengthStep()
	}
	if a.seqStep == 2 || a.seqStep == 6 {
		a.ch1.sweepStep()
	}
	if a.seqStep == 7 {
		a.ch1.envelopeStep()
		a.ch2.envelopeStep()
		a.ch4.envelopeStep()
	}
	a.seqStep = (a.seqStep + 1) % 8
}

func mix(enable [4]bool, v1, v2, v3, v4 uint8) uint8 {
	var sum uint8
	if enable[0] {
		sum += v1
	}
	if enable[1] {
		sum += v2
	}
	if enable[2] {
		sum += v3
	}
	if enable[3] {
		sum += v4
	}
	return sum
}

func (a *APU) pushSample() {
	v1, v2, v3, v4 := a.ch1.output(), a.ch2.output(), a.ch3.output(), a.ch4.output()

	left := int16(mix(a.enableLeft, v1, v2, v3, v4)) * int16(a.volumeLeft+1)
	right := int16(mix(a.enableRight, v1, v2, v3, v4)) * int16(a.volumeRight+1)

	// centre and scale a 0-480 mix (a 0-60 channel sum, 4 channels * 15 max,
	// times a 1-8 volume scale) into the int16 sample range.
	const scale = 32
	left = (left - 30*8) * scale
	right = (right - 30*8) * scale

	if len(a.buffer) < bufferCapacity {
		a.buffer = append(a.buffer, Sample{L: left, R: right})
	}
}

// DrainAudio returns and clears all samples accumulated since the last call.
func (a *APU) DrainAudio() []Sample {
	out := a.buffer
	a.buffer = make([]Sample, 0, bufferCapacity)
	return out
}

var _ types.Stater = (*APU)(nil)
