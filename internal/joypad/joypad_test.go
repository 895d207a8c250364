package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coldiron/gbcore/internal/interrupts"
)

func TestSet_RequestsIRQOnlyOnReleasedToPressedTransitionWhileSelected(t *testing.T) {
	irq := interrupts.NewController()
	s := New(irq)

	s.WriteP1(0x10) // select action group (bit 5 low), direction deselected
	s.Set(A, true)
	assert.NotEqual(t, uint8(0), irq.Flag&(1<<interrupts.Joypad), "pressing a selected button requests the joypad IRQ")

	irq.Clear(interrupts.Joypad)
	s.Set(A, true) // already down: no further transition
	assert.Equal(t, uint8(0), irq.Flag&(1<<interrupts.Joypad), "holding a button already down does not re-request")
}

func TestSet_DoesNotRequestIRQWhenGroupDeselected(t *testing.T) {
	irq := interrupts.NewController()
	s := New(irq)

	s.WriteP1(0x20) // direction group selected (bit 4 low), action deselected
	s.Set(A, true)  // A is an action button
	assert.Equal(t, uint8(0), irq.Flag&(1<<interrupts.Joypad), "a press in the deselected group requests nothing")
}

func TestReadP1_ReflectsPressedBitsActiveLowForSelectedGroupOnly(t *testing.T) {
	irq := interrupts.NewController()
	s := New(irq)

	s.Set(Start, true)
	s.Set(Up, true)

	s.WriteP1(0x20) // select direction group
	v := s.ReadP1()
	assert.Equal(t, uint8(0), v&uint8(buttonBit(Up)), "Up reads active-low (0) when its group is selected and held")
	assert.NotEqual(t, uint8(0), v&0x0F&^uint8(buttonBit(Up)), "other direction bits stay high (released)")

	s.WriteP1(0x10) // select action group
	v = s.ReadP1()
	assert.Equal(t, uint8(0), v&uint8(buttonBit(Start)), "Start reads active-low when its group is selected and held")
}
