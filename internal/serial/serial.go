// Package serial implements the link-port shift register (SB/SC). The
// actual wire is an external collaborator: Controller takes a Peer
// (AttachPeer) so a host (e.g. pkg/link's websocket bridge) can supply the far end
// without the core depending on any transport.
package serial

import (
	"github.com/coldiron/gbcore/internal/interrupts"
	"github.com/coldiron/gbcore/internal/types"
)

// Peer is the far end of a link cable. ShiftIn returns the bit the peer
// clocks out in response to the bit it is sent.
type Peer interface {
	ShiftIn(bit bool) bool
}

// Controller shifts SB one bit per divider falling edge while a transfer is
// active, raising Serial once all 8 bits have moved.
type Controller struct {
	data    uint8
	control uint8

	shifted    uint8
	transferOn bool
	prevEdge   bool

	peer Peer
	irq  *interrupts.Controller
}

// New returns a Controller wired to irq.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq, control: 0x7E}
}

// AttachPeer installs (or, with nil, detaches) the far end of the link
// cable. With no peer attached, shifted-in bits read back as 1 (idle line).
func (c *Controller) AttachPeer(p Peer) {
	c.peer = p
}

func (c *Controller) ReadSB() uint8 { return c.data }

func (c *Controller) WriteSB(v uint8) { c.data = v }

func (c *Controller) ReadSC() uint8 {
	return c.control | 0x7C
}

func (c *Controller) WriteSC(v uint8) {
	c.control = v&0x81 | 0x7C
	c.transferOn = v&types.Bit7 != 0 && v&types.Bit0 != 0 // internal clock only
	if c.transferOn {
		c.shifted = 0
	}
}

// Tick observes the timer's bit-8 falling edge (8192 Hz, the internal serial
// clock's nominal rate) and shifts one bit when a transfer is in progress.
func (c *Controller) Tick(divBit8 bool) {
	edge := c.prevEdge && !divBit8
	c.prevEdge = divBit8
	if !edge || !c.transferOn {
		return
	}

	outBit := c.data&types.Bit7 != 0
	var inBit bool
	if c.peer != nil {
		inBit = c.peer.ShiftIn(outBit)
	} else {
		inBit = true
	}
	c.data = c.data<<1 | b2u8(inBit)
	c.shifted++

	if c.shifted == 8 {
		c.transferOn = false
		c.control &^= types.Bit7
		c.irq.Request(interrupts.Serial)
	}
}

// ShiftIn implements Peer for a controller acting as the passive side of a
// transfer driven by its attached peer's internal clock.
func (c *Controller) ShiftIn(bit bool) bool {
	out := c.data&types.Bit7 != 0
	c.data = c.data<<1 | b2u8(bit)
	return out
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
	s.Write8(c.shifted)
	s.WriteBool(c.transferOn)
	s.WriteBool(c.prevEdge)
}

func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
	c.shifted = s.Read8()
	c.transferOn = s.ReadBool()
	c.prevEdge = s.ReadBool()
}
