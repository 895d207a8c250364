// Package link bridges two Cores' serial ports over a network connection:
// each side attaches a *Conn, which implements serial.Peer, to its
// internal/serial.Controller instead of wiring the two controllers to each
// other directly.
package link

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps one end of a websocket connection carrying link-cable bits.
// It implements serial.Peer: ShiftIn sends the bit this side just clocked
// out and blocks for the single bit the remote peer clocks back.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Dial connects to a peer listening at addr (e.g. "ws://host:port/link").
func Dial(addr string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("link: dial %s: %w", addr, err)
	}
	return &Conn{ws: ws}, nil
}

// Accept upgrades an already-accepted net connection's websocket handshake
// result into a Conn. Callers typically get ws from an http.Handler using
// websocket.Upgrader.Upgrade.
func Accept(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// ShiftIn sends bit to the remote peer and returns the bit it shifts back,
// implementing internal/serial.Peer across the network.
func (c *Conn) ShiftIn(bit bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := byte(0)
	if bit {
		out = 1
	}
	if err := c.ws.WriteMessage(websocket.BinaryMessage, []byte{out}); err != nil {
		return true // idle line on write failure, matching a detached peer
	}

	_, msg, err := c.ws.ReadMessage()
	if err != nil || len(msg) == 0 {
		return true
	}
	return msg[0] != 0
}

// Close shuts down the underlying websocket connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
