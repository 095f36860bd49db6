package board

import (
	"fmt"

	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

// Placement uniquely identifies a placed tile: which square, which piece
// archetype, and in which orientation.
type Placement struct {
	Square      Square
	Piece       uint8
	Orientation pieces.Orientation
}

// Networks returns the placement's (up to two) permuted networks.
func (p Placement) Networks() [2]*pieces.Network {
	return pieces.Permute(p.Piece, p.Orientation)
}

// Connection returns the connection this placement presents on side d.
func (p Placement) Connection(d Direction) Connection {
	return pieces.ConnectionAt(p.Networks(), d)
}

// HasConnection reports whether the placement's side d equals c.
func (p Placement) HasConnection(d Direction, c Connection) bool {
	return p.Connection(d) == c
}

// HasSomeConnection reports whether side d carries any track.
func (p Placement) HasSomeConnection(d Direction) bool {
	return p.Connection(d) != None
}

// DirConn pairs a direction with the connection presented on that side.
type DirConn struct {
	Direction  Direction
	Connection Connection
}

// ConnectionsInNetwork returns all four (direction, connection) pairs for
// one of the placement's (0 or 1) network indices.
func (p Placement) ConnectionsInNetwork(index int) [4]DirConn {
	var out [4]DirConn
	n := p.Networks()[index]
	for i, d := range Directions {
		if n == nil {
			out[i] = DirConn{d, None}
			continue
		}
		out[i] = DirConn{d, n[d]}
	}
	return out
}

// ConnectedNetwork returns which of the placement's network indices (0 or
// 1) presents connection c on side d, if any.
func (p Placement) ConnectedNetwork(d Direction, c Connection) (int, bool) {
	networks := p.Networks()
	for i, n := range networks {
		if n == nil {
			continue
		}
		if n[d] == c {
			return i, true
		}
	}
	return 0, false
}

// Variant packs the orientation into the wire-format digit.
func (p Placement) Variant() uint8 {
	return p.Orientation.Variant()
}

// Encode renders the placement as the 5-character wire group xYPPV.
func (p Placement) Encode() string {
	return fmt.Sprintf("%s%02X%d", p.Square.String(), p.Piece, p.Variant())
}
