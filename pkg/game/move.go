package game

import (
	"fmt"

	"github.com/zachbeta/railroad-ink-mcts/pkg/board"
)

// Kind discriminates the payload carried by a Move.
type Kind uint8

const (
	// KindPlace places a piece on the board.
	KindPlace Kind = iota
	// KindSetRoll commits a realized chance outcome.
	KindSetRoll
	// KindRoll requests the game draw a fresh roll.
	KindRoll
	// KindEnd ends the game.
	KindEnd
)

// Move is the tagged variant {Place(Placement) | SetRoll(Roll) | Roll | End},
// represented as one concrete struct with a Kind discriminant rather than a
// Go interface-per-variant, following the teacher's concrete-move design.
// Only the field(s) matching Kind are meaningful.
type Move struct {
	Kind      Kind
	Placement board.Placement
	Roll      Roll
}

// PlaceMove builds a KindPlace move.
func PlaceMove(p board.Placement) Move { return Move{Kind: KindPlace, Placement: p} }

// SetRollMove builds a KindSetRoll move.
func SetRollMove(r Roll) Move { return Move{Kind: KindSetRoll, Roll: r} }

// RollMove is the single KindRoll move.
var RollMove = Move{Kind: KindRoll}

// EndMove is the single KindEnd move.
var EndMove = Move{Kind: KindEnd}

// String renders the move in the wire format used by encode/decode:
// Roll, End, Place(xYPPV), or SetRoll(a,b,c,d).
func (m Move) String() string {
	switch m.Kind {
	case KindPlace:
		return fmt.Sprintf("Place(%s)", m.Placement.Encode())
	case KindSetRoll:
		return fmt.Sprintf("SetRoll(%s)", m.Roll.String())
	case KindRoll:
		return "Roll"
	case KindEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Equal reports whether two moves carry the same kind and payload.
func (m Move) Equal(other Move) bool {
	if m.Kind != other.Kind {
		return false
	}
	switch m.Kind {
	case KindPlace:
		return m.Placement == other.Placement
	case KindSetRoll:
		return m.Roll == other.Roll
	default:
		return true
	}
}
