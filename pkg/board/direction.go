package board

import "github.com/zachbeta/railroad-ink-mcts/pkg/pieces"

// Direction and Connection are board-level aliases of the piece-catalog
// types: a board's frontier obligations and a piece's edge connections are
// the same concept viewed from either side of a placement.
type Direction = pieces.Direction
type Connection = pieces.Connection

const (
	North = pieces.North
	East  = pieces.East
	South = pieces.South
	West  = pieces.West
)

const (
	None = pieces.None
	Road = pieces.Road
	Rail = pieces.Rail
)

// Directions enumerates all four directions, standing in for Rust's
// `Direction::iter()`.
var Directions = pieces.Directions
