package game

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/board"
	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

// ConnectsToExit reports whether placement's edge lies on an exit stub and
// carries the matching connection type (SPEC_FULL.md §4.D Weighted feature
// "connects_to_exit").
func ConnectsToExit(b *board.Board, p board.Placement) bool {
	if !p.Square.IsBorder() {
		return false
	}
	for _, d := range board.Directions {
		con := p.Connection(d)
		if con == board.None {
			continue
		}
		neighbor := p.Square.Neighbor(d)
		if !neighbor.OutOfBounds() {
			continue
		}
		if board.IsExitStub(p.Square, d, con) {
			return true
		}
	}
	return false
}

// ConnectsToOtherPiece reports whether placement has at least two in-bounds
// neighbor sides whose connection matches an already-placed neighbor's
// opposite side ("connects_to_other_piece").
func ConnectsToOtherPiece(b *board.Board, p board.Placement) bool {
	matches := 0
	for _, d := range board.Directions {
		con := p.Connection(d)
		if con == board.None {
			continue
		}
		neighbor := p.Square.Neighbor(d)
		if neighbor.OutOfBounds() {
			continue
		}
		existing, ok := b.Get(neighbor)
		if !ok {
			continue
		}
		if existing.HasConnection(d.Inverse(), con) {
			matches++
		}
	}
	return matches >= 2
}

// LocksOutOtherPiece is the one-step-lookahead approximation named in
// SPEC_FULL.md §9 Open Questions: after placing, does any empty neighbor
// square carry a frontier obligation such that no piece remaining in this
// turn's dice pool has a legal placement on that square? Deliberately simple, per the
// original's own approximate check.
func (g *Game) LocksOutOtherPiece(mv Move) bool {
	if mv.Kind != KindPlace {
		return false
	}

	clone := g.Clone()
	square := mv.Placement.Square

	var neighbors []board.Square
	for _, d := range board.Directions {
		n := square.Neighbor(d)
		if !n.OutOfBounds() {
			neighbors = append(neighbors, n)
		}
	}

	if _, err := clone.Place(mv.Placement); err != nil {
		return false
	}

	remaining := make([]uint8, 0, len(clone.ToPlace))
	for _, p := range clone.ToPlace {
		remaining = append(remaining, p)
	}

	for _, n := range neighbors {
		if _, occupied := clone.Board.Get(n); occupied {
			continue
		}
		if _, ok := clone.Board.Frontier()[n]; !ok {
			continue
		}
		satisfiable := false
		for _, piece := range remaining {
			for _, placement := range clone.Board.FindPossible(piece) {
				if placement.Square == n {
					satisfiable = true
					break
				}
			}
			if satisfiable {
				break
			}
		}
		if !satisfiable {
			return true
		}
	}
	return false
}

// gridDistance returns the shortest orthogonal-adjacency distance (in board
// steps, not track connections) from `from` to the nearest occupied square,
// or -1 if no occupied square lies within three steps (including when the
// board has no placements).
func gridDistance(b *board.Board, from board.Square) int {
	if len(b.Placements()) == 0 {
		return -1
	}

	type item struct {
		square board.Square
		dist   int
	}
	visited := map[board.Square]bool{from: true}
	queue := []item{{from, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.dist > 0 {
			if _, ok := b.Get(cur.square); ok {
				return cur.dist
			}
		}
		if cur.dist >= 3 {
			continue
		}
		for _, d := range board.Directions {
			n := cur.square.Neighbor(d)
			if n.OutOfBounds() || visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, item{n, cur.dist + 1})
		}
	}
	return -1
}

// IsSecondOrderNeighbor reports whether placement's square is exactly
// grid-distance 2 from the nearest occupied square.
func IsSecondOrderNeighbor(b *board.Board, p board.Placement) bool {
	return gridDistance(b, p.Square) == 2
}

// IsThirdOrderNeighbor reports whether placement's square is exactly
// grid-distance 3 from the nearest occupied square.
func IsThirdOrderNeighbor(b *board.Board, p board.Placement) bool {
	return gridDistance(b, p.Square) == 3
}

// SpecialCostApplies reports whether the per-turn special-tile cost term
// applies to a move at the given turn: the move places a special piece and
// it is not the final turn (SPEC_FULL.md §4.D).
func SpecialCostApplies(turn uint8, mv Move) bool {
	return turn < 7 && mv.Kind == KindPlace && pieces.IsSpecial(mv.Placement.Piece)
}
