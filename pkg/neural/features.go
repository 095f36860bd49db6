package neural

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/board"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

// cellFeatures is the per-cell slice of the encoding: for each of the four
// sides (North, East, South, West) a road flag, a rail flag and its own copy
// of the is-current-cell flag, giving 4*3 = 12 (SPEC_FULL.md §6).
const cellFeatures = 12

// globalFeatures is the count of board/move-level features appended after
// the 49 per-cell blocks (SPEC_FULL.md §6): connects_to_exit,
// connects_to_other_piece/4 (connection-count), locks_out_other_piece,
// is_2nd_order_neighbor, is_3rd_order_neighbor, is_optional, fill_ratio.
const globalFeatures = 7

// EncodeFeatures renders (g, mv) as the FeatureSize-dimension vector
// consumed by Regressor.Predict, mirroring the per-cell/per-feature
// predicates already used by the Weighted evaluator
// (pkg/game/features.go) so both strategies agree on what each signal
// means.
func EncodeFeatures(g *game.Game, mv game.Move) []float64 {
	features := make([]float64, FeatureSize)

	b := g.Board
	if mv.Kind == game.KindPlace {
		b = g.Board.Clone()
		b.Place(mv.Placement)
	}

	for raw := 0; raw < board.Size*board.Size; raw++ {
		sq := board.NewSquare(uint8(raw%board.Size), uint8(raw/board.Size))
		base := raw * cellFeatures

		placement, occupied := b.Get(sq)
		isCurrent := mv.Kind == game.KindPlace && mv.Placement.Square == sq

		for sideIndex, d := range board.Directions {
			offset := base + sideIndex*3
			if occupied {
				con := placement.Connection(d)
				if con == board.Road {
					features[offset] = 1
				} else if con == board.Rail {
					features[offset+1] = 1
				}
			}
			if isCurrent {
				con := mv.Placement.Connection(d)
				if con == board.Road {
					features[offset] = 1
				} else if con == board.Rail {
					features[offset+1] = 1
				}
			}
			if isCurrent {
				features[offset+2] = 1
			}
		}
	}

	globalBase := 49 * cellFeatures
	if mv.Kind == game.KindPlace {
		if game.ConnectsToExit(g.Board, mv.Placement) {
			features[globalBase] = 1
		}
		connectionCount := 0
		for _, d := range board.Directions {
			con := mv.Placement.Connection(d)
			if con == board.None {
				continue
			}
			neighbor := mv.Placement.Square.Neighbor(d)
			if neighbor.OutOfBounds() {
				continue
			}
			if existing, ok := g.Board.Get(neighbor); ok && existing.HasConnection(d.Inverse(), con) {
				connectionCount++
			}
		}
		features[globalBase+1] = float64(connectionCount) / 4.0
		if g.LocksOutOtherPiece(mv) {
			features[globalBase+2] = 1
		}
		if game.IsSecondOrderNeighbor(g.Board, mv.Placement) {
			features[globalBase+3] = 1
		}
		if game.IsThirdOrderNeighbor(g.Board, mv.Placement) {
			features[globalBase+4] = 1
		}
		features[globalBase+5] = isOptionalFeature(mv)
	}
	features[globalBase+6] = float64(len(g.Board.Placements())) / float64(board.Size*board.Size)

	return features
}

func isOptionalFeature(mv game.Move) float64 {
	if mv.Kind != game.KindPlace {
		return 0
	}
	if pieces.IsOptional(mv.Placement.Piece) {
		return 1
	}
	return 0
}
