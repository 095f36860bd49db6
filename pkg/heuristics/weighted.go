package heuristics

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

// Weighted is the hand-tuned feature-sum strategy: special-piece cost,
// connects-to-exit, connects-to-other-piece, locks-out-other-piece, and
// 2nd/3rd-order-neighbor bonuses, each scaled per turn by config.Weights.
type Weighted struct {
	weights *config.Weights
}

// NewWeighted builds a Weighted evaluator backed by w.
func NewWeighted(w *config.Weights) *Weighted {
	return &Weighted{weights: w}
}

func (h *Weighted) Prior(g *game.Game, mv game.Move) float64 {
	return weightedScore(h.weights, g, mv)
}

func (h *Weighted) SelectRolloutMove(g *game.Game, moves []game.Move) game.Move {
	return selectByScore(g, moves, func(mv game.Move) float64 {
		return weightedScore(h.weights, g, mv)
	})
}

func (h *Weighted) Update(turn uint8, mv game.Move, score float64) {}

func (h *Weighted) K() float64 { return 1 }
