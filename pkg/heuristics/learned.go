package heuristics

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/neural"
)

// Learned wraps a gonum-backed regressor, predicting a scalar (board, move)
// score in place of the hand-weighted feature sum, mirroring the original's
// move_nn field (SPEC_FULL.md §4.D.3).
type Learned struct {
	regressor *neural.Regressor
}

// NewLearned builds a Learned evaluator backed by r.
func NewLearned(r *neural.Regressor) *Learned {
	return &Learned{regressor: r}
}

func (h *Learned) Prior(g *game.Game, mv game.Move) float64 {
	return h.regressor.Predict(neural.EncodeFeatures(g, mv))
}

// SelectRolloutMove uses the same regressor prediction as tree selection:
// unlike RAVE, the original's get_move_estimation nn branch is live, so
// rollout policy and tree-selection prior agree when a learned regressor
// is configured.
func (h *Learned) SelectRolloutMove(g *game.Game, moves []game.Move) game.Move {
	return selectByScore(g, moves, func(mv game.Move) float64 {
		return h.regressor.Predict(neural.EncodeFeatures(g, mv))
	})
}

func (h *Learned) Update(turn uint8, mv game.Move, score float64) {}

func (h *Learned) K() float64 { return 5 }
