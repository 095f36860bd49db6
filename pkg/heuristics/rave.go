package heuristics

import (
	"math"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

// raveKey identifies a local rapid-action-value entry: a (turn, move) pair,
// since the same move string can mean something different depending on
// when in the game it's played.
type raveKey struct {
	turn uint8
	move string
}

type raveValue struct {
	visits     uint64
	totalScore float64
}

func (v raveValue) mean() float64 {
	if v.visits == 0 {
		return 0
	}
	return v.totalScore / float64(v.visits)
}

// RAVE is the local rapid-action-value strategy, transcribed from
// original_source's rave::Rave: a per-(turn, move) running mean updated
// after every completed rollout along the search path.
type RAVE struct {
	weights         *config.Weights
	jitter          float64
	explorationBias float64
	local           map[raveKey]raveValue
}

// NewRAVE builds an empty RAVE table with the original's default constants
// (rave_jitter=0.5, rave_exploration_bias=18.0).
func NewRAVE(w *config.Weights) *RAVE {
	return &RAVE{
		weights:         w,
		jitter:          0.5,
		explorationBias: 18.0,
		local:           make(map[raveKey]raveValue),
	}
}

// Prior returns the stored local-RAVE mean plus the exploration bias, or
// +Inf for a (turn, move) pair never previously seen: an unseen move should
// dominate the UCB blend exactly as an explicitly unexplored edge would,
// mirroring the original's f64::MAX sentinel in Rave::get_rave.
func (h *RAVE) Prior(g *game.Game, mv game.Move) float64 {
	key := raveKey{turn: g.Turn, move: mv.String()}
	v, ok := h.local[key]
	if !ok {
		return math.Inf(1)
	}
	return v.mean() + h.explorationBias
}

// SelectRolloutMove falls back to the plain weighted-feature sum: the
// original's get_move_estimation never actually consults rave values (its
// rave branch is commented out there), so rollout policy is identical to
// the Weighted strategy's even when RAVE drives tree selection.
func (h *RAVE) SelectRolloutMove(g *game.Game, moves []game.Move) game.Move {
	return selectByScore(g, moves, func(mv game.Move) float64 {
		return weightedScore(h.weights, g, mv)
	})
}

func (h *RAVE) Update(turn uint8, mv game.Move, score float64) {
	key := raveKey{turn: turn, move: mv.String()}
	v := h.local[key]
	v.visits++
	v.totalScore += score
	h.local[key] = v
}

func (h *RAVE) K() float64 { return 1 }
