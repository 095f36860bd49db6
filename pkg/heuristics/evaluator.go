// Package heuristics supplies the pluggable prior strategies the search
// driver blends into its UCB selection formula: a hand-weighted feature
// sum, a local RAVE table, and a gonum-backed learned regressor
// (SPEC_FULL.md §4.D).
package heuristics

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

// Evaluator is the strategy interface the search driver blends into its
// exploration formula: q = (1-beta)*mean_score + beta*Prior, beta =
// sqrt(K/(3*visits+K)).
type Evaluator interface {
	// Prior returns the strategy's point estimate of mv's value, blended
	// into tree selection.
	Prior(g *game.Game, mv game.Move) float64
	// SelectRolloutMove picks the rollout policy's preferred move among the
	// legal moves available in g.
	SelectRolloutMove(g *game.Game, moves []game.Move) game.Move
	// Update records the outcome of a completed game along the search path.
	// A no-op for strategies that do not learn online.
	Update(turn uint8, mv game.Move, score float64)
	// K is the strategy's blend-sharpness constant.
	K() float64
}

// weightedScore sums the Weighted feature terms for mv at the game's
// current turn, transcribed from original_source's
// Heuristics::get_move_estimation weighted-sum branch. Both the Weighted
// and RAVE strategies use this as their rollout policy value: the
// original's rave branch inside get_move_estimation is commented out, so
// rollout always falls back to the plain weighted sum regardless of which
// tree-selection strategy is active.
func weightedScore(w *config.Weights, g *game.Game, mv game.Move) float64 {
	if mv.Kind != game.KindPlace {
		return 0
	}
	turn := g.Turn

	score := w.SpecialCostAt(turn) * specialIndicator(turn, mv)
	if game.ConnectsToExit(g.Board, mv.Placement) {
		score += w.PieceConnectsToExitAt(turn)
	}
	if game.ConnectsToOtherPiece(g.Board, mv.Placement) {
		score += w.PieceConnectsToOtherPieceAt(turn)
	}
	if g.LocksOutOtherPiece(mv) {
		score += w.PieceLocksOutOtherPieceAt(turn)
	}
	if game.IsSecondOrderNeighbor(g.Board, mv.Placement) {
		score += w.PieceIs2ndOrderNeighborAt(turn)
	}
	if game.IsThirdOrderNeighbor(g.Board, mv.Placement) {
		score += w.PieceIs3rdOrderNeighborAt(turn)
	}
	return score
}

func specialIndicator(turn uint8, mv game.Move) float64 {
	if game.SpecialCostApplies(turn, mv) {
		return 1
	}
	return 0
}

func selectByScore(g *game.Game, moves []game.Move, score func(game.Move) float64) game.Move {
	best := moves[0]
	bestScore := score(best)
	for _, mv := range moves[1:] {
		if s := score(mv); s > bestScore {
			best = mv
			bestScore = s
		}
	}
	return best
}
