// Package config loads the evaluator weight document described in
// SPEC_FULL.md §6: one JSON file holding per-turn arrays for the base
// exploration terms (shared by every evaluator strategy) and the
// Weighted-features strategy's own per-feature weights.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Turns is the number of play turns (1..=7); index 0 of every array below
// corresponds to turn 1.
const Turns = 7

// Weights is the recognized JSON document of SPEC_FULL.md §6. Arrays are
// indexed by turn-1 (turn ranges 1..=7).
type Weights struct {
	UnexploredValue           [Turns]float64 `json:"unexplored_value"`
	ExplorationVariables      [Turns]float64 `json:"exploration_variables"`
	SpecialCost               [Turns]float64 `json:"special_cost"`
	PieceConnectsToExit       [Turns]float64 `json:"piece_connects_to_exit"`
	PieceConnectsToOtherPiece [Turns]float64 `json:"piece_connects_to_other_piece"`
	PieceLocksOutOtherPiece   [Turns]float64 `json:"piece_locks_out_other_piece"`
	PieceIs2ndOrderNeighbor   [Turns]float64 `json:"piece_is_2nd_order_neighbor"`
	PieceIs3rdOrderNeighbor   [Turns]float64 `json:"piece_is_3rd_order_neighbor"`

	PruneMinimumNodeCount int     `json:"prune_minimum_node_count"`
	PruneAlpha            float64 `json:"prune_alpha"`

	// Model names a filesystem path to a gonum-backed regressor weight file
	// (pkg/neural.LoadRegressor), or is empty when no learned regressor is
	// configured.
	Model string `json:"model,omitempty"`
}

// turnIndex converts a 1..=7 turn counter to a 0-based array index, clamping
// turn 0 (the pre-roll state, never actually evaluated) to index 0.
func turnIndex(turn uint8) int {
	if turn == 0 {
		return 0
	}
	if int(turn) > Turns {
		return Turns - 1
	}
	return int(turn) - 1
}

// ExplorationBiasAt returns exploration_variables[turn], the `c` term of
// SPEC_FULL.md §4.D's UCB exploration formula.
func (w *Weights) ExplorationBiasAt(turn uint8) float64 {
	return w.ExplorationVariables[turnIndex(turn)]
}

// UnexploredPriorAt returns unexplored_value[turn], used when an edge has
// never been visited.
func (w *Weights) UnexploredPriorAt(turn uint8) float64 {
	return w.UnexploredValue[turnIndex(turn)]
}

// SpecialCostAt returns special_cost[turn].
func (w *Weights) SpecialCostAt(turn uint8) float64 {
	return w.SpecialCost[turnIndex(turn)]
}

// PieceConnectsToExitAt returns piece_connects_to_exit[turn].
func (w *Weights) PieceConnectsToExitAt(turn uint8) float64 {
	return w.PieceConnectsToExit[turnIndex(turn)]
}

// PieceConnectsToOtherPieceAt returns piece_connects_to_other_piece[turn].
func (w *Weights) PieceConnectsToOtherPieceAt(turn uint8) float64 {
	return w.PieceConnectsToOtherPiece[turnIndex(turn)]
}

// PieceLocksOutOtherPieceAt returns piece_locks_out_other_piece[turn].
func (w *Weights) PieceLocksOutOtherPieceAt(turn uint8) float64 {
	return w.PieceLocksOutOtherPiece[turnIndex(turn)]
}

// PieceIs2ndOrderNeighborAt returns piece_is_2nd_order_neighbor[turn].
func (w *Weights) PieceIs2ndOrderNeighborAt(turn uint8) float64 {
	return w.PieceIs2ndOrderNeighbor[turnIndex(turn)]
}

// PieceIs3rdOrderNeighborAt returns piece_is_3rd_order_neighbor[turn].
func (w *Weights) PieceIs3rdOrderNeighborAt(turn uint8) float64 {
	return w.PieceIs3rdOrderNeighbor[turnIndex(turn)]
}

// Default returns the built-in weight set, transcribed from the original's
// own `Heuristics::default` constants (exploration bias 1.5 at every turn,
// special cost tapering from 9.0 to 0.0, with the spec's additional
// per-feature arrays defaulting to a flat, modest weight since the original
// has no direct analogue for them).
func Default() *Weights {
	w := &Weights{
		PruneMinimumNodeCount: 10,
		PruneAlpha:            2.0,
	}
	for i := 0; i < Turns; i++ {
		w.UnexploredValue[i] = 1000.0
		w.ExplorationVariables[i] = 1.5
		w.PieceConnectsToExit[i] = 2.0
		w.PieceConnectsToOtherPiece[i] = 1.0
		w.PieceLocksOutOtherPiece[i] = -3.0
		w.PieceIs2ndOrderNeighbor[i] = 0.5
		w.PieceIs3rdOrderNeighbor[i] = 0.25
	}
	w.SpecialCost = [Turns]float64{9.0, 8.0, 6.0, 1.0, 0.0, 0.0, 0.0}
	return w
}

// Load reads a weights JSON document from path, filling any field absent in
// the file with zero values (callers wanting defaults should start from
// Default() and overwrite with Load's result selectively, or ship a
// complete document).
func Load(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading weights file %q", path)
	}
	var w Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrapf(err, "parsing weights file %q", path)
	}
	return &w, nil
}

// Save writes w as a JSON document to path.
func (w *Weights) Save(path string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling weights")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing weights file %q", path)
	}
	return nil
}
