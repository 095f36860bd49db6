// Package mcts implements the Monte Carlo Tree Search driver: selection,
// expansion, rollout, and backpropagation over a Railroad Ink game tree,
// with chance nodes for dice rolls and a pluggable evaluator for the
// selection formula's blended prior (SPEC_FULL.md §4.E/§4.F).
package mcts

import (
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

// Node is one position in the tree: an accumulated score, a terminal flag,
// and the set of legal moves out of it (each wrapped in an Edge). Mirrors
// original_source's mcts::Node, minus its serde-only SingleOrMultiple enum
// (modeled instead by Edge.chance being nil or not).
type Node struct {
	Visits     uint64
	TotalScore float64
	IsTerminal bool
	Children   []*Edge
}

// Edge is one legal move out of a Node, together with the sub-tree it leads
// to. A Move whose Kind is KindRoll leads to a chance node: a map keyed by
// the dice roll actually drawn, since the tree does not get to choose which
// roll it explores (chance *field below). Every other move kind leads to a
// single deterministic child (child field).
type Edge struct {
	Move      game.Move
	Visits    uint64
	MeanScore float64
	Pruned    bool

	heuristicValue *float64
	hasHeuristic   bool

	child  *Node
	chance map[game.Roll]*Node
}

// newEdge builds an unvisited edge for mv.
func newEdge(mv game.Move) *Edge {
	return &Edge{Move: mv}
}

// isChance reports whether e leads to a dice-roll chance node.
func (e *Edge) isChance() bool {
	return e.Move.Kind == game.KindRoll
}
