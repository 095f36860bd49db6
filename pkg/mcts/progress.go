package mcts

import (
	"github.com/pkg/errors"

	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

// Progress commits mv to the tree's game and reuses whichever sub-tree
// already explored that move, discarding the rest. Ported from
// original_source's MonteCarloTree::progress, including the chance-subtree
// promotion for Roll/SetRoll moves (DESIGN.md Open Question 6): a
// Move::Roll commit promotes the chance child keyed by the game's
// newly-realized ToPlace, and a Move::SetRoll commit promotes the child
// keyed by its own explicit roll.
func (t *Tree) Progress(mv game.Move) error {
	if err := t.game.DoMove(mv); err != nil {
		return errors.Wrap(err, "applying committed move")
	}

	moveToMatch := mv
	if mv.Kind == game.KindSetRoll {
		moveToMatch = game.RollMove
	}

	if t.Root.child == nil {
		t.Root = newEdge(game.Move{})
		return nil
	}
	node := t.Root.child

	matchIndex := -1
	for i, child := range node.Children {
		if child.Move.Equal(moveToMatch) {
			matchIndex = i
			break
		}
	}
	if matchIndex < 0 {
		t.Root = newEdge(game.Move{})
		return nil
	}
	next := node.Children[matchIndex]

	if next.child == nil && next.chance == nil {
		t.Root = newEdge(game.Move{})
		return nil
	}
	if next.chance == nil {
		t.Root = next
		return nil
	}

	var roll game.Roll
	switch mv.Kind {
	case game.KindSetRoll:
		roll = mv.Roll
	case game.KindRoll:
		if len(t.game.ToPlace) != 4 {
			t.Root = newEdge(game.Move{})
			return nil
		}
		roll = game.NewRoll([4]uint8{t.game.ToPlace[0], t.game.ToPlace[1], t.game.ToPlace[2], t.game.ToPlace[3]})
	default:
		return errors.Wrap(ErrProgressMismatch, "cannot progress into a chance sub-tree with a non-roll move")
	}

	promoted, ok := next.chance[roll]
	if !ok {
		t.Root = newEdge(game.Move{})
		return nil
	}
	meanScore := 0.0
	if promoted.Visits > 0 {
		meanScore = promoted.TotalScore / float64(promoted.Visits)
	}
	t.Root = &Edge{
		Move:      game.SetRollMove(roll),
		Visits:    promoted.Visits,
		MeanScore: meanScore,
		child:     promoted,
	}
	return nil
}
