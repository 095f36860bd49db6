package mcts

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/heuristics"
	"github.com/zachbeta/railroad-ink-mcts/pkg/prng"
)

// Tree drives repeated search iterations over a game position, holding the
// root edge plus everything a selection/rollout step needs: the base
// exploration weights, the pluggable evaluator, and a per-iteration
// deterministic PRNG seed (SPEC_FULL.md §4.F, DESIGN.md Open Question 5).
type Tree struct {
	game      *game.Game
	Root      *Edge
	Weights   *config.Weights
	Evaluator heuristics.Evaluator
	Logger    zerolog.Logger

	seed [8]byte
}

// New builds a Tree rooted at a clone of g, seeded by the given 8 bytes.
// The root edge is a placeholder (Move zero value) exactly as
// original_source's Edge::default: its own Move is never consulted, only
// its child/chance sub-tree.
func New(g *game.Game, w *config.Weights, evaluator heuristics.Evaluator, seed [8]byte) *Tree {
	return &Tree{
		game:      g.Clone(),
		Root:      newEdge(game.Move{}),
		Weights:   w,
		Evaluator: evaluator,
		Logger:    zerolog.Nop(),
		seed:      seed,
	}
}

// Search runs a single MCTS iteration: the per-iteration seed is advanced by
// running it back through split-mix before deriving the iteration's rollout
// RNG, matching original_source's `self.seed = SplitMix64::from_seed(seed).gen()`.
func (t *Tree) Search() error {
	next := prng.NewSplitMix64(t.seed).Next()
	var nextSeed [8]byte
	for i := 0; i < 8; i++ {
		nextSeed[i] = byte(next >> (8 * (7 - i)))
	}
	t.seed = nextSeed
	rng := prng.NewSplitMix64(t.seed)

	_, err := t.selectEdge(t.Root, t.game.Clone(), &rng)
	return err
}

// SearchIterations runs n iterations, stopping early if ctx is cancelled.
func (t *Tree) SearchIterations(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := t.Search(); err != nil {
			if errors.Is(err, ErrTreeInvariant) {
				t.Logger.Warn().Err(err).Msg("tree invariant violation, discarding subtree")
				t.Root = newEdge(game.Move{})
				continue
			}
			return err
		}
	}
	return nil
}

// SearchDuration runs iterations until d elapses or ctx is cancelled.
func (t *Tree) SearchDuration(ctx context.Context, d time.Duration) error {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := t.Search(); err != nil {
			if errors.Is(err, ErrTreeInvariant) {
				t.Logger.Warn().Err(err).Msg("tree invariant violation, discarding subtree")
				t.Root = newEdge(game.Move{})
				continue
			}
			return err
		}
	}
	return nil
}

// selectEdge performs one recursive selection/expansion/rollout/backprop
// step starting at e, given g is the game position e represents a move out
// of (e's own move has already been applied to g by the caller, except for
// the root edge where g is the tree's current position).
func (t *Tree) selectEdge(e *Edge, g *game.Game, rng *prng.SplitMix64) (float64, error) {
	if e.Visits == 0 {
		return t.expand(e, g, rng)
	}

	generateChildren := e.Visits == 1 || g.Turn == 0

	var node *Node
	if e.isChance() {
		// The caller has already applied Roll to g, so the realized roll is
		// g.ToPlace; it is read back here rather than drawn again.
		if len(g.ToPlace) != 4 {
			return 0, errors.Wrap(ErrTreeInvariant, "chance edge reached without a fresh roll")
		}
		roll := game.NewRoll([4]uint8{g.ToPlace[0], g.ToPlace[1], g.ToPlace[2], g.ToPlace[3]})
		if e.chance == nil {
			e.chance = make(map[game.Roll]*Node)
		}
		child, ok := e.chance[roll]
		if !ok {
			child = &Node{}
			e.chance[roll] = child
			generateChildren = true
		}
		node = child
	} else {
		if e.child == nil {
			e.child = &Node{}
		}
		node = e.child
	}

	if generateChildren {
		moves := g.GenerateMoves()
		node.Children = make([]*Edge, len(moves))
		for i, mv := range moves {
			node.Children[i] = newEdge(mv)
		}
	}

	if node.IsTerminal {
		e.Visits++
		node.Visits++
		node.TotalScore += e.MeanScore
		return e.MeanScore, nil
	}

	if len(node.Children) == 0 {
		return 0, errors.Wrap(ErrTreeInvariant, "node has no legal moves")
	}

	bestIndex, err := t.selectBestChild(node, e.Visits, g)
	if err != nil {
		return 0, err
	}

	child := node.Children[bestIndex]
	if err := g.DoMove(child.Move); err != nil {
		return 0, errors.Wrap(err, "applying selected child move")
	}
	turn := g.Turn

	result, err := t.selectEdge(child, g, rng)
	if err != nil {
		return 0, err
	}

	e.Visits++
	node.Visits++
	node.TotalScore += result
	e.MeanScore = node.TotalScore / float64(e.Visits)
	// Keyed by e.Move (the move that led into this subtree), not child.Move,
	// matching original_source's `heuristics.update(turn, self.mv, result)`.
	if e.Move.Kind != game.KindSetRoll {
		t.Evaluator.Update(turn, e.Move, result)
	}
	return result, nil
}

// selectBestChild applies the pruning rule from original_source (keep the
// top alpha*ln(n), floor prune_minimum_node_count, nodes by exploration
// value; mark the rest pruned) and returns the index of the best
// unpruned child, breaking ties by strict `>` so the first-seen maximal
// child wins (DESIGN.md Open Question 3).
func (t *Tree) selectBestChild(node *Node, parentVisits uint64, g *game.Game) (int, error) {
	n := len(node.Children)
	minimum := float64(t.Weights.PruneMinimumNodeCount)
	remaining := int(math.Ceil(math.Max(t.Weights.PruneAlpha*math.Log(float64(n)), minimum)))

	type scored = struct {
		index int
		value float64
	}
	values := make([]scored, 0, n)
	for i, edge := range node.Children {
		if edge.Pruned {
			continue
		}
		values = append(values, scored{i, t.explorationValue(edge, parentVisits, g)})
	}
	if len(values) == 0 {
		return 0, errors.Wrap(ErrTreeInvariant, "all children pruned")
	}

	if n > remaining && len(values) > remaining {
		sortDescendingStable(values)
		for _, v := range values[remaining:] {
			node.Children[v.index].Pruned = true
		}
		return values[0].index, nil
	}

	best := values[0]
	for _, v := range values[1:] {
		if v.value > best.value {
			best = v
		}
	}
	return best.index, nil
}

func sortDescendingStable(values []struct {
	index int
	value float64
}) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j].value > values[j-1].value; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
}

// explorationValue computes the UCB-with-blended-prior selection value for
// edge, transcribed from original_source's
// Heuristics::get_exploration_value.
func (t *Tree) explorationValue(e *Edge, parentVisits uint64, g *game.Game) float64 {
	turn := g.Turn
	ucb := e.MeanScore

	if turn >= 7 {
		return ucb
	}

	var exploration float64
	if e.Visits == 0 {
		exploration = t.Weights.UnexploredPriorAt(turn)
	} else {
		exploration = math.Sqrt(math.Log(float64(parentVisits) / float64(e.Visits)))
	}

	explorationTerm := t.Weights.ExplorationBiasAt(turn)*exploration + specialCost(t.Weights, turn, e.Move)

	if !e.hasHeuristic {
		prior := t.Evaluator.Prior(g, e.Move)
		e.heuristicValue = &prior
		e.hasHeuristic = true
	}

	k := t.Evaluator.K()
	n := float64(e.Visits)
	beta := math.Sqrt(k / (3*n + k))
	q := (1-beta)*ucb + beta*(*e.heuristicValue)

	return q + explorationTerm
}

func specialCost(w *config.Weights, turn uint8, mv game.Move) float64 {
	if game.SpecialCostApplies(turn, mv) {
		return w.SpecialCostAt(turn)
	}
	return 0
}

// expand runs the rollout for a freshly-visited edge, materializing either a
// single deterministic child or an empty chance-node map depending on the
// move kind.
func (t *Tree) expand(e *Edge, g *game.Game, rng *prng.SplitMix64) (float64, error) {
	if e.isChance() {
		e.Visits = 1
		e.chance = make(map[game.Roll]*Node)
		score, _, err := t.rollout(g, 0, rng)
		if err != nil {
			return 0, err
		}
		e.MeanScore = score
		return score, nil
	}

	score, isTerminal, err := t.rollout(g, 0, rng)
	if err != nil {
		return 0, err
	}
	e.Visits = 1
	e.MeanScore = score
	e.child = &Node{TotalScore: score, IsTerminal: isTerminal}
	return score, nil
}

// rollout plays uniformly-random legal moves until the game ends, returning
// the resulting board score and whether the rollout terminated at depth
// zero (i.e. the position passed in was already over).
func (t *Tree) rollout(g *game.Game, depth int, rng *prng.SplitMix64) (float64, bool, error) {
	if g.Ended {
		return float64(g.Board.Score()), depth == 0, nil
	}

	moves := g.GenerateMoves()
	if len(moves) == 0 {
		return 0, false, errors.Wrap(ErrRolloutDeadEnd, "no legal moves during rollout")
	}
	mv := moves[rng.Intn(len(moves))]

	if err := g.DoMove(mv); err != nil {
		return 0, false, errors.Wrap(err, "applying rollout move")
	}
	turn := g.Turn

	score, isTerminal, err := t.rollout(g, depth+1, rng)
	if err != nil {
		return 0, false, err
	}
	t.Evaluator.Update(turn, mv, score)
	return score, isTerminal, nil
}

// CalculateDepth walks the tree, always descending into the most-visited
// child, and reports how many levels deep that path goes.
func (t *Tree) CalculateDepth() int {
	depth := 0
	edge := t.Root
	for {
		var node *Node
		if edge.isChance() {
			var best *Node
			var bestVisits uint64
			for _, n := range edge.chance {
				if best == nil || n.Visits > bestVisits {
					best = n
					bestVisits = n.Visits
				}
			}
			node = best
		} else {
			node = edge.child
		}
		if node == nil || len(node.Children) == 0 {
			break
		}
		best := node.Children[0]
		for _, c := range node.Children[1:] {
			if c.Visits > best.Visits {
				best = c
			}
		}
		edge = best
		depth++
	}
	return depth
}

// BestMove returns the most-visited legal move from the current root
// position, falling back to a uniformly-random legal move if the root has
// not been expanded or its best child was never visited.
func (t *Tree) BestMove(rng *prng.SplitMix64) (game.Move, error) {
	if t.Root.child == nil && t.Root.chance == nil {
		return t.randomMove(rng)
	}
	if t.Root.isChance() {
		return game.RollMove, nil
	}

	node := t.Root.child
	var best *Edge
	for _, edge := range node.Children {
		if edge.Visits == 0 {
			continue
		}
		if best == nil || edge.Visits > best.Visits {
			best = edge
		}
	}
	if best != nil {
		return best.Move, nil
	}
	return t.randomMove(rng)
}

func (t *Tree) randomMove(rng *prng.SplitMix64) (game.Move, error) {
	moves := t.game.GenerateMoves()
	if len(moves) == 0 {
		return game.EndMove, nil
	}
	return moves[rng.Intn(len(moves))], nil
}
