package mcts

import "github.com/pkg/errors"

// ErrTreeInvariant is returned when a search step finds a node with zero
// legal moves where the state machine guarantees at least one (e.g. End is
// always legal). Recovered by discarding the sub-tree and retrying from a
// fresh root, per SPEC_FULL.md §7 — never panics.
var ErrTreeInvariant = errors.New("railroad-ink mcts: tree invariant violation")

// ErrRolloutDeadEnd is returned if a rollout cannot find any legal move from
// a non-terminal position, which the game state machine should never
// produce (End is always available).
var ErrRolloutDeadEnd = errors.New("railroad-ink mcts: rollout found no legal move")

// ErrProgressMismatch is returned by Progress when the matched child is a
// chance sub-tree but mv is neither Roll nor SetRoll. A move that matches no
// child of the current root is not an error: Progress resets to a fresh root.
var ErrProgressMismatch = errors.New("railroad-ink mcts: move does not match root's tree shape")
