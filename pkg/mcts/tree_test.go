package mcts

import (
	"context"
	"testing"
	"time"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/heuristics"
	"github.com/zachbeta/railroad-ink-mcts/pkg/prng"
)

func newTestTree(t *testing.T, g *game.Game, seed [8]byte) *Tree {
	t.Helper()
	w := config.Default()
	return New(g, w, heuristics.NewWeighted(w), seed)
}

func TestSingleIterationSearch(t *testing.T) {
	g := game.New([8]byte{1, 1, 1, 1, 1, 1, 1, 1})
	tree := newTestTree(t, g, [8]byte{2, 2, 2, 2, 2, 2, 2, 2})

	if err := tree.Search(); err != nil {
		t.Fatalf("Search: %v", err)
	}
	rng := prng.NewSplitMix64([8]byte{3, 3, 3, 3, 3, 3, 3, 3})
	if _, err := tree.BestMove(&rng); err != nil {
		t.Fatalf("BestMove: %v", err)
	}
}

func TestManyIterationSearch(t *testing.T) {
	g := game.New([8]byte{4, 4, 4, 4, 4, 4, 4, 4})
	tree := newTestTree(t, g, [8]byte{5, 5, 5, 5, 5, 5, 5, 5})

	if err := tree.SearchIterations(context.Background(), 100); err != nil {
		t.Fatalf("SearchIterations: %v", err)
	}
}

// TestBuggedBoardRegression replays the original implementation's own
// regression scenario: a specific game seed and search seed combination
// that once triggered a tree invariant bug under time-bounded search.
func TestBuggedBoardRegression(t *testing.T) {
	gameSeed := [8]byte{167, 58, 224, 133, 94, 224, 76, 115}
	mctsSeed := [8]byte{75, 110, 21, 180, 122, 69, 56, 3}

	g := game.New(gameSeed)
	tree := newTestTree(t, g, mctsSeed)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tree.SearchDuration(ctx, 200*time.Millisecond); err != nil {
		t.Fatalf("SearchDuration: %v", err)
	}
}

func TestPlayRandomGamesRoundTripsEncoding(t *testing.T) {
	for i := uint64(0); i < 3; i++ {
		seed := [8]byte{0, 0, 0, 0, 0, 0, 0, byte(i)}
		g := game.New(seed)
		tree := newTestTree(t, g, seed)

		rng := prng.NewSplitMix64(seed)
		iterations := 0
		for !g.Ended && iterations < 500 {
			iterations++
			if err := tree.SearchIterations(context.Background(), 20); err != nil {
				t.Fatalf("SearchIterations: %v", err)
			}
			mv, err := tree.BestMove(&rng)
			if err != nil {
				t.Fatalf("BestMove: %v", err)
			}

			roundTripped, err := game.Decode(g.Encode())
			if err != nil {
				t.Fatalf("Decode(Encode): %v", err)
			}
			if roundTripped.Board.Encode() != g.Board.Encode() {
				t.Fatalf("board did not round trip through encode/decode")
			}

			if err := tree.Progress(mv); err != nil {
				t.Fatalf("Progress(%v): %v", mv, err)
			}
			if err := g.DoMove(mv); err != nil {
				t.Fatalf("DoMove(%v): %v", mv, err)
			}
		}
		if !g.Ended {
			t.Fatalf("game %d did not end within %d iterations", i, iterations)
		}
	}
}

func TestSeededSearchIsDeterministic(t *testing.T) {
	seed := [8]byte{0, 0, 0, 0, 0, 0, 0, 42}

	play := func() string {
		g := game.New(seed)
		tree := newTestTree(t, g, seed)
		rng := prng.NewSplitMix64(seed)
		iterations := 0
		for !g.Ended && iterations < 500 {
			iterations++
			mv, err := tree.BestMove(&rng)
			if err != nil {
				t.Fatalf("BestMove: %v", err)
			}
			if err := tree.Progress(mv); err != nil {
				t.Fatalf("Progress: %v", err)
			}
			if err := g.DoMove(mv); err != nil {
				t.Fatalf("DoMove: %v", err)
			}
		}
		return g.Encode()
	}

	a := play()
	b := play()
	if a != b {
		t.Fatalf("seeded search diverged: %q vs %q", a, b)
	}
}
