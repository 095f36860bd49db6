// Package harness runs many independent self-play games concurrently,
// collecting final scores and optionally a training data set, grounded in
// original_source's trainer::run/play/generate_training_data (one thread
// per concurrent game) but using an errgroup worker pool instead of
// unbounded thread spawning (SPEC_FULL.md §4.G, §5).
package harness

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/heuristics"
	"github.com/zachbeta/railroad-ink-mcts/pkg/mcts"
	"github.com/zachbeta/railroad-ink-mcts/pkg/prng"
)

// TrainingRow is one recorded (board, chosen move) pair, stamped with the
// final game score once the game that produced it has ended. Mirrors the
// CSV row original_source's generate_training_data appends:
// "board,mv,score".
type TrainingRow struct {
	BoardEncoding string
	Move          string
	Score         int
}

// TrainingSink accepts completed rows. Implementations must be safe for
// concurrent use: workers call Append from separate goroutines.
type TrainingSink interface {
	Append(row TrainingRow) error
}

// Config describes one parallel self-play run.
type Config struct {
	Workers        int
	GamesPerWorker int
	SearchDuration time.Duration
	Weights        *config.Weights
	// NewEvaluator builds a fresh Evaluator per game: RAVE's table is
	// per-game state and must never be shared across concurrent games.
	NewEvaluator func() heuristics.Evaluator
	// Sink receives every move of every game, or nil to skip recording.
	Sink   TrainingSink
	Logger zerolog.Logger
}

// WorkerResult is one worker's outcome: the scores of every game it
// completed, plus an error if it stopped early. A worker's failure never
// cancels its siblings (SPEC_FULL.md §5): each goroutine's error is
// captured here, not propagated through errgroup's shared Wait().
type WorkerResult struct {
	WorkerIndex int
	Scores      []int
	Err         error
}

// Run launches cfg.Workers goroutines, each playing cfg.GamesPerWorker
// games seeded deterministically from rootSeed via prng.DeriveSeed, and
// returns one WorkerResult per worker once all have finished or ctx is
// cancelled.
func Run(ctx context.Context, rootSeed [8]byte, cfg Config) []WorkerResult {
	results := make([]WorkerResult, cfg.Workers)

	var g errgroup.Group
	for worker := 0; worker < cfg.Workers; worker++ {
		worker := worker
		g.Go(func() error {
			results[worker] = runWorker(ctx, rootSeed, worker, cfg)
			// Always return nil: errgroup's default Wait() propagates the
			// first non-nil error and, with WithContext, cancels every other
			// in-flight goroutine. A single worker's playout failure should
			// not abort its siblings, so failures are surfaced only through
			// results[worker].Err, never through the group's own error.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runWorker(ctx context.Context, rootSeed [8]byte, workerIndex int, cfg Config) WorkerResult {
	seed := prng.DeriveSeed(rootSeed, workerIndex)
	rng := prng.NewSplitMix64(seed)
	result := WorkerResult{WorkerIndex: workerIndex}

	for i := 0; i < cfg.GamesPerWorker; i++ {
		select {
		case <-ctx.Done():
			result.Err = ctx.Err()
			return result
		default:
		}

		gameSeed := nextSeed(&rng)
		mctsSeed := nextSeed(&rng)

		score, err := playOne(ctx, gameSeed, mctsSeed, cfg)
		if err != nil {
			cfg.Logger.Warn().Err(err).Int("worker", workerIndex).Int("game", i).Msg("self-play game failed")
			result.Err = err
			return result
		}
		result.Scores = append(result.Scores, score)
	}
	return result
}

func playOne(ctx context.Context, gameSeed, mctsSeed [8]byte, cfg Config) (int, error) {
	g := game.New(gameSeed)
	tree := mcts.New(g, cfg.Weights, cfg.NewEvaluator(), mctsSeed)
	fallback := prng.NewSplitMix64(mctsSeed)

	var rows []TrainingRow
	for !g.Ended {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if err := tree.SearchDuration(ctx, cfg.SearchDuration); err != nil {
			return 0, err
		}
		mv, err := tree.BestMove(&fallback)
		if err != nil {
			return 0, err
		}

		if cfg.Sink != nil {
			rows = append(rows, TrainingRow{BoardEncoding: g.Board.Encode(), Move: mv.String()})
		}

		if err := tree.Progress(mv); err != nil {
			return 0, err
		}
		if err := g.DoMove(mv); err != nil {
			return 0, err
		}
	}

	score := g.Board.Score()
	if cfg.Sink != nil {
		for _, row := range rows {
			row.Score = score
			if err := cfg.Sink.Append(row); err != nil {
				return score, err
			}
		}
	}
	return score, nil
}

// nextSeed draws eight deterministic bytes from rng, advancing its state.
func nextSeed(rng *prng.SplitMix64) [8]byte {
	value := rng.Next()
	var seed [8]byte
	for i := 0; i < 8; i++ {
		seed[i] = byte(value >> (8 * (7 - i)))
	}
	return seed
}
