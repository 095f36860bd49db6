// Command railroad-ink drives the Monte Carlo Tree Search engine from the
// shell: "play" runs one game to completion and prints its moves, "train"
// runs a parallel self-play harness and appends training data.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
	"github.com/zachbeta/railroad-ink-mcts/pkg/harness"
	"github.com/zachbeta/railroad-ink-mcts/pkg/heuristics"
	"github.com/zachbeta/railroad-ink-mcts/pkg/mcts"
	"github.com/zachbeta/railroad-ink-mcts/pkg/neural"
	"github.com/zachbeta/railroad-ink-mcts/pkg/prng"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: railroad-ink <play|train> [flags]")
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(logger, os.Args[2:])
	case "train":
		err = runTrain(logger, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown verb %q: want play or train\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("railroad-ink exited with an error")
	}
}

func loadWeights(path string) (*config.Weights, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildEvaluator(strategy string, w *config.Weights, modelPath string) (heuristics.Evaluator, error) {
	switch strategy {
	case "", "weighted":
		return heuristics.NewWeighted(w), nil
	case "rave":
		return heuristics.NewRAVE(w), nil
	case "learned":
		if modelPath == "" {
			modelPath = w.Model
		}
		if modelPath == "" {
			return nil, errors.New("learned evaluator requires -model or a weights model entry")
		}
		regressor, err := neural.LoadRegressor(modelPath)
		if err != nil {
			return nil, err
		}
		return heuristics.NewLearned(regressor), nil
	default:
		return nil, errors.Errorf("unknown evaluator %q: want weighted, rave, or learned", strategy)
	}
}

func runPlay(logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "8-byte game/search seed, packed into a uint64")
	searchMillis := fs.Int("search-ms", 200, "search duration per move, in milliseconds")
	evaluatorName := fs.String("evaluator", "weighted", "prior strategy: weighted, rave, or learned")
	weightsPath := fs.String("weights", "", "path to a weights JSON document, or empty for defaults")
	modelPath := fs.String("model", "", "path to a learned regressor weights file (evaluator=learned only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w, err := loadWeights(*weightsPath)
	if err != nil {
		return err
	}
	evaluator, err := buildEvaluator(*evaluatorName, w, *modelPath)
	if err != nil {
		return err
	}

	var seedBytes [8]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(*seed >> (8 * (7 - i)))
	}

	g := game.New(seedBytes)
	tree := mcts.New(g, w, evaluator, seedBytes)
	tree.Logger = logger

	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()
	if err := writer.Write([]string{"turn", "board", "move"}); err != nil {
		return err
	}

	ctx := context.Background()
	duration := time.Duration(*searchMillis) * time.Millisecond
	for !g.Ended {
		if err := tree.SearchDuration(ctx, duration); err != nil {
			return err
		}
		mv, err := bestMoveWithFallback(tree, seedBytes)
		if err != nil {
			return err
		}
		if err := writer.Write([]string{fmt.Sprintf("%d", g.Turn), g.Board.Encode(), mv.String()}); err != nil {
			return err
		}
		writer.Flush()
		if err := tree.Progress(mv); err != nil {
			return err
		}
		if err := g.DoMove(mv); err != nil {
			return err
		}
	}

	logger.Info().Int("score", g.Board.Score()).Msg("game complete")
	return nil
}

func runTrain(logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "8-byte root seed, packed into a uint64")
	workers := fs.Int("workers", 4, "number of concurrent self-play workers")
	games := fs.Int("games", 10, "games per worker")
	searchMillis := fs.Int("search-ms", 200, "search duration per move, in milliseconds")
	weightsPath := fs.String("weights", "", "path to a weights JSON document, or empty for defaults")
	evaluatorName := fs.String("evaluator", "weighted", "prior strategy: weighted, rave, or learned")
	modelPath := fs.String("model", "", "path to a learned regressor weights file (evaluator=learned only)")
	outPath := fs.String("out", "", "training data CSV path, or empty to skip recording")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w, err := loadWeights(*weightsPath)
	if err != nil {
		return err
	}

	var sink harness.TrainingSink
	if *outPath != "" {
		csvSink, err := harness.NewCSVSink(*outPath)
		if err != nil {
			return err
		}
		defer csvSink.Close()
		sink = csvSink
	}

	var seedBytes [8]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(*seed >> (8 * (7 - i)))
	}

	cfg := harness.Config{
		Workers:        *workers,
		GamesPerWorker: *games,
		SearchDuration: time.Duration(*searchMillis) * time.Millisecond,
		Weights:        w,
		NewEvaluator: func() heuristics.Evaluator {
			evaluator, err := buildEvaluator(*evaluatorName, w, *modelPath)
			if err != nil {
				logger.Fatal().Err(err).Msg("could not build evaluator")
			}
			return evaluator
		},
		Sink:   sink,
		Logger: logger,
	}

	results := harness.Run(context.Background(), seedBytes, cfg)
	total, count := 0, 0
	for _, r := range results {
		if r.Err != nil {
			logger.Error().Err(r.Err).Int("worker", r.WorkerIndex).Msg("worker did not finish cleanly")
		}
		for _, score := range r.Scores {
			total += score
			count++
		}
	}
	if count > 0 {
		logger.Info().Int("games", count).Float64("mean_score", float64(total)/float64(count)).Msg("training run complete")
	}
	return nil
}

// bestMoveWithFallback derives a fallback-move RNG from seed deterministically,
// since the CLI has no long-lived per-game RNG of its own to thread through.
func bestMoveWithFallback(tree *mcts.Tree, seed [8]byte) (game.Move, error) {
	fallback := prng.NewSplitMix64(seed)
	return tree.BestMove(&fallback)
}
