package harness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zachbeta/railroad-ink-mcts/pkg/config"
	"github.com/zachbeta/railroad-ink-mcts/pkg/heuristics"
)

func TestRunCompletesAllWorkersIndependently(t *testing.T) {
	w := config.Default()
	cfg := Config{
		Workers:        3,
		GamesPerWorker: 1,
		SearchDuration: 5 * time.Millisecond,
		Weights:        w,
		NewEvaluator:   func() heuristics.Evaluator { return heuristics.NewWeighted(w) },
	}

	results := Run(context.Background(), [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, cfg)
	if len(results) != cfg.Workers {
		t.Fatalf("len(results) = %d, want %d", len(results), cfg.Workers)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("worker %d failed: %v", r.WorkerIndex, r.Err)
		}
		if len(r.Scores) != cfg.GamesPerWorker {
			t.Fatalf("worker %d played %d games, want %d", r.WorkerIndex, len(r.Scores), cfg.GamesPerWorker)
		}
	}
}

func TestRunWithCSVSinkRecordsRows(t *testing.T) {
	w := config.Default()
	path := filepath.Join(t.TempDir(), "training.csv")
	sink, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	defer sink.Close()

	cfg := Config{
		Workers:        2,
		GamesPerWorker: 1,
		SearchDuration: 5 * time.Millisecond,
		Weights:        w,
		NewEvaluator:   func() heuristics.Evaluator { return heuristics.NewWeighted(w) },
		Sink:           sink,
	}

	results := Run(context.Background(), [8]byte{9, 9, 9, 9, 9, 9, 9, 9}, cfg)
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("worker %d failed: %v", r.WorkerIndex, r.Err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n") + 1; lines < 2 {
		t.Fatalf("training file has %d line(s), want a header plus at least one row", lines)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	w := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		Workers:        2,
		GamesPerWorker: 5,
		SearchDuration: time.Second,
		Weights:        w,
		NewEvaluator:   func() heuristics.Evaluator { return heuristics.NewWeighted(w) },
	}

	results := Run(ctx, [8]byte{1, 1, 1, 1, 1, 1, 1, 1}, cfg)
	for _, r := range results {
		if r.Err == nil {
			t.Fatalf("worker %d expected a context-cancellation error", r.WorkerIndex)
		}
	}
}
