package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultWeightsRoundTripThroughFile(t *testing.T) {
	w := Default()
	path := filepath.Join(t.TempDir(), "weights.json")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ExplorationVariables != w.ExplorationVariables {
		t.Fatalf("exploration variables mismatch: got %v, want %v", loaded.ExplorationVariables, w.ExplorationVariables)
	}
	if loaded.PruneAlpha != w.PruneAlpha {
		t.Fatalf("prune alpha mismatch: got %v, want %v", loaded.PruneAlpha, w.PruneAlpha)
	}
}

func TestTurnIndexClampsOutOfRangeTurns(t *testing.T) {
	w := Default()
	w.ExplorationVariables = [Turns]float64{1, 2, 3, 4, 5, 6, 7}
	if got := w.ExplorationBiasAt(0); got != 1 {
		t.Fatalf("turn 0 = %v, want 1 (clamped to turn 1)", got)
	}
	if got := w.ExplorationBiasAt(8); got != 7 {
		t.Fatalf("turn 8 = %v, want 7 (clamped to turn 7)", got)
	}
	if got := w.ExplorationBiasAt(1); got != w.ExplorationVariables[0] {
		t.Fatalf("turn 1 = %v, want %v", got, w.ExplorationVariables[0])
	}
	if got := w.ExplorationBiasAt(7); got != w.ExplorationVariables[6] {
		t.Fatalf("turn 7 = %v, want %v", got, w.ExplorationVariables[6])
	}
}
