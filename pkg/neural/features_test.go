package neural

import (
	"testing"

	"github.com/zachbeta/railroad-ink-mcts/pkg/game"
)

func TestEncodeFeaturesLength(t *testing.T) {
	g := game.New([8]byte{1, 2, 3, 4, 5, 6, 7, 8})
	got := EncodeFeatures(g, game.RollMove)
	if len(got) != FeatureSize {
		t.Fatalf("len(EncodeFeatures) = %d, want %d", len(got), FeatureSize)
	}
}

func TestEncodeFeaturesFillRatioGrowsWithPlacements(t *testing.T) {
	g := game.New([8]byte{9, 9, 9, 9, 9, 9, 9, 9})
	before := EncodeFeatures(g, game.EndMove)
	beforeRatio := before[len(before)-1]

	var placed bool
	for _, mv := range g.GenerateMoves() {
		if mv.Kind == game.KindPlace {
			if _, err := g.Place(mv.Placement); err == nil {
				placed = true
				break
			}
		}
	}
	if !placed {
		t.Skip("no placement available from this seed's opening moves")
	}

	after := EncodeFeatures(g, game.EndMove)
	afterRatio := after[len(after)-1]
	if afterRatio <= beforeRatio {
		t.Fatalf("fill ratio did not increase after a placement: before=%v after=%v", beforeRatio, afterRatio)
	}
}

func TestEncodeFeaturesMarksCurrentPlacementCell(t *testing.T) {
	g := game.New([8]byte{4, 4, 4, 4, 4, 4, 4, 4})
	var mv game.Move
	var found bool
	for _, m := range g.GenerateMoves() {
		if m.Kind == game.KindPlace {
			mv = m
			found = true
			break
		}
	}
	if !found {
		t.Skip("no placement available from this seed's opening moves")
	}

	features := EncodeFeatures(g, mv)
	raw := int(mv.Placement.Square.Raw())
	base := raw * cellFeatures

	anyCurrentFlag := false
	for side := 0; side < 4; side++ {
		if features[base+side*3+2] == 1 {
			anyCurrentFlag = true
		}
	}
	if !anyCurrentFlag {
		t.Fatalf("expected at least one is-current flag set in the placed cell's block")
	}
}
