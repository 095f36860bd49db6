package game

import (
	"testing"

	"github.com/zachbeta/railroad-ink-mcts/pkg/board"
	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

func TestNewGameStartsAtTurnOneWithFourPieces(t *testing.T) {
	g := New([8]byte{1, 2, 3, 4, 5, 6, 7, 8})
	if g.Turn != 1 {
		t.Fatalf("turn = %d, want 1", g.Turn)
	}
	if len(g.ToPlace) != 4 {
		t.Fatalf("to_place length = %d, want 4", len(g.ToPlace))
	}
}

func TestFreshGameEncodingRoundTrip(t *testing.T) {
	g := New([8]byte{9, 9, 9, 9, 9, 9, 9, 9})
	encoded := g.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Encode() != encoded {
		t.Fatalf("round trip mismatch: got %q, want %q", decoded.Encode(), encoded)
	}
}

func TestSeededGamesDrawIdenticalRolls(t *testing.T) {
	seed := [8]byte{42, 0, 0, 0, 0, 0, 0, 0}
	a := New(seed)
	b := New(seed)
	if a.Encode() != b.Encode() {
		t.Fatalf("two games from the same seed diverged: %q vs %q", a.Encode(), b.Encode())
	}
}

// Playing the always-first-legal-move strategy from a fixed seed must place
// every mandatory die (7 rounds of 4) plus however many specials that
// strategy happened to use, and must terminate.
func TestPlayingOutAGameEndsAndPlacesAllMandatoryPieces(t *testing.T) {
	g := New([8]byte{7, 7, 7, 7, 7, 7, 7, 7})

	placed := 0
	specialsUsed := 0
	iterations := 0
	for !g.Ended {
		iterations++
		if iterations > 10000 {
			t.Fatal("game did not terminate")
		}
		moves := g.GenerateMoves()
		if len(moves) == 0 {
			t.Fatal("generate_moves returned no moves before the game ended")
		}
		mv := moves[0]
		if mv.Kind == KindPlace && pieces.IsSpecial(mv.Placement.Piece) {
			specialsUsed++
		}
		if mv.Kind == KindPlace {
			placed++
		}
		if err := g.DoMove(mv); err != nil {
			t.Fatalf("do_move(%s): %v", mv, err)
		}
	}

	if want := 7*4 + specialsUsed; placed != want {
		t.Fatalf("placed %d pieces, want %d (specials used: %d)", placed, want, specialsUsed)
	}
	if specialsUsed > 3 {
		t.Fatalf("used %d specials, want at most 3", specialsUsed)
	}
}

func TestRollFailsWhileMandatoryPieceRemainsPlaceable(t *testing.T) {
	g := New([8]byte{1, 1, 1, 1, 1, 1, 1, 1})
	if err := g.Roll(); err == nil {
		t.Fatal("expected an error rolling while mandatory pieces can still be placed")
	}
}

func TestPlaceRejectsUnplayablePiece(t *testing.T) {
	g := New([8]byte{3, 3, 3, 3, 3, 3, 3, 3})
	_, err := g.Place(board.Placement{Square: board.NewSquare(3, 3), Piece: 0x01, Orientation: pieces.OrientationFromVariant(0)})
	if g.ToPlace[0] == 0x01 {
		t.Skip("piece 0x01 happens to be in this turn's roll")
	}
	if err == nil {
		t.Fatal("expected an error placing a piece not in to_place and not special")
	}
}

func TestSpecialsCappedAtThreePerGame(t *testing.T) {
	g := New([8]byte{5, 5, 5, 5, 5, 5, 5, 5})
	g.ExpendedSpecials = [3]uint8{0x0A, 0x0B, 0x0C}
	if g.canPlaySpecials() {
		t.Fatal("expected canPlaySpecials to be false once three specials are expended")
	}
}

func TestOnlyOneSpecialPerTurn(t *testing.T) {
	g := New([8]byte{6, 6, 6, 6, 6, 6, 6, 6})
	g.SpecialPlaced = 0x0A
	if g.canPlaySpecials() {
		t.Fatal("expected canPlaySpecials to be false once a special was already placed this turn")
	}
}
