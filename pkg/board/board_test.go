package board

import (
	"testing"

	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

func TestEmptyBoardScoresZero(t *testing.T) {
	b := New()
	if got := b.Score(); got != 0 {
		t.Fatalf("empty board score = %d, want 0", got)
	}
}

func TestSingleTileScore(t *testing.T) {
	b, err := Decode("3A015")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := b.Score(); got != 1 {
		t.Fatalf("single-tile score = %d, want 1", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := New()
	b.Place(Placement{Square: NewSquare(3, 0), Piece: 0x01, Orientation: pieces.OrientationFromVariant(5)})
	b.Place(Placement{Square: NewSquare(3, 1), Piece: 0x03, Orientation: pieces.OrientationFromVariant(0)})

	encoded := b.Encode()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode(%q): %v", encoded, err)
	}
	if decoded.Encode() != encoded {
		t.Fatalf("round trip mismatch: got %q, want %q", decoded.Encode(), encoded)
	}
	if decoded.Score() != b.Score() {
		t.Fatalf("round trip score mismatch: got %d, want %d", decoded.Score(), b.Score())
	}
}

func TestDecodeRejectsMalformedLength(t *testing.T) {
	if _, err := Decode("3A01"); err == nil {
		t.Fatal("expected error decoding a string whose length is not a multiple of 5")
	}
}

func TestDecodeRejectsOutOfRangeXDigit(t *testing.T) {
	for _, chunk := range []string{"7A010", "8A010", "9A010"} {
		if _, err := Decode(chunk); err == nil {
			t.Fatalf("Decode(%q): expected an error for an x digit outside 0-6, got none", chunk)
		}
	}
}

// Regression test transcribed directly from the original engine's board
// test of the same name: on this particular board, piece 3 has no legal
// placement left anywhere on the frontier.
func TestCannotPlaceTilesIntoWrongNetworkType(t *testing.T) {
	encoding := "6F0315F0113G0122G0102F0121F0220F0310B0311B0231C0301D0133A0303B0104B0315B0D06B0315C0305D010"

	b, err := Decode(encoding)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	candidates := b.FindPossible(3)
	if len(candidates) != 0 {
		t.Fatalf("FindPossible(3) = %d candidates, want 0", len(candidates))
	}
}

func TestFindPossibleUnknownPiecePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown piece id")
		}
	}()
	New().FindPossible(0xFF)
}

func TestFrontierSeededWithTwelveExits(t *testing.T) {
	b := New()
	if len(b.Frontier()) != 12 {
		t.Fatalf("frontier size = %d, want 12", len(b.Frontier()))
	}
}

func TestPlaceResolvesOwnObligationAndAddsNeighborObligation(t *testing.T) {
	b := New()
	b.Place(Placement{Square: NewSquare(3, 0), Piece: 0x01, Orientation: pieces.OrientationFromVariant(5)})

	if _, ok := b.Frontier()[NewSquare(3, 0)]; ok {
		t.Fatal("placed square should no longer carry its satisfied exit obligation")
	}
	if !b.has(NewSquare(3, 0)) {
		t.Fatal("placed square should report as occupied")
	}
	if obs := b.Frontier()[NewSquare(4, 0)]; len(obs) != 1 || obs[0] != (DirConn{West, Rail}) {
		t.Fatalf("east neighbor obligations = %v, want [{West Rail}]", obs)
	}
}
