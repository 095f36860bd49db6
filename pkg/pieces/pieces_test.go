package pieces

import "testing"

func TestPermutationCounts(t *testing.T) {
	// SPEC_FULL.md §8 testable properties: exact cardinality per piece id.
	want := map[uint8]int{
		0x01: 4, 0x02: 4, 0x03: 2, 0x04: 4, 0x05: 4, 0x06: 2, 0x07: 2,
		0x08: 4, 0x09: 8, 0x0A: 4, 0x0B: 4, 0x0C: 1, 0x0D: 1, 0x0E: 4, 0x0F: 2,
	}
	for id, n := range want {
		got := len(Permutations(id))
		if got != n {
			t.Errorf("piece 0x%02X: got %d permutations, want %d", id, got, n)
		}
	}
}

func TestIsSpecialBoundary(t *testing.T) {
	for id := uint8(0x01); id <= 0x09; id++ {
		if IsSpecial(id) {
			t.Errorf("0x%02X should not be special", id)
		}
	}
	for id := uint8(0x0A); id <= 0x0F; id++ {
		if !IsSpecial(id) {
			t.Errorf("0x%02X should be special", id)
		}
	}
}

func TestPermuteIdentity(t *testing.T) {
	networks := Permute(0x01, Orientation{Rotation: 0, Flip: false})
	piece, _ := Get(0x01)
	if *networks[0] != *piece.Networks[0] {
		t.Errorf("identity permutation changed network: got %v, want %v", *networks[0], *piece.Networks[0])
	}
}

func TestPermuteFourRotationsReturnToIdentity(t *testing.T) {
	piece, _ := Get(0x02)
	n := *piece.Networks[0]
	for i := 0; i < 4; i++ {
		n = rotateRight(&n, 1)
	}
	if n != *piece.Networks[0] {
		t.Errorf("four rotations did not return to identity: got %v, want %v", n, *piece.Networks[0])
	}
}
