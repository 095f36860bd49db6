package board

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
)

// ErrDecoding is returned when a board/game/move wire string is malformed.
var ErrDecoding = errors.New("railroad-ink: decoding error")

type exit struct {
	square     Square
	direction  Direction
	connection Connection
}

// exits is the fixed table of twelve border obligations (three per side,
// alternating connection types), transcribed from
// original_source/.../board/mod.rs::Board::EXITS.
var exits = [12]exit{
	{squareFromRaw(1), North, Road},
	{squareFromRaw(3), North, Rail},
	{squareFromRaw(5), North, Road},
	{squareFromRaw(13), East, Rail},
	{squareFromRaw(27), East, Road},
	{squareFromRaw(41), East, Rail},
	{squareFromRaw(47), South, Road},
	{squareFromRaw(45), South, Rail},
	{squareFromRaw(43), South, Road},
	{squareFromRaw(35), West, Rail},
	{squareFromRaw(21), West, Road},
	{squareFromRaw(7), West, Rail},
}

// Board is a 7x7 grid of optional placements, plus the bookkeeping needed
// to find legal placements and score the result: a dense placement array,
// an insertion-ordered log (for deterministic iteration and encoding), and
// the frontier of unsatisfied edge obligations.
type Board struct {
	placements [Size * Size]*Placement
	placed     []uint8
	frontier   map[Square][]DirConn
}

// New returns an empty board, its frontier seeded with the twelve exits.
func New() *Board {
	b := &Board{frontier: make(map[Square][]DirConn, 12)}
	for _, e := range exits {
		b.frontier[e.square] = []DirConn{{e.direction, e.connection}}
	}
	return b
}

func (b *Board) get(s Square) *Placement {
	if s.raw >= Size*Size {
		return nil
	}
	return b.placements[s.raw]
}

func (b *Board) has(s Square) bool {
	return b.get(s) != nil
}

// Get returns the placement at s, if any.
func (b *Board) Get(s Square) (Placement, bool) {
	p := b.get(s)
	if p == nil {
		return Placement{}, false
	}
	return *p, true
}

// Placements returns placed tiles in insertion order.
func (b *Board) Placements() []Placement {
	out := make([]Placement, 0, len(b.placed))
	for _, raw := range b.placed {
		if p := b.placements[raw]; p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Frontier returns the current obligations, keyed by empty square.
func (b *Board) Frontier() map[Square][]DirConn {
	return b.frontier
}

// Clone returns a deep copy, independent of further mutation on either board.
// Used by the search driver's copy-on-descent strategy (SPEC_FULL.md §9
// "Game clones during descent").
func (b *Board) Clone() *Board {
	out := &Board{
		placed:   append([]uint8(nil), b.placed...),
		frontier: make(map[Square][]DirConn, len(b.frontier)),
	}
	for i, p := range b.placements {
		if p == nil {
			continue
		}
		cp := *p
		out.placements[i] = &cp
	}
	for square, obligations := range b.frontier {
		out.frontier[square] = append([]DirConn(nil), obligations...)
	}
	return out
}

// FindPossible enumerates every legal placement of piece onto the current
// frontier, per SPEC_FULL.md §4.B "Placement legality". Results are not
// deduplicated.
func (b *Board) FindPossible(pieceID uint8) []Placement {
	if _, ok := pieces.Get(pieceID); !ok {
		panic(fmt.Sprintf("railroad-ink: unknown piece id 0x%02X", pieceID))
	}

	// Go map iteration order is randomized per run; sort frontier squares
	// by raw value first so enumeration (and therefore the search's
	// per-seed determinism, SPEC_FULL.md §4.F) does not depend on it.
	squares := make([]Square, 0, len(b.frontier))
	for square := range b.frontier {
		squares = append(squares, square)
	}
	sort.Slice(squares, func(i, j int) bool { return squares[i].raw < squares[j].raw })

	var valid []Placement
	for _, square := range squares {
		if b.has(square) {
			continue
		}
		for _, ob := range b.frontier[square] {
			for _, orientation := range pieces.Permutations(pieceID) {
				networks := pieces.Permute(pieceID, orientation)
				if pieces.ConnectionAt(networks, ob.Direction) != ob.Connection {
					continue
				}

				candidate := Placement{Square: square, Piece: pieceID, Orientation: orientation}
				if b.placementCompatible(candidate, networks, square) {
					valid = append(valid, candidate)
				}
			}
		}
	}
	return valid
}

// placementCompatible checks condition 2 of "Placement legality": every
// non-None side of the candidate must be consistent with its neighbor
// (occupied: opposite side None or equal; empty: must not contradict an
// exit stub on that border).
func (b *Board) placementCompatible(candidate Placement, networks [2]*pieces.Network, square Square) bool {
	for _, d := range Directions {
		con := pieces.ConnectionAt(networks, d)
		if con == None {
			continue
		}
		neighbor := square.Neighbor(d)
		place := b.get(neighbor)
		if place == nil {
			if square.IsBorder() && exitContradicts(square, d, con) {
				return false
			}
			continue
		}
		opposite := place.Connection(d.Inverse())
		if opposite != None && opposite != con {
			return false
		}
	}
	return true
}

func exitContradicts(square Square, d Direction, con Connection) bool {
	for _, e := range exits {
		if e.square == square && e.direction == d && e.connection != con {
			return true
		}
	}
	return false
}

// IsExitStub reports whether (square, direction, connection) is one of the
// twelve fixed board exits, used by evaluator features that reward a
// placement for reaching an exit (SPEC_FULL.md §4.D "connects_to_exit").
func IsExitStub(square Square, d Direction, con Connection) bool {
	for _, e := range exits {
		if e.square == square && e.direction == d && e.connection == con {
			return true
		}
	}
	return false
}

// Place adds a placement to the board and updates the frontier: it resolves
// the obligations the new tile satisfies at its own square, and adds new
// obligations at in-bounds neighbors it now has an unmatched connection
// toward.
func (b *Board) Place(p Placement) {
	square := p.Square

	if obligations, ok := b.frontier[square]; ok {
		kept := obligations[:0]
		for _, ob := range obligations {
			if !p.HasConnection(ob.Direction, ob.Connection) {
				kept = append(kept, ob)
			}
		}
		if len(kept) == 0 {
			delete(b.frontier, square)
		} else {
			b.frontier[square] = kept
		}
	}

	for _, d := range Directions {
		neighbor := square.Neighbor(d)
		con := p.Connection(d)
		if con == None || neighbor.OutOfBounds() {
			continue
		}

		if existing := b.get(neighbor); existing != nil {
			if existing.HasConnection(d.Inverse(), con) {
				continue
			}
		}

		b.frontier[neighbor] = append(b.frontier[neighbor], DirConn{d.Inverse(), con})
	}

	b.placements[square.raw] = &p
	b.placed = append(b.placed, square.raw)
}

// Encode renders the board as concatenated 5-character placement groups in
// insertion order.
func (b *Board) Encode() string {
	out := make([]byte, 0, len(b.placed)*5)
	for _, raw := range b.placed {
		if p := b.placements[raw]; p != nil {
			out = append(out, p.Encode()...)
		}
	}
	return string(out)
}

// Decode parses a board wire string and rebuilds the board by replaying
// placements through Place, per SPEC_FULL.md §4.B "Encoding".
func Decode(s string) (*Board, error) {
	b := New()
	runes := []rune(s)
	if len(runes)%5 != 0 {
		return nil, errors.Wrapf(ErrDecoding, "board string length %d is not a multiple of 5", len(runes))
	}
	for i := 0; i < len(runes); i += 5 {
		chunk := runes[i : i+5]

		if chunk[0] < '0' || chunk[0] > '6' {
			return nil, errors.Wrapf(ErrDecoding, "bad square x digit %q", chunk[0])
		}
		x := uint8(chunk[0] - '0')

		var y uint8
		found := false
		for idx, c := range columnLetters {
			if rune(c) == chunk[1] {
				y = uint8(idx)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Wrapf(ErrDecoding, "bad square y letter %q", chunk[1])
		}

		pieceID, err := strconv.ParseUint(string(chunk[2:4]), 16, 8)
		if err != nil {
			return nil, errors.Wrapf(ErrDecoding, "bad piece id %q", string(chunk[2:4]))
		}

		variant, err := strconv.ParseUint(string(chunk[4]), 10, 8)
		if err != nil || variant > 7 {
			return nil, errors.Wrapf(ErrDecoding, "bad orientation variant %q", string(chunk[4]))
		}

		b.Place(Placement{
			Square:      NewSquare(x, y),
			Piece:       uint8(pieceID),
			Orientation: pieces.OrientationFromVariant(uint8(variant)),
		})
	}
	return b, nil
}
