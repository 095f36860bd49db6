// Package game implements the Railroad Ink turn/dice/specials state
// machine: legal move generation, move application, and the wire encoding
// used to snapshot a game.
package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zachbeta/railroad-ink-mcts/pkg/board"
	"github.com/zachbeta/railroad-ink-mcts/pkg/pieces"
	"github.com/zachbeta/railroad-ink-mcts/pkg/prng"
)

// Sentinel errors surfaced to callers across the package boundary.
var (
	ErrInvalidMove = errors.New("railroad-ink: invalid move")
	ErrInvalidRoll = errors.New("railroad-ink: invalid roll")
	ErrDecoding    = errors.New("railroad-ink: game decoding error")
)

var commonFaces = [6]uint8{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
var transitionalFaces = [3]uint8{0x07, 0x08, 0x09}

// Game is the full state of one play-through: turn counter, the pieces left
// to place this turn, special-tile bookkeeping, the board, and the
// deterministic PRNG that drives dice draws. A zero value of ExpendedSpecials
// or SpecialPlaced (0) means "none", since valid piece ids start at 0x01.
type Game struct {
	Turn             uint8
	Ended            bool
	ToPlace          []uint8
	ExpendedSpecials [3]uint8
	SpecialPlaced    uint8
	Board            *board.Board

	availableMoves []Move
	movesCached    bool
	rng            prng.SplitMix64
}

// New creates a fresh game seeded from an 8-byte seed and performs the
// opening roll, so the returned game is at turn 1 with four pieces to place.
func New(seed [8]byte) *Game {
	g := &Game{Board: board.New(), rng: prng.NewSplitMix64(seed)}
	// Turn 0's only legal move is Roll, so this can never fail.
	_ = g.Roll()
	return g
}

// Clone returns a deep copy of the game, independent of further mutation on
// either copy. The search driver clones the tree's Game once per search
// iteration and applies the descent's moves to that copy (SPEC_FULL.md §9
// "Game clones during descent"); the cached
// move list is intentionally not copied since it is lazily regenerated.
func (g *Game) Clone() *Game {
	return &Game{
		Turn:             g.Turn,
		Ended:            g.Ended,
		ToPlace:          append([]uint8(nil), g.ToPlace...),
		ExpendedSpecials: g.ExpendedSpecials,
		SpecialPlaced:    g.SpecialPlaced,
		Board:            g.Board.Clone(),
		rng:              g.rng,
	}
}

func (g *Game) canPlaySpecials() bool {
	if g.SpecialPlaced != 0 {
		return false
	}
	expended := 0
	for _, s := range g.ExpendedSpecials {
		if s != 0 {
			expended++
		}
	}
	return expended < 3
}

// Place plays a piece onto the board, routing mandatory and special pieces
// through their respective bookkeeping. Returns the raw square index played
// for a mandatory piece, and the piece id for a special piece.
func (g *Game) Place(p board.Placement) (uint8, error) {
	if pieces.IsSpecial(p.Piece) {
		if !g.canPlaySpecials() {
			return 0, errors.Wrap(ErrInvalidMove, "cannot play special piece: already placed this turn, or three already expended")
		}
		g.Board.Place(p)
		g.SpecialPlaced = p.Piece
		for i := range g.ExpendedSpecials {
			if g.ExpendedSpecials[i] == 0 {
				g.ExpendedSpecials[i] = p.Piece
				break
			}
		}
		return p.Piece, nil
	}

	for i, piece := range g.ToPlace {
		if piece == p.Piece {
			g.Board.Place(p)
			g.ToPlace = append(g.ToPlace[:i], g.ToPlace[i+1:]...)
			return p.Square.Raw(), nil
		}
	}
	return 0, errors.Wrap(ErrInvalidMove, "piece is not playable this turn")
}

// GenerateRoll draws four dice faces from the game's own RNG: three from
// the common faces and one transitional, sorted ascending.
func (g *Game) GenerateRoll() Roll {
	var faces [4]uint8
	for i := 0; i < 3; i++ {
		faces[i] = commonFaces[g.rng.Intn(len(commonFaces))]
	}
	faces[3] = transitionalFaces[g.rng.Intn(len(transitionalFaces))]
	return NewRoll(faces)
}

// Roll draws a fresh roll and installs it, failing if any mandatory piece
// from the current roll is still placeable (SPEC_FULL.md "InvalidRoll").
func (g *Game) Roll() error {
	for _, mv := range g.GenerateMoves() {
		if mv.Kind == KindPlace && !pieces.IsOptional(mv.Placement.Piece) {
			return errors.Wrap(ErrInvalidRoll, "cannot roll while a mandatory piece remains placeable")
		}
	}
	g.SetRoll(g.GenerateRoll())
	return nil
}

// SetRoll installs a realized roll: advances the turn, clears this turn's
// special-placed marker, and replaces the pieces left to place.
func (g *Game) SetRoll(r Roll) {
	g.Turn++
	g.SpecialPlaced = 0
	g.ToPlace = append([]uint8(nil), r[:]...)
}

// GenerateMoves returns every legal move from the current state, caching the
// result until the next DoMove. If turn 0, the only move is Roll. Otherwise
// it is every legal placement for the pieces left to place plus any
// still-available special, falling back to Roll/End if none apply.
func (g *Game) GenerateMoves() []Move {
	if g.movesCached {
		return g.availableMoves
	}
	if g.Ended {
		return nil
	}
	if g.Turn == 0 {
		return []Move{RollMove}
	}

	var moves []Move
	for _, piece := range g.ToPlace {
		for _, p := range g.Board.FindPossible(piece) {
			moves = append(moves, PlaceMove(p))
		}
	}

	if len(moves) == 0 {
		if g.Turn < 7 {
			moves = append(moves, RollMove)
		} else {
			moves = append(moves, EndMove)
		}
	}

	if g.canPlaySpecials() {
		for special := uint8(0x0A); special <= 0x0F; special++ {
			if g.hasExpended(special) {
				continue
			}
			for _, p := range g.Board.FindPossible(special) {
				moves = append(moves, PlaceMove(p))
			}
		}
	}

	g.availableMoves = moves
	g.movesCached = true
	return moves
}

func (g *Game) hasExpended(special uint8) bool {
	for _, s := range g.ExpendedSpecials {
		if s == special {
			return true
		}
	}
	return false
}

// DoMove applies a move, invalidating the cached move list regardless of
// outcome, matching SPEC_FULL.md §4.C.
func (g *Game) DoMove(mv Move) error {
	var err error
	switch mv.Kind {
	case KindPlace:
		_, err = g.Place(mv.Placement)
	case KindSetRoll:
		if g.Turn >= 7 {
			err = errors.Wrap(ErrInvalidRoll, "all rounds have been played")
		} else {
			g.SetRoll(mv.Roll)
		}
	case KindRoll:
		if g.Turn >= 7 {
			err = errors.Wrap(ErrInvalidRoll, "all rounds have been played")
		} else {
			err = g.Roll()
		}
	case KindEnd:
		g.Ended = true
	}
	g.movesCached = false
	g.availableMoves = nil
	return err
}

// Encode renders the game as
// turn(1 hex)|to_place(hex pairs)|expended_specials(hex pairs)|special_placed(hex pair or empty)|board.
func (g *Game) Encode() string {
	var toPlace strings.Builder
	for _, p := range g.ToPlace {
		fmt.Fprintf(&toPlace, "%02X", p)
	}

	var specials strings.Builder
	for _, s := range g.ExpendedSpecials {
		if s != 0 {
			fmt.Fprintf(&specials, "%02X", s)
		}
	}

	specialPlaced := ""
	if g.SpecialPlaced != 0 {
		specialPlaced = fmt.Sprintf("%02X", g.SpecialPlaced)
	}

	return fmt.Sprintf("%X|%s|%s|%s|%s", g.Turn, toPlace.String(), specials.String(), specialPlaced, g.Board.Encode())
}

// Decode parses a game wire string produced by Encode. The reconstructed
// game gets a fresh, time-seeded RNG: a decoded snapshot carries no stored
// seed, matching the source engine's own decode behavior.
func Decode(s string) (*Game, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 5 {
		return nil, errors.Wrapf(ErrDecoding, "expected 5 pipe-delimited components, got %d", len(parts))
	}

	turn, err := strconv.ParseUint(parts[0], 16, 8)
	if err != nil {
		return nil, errors.Wrapf(ErrDecoding, "bad turn %q", parts[0])
	}

	toPlace, err := decodeHexPairs(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "to_place")
	}

	specialsList, err := decodeHexPairs(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, "expended_specials")
	}
	if len(specialsList) > 3 {
		return nil, errors.Wrapf(ErrDecoding, "too many expended specials: %d", len(specialsList))
	}
	var specials [3]uint8
	copy(specials[:], specialsList)

	var specialPlaced uint8
	if parts[3] != "" {
		v, err := strconv.ParseUint(parts[3], 16, 8)
		if err != nil {
			return nil, errors.Wrapf(ErrDecoding, "bad special_placed %q", parts[3])
		}
		specialPlaced = uint8(v)
	}

	b, err := board.Decode(parts[4])
	if err != nil {
		return nil, errors.Wrap(err, "board")
	}

	var seed [8]byte
	binarySeedFromTime(&seed)

	return &Game{
		Turn:             uint8(turn),
		ToPlace:          toPlace,
		ExpendedSpecials: specials,
		SpecialPlaced:    specialPlaced,
		Board:            b,
		rng:              prng.NewSplitMix64(seed),
	}, nil
}

func decodeHexPairs(s string) ([]uint8, error) {
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrDecoding, "hex-pair string %q has odd length", s)
	}
	out := make([]uint8, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		if err != nil {
			return nil, errors.Wrapf(ErrDecoding, "bad hex pair %q", s[i:i+2])
		}
		out = append(out, uint8(v))
	}
	return out, nil
}

func binarySeedFromTime(seed *[8]byte) {
	now := uint64(time.Now().UnixNano())
	for i := range seed {
		seed[i] = byte(now >> (8 * uint(i)))
	}
}
