// Package pieces holds the immutable catalog of Railroad Ink tile
// archetypes: their edge connections, legal orientations, and the
// rotate/reflect transform that produces a concrete permutation.
package pieces

// Connection is the type of track present on one side of a tile.
type Connection int

const (
	None Connection = iota
	Road
	Rail
)

func (c Connection) String() string {
	switch c {
	case Road:
		return "Road"
	case Rail:
		return "Rail"
	default:
		return "None"
	}
}

// Direction indexes the four sides of a square tile, clockwise from North.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	return (d + 2) % 4
}

// Directions enumerates all four directions in a fixed order, standing in
// for Rust's `Direction::iter()` via strum.
var Directions = [4]Direction{North, East, South, West}

// Orientation is a rotation (quarter turns clockwise) plus an optional
// reflection, applied to a Piece to produce one of its permutations.
type Orientation struct {
	Rotation uint8
	Flip     bool
}

// Variant packs an Orientation into the single hex digit used by the wire
// encoding: variant = rotation + 4*flip.
func (o Orientation) Variant() uint8 {
	v := o.Rotation
	if o.Flip {
		v += 4
	}
	return v
}

// OrientationFromVariant is the inverse of Variant.
func OrientationFromVariant(variant uint8) Orientation {
	if variant >= 4 {
		return Orientation{Rotation: variant - 4, Flip: true}
	}
	return Orientation{Rotation: variant, Flip: false}
}

// Network is the four edge connections of one of a piece's (up to two)
// independent track networks, indexed by Direction.
type Network = [4]Connection

// Piece is an immutable archetype: up to two networks (two only for the
// overpass, 0x07), which rotations are distinct shapes, and whether
// reflecting the piece yields a distinct shape.
type Piece struct {
	Networks  [2]*Network
	Rotations [4]bool
	Flippable bool
}

// IsOptional reports whether a piece id is drawn from the six special tiles
// rather than the nine mandatory dice faces.
func IsOptional(id uint8) bool {
	return id >= 0x0A
}

// IsSpecial reports whether a piece id is one of the six special tiles.
// Resolved per DESIGN.md Open Question 1: spec.md states this range
// explicitly and consistently, unlike the three disagreeing call sites in
// the original Rust source.
func IsSpecial(id uint8) bool {
	return id >= 0x0A && id <= 0x0F
}

// IsTransitional reports whether a piece id is treated as an end node for
// longest-path purposes because it carries both road and rail segments in
// the same network (SPEC_FULL.md §4.B "End nodes", case 3).
func IsTransitional(id uint8) bool {
	switch id {
	case 0x08, 0x09, 0x0A, 0x0B, 0x0E, 0x0F:
		return true
	default:
		return false
	}
}

func net(a, b, c, d Connection) *Network {
	return &Network{a, b, c, d}
}

// catalog is the full archetype table, transcribed directly from
// original_source/.../pieces/mod.rs::get_piece.
var catalog = map[uint8]Piece{
	0x01: {Networks: [2]*Network{net(Rail, Rail, None, None), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x02: {Networks: [2]*Network{net(Rail, Rail, None, Rail), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x03: {Networks: [2]*Network{net(Rail, None, Rail, None), nil}, Rotations: [4]bool{true, true, false, false}, Flippable: false},
	0x04: {Networks: [2]*Network{net(Road, Road, None, None), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x05: {Networks: [2]*Network{net(Road, Road, None, Road), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x06: {Networks: [2]*Network{net(Road, None, Road, None), nil}, Rotations: [4]bool{true, true, false, false}, Flippable: false},
	0x07: {Networks: [2]*Network{net(Road, None, Road, None), net(None, Rail, None, Rail)}, Rotations: [4]bool{true, true, false, false}, Flippable: false},
	0x08: {Networks: [2]*Network{net(Rail, None, Road, None), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x09: {Networks: [2]*Network{net(Road, Rail, None, None), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: true},
	0x0A: {Networks: [2]*Network{net(Road, Road, Rail, Road), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x0B: {Networks: [2]*Network{net(Rail, Rail, Road, Rail), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x0C: {Networks: [2]*Network{net(Road, Road, Road, Road), nil}, Rotations: [4]bool{true, false, false, false}, Flippable: false},
	0x0D: {Networks: [2]*Network{net(Rail, Rail, Rail, Rail), nil}, Rotations: [4]bool{true, false, false, false}, Flippable: false},
	0x0E: {Networks: [2]*Network{net(Road, Road, Rail, Rail), nil}, Rotations: [4]bool{true, true, true, true}, Flippable: false},
	0x0F: {Networks: [2]*Network{net(Road, Rail, Road, Rail), nil}, Rotations: [4]bool{true, true, false, false}, Flippable: false},
}

// Get returns the archetype for a piece id, and whether it exists.
func Get(id uint8) (Piece, bool) {
	p, ok := catalog[id]
	return p, ok
}

// Permutations returns every distinct Orientation for a piece, filtered by
// its declared rotations and flippability.
func Permutations(id uint8) []Orientation {
	piece, ok := catalog[id]
	if !ok {
		return nil
	}
	var out []Orientation
	// Matches the original's flip-outer, rotation-inner iteration order
	// (flip in [true, false]) so insertion-order-sensitive callers see the
	// same enumeration order as the reference.
	flips := []bool{true, false}
	for _, flip := range flips {
		if flip && !piece.Flippable {
			continue
		}
		for rotation := uint8(0); rotation < 4; rotation++ {
			if !piece.Rotations[rotation] {
				continue
			}
			out = append(out, Orientation{Rotation: rotation, Flip: flip})
		}
	}
	return out
}

// rotateRight rotates a 4-element network array right by n positions,
// matching Rust slice::rotate_right semantics.
func rotateRight(n *Network, by uint8) Network {
	by %= 4
	var out Network
	for i := 0; i < 4; i++ {
		out[(i+int(by))%4] = n[i]
	}
	return out
}

// Permute applies an Orientation to a Piece's networks: reflect first (if
// flip: reverse the array, then rotate right by one), then rotate right by
// the orientation's rotation count.
func Permute(id uint8, o Orientation) [2]*Network {
	piece, ok := catalog[id]
	if !ok {
		return [2]*Network{}
	}
	var out [2]*Network
	for i, n := range piece.Networks {
		if n == nil {
			continue
		}
		c := *n
		if o.Flip {
			c = Network{c[3], c[2], c[1], c[0]}
			c = rotateRight(&c, 1)
		}
		c = rotateRight(&c, o.Rotation)
		out[i] = &c
	}
	return out
}

// ConnectionAt returns the first non-None connection in direction d across a
// piece's networks (at most one network has a non-None entry per side for
// every archetype in the catalog).
func ConnectionAt(networks [2]*Network, d Direction) Connection {
	for _, n := range networks {
		if n == nil {
			continue
		}
		if n[d] != None {
			return n[d]
		}
	}
	return None
}
