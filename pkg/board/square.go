package board

// Size is the board's side length; Railroad Ink plays on a fixed 7x7 grid.
const Size = 7

// outOfBounds is the sentinel raw value for a Square that falls off the
// board, e.g. the "neighbor" of an edge square in the outward direction.
const outOfBounds = 255

// Square is a position on the board, packed as raw = x + Size*y. Values
// above Size*Size-1 (other than via arithmetic below) are out of bounds.
type Square struct {
	raw uint8
}

// NewSquare builds a Square from (x, y), or the out-of-bounds sentinel if
// either coordinate is outside [0, Size).
func NewSquare(x, y uint8) Square {
	if x >= Size || y >= Size {
		return Square{raw: outOfBounds}
	}
	return Square{raw: x + y*Size}
}

// squareFromRaw wraps a raw byte directly, used internally for dense-array
// indexing and neighbor arithmetic.
func squareFromRaw(raw uint8) Square {
	return Square{raw: raw}
}

// OutOfBounds reports whether the square falls outside the 7x7 grid.
// Deliberately >= Size*Size rather than the Rust original's off-by-one
// `> Size*Size` (see DESIGN.md Open Question 8): that discrepancy is never
// exercised in the original because indexing is separately guarded, so the
// intended semantics are ported directly instead of the harmless bug.
func (s Square) OutOfBounds() bool {
	return s.raw >= Size*Size
}

// Raw returns the packed byte value.
func (s Square) Raw() uint8 { return s.raw }

// X returns the column.
func (s Square) X() uint8 { return s.raw % Size }

// Y returns the row.
func (s Square) Y() uint8 { return s.raw / Size }

// IsBorder reports whether the square lies on the outer ring of the grid.
func (s Square) IsBorder() bool {
	const edge = Size - 1
	return s.X()%edge == 0 || s.Y()%edge == 0
}

// Neighbor returns the adjacent square in the given direction. Coordinates
// that would go negative or beyond Size wrap to the out-of-bounds sentinel.
func (s Square) Neighbor(d Direction) Square {
	x, y := int(s.X()), int(s.Y())
	switch d {
	case North:
		y--
	case East:
		x++
	case South:
		y++
	case West:
		x--
	}
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return Square{raw: outOfBounds}
	}
	return Square{raw: uint8(x) + uint8(y)*Size}
}

// oppositeNeighbor mirrors Neighbor but walks in the reverse sense: the
// adjacent square in the direction opposite to d.
func (s Square) oppositeNeighbor(d Direction) Square {
	x, y := int(s.X()), int(s.Y())
	switch d {
	case North:
		y++
	case East:
		x--
	case South:
		y--
	case West:
		x++
	}
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return Square{raw: outOfBounds}
	}
	return Square{raw: uint8(x) + uint8(y)*Size}
}

var columnLetters = [Size]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G'}

// String renders the square in the xY wire format used by encode/decode.
func (s Square) String() string {
	if s.OutOfBounds() {
		return "__"
	}
	return string([]byte{'0' + s.X(), columnLetters[s.Y()]})
}
