package game

import (
	"fmt"
	"sort"
)

// Roll is a set of four drawn dice faces, stored sorted ascending so two
// rolls compare equal regardless of draw order.
type Roll [4]uint8

// NewRoll sorts faces ascending and returns the resulting Roll.
func NewRoll(faces [4]uint8) Roll {
	r := Roll(faces)
	sort.Slice(r[:], func(i, j int) bool { return r[i] < r[j] })
	return r
}

// String renders the roll as comma-separated faces, matching the wire
// format used by Move's SetRoll encoding.
func (r Roll) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r[0], r[1], r[2], r[3])
}
