// Package prng implements the deterministic split-mix64 generator used to
// drive one MCTS iteration at a time. It is intentionally separate from the
// dice-roll RNG owned by a game.Game: the tree walks a fresh derived stream
// every iteration, while a game's own rolls persist across the game's life.
package prng

// SplitMix64 is a value-typed deterministic PRNG. Copying it forks the
// stream; advancing the original does not affect the copy.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 seeds a generator from an 8-byte big-endian seed, matching
// the byte layout used for worker and game seeds elsewhere in this module.
func NewSplitMix64(seed [8]byte) SplitMix64 {
	var state uint64
	for _, b := range seed {
		state = state<<8 | uint64(b)
	}
	return SplitMix64{state: state}
}

// NewSplitMix64FromUint64 seeds a generator directly from a 64-bit state.
func NewSplitMix64FromUint64(state uint64) SplitMix64 {
	return SplitMix64{state: state}
}

// Next advances the stream and returns the next 64-bit value.
func (s *SplitMix64) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Uint64N returns a uniform value in [0, n). n must be > 0.
func (s *SplitMix64) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return s.Next() % n
}

// Intn returns a uniform value in [0, n). n must be > 0.
func (s *SplitMix64) Intn(n int) int {
	return int(s.Uint64N(uint64(n)))
}

// Float64 returns a uniform value in [0, 1).
func (s *SplitMix64) Float64() float64 {
	// Use the top 53 bits for full float64 mantissa precision.
	return float64(s.Next()>>11) / (1 << 53)
}

// State returns the raw internal state, e.g. for re-seeding a child stream.
func (s SplitMix64) State() uint64 {
	return s.state
}

// DeriveSeed produces a child 8-byte seed from a root seed and a worker
// index, per SPEC_FULL.md §4.G ("root + worker_index").
func DeriveSeed(root [8]byte, workerIndex int) [8]byte {
	rootState := NewSplitMix64(root).state
	child := rootState + uint64(workerIndex)
	var out [8]byte
	for i := 7; i >= 0; i-- {
		out[i] = byte(child)
		child >>= 8
	}
	return out
}
