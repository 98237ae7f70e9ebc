package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	pcg := rand.NewPCG(uint64(seed), 0)
	return &RNG{pcg: pcg, r: rand.New(pcg)}
}

// Reseed restarts the sequence as if the RNG had been created with seed.
func (r *RNG) Reseed(seed int64) {
	r.pcg.Seed(uint64(seed), 0)
}

// IntN returns a uniformly distributed int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Script replays a fixed sequence of draws, reducing each one modulo the
// requested range. It wraps around when exhausted. Intended for tests.
type Script struct {
	draws []int
	pos   int
}

// NewScript returns a Script over the provided draws.
func NewScript(draws ...int) *Script {
	return &Script{draws: append([]int(nil), draws...)}
}

// IntN returns the next scripted draw reduced into [0, n).
func (s *Script) IntN(n int) int {
	if n <= 0 || len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Calls reports how many draws have been consumed.
func (s *Script) Calls() int { return s.pos }
