package engine

import "math/rand/v2"

// Rand is the random source behind probability-table rolls and order
// generation. Tests supply a scripted sequence to pin exact outcomes.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

type pcgRand struct {
	r *rand.Rand
}

// NewRand returns a seeded deterministic source.
func NewRand(seed uint64) Rand {
	return &pcgRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRand) Float64() float64 { return p.r.Float64() }
func (p *pcgRand) IntN(n int) int   { return p.r.IntN(n) }

type globalRand struct{}

// DefaultRand draws from the process-global source.
func DefaultRand() Rand { return globalRand{} }

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }
