package growth

import (
	"math/rand/v2"
	"time"

	"github.com/zeebo/xxh3"
)

// Rand is the source of the uniform samples drawn by the sampler.
type Rand interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// NewRand returns a PCG backed Rand. The world name is hashed into the second word of the PCG
// state, so worlds sharing a seed still sample differently. A zero seed is replaced by the
// current time.
func NewRand(seed uint64, worldName string) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, xxh3.HashString(worldName)))
}
