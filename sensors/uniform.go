package sensors

import (
	"math"
	"math/rand/v2"
)

// Option configures a simulated sensor.
type Option func(*uniform)

// WithSeed makes the sensor's random source deterministic.
func WithSeed(seed uint64) Option {
	return func(u *uniform) {
		u.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// uniform draws values from [lo, hi) using a source owned by a single sensor.
type uniform struct {
	lo, hi float64
	rng    *rand.Rand
}

func newUniform(lo, hi float64, opts ...Option) uniform {
	u := uniform{
		lo:  lo,
		hi:  hi,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func (u *uniform) next() float64 {
	v := u.lo + u.rng.Float64()*(u.hi-u.lo)
	// rounding can land exactly on hi
	if v >= u.hi {
		v = math.Nextafter(u.hi, u.lo)
	}
	return v
}
