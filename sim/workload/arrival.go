package workload

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival times for riders.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks. Never negative;
	// zero means the next rider arrives in the same tick.
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	rate float64 // riders per tick
}

// NewPoissonSampler returns a sampler producing rate arrivals per tick on average.
func NewPoissonSampler(rate float64) *PoissonSampler {
	return &PoissonSampler{rate: rate}
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.rate)
}
