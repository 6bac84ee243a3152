package config

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

type DistKind uint8

const (
	DistConstant DistKind = iota // same value for each instance
	DistNormal                   // gaussian around Mean
)

// Distribution is a sampleable scalar source.
type Distribution struct {
	Kind   DistKind
	Value  float64 // DistConstant
	Mean   float64 // DistNormal
	StdDev float64 // DistNormal, >= 0
}

func Constant(v float64) Distribution { return Distribution{Kind: DistConstant, Value: v} }

func Normal(mean, stddev float64) Distribution {
	return Distribution{Kind: DistNormal, Mean: mean, StdDev: stddev}
}

// Sample resolves the distribution to one value. A constant never touches rng;
// a normal draws exactly once.
func (d Distribution) Sample(rng *rand.Rand) float64 {
	switch d.Kind {
	case DistNormal:
		return distuv.Normal{Mu: d.Mean, Sigma: d.StdDev, Src: rng}.Rand()
	default:
		return d.Value
	}
}

func (d Distribution) String() string {
	if d.Kind == DistNormal {
		return fmt.Sprintf("normal %g,%g", d.Mean, d.StdDev)
	}
	return fmt.Sprintf("%g", d.Value)
}
