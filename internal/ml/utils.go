package ml

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

func InitUniform(rnd *rand.Rand, data []float64, variance float64) {
	var uniformVariance = 1.0 / 12
	var scale = math.Sqrt(variance / uniformVariance)
	for i := range data {
		data[i] = (rnd.Float64() - 0.5) * scale
	}
}

// ArgMax returns the index of the largest value, the first one on ties.
func ArgMax(values []float64) int {
	return floats.MaxIdx(values)
}
