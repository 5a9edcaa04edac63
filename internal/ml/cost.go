package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ICategoricalCost scores raw class scores against an integer class index.
type ICategoricalCost interface {
	Cost(logits []float64, target int) float64
	// CostPrime writes d(cost)/d(logits) into grad.
	CostPrime(logits []float64, target int, grad []float64)
}

// SoftmaxCrossEntropyCost is sparse categorical cross-entropy computed
// directly from logits: log(sum(exp(z))) - z[target].
type SoftmaxCrossEntropyCost struct{}

func (*SoftmaxCrossEntropyCost) Cost(logits []float64, target int) float64 {
	return floats.LogSumExp(logits) - logits[target]
}

func (*SoftmaxCrossEntropyCost) CostPrime(logits []float64, target int, grad []float64) {
	var lse = floats.LogSumExp(logits)
	for i, z := range logits {
		grad[i] = math.Exp(z - lse)
	}
	grad[target] -= 1
}
