package ml

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoftmaxCrossEntropy(t *testing.T) {
	var cost = &SoftmaxCrossEntropyCost{}

	var uniform = make([]float64, 8)
	assert.InDelta(t, math.Log(8), cost.Cost(uniform, 3), 1e-12)

	var logits = []float64{2, -1, 0.5}
	var grad = make([]float64, 3)
	cost.CostPrime(logits, 0, grad)

	var sum float64
	for _, g := range grad {
		sum += g
	}
	assert.InDelta(t, 0, sum, 1e-12)
	assert.Less(t, grad[0], 0.0)
	assert.Greater(t, grad[1], 0.0)

	// numeric derivative
	const h = 1e-6
	for i := range logits {
		var plus = append([]float64(nil), logits...)
		var minus = append([]float64(nil), logits...)
		plus[i] += h
		minus[i] -= h
		var numeric = (cost.Cost(plus, 0) - cost.Cost(minus, 0)) / (2 * h)
		assert.InDelta(t, numeric, grad[i], 1e-6)
	}
}

func TestSoftmaxCrossEntropyLargeLogits(t *testing.T) {
	var cost = &SoftmaxCrossEntropyCost{}
	var logits = []float64{1000, 0}
	assert.InDelta(t, 0, cost.Cost(logits, 0), 1e-9)
	assert.InDelta(t, 1000, cost.Cost(logits, 1), 1e-9)
}

func TestAdamFirstStep(t *testing.T) {
	var m = NewMatrix(1, 2)
	var g = NewGradients(1, 2)
	g.Add(0, 0, 4)
	g.Add(0, 1, -4)
	const lr = 0.01
	g.Apply(&m, 2, lr)

	// with bias correction the first step moves each parameter by ~lr against the gradient sign
	assert.InDelta(t, -lr, m.Get(0, 0), 1e-6)
	assert.InDelta(t, lr, m.Get(0, 1), 1e-6)
	assert.Equal(t, 1, g.Steps())
	for _, d := range g.Data {
		assert.Zero(t, d.Value)
	}
}

func TestActivations(t *testing.T) {
	tests := []struct {
		activation Activation
		x          float64
		y, prime   float64
	}{
		{ReLU, -2, 0, 0},
		{ReLU, 0, 0, 0},
		{ReLU, 0.1, 0.1, 1},
		{ReLU, 3, 3, 1},
		{Linear, -2, -2, 1},
		{Linear, 0, 0, 1},
	}
	for _, tt := range tests {
		var y, prime = tt.activation.Apply(tt.x)
		assert.Equal(t, tt.y, y, "%v(%v)", tt.activation, tt.x)
		assert.Equal(t, tt.prime, prime, "%v'(%v)", tt.activation, tt.x)
	}
	assert.Equal(t, "unknown", Activation(9).String())
}

func TestInitUniform(t *testing.T) {
	var rnd = rand.New(rand.NewSource(1))
	var data = make([]float64, 10000)
	var variance = 2.0 / 8
	InitUniform(rnd, data, variance)
	var limit = math.Sqrt(3 * variance)
	var sumSq float64
	for _, x := range data {
		assert.LessOrEqual(t, math.Abs(x), limit)
		sumSq += x * x
	}
	assert.InDelta(t, variance, sumSq/float64(len(data)), 0.02)
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, ArgMax([]float64{0, 1, 5, 5}))
	assert.Equal(t, 0, ArgMax([]float64{-1}))
}
