package train

import (
	"math/rand"

	"github.com/ChizhovVadim/GestureNet/internal/ml"
	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

// Model is the 3-5-8 gesture classifier: ReLU hidden layer, linear output
// producing one logit per gesture.
type Model struct {
	input  []Neuron
	layer1 *Layer
	layer2 *Layer
	cost   ml.ICategoricalCost
	logits []float64
	grad   []float64
}

func NewModel(rnd *rand.Rand) *Model {
	return &Model{
		input: make([]Neuron, InputSize),
		layer1: NewLayer(
			InputSize,
			make([]Neuron, HiddenSize),
			ml.ReLU).
			InitWeightsGlorot(rnd),
		layer2: NewLayer(
			HiddenSize,
			make([]Neuron, OutputSize),
			ml.Linear).
			InitWeightsGlorot(rnd),
		cost:   &ml.SoftmaxCrossEntropyCost{},
		logits: make([]float64, OutputSize),
		grad:   make([]float64, OutputSize),
	}
}

func (m *Model) scratchCopy() *Model {
	return &Model{
		input:  make([]Neuron, InputSize),
		layer1: m.layer1.ScratchCopy(),
		layer2: m.layer2.ScratchCopy(),
		cost:   m.cost,
		logits: make([]float64, OutputSize),
		grad:   make([]float64, OutputSize),
	}
}

func (m *Model) forward(t gesture.Triplet) []float64 {
	m.input[0].Activation = t.S1
	m.input[1].Activation = t.S2
	m.input[2].Activation = t.S3
	m.layer1.Forward(m.input)
	m.layer2.Forward(m.layer1.outputs)
	for i := range m.logits {
		m.logits[i] = m.layer2.outputs[i].Activation
	}
	return m.logits
}

// Logits returns a fresh copy of the class scores for t.
func (m *Model) Logits(t gesture.Triplet) []float64 {
	return append([]float64(nil), m.forward(t)...)
}

func (m *Model) Predict(t gesture.Triplet) gesture.Label {
	return gesture.Label(ml.ArgMax(m.forward(t)))
}

func (m *Model) CalcCost(sample gesture.Sample) (cost float64, correct bool) {
	var logits = m.forward(sample.Triplet)
	cost = m.cost.Cost(logits, int(sample.Label))
	correct = ml.ArgMax(logits) == int(sample.Label)
	return
}

// Train runs forward and back propagation for one sample, accumulating
// gradients until ApplyGradients is called.
func (m *Model) Train(sample gesture.Sample) (cost float64, correct bool) {
	var logits = m.forward(sample.Triplet)
	var target = int(sample.Label)
	cost = m.cost.Cost(logits, target)
	correct = ml.ArgMax(logits) == target

	m.cost.CostPrime(logits, target, m.grad)
	for i := range m.layer2.outputs {
		m.layer2.outputs[i].Error = m.grad[i]
	}
	m.layer2.Backward(m.layer1.outputs)
	m.layer1.Backward(m.input)
	return
}

func (m *Model) ApplyGradients(batchSize int, learningRate float64) {
	m.layer1.ApplyGradients(batchSize, learningRate)
	m.layer2.ApplyGradients(batchSize, learningRate)
}
