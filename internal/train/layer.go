package train

import (
	"math/rand"

	"github.com/ChizhovVadim/GestureNet/internal/ml"
)

type Neuron struct {
	Activation float64
	Error      float64
	Prime      float64
}

// Layer is a dense layer. weights has one row per output neuron and one
// column per input.
type Layer struct {
	activation ml.Activation
	outputs    []Neuron
	weights    ml.Matrix
	biases     ml.Matrix
	wGradients ml.Gradients
	bGradients ml.Gradients
}

func NewLayer(
	inputSize int,
	outputs []Neuron,
	activation ml.Activation,
) *Layer {
	var outputSize = len(outputs)
	return &Layer{
		outputs:    outputs,
		activation: activation,
		weights:    ml.NewMatrix(outputSize, inputSize),
		biases:     ml.NewMatrix(outputSize, 1),
		wGradients: ml.NewGradients(outputSize, inputSize),
		bGradients: ml.NewGradients(outputSize, 1),
	}
}

// ScratchCopy shares parameters but owns its neuron buffers, so a forward pass
// on the copy leaves the original untouched.
func (l *Layer) ScratchCopy() *Layer {
	return &Layer{
		activation: l.activation,
		outputs:    make([]Neuron, len(l.outputs)),
		weights:    l.weights,
		biases:     l.biases,
	}
}

// InitWeightsGlorot draws weights from a uniform distribution with
// variance 2/(fanIn+fanOut). Biases start at zero.
func (layer *Layer) InitWeightsGlorot(rnd *rand.Rand) *Layer {
	var outputSize = layer.weights.Rows
	var inputSize = layer.weights.Cols
	var variance = 2.0 / float64(inputSize+outputSize)
	ml.InitUniform(rnd, layer.weights.Data, variance)
	return layer
}

func (layer *Layer) Forward(input []Neuron) {
	for outputIndex := range layer.outputs {
		var x = layer.biases.Data[outputIndex]
		for inputIndex := range input {
			x += layer.weights.Get(outputIndex, inputIndex) * input[inputIndex].Activation
		}
		var n = &layer.outputs[outputIndex]
		n.Activation, n.Prime = layer.activation.Apply(x)
	}
}

// Backward expects Error of every output neuron to hold d(cost)/d(activation).
// It accumulates parameter gradients and propagates errors to input.
func (layer *Layer) Backward(input []Neuron) {
	for inputIndex := range input {
		input[inputIndex].Error = 0
	}
	for outputIndex := range layer.outputs {
		var n = &layer.outputs[outputIndex]
		var x = n.Error * n.Prime
		layer.bGradients.Add(outputIndex, 0, x)
		for inputIndex := range input {
			input[inputIndex].Error += layer.weights.Get(outputIndex, inputIndex) * x
			layer.wGradients.Add(outputIndex, inputIndex, x*input[inputIndex].Activation)
		}
	}
}

func (layer *Layer) ApplyGradients(batchSize int, learningRate float64) {
	layer.wGradients.Apply(&layer.weights, batchSize, learningRate)
	layer.bGradients.Apply(&layer.biases, batchSize, learningRate)
}
