package train

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ChizhovVadim/GestureNet/internal/ml"
)

type Topology struct {
	Inputs        uint32
	Outputs       uint32
	HiddenNeurons []uint32
}

func NewTopology(inputs, outputs uint32, hiddenNeurons []uint32) Topology {
	return Topology{
		Inputs:        inputs,
		Outputs:       outputs,
		HiddenNeurons: hiddenNeurons,
	}
}

func GestureTopology() Topology {
	return NewTopology(InputSize, OutputSize, []uint32{HiddenSize})
}

// Network is the frozen parameter set of a trained model.
type Network struct {
	Id       uint32
	Topology Topology
	Weights  []ml.Matrix
	Biases   []ml.Matrix
}

func (t *Topology) LayerSize() int {
	return len(t.HiddenNeurons) + 1
}

// Network snapshots the current parameters under a fresh random id.
func (m *Model) Network() *Network {
	return &Network{
		Id:       uuid.New().ID(),
		Topology: GestureTopology(),
		Weights:  []ml.Matrix{m.layer1.weights.Clone(), m.layer2.weights.Clone()},
		Biases:   []ml.Matrix{m.layer1.biases.Clone(), m.layer2.biases.Clone()},
	}
}

// NewModelFromNetwork rebuilds a model for inference or evaluation.
func NewModelFromNetwork(n *Network) (*Model, error) {
	var want = GestureTopology()
	if n.Topology.Inputs != want.Inputs ||
		n.Topology.Outputs != want.Outputs ||
		len(n.Topology.HiddenNeurons) != 1 ||
		n.Topology.HiddenNeurons[0] != HiddenSize {
		return nil, errors.Errorf("unexpected topology %+v", n.Topology)
	}
	var m = &Model{
		input:  make([]Neuron, InputSize),
		layer1: NewLayer(InputSize, make([]Neuron, HiddenSize), ml.ReLU),
		layer2: NewLayer(HiddenSize, make([]Neuron, OutputSize), ml.Linear),
		cost:   &ml.SoftmaxCrossEntropyCost{},
		logits: make([]float64, OutputSize),
		grad:   make([]float64, OutputSize),
	}
	m.layer1.weights = n.Weights[0].Clone()
	m.layer1.biases = n.Biases[0].Clone()
	m.layer2.weights = n.Weights[1].Clone()
	m.layer2.biases = n.Biases[1].Clone()
	return m, nil
}

// Binary specification for the network file:
// - All the data is stored in little-endian layout
// - All the matrices are written in column-major
// - The magic number/version consists of 4 bytes (int32):
//   - 66 (which is the ASCII code for B), uint8
//   - 90 (which is the ASCII code for Z), uint8
//   - 2 The major part of the current version number, uint8
//   - 0 The minor part of the current version number, uint8
//
// - 4 bytes (int32) to denote the network ID
// - 4 bytes (int32) to denote input size
// - 4 bytes (int32) to denote output size
// - 4 bytes (int32) number to represent the number of inputs
// - 4 bytes (int32) for the size of each layer
// - All weights for a layer, followed by all the biases of the same layer
// - Other layers follow just like the above point
func (n *Network) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return errors.Wrap(err, "create network file")
	}
	defer f.Close()

	var w = bufio.NewWriter(f)
	if err := n.Write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write network file")
	}
	return f.Close()
}

func (n *Network) Write(w io.Writer) error {
	// Write headers
	buf := []byte{66, 90, 2, 0}
	_, err := w.Write(buf)
	if err != nil {
		return err
	}

	// Write network Id
	binary.LittleEndian.PutUint32(buf, n.Id)
	_, err = w.Write(buf)
	if err != nil {
		return err
	}

	// Write Topology
	buf = make([]byte, 3*4+4*len(n.Topology.HiddenNeurons))
	binary.LittleEndian.PutUint32(buf[0:], n.Topology.Inputs)
	binary.LittleEndian.PutUint32(buf[4:], n.Topology.Outputs)
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(n.Topology.HiddenNeurons)))
	for i := 0; i < len(n.Topology.HiddenNeurons); i++ {
		binary.LittleEndian.PutUint32(buf[12+4*i:], n.Topology.HiddenNeurons[i])
	}
	_, err = w.Write(buf)
	if err != nil {
		return err
	}

	var layerSize = n.Topology.LayerSize()
	for i := 0; i < layerSize; i++ {
		err = writeSlice(w, n.Weights[i].Data)
		if err != nil {
			return err
		}
		err = writeSlice(w, n.Biases[i].Data)
		if err != nil {
			return err
		}
	}

	return nil
}

func LoadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open network file")
	}
	defer f.Close()

	n, err := ReadNetwork(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "load network %s", path)
	}
	return n, nil
}

func ReadNetwork(r io.Reader) (*Network, error) {
	// Read headers
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if buf[0] != 66 || buf[1] != 90 {
		return nil, errors.New("magic word does not match")
	}
	if buf[2] != 2 || buf[3] != 0 {
		return nil, errors.Errorf("network binary format %d.%d is not supported", buf[2], buf[3])
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "read id")
	}
	id := binary.LittleEndian.Uint32(buf)

	// Read Topology Header
	buf = make([]byte, 12)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "read topology")
	}
	inputs := binary.LittleEndian.Uint32(buf[:4])
	outputs := binary.LittleEndian.Uint32(buf[4:8])
	layers := binary.LittleEndian.Uint32(buf[8:])
	var want = GestureTopology()
	if inputs != want.Inputs || outputs != want.Outputs || int(layers) != len(want.HiddenNeurons) {
		return nil, errors.Errorf("unexpected topology: %d inputs, %d outputs, %d hidden layers",
			inputs, outputs, layers)
	}

	buf = make([]byte, 4*layers)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "read layer sizes")
	}
	neurons := make([]uint32, layers)
	for i := uint32(0); i < layers; i++ {
		neurons[i] = binary.LittleEndian.Uint32(buf[i*4 : (i+1)*4])
		if neurons[i] != want.HiddenNeurons[i] {
			return nil, errors.Errorf("unexpected size of hidden layer %d: %d", i, neurons[i])
		}
	}

	net := &Network{
		Topology: NewTopology(inputs, outputs, neurons),
		Id:       id,
	}
	net.Weights = make([]ml.Matrix, len(neurons)+1)
	net.Biases = make([]ml.Matrix, len(neurons)+1)

	inputSize := int(inputs)
	for i := 0; i < len(neurons)+1; i++ {
		var outputSize int
		if i == len(neurons) {
			outputSize = int(outputs)
		} else {
			outputSize = int(neurons[i])
		}
		net.Weights[i] = ml.NewMatrix(outputSize, inputSize)
		if err := readSlice(r, net.Weights[i].Data); err != nil {
			return nil, errors.Wrapf(err, "read weights of layer %d", i)
		}
		net.Biases[i] = ml.NewMatrix(outputSize, 1)
		if err := readSlice(r, net.Biases[i].Data); err != nil {
			return nil, errors.Wrapf(err, "read biases of layer %d", i)
		}
		inputSize = outputSize
	}
	return net, nil
}

func writeSlice(w io.Writer, data []float64) error {
	buf := make([]byte, 4)
	for j := range data {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(data[j])))
		_, err := w.Write(buf)
		if err != nil {
			return err
		}
	}
	return nil
}

func readSlice(r io.Reader, data []float64) error {
	buf := make([]byte, 4)
	for j := range data {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		data[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	}
	return nil
}
