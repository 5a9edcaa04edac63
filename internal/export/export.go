// Package export renders trained parameters as C float array declarations
// that an embedded inference routine can include verbatim.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/GestureNet/internal/train"
)

// Tensor is a named parameter block in row-major order.
type Tensor struct {
	Name   string
	Shape  []int
	Values []float64
}

func (t *Tensor) size() int {
	var n = 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// FromNetwork extracts W1 (inputs x hidden), B1, W2 (hidden x outputs) and B2
// so that logits = ReLU(x*W1 + B1)*W2 + B2.
func FromNetwork(n *train.Network) ([]Tensor, error) {
	if n.Topology.LayerSize() != 2 || len(n.Weights) != 2 || len(n.Biases) != 2 {
		return nil, fmt.Errorf("export: expected 2 dense layers, got %d", n.Topology.LayerSize())
	}
	var result []Tensor
	for i := range n.Weights {
		var w = &n.Weights[i]
		var b = &n.Biases[i]
		// column-major (outputs x inputs) is row-major (inputs x outputs)
		result = append(result,
			Tensor{
				Name:   "W" + strconv.Itoa(i+1),
				Shape:  []int{w.Cols, w.Rows},
				Values: append([]float64(nil), w.Data...),
			},
			Tensor{
				Name:   "B" + strconv.Itoa(i+1),
				Shape:  []int{b.Rows},
				Values: append([]float64(nil), b.Data...),
			})
	}
	return result, nil
}

// formatValue prints the value the target will actually store: rounded to
// single precision, nine decimals, with an f suffix.
func formatValue(v float64) string {
	return strconv.FormatFloat(float64(float32(v)), 'f', 9, 64) + "f"
}

func joinValues(values []float64) string {
	var items = make([]string, len(values))
	for i, v := range values {
		items[i] = formatValue(v)
	}
	return strings.Join(items, ", ")
}

// WriteTensor emits one declaration, e.g.
//
//	float W1[3][5] = {
//	  { 0.123456789f, ... },
//	};
func WriteTensor(w io.Writer, t Tensor) error {
	if len(t.Values) != t.size() {
		return fmt.Errorf("export: %s has %d values for shape %v", t.Name, len(t.Values), t.Shape)
	}
	switch len(t.Shape) {
	case 1:
		_, err := fmt.Fprintf(w, "float %s[%d] = { %s };\n\n", t.Name, t.Shape[0], joinValues(t.Values))
		return err
	case 2:
		var rows, cols = t.Shape[0], t.Shape[1]
		if _, err := fmt.Fprintf(w, "float %s[%d][%d] = {\n", t.Name, rows, cols); err != nil {
			return err
		}
		for r := 0; r < rows; r++ {
			if _, err := fmt.Fprintf(w, "  { %s },\n", joinValues(t.Values[r*cols:(r+1)*cols])); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "};\n\n")
		return err
	}
	return fmt.Errorf("export: %s has unsupported rank %d", t.Name, len(t.Shape))
}

// Write emits W1, B1, W2, B2 for the network.
func Write(w io.Writer, n *train.Network) error {
	tensors, err := FromNetwork(n)
	if err != nil {
		return err
	}
	var bw = bufio.NewWriter(w)
	for _, t := range tensors {
		if err := WriteTensor(bw, t); err != nil {
			return err
		}
	}
	return bw.Flush()
}
