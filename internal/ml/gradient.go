package ml

import "math"

const (
	Beta1   = 0.9
	Beta2   = 0.999
	Epsilon = 1e-7
)

// Gradient holds the accumulated batch gradient of one parameter together
// with its Adam moments.
type Gradient struct {
	Value float64
	M1    float64
	M2    float64
}

type Gradients struct {
	Data []Gradient
	Rows int
	Cols int
	step int
}

// Calculate returns the Adam update for the current (already averaged) Value.
// stepSize already includes the bias correction for this step.
func (g *Gradient) Calculate(stepSize float64) float64 {
	g.M1 = g.M1*Beta1 + g.Value*(1-Beta1)
	g.M2 = g.M2*Beta2 + (g.Value*g.Value)*(1-Beta2)

	return stepSize * g.M1 / (math.Sqrt(g.M2) + Epsilon)
}

func NewGradients(rows, cols int) Gradients {
	return Gradients{
		Data: make([]Gradient, cols*rows),
		Rows: rows,
		Cols: cols,
	}
}

func (g *Gradients) Add(row, col int, delta float64) {
	g.Data[col*g.Rows+row].Value += delta
}

// Apply performs one Adam step on m using the mean of the gradients
// accumulated over batchSize samples, then resets the accumulators.
func (g *Gradients) Apply(m *Matrix, batchSize int, learningRate float64) {
	if batchSize <= 0 {
		return
	}
	g.step++
	var t = float64(g.step)
	var stepSize = learningRate * math.Sqrt(1-math.Pow(Beta2, t)) / (1 - math.Pow(Beta1, t))
	var scale = 1 / float64(batchSize)
	for i := range g.Data {
		g.Data[i].Value *= scale
		m.Data[i] -= g.Data[i].Calculate(stepSize)
		g.Data[i].Value = 0
	}
}

func (g *Gradients) Steps() int {
	return g.step
}
