package train

import (
	"github.com/ChizhovVadim/GestureNet/internal/dataset"
)

// Evaluate computes mean loss and accuracy over split without touching the
// model's parameters or buffers.
func Evaluate(m *Model, split dataset.Split) Metrics {
	var n = split.Len()
	if n == 0 {
		return Metrics{}
	}
	var scratch = m.scratchCopy()
	var totalCost float64
	var correctCount int
	for i := 0; i < n; i++ {
		var cost, correct = scratch.CalcCost(split.Sample(i))
		totalCost += cost
		if correct {
			correctCount++
		}
	}
	return Metrics{
		Loss:     totalCost / float64(n),
		Accuracy: float64(correctCount) / float64(n),
	}
}
