package ml

// Activation selects the non-linearity of a dense layer. The gesture network
// only needs a rectifier for the hidden layer and raw logits at the output.
type Activation int

const (
	Linear Activation = iota
	ReLU
)

// Apply returns the activation at x together with its derivative.
// The rectifier derivative at exactly zero is taken as 0.
func (a Activation) Apply(x float64) (y, prime float64) {
	if a == ReLU && x <= 0 {
		return 0, 0
	}
	return x, 1
}

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	}
	return "unknown"
}
