package train

import "github.com/ChizhovVadim/GestureNet/pkg/gesture"

const (
	InputSize  = 3
	HiddenSize = 5
	OutputSize = gesture.LabelCount
)

type Config struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64
}

// DefaultConfig is the training schedule used unless a config file overrides it.
func DefaultConfig() Config {
	return Config{
		Epochs:       200,
		BatchSize:    128,
		LearningRate: 0.01,
		Seed:         0,
	}
}

// Metrics are mean cross-entropy and arg-max accuracy over a split.
type Metrics struct {
	Loss     float64
	Accuracy float64
}

type EpochStats struct {
	Epoch      int
	Training   Metrics
	Validation Metrics
}

type History []EpochStats

func (h History) Last() EpochStats {
	if len(h) == 0 {
		return EpochStats{}
	}
	return h[len(h)-1]
}
