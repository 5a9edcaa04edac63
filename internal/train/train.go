package train

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/ChizhovVadim/GestureNet/internal/dataset"
)

type Trainer struct {
	config Config
	model  *Model
	rnd    *rand.Rand
	logger *log.Logger
}

func NewTrainer(model *Model, config Config, logger *log.Logger) *Trainer {
	if logger == nil {
		logger = log.Default()
	}
	return &Trainer{
		config: config,
		model:  model,
		rnd:    rand.New(rand.NewSource(config.Seed)),
		logger: logger,
	}
}

func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be > 0 (got %v)", c.LearningRate)
	}
	return nil
}

// Train runs the full epoch budget. The parameters after the last epoch are
// the result; validation metrics are only reported.
func (t *Trainer) Train(training, validation dataset.Split) (History, error) {
	if err := t.config.Validate(); err != nil {
		return nil, err
	}
	if training.Len() == 0 {
		return nil, errors.New("training split is empty")
	}

	t.logger.Println("Train started",
		"training", training.Len(),
		"validation", validation.Len(),
		"epochs", t.config.Epochs,
		"batchSize", t.config.BatchSize)
	defer t.logger.Println("Train finished")

	var order = make([]int, training.Len())
	for i := range order {
		order[i] = i
	}

	var history = make(History, 0, t.config.Epochs)
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		shuffle(t.rnd, order)
		var trainingMetrics = t.trainEpoch(training, order)
		var validationMetrics = Evaluate(t.model, validation)
		history = append(history, EpochStats{
			Epoch:      epoch,
			Training:   trainingMetrics,
			Validation: validationMetrics,
		})
		t.logger.Printf("Epoch %v/%v loss: %.4f accuracy: %.4f val_loss: %.4f val_accuracy: %.4f\n",
			epoch, t.config.Epochs,
			trainingMetrics.Loss, trainingMetrics.Accuracy,
			validationMetrics.Loss, validationMetrics.Accuracy)
	}
	return history, nil
}

func (t *Trainer) trainEpoch(training dataset.Split, order []int) Metrics {
	var batchCount = (len(order) + t.config.BatchSize - 1) / t.config.BatchSize
	var losses = make([]float64, 0, batchCount)
	var accuracies = make([]float64, 0, batchCount)
	var weights = make([]float64, 0, batchCount)

	for start := 0; start < len(order); start += t.config.BatchSize {
		var end = min(start+t.config.BatchSize, len(order))
		var batchCost float64
		var correctCount int
		for _, index := range order[start:end] {
			var cost, correct = t.model.Train(training.Sample(index))
			batchCost += cost
			if correct {
				correctCount++
			}
		}
		var size = end - start
		t.model.ApplyGradients(size, t.config.LearningRate)

		losses = append(losses, batchCost/float64(size))
		accuracies = append(accuracies, float64(correctCount)/float64(size))
		weights = append(weights, float64(size))
	}

	return Metrics{
		Loss:     stat.Mean(losses, weights),
		Accuracy: stat.Mean(accuracies, weights),
	}
}

func shuffle(rnd *rand.Rand, order []int) {
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
