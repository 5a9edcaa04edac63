package train

import (
	"context"
	"log"
	"math/rand"

	"github.com/ChizhovVadim/GestureNet/internal/dataset"
)

type IDatasetRepository interface {
	LoadAll(ctx context.Context) (dataset.Splits, error)
}

type Report struct {
	History History
	Test    Metrics
}

// Run loads all partitions, trains a fresh model, and evaluates it on the test partition.
func Run(
	ctx context.Context,
	repo IDatasetRepository,
	config Config,
	logger *log.Logger,
) (*Model, Report, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := config.Validate(); err != nil {
		return nil, Report{}, err
	}

	splits, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, Report{}, err
	}

	var model = NewModel(rand.New(rand.NewSource(config.Seed)))
	var trainer = NewTrainer(model, config, logger)
	history, err := trainer.Train(splits.Train, splits.Validation)
	if err != nil {
		return nil, Report{}, err
	}
	logger.Println("Final val accuracy", history.Last().Validation.Accuracy)

	var test = Evaluate(model, splits.Test)
	logger.Println("Test accuracy", test.Accuracy,
		"loss", test.Loss)

	return model, Report{History: history, Test: test}, nil
}
