// Command train fits the gesture classifier and prints its weights as C arrays.
package main

import (
	"context"
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/ChizhovVadim/GestureNet/internal/config"
	"github.com/ChizhovVadim/GestureNet/internal/dataset"
	"github.com/ChizhovVadim/GestureNet/internal/export"
	"github.com/ChizhovVadim/GestureNet/internal/train"
)

type args struct {
	Config     string `arg:"--config" help:"YAML config file"`
	Train      string `arg:"--td" help:"training partition (path or URL)"`
	Validation string `arg:"--vd" help:"validation partition (path or URL)"`
	Test       string `arg:"--test" help:"test partition (path or URL)"`
	Epochs     int    `arg:"--epochs" help:"number of epochs"`
	BatchSize  int    `arg:"--batch" help:"mini-batch size"`
	Seed       int64  `arg:"--seed" help:"seed for initialisation and shuffling"`
	Net        string `arg:"--net" help:"path of the binary network file to write"`
	Out        string `arg:"--out" help:"write the C arrays here instead of stdout"`
}

func (args) Description() string {
	return "Train the 3-5-8 gesture classifier and export its weights."
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var a args
	arg.MustParse(&a)

	var err = run(a)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(a args) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(config.Overrides{
		Train:      a.Train,
		Validation: a.Validation,
		Test:       a.Test,
		Epochs:     a.Epochs,
		BatchSize:  a.BatchSize,
		Seed:       a.Seed,
		Network:    a.Net,
		Output:     a.Out,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Printf("%+v", cfg)

	var repo = dataset.NewRepository(cfg.Dataset.Train, cfg.Dataset.Validation, cfg.Dataset.Test)
	model, _, err := train.Run(context.Background(), repo, cfg.Train.Schedule(), log.Default())
	if err != nil {
		return err
	}

	var network = model.Network()
	if cfg.Export.Network != "" {
		if err := network.Save(cfg.Export.Network); err != nil {
			return err
		}
		log.Println("Stored network", cfg.Export.Network, "id", network.Id)
	}

	return writeExport(cfg.Export.Output, network)
}

func writeExport(path string, network *train.Network) (err error) {
	if path == "" {
		return export.Write(os.Stdout, network)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return export.Write(f, network)
}
