// Command evalnet checks a saved gesture network against a labelled dataset.
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/ChizhovVadim/GestureNet/internal/dataset"
	"github.com/ChizhovVadim/GestureNet/internal/quality"
	"github.com/ChizhovVadim/GestureNet/internal/train"
)

type args struct {
	Net     string `arg:"--net,required" help:"binary network file"`
	Dataset string `arg:"--vd,required" help:"labelled CSV (path or URL)"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var a args
	arg.MustParse(&a)

	var err = run(a, os.Stdout)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(a args, stdout io.Writer) error {
	network, err := train.LoadNetwork(a.Net)
	if err != nil {
		return err
	}
	model, err := train.NewModelFromNetwork(network)
	if err != nil {
		return err
	}

	var repo = dataset.NewRepository("", a.Dataset, "")
	split, err := repo.Load(context.Background(), dataset.Validation)
	if err != nil {
		return err
	}

	var metrics = train.Evaluate(model, split)
	log.Println("Evaluated network", network.Id,
		"loss", metrics.Loss,
		"accuracy", metrics.Accuracy)

	var report = quality.Build(model, split)
	return report.Write(stdout)
}
