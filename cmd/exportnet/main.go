// Command exportnet prints the C arrays of a saved gesture network.
package main

import (
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/ChizhovVadim/GestureNet/internal/export"
	"github.com/ChizhovVadim/GestureNet/internal/train"
)

type args struct {
	Net string `arg:"positional,required" help:"binary network file written by train"`
	Out string `arg:"--out" help:"output file (default stdout)"`
}

func (args) Description() string {
	return "Convert a trained gesture network into C float arrays."
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var a args
	arg.MustParse(&a)

	if err := run(a, os.Stdout); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(a args, stdout io.Writer) (err error) {
	network, err := train.LoadNetwork(a.Net)
	if err != nil {
		return err
	}
	log.Println("Loaded network", a.Net, "id", network.Id)

	if a.Out == "" {
		return export.Write(stdout, network)
	}
	f, err := os.Create(a.Out)
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
