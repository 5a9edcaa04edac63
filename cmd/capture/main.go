// Command capture records labelled sensor samples for one gesture.
//
//	capture "Left Hard"
//	capture --port - "Middle" < recording.txt
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/GestureNet/internal/capture"
	"github.com/ChizhovVadim/GestureNet/internal/config"
	"github.com/ChizhovVadim/GestureNet/internal/dataset"
	"github.com/ChizhovVadim/GestureNet/internal/metrics"
	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

type args struct {
	Gesture     string `arg:"positional" help:"gesture display name, e.g. \"Left Hard\""`
	Config      string `arg:"--config" help:"YAML config file"`
	Port        string `arg:"--port" help:"serial port, or - to read lines from stdin"`
	Baud        int    `arg:"--baud" help:"serial baud rate"`
	Quota       int    `arg:"--quota" help:"number of accepted samples to collect"`
	Out         string `arg:"--out" help:"directory for the samples file"`
	MetricsAddr string `arg:"--metrics-addr" help:"serve Prometheus metrics on this address"`
	Verbose     bool   `arg:"-v,--verbose" help:"log every accepted sample"`
}

func (args) Description() string {
	return "Capture sensor samples that match the given gesture."
}

const program = "capture"

func main() {
	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)

	a, label, err := parseArgs(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		if err == arg.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if err := run(a, label, os.Stdin, logger); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

// parseArgs accepts exactly one gesture name. On failure the reason and the
// list of allowed names go to stderr.
func parseArgs(argv []string, stdout, stderr io.Writer) (args, gesture.Label, error) {
	var a args
	p, err := arg.NewParser(arg.Config{Program: program}, &a)
	if err != nil {
		return a, 0, err
	}
	err = p.Parse(argv)
	if err == arg.ErrHelp {
		p.WriteHelp(stdout)
		writeAllowed(stdout)
		return a, 0, err
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		writeUsage(stderr)
		return a, 0, err
	}
	if a.Gesture == "" {
		writeUsage(stderr)
		return a, 0, fmt.Errorf("missing gesture")
	}

	label, err := gesture.ParseLabel(strings.TrimSpace(a.Gesture))
	if err != nil {
		fmt.Fprintf(stderr, "Invalid gesture: '%s'\n", a.Gesture)
		writeAllowed(stderr)
		return a, 0, err
	}
	return a, label, nil
}

func writeUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [--config FILE] [--port PORT] \"Gesture Name\"\n", program)
	writeAllowed(w)
}

func writeAllowed(w io.Writer) {
	fmt.Fprintln(w, "Allowed gestures:")
	for _, name := range gesture.Names() {
		fmt.Fprintf(w, "  - %q\n", name)
	}
}

type lineSource interface {
	capture.ILineReader
	io.Closer
}

// run captures until the quota is met. stdin feeds the "-" port.
func run(a args, label gesture.Label, stdin io.Reader, logger *log.Logger) (err error) {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(config.Overrides{
		Port:        a.Port,
		BaudRate:    a.Baud,
		Quota:       a.Quota,
		OutputDir:   a.Out,
		MetricsAddr: a.MetricsAddr,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	var session = uuid.New()
	var path = filepath.Join(cfg.Capture.OutputDir, label.FileStem()+".csv")
	logger.Println("capture started",
		"session", session,
		"gesture", label,
		"port", cfg.Capture.Port,
		"quota", cfg.Capture.Quota,
		"file", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := openSource(cfg.Capture, stdin, logger)
	if err != nil {
		return err
	}
	defer source.Close()

	writer, err := dataset.OpenCSVWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var reg = prometheus.NewRegistry()
	var bar = pb.New(cfg.Capture.Quota).SetWriter(os.Stderr)
	var sampler = &capture.Sampler{
		Target:  label,
		Quota:   cfg.Capture.Quota,
		Reader:  source,
		Writer:  writer,
		Metrics: metrics.NewCapture(reg, label.String()),
		OnAccept: func(accepted int, sample gesture.Sample) {
			bar.Increment()
			if a.Verbose {
				logger.Printf("accepted %d value=(%.3f, %.3f, %.3f)\n", accepted, sample.S1, sample.S2, sample.S3)
			}
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	defer cancel()

	var result capture.Result
	g.Go(func() error {
		defer cancel()
		bar.Start()
		defer bar.Finish()
		var err error
		result, err = sampler.Run(gctx)
		return err
	})
	if cfg.Capture.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.Capture.MetricsAddr, reg, logger)
		})
	}
	err = g.Wait()

	logger.Println("capture finished",
		"session", session,
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"malformed", result.Malformed)
	if err != nil {
		return err
	}
	logger.Printf("Reached %d kept samples. Done.\n", cfg.Capture.Quota)
	return nil
}

func openSource(cfg config.CaptureConfig, stdin io.Reader, logger *log.Logger) (lineSource, error) {
	if cfg.Port == "-" {
		return stdinSource{capture.NewStreamReader(stdin)}, nil
	}
	port, err := capture.OpenSerial(cfg.Port, cfg.BaudRate, cfg.ReadTimeout)
	if err != nil {
		return nil, err
	}
	logger.Println("serial port open", "port", cfg.Port, "baud", cfg.BaudRate)
	if err := port.Settle(cfg.SettleDelay); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset input buffer: %w", err)
	}
	return port, nil
}

type stdinSource struct {
	*capture.StreamReader
}

func (stdinSource) Close() error { return nil }
