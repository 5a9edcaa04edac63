// Package config holds the settings shared by the capture, train and export commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ChizhovVadim/GestureNet/internal/train"
)

type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Dataset DatasetConfig `yaml:"dataset"`
	Train   TrainConfig   `yaml:"train"`
	Export  ExportConfig  `yaml:"export"`
}

type CaptureConfig struct {
	Port        string        `yaml:"port"`
	BaudRate    int           `yaml:"baud_rate"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	Quota       int           `yaml:"quota"`
	OutputDir   string        `yaml:"output_dir"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// DatasetConfig locates each partition by file path or http(s) URL.
type DatasetConfig struct {
	Train      string `yaml:"train"`
	Validation string `yaml:"validation"`
	Test       string `yaml:"test"`
}

type TrainConfig struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float64 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
}

// Schedule converts the section into trainer settings.
func (c TrainConfig) Schedule() train.Config {
	return train.Config{
		Epochs:       c.Epochs,
		BatchSize:    c.BatchSize,
		LearningRate: c.LearningRate,
		Seed:         c.Seed,
	}
}

type ExportConfig struct {
	Network string `yaml:"network"`
	Output  string `yaml:"output"`
}

func Default() *Config {
	var schedule = train.DefaultConfig()
	return &Config{
		Capture: CaptureConfig{
			Port:        "COM4",
			BaudRate:    115200,
			ReadTimeout: time.Second,
			SettleDelay: 1500 * time.Millisecond,
			Quota:       2000,
			OutputDir:   ".",
		},
		Dataset: DatasetConfig{
			Train:      "gesture_dataset_train.csv",
			Validation: "gesture_dataset_val.csv",
			Test:       "gesture_dataset_test.csv",
		},
		Train: TrainConfig{
			Epochs:       schedule.Epochs,
			BatchSize:    schedule.BatchSize,
			LearningRate: schedule.LearningRate,
			Seed:         schedule.Seed,
		},
		Export: ExportConfig{
			Network: "gesture.nn",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg = Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides carries command line values; zero values leave the config untouched.
type Overrides struct {
	Port        string
	BaudRate    int
	Quota       int
	OutputDir   string
	MetricsAddr string

	Train      string
	Validation string
	Test       string

	Epochs    int
	BatchSize int
	Seed      int64

	Network string
	Output  string
}

func (c *Config) ApplyOverrides(o Overrides) {
	if o.Port != "" {
		c.Capture.Port = o.Port
	}
	if o.BaudRate > 0 {
		c.Capture.BaudRate = o.BaudRate
	}
	if o.Quota > 0 {
		c.Capture.Quota = o.Quota
	}
	if o.OutputDir != "" {
		c.Capture.OutputDir = o.OutputDir
	}
	if o.MetricsAddr != "" {
		c.Capture.MetricsAddr = o.MetricsAddr
	}
	if o.Train != "" {
		c.Dataset.Train = o.Train
	}
	if o.Validation != "" {
		c.Dataset.Validation = o.Validation
	}
	if o.Test != "" {
		c.Dataset.Test = o.Test
	}
	if o.Epochs > 0 {
		c.Train.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.Train.BatchSize = o.BatchSize
	}
	if o.Seed != 0 {
		c.Train.Seed = o.Seed
	}
	if o.Network != "" {
		c.Export.Network = o.Network
	}
	if o.Output != "" {
		c.Export.Output = o.Output
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Capture.BaudRate <= 0 {
		return fmt.Errorf("capture.baud_rate must be > 0 (got %d)", c.Capture.BaudRate)
	}
	if c.Capture.ReadTimeout <= 0 {
		return fmt.Errorf("capture.read_timeout must be > 0 (got %v)", c.Capture.ReadTimeout)
	}
	if c.Capture.SettleDelay < 0 {
		return fmt.Errorf("capture.settle_delay must be >= 0 (got %v)", c.Capture.SettleDelay)
	}
	if c.Capture.Quota <= 0 {
		return fmt.Errorf("capture.quota must be > 0 (got %d)", c.Capture.Quota)
	}
	if c.Train.Epochs <= 0 {
		return fmt.Errorf("train.epochs must be > 0 (got %d)", c.Train.Epochs)
	}
	if c.Train.BatchSize <= 0 {
		return fmt.Errorf("train.batch_size must be > 0 (got %d)", c.Train.BatchSize)
	}
	if c.Train.LearningRate <= 0 {
		return fmt.Errorf("train.learning_rate must be > 0 (got %v)", c.Train.LearningRate)
	}
	return nil
}
