package dataset

import (
	"errors"
	"fmt"

	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

type Partition string

const (
	Train      Partition = "train"
	Validation Partition = "validation"
	Test       Partition = "test"
)

func Partitions() []Partition {
	return []Partition{Train, Validation, Test}
}

var ErrDatasetUnavailable = errors.New("dataset unavailable")

// UnavailableError reports a partition that could not be located or parsed.
type UnavailableError struct {
	Partition Partition
	Location  string
	Err       error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("dataset %s (%s) unavailable: %v", e.Partition, e.Location, e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrDatasetUnavailable, e.Err}
}

// Split holds one partition as parallel feature/label arrays in file order.
type Split struct {
	Features []gesture.Triplet
	Labels   []gesture.Label
}

func (s *Split) Len() int {
	return len(s.Labels)
}

func (s *Split) Sample(i int) gesture.Sample {
	return gesture.Sample{Triplet: s.Features[i], Label: s.Labels[i]}
}

func (s *Split) Append(sample gesture.Sample) {
	s.Features = append(s.Features, sample.Triplet)
	s.Labels = append(s.Labels, sample.Label)
}

type Splits struct {
	Train      Split
	Validation Split
	Test       Split
}

// Get returns the split stored for p, or nil for an unknown partition.
func (s *Splits) Get(p Partition) *Split {
	switch p {
	case Train:
		return &s.Train
	case Validation:
		return &s.Validation
	case Test:
		return &s.Test
	}
	return nil
}
