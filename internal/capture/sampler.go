// Package capture turns a live sensor line stream into labelled samples for
// one target gesture.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ChizhovVadim/GestureNet/internal/metrics"
	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

type ISampleWriter interface {
	Write(sample gesture.Sample) error
}

type Result struct {
	Accepted  int
	Rejected  int
	Malformed int
}

type Sampler struct {
	Target   gesture.Label
	Quota    int
	Reader   ILineReader
	Writer   ISampleWriter
	Metrics  *metrics.Capture
	OnAccept func(accepted int, sample gesture.Sample)
}

// Run reads until Quota samples matching Target have been written.
// Unparsable lines and triplets outside the target region are skipped.
// A read timeout (ErrNoData) is retried indefinitely.
func (s *Sampler) Run(ctx context.Context) (Result, error) {
	var result Result
	if s.Quota <= 0 {
		return result, fmt.Errorf("capture: quota must be > 0 (got %d)", s.Quota)
	}
	if !s.Target.Valid() {
		return result, fmt.Errorf("capture: invalid target %v", s.Target)
	}

	for result.Accepted < s.Quota {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var line, err = s.Reader.ReadLine()
		if err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return result, fmt.Errorf("capture: read after %d of %d samples: %w", result.Accepted, s.Quota, err)
		}

		var triplet, ok = ParseLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				result.Malformed++
				s.Metrics.Observe(metrics.OutcomeMalformed)
			}
			continue
		}
		if !s.Target.Matches(triplet) {
			result.Rejected++
			s.Metrics.Observe(metrics.OutcomeRejected)
			continue
		}

		var sample = gesture.Sample{Triplet: triplet, Label: s.Target}
		if err := s.Writer.Write(sample); err != nil {
			return result, err
		}
		result.Accepted++
		s.Metrics.Observe(metrics.OutcomeAccepted)
		if s.OnAccept != nil {
			s.OnAccept(result.Accepted, sample)
		}
	}
	return result, nil
}
