package capture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/GestureNet/internal/dataset"
	"github.com/ChizhovVadim/GestureNet/internal/metrics"
	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want gesture.Triplet
		ok   bool
	}{
		{"plain", "s1=0.05,s2=0.05,s3=0.20", gesture.Triplet{S1: 0.05, S2: 0.05, S3: 0.2}, true},
		{"whitespace", "  s1= 0.5 , s2 =0.25,s3=1 \r\n", gesture.Triplet{S1: 0.5, S2: 0.25, S3: 1}, true},
		{"extra fields", "s1=0.1,s2=0.2,s3=0.3,s4=9,t=100", gesture.Triplet{S1: 0.1, S2: 0.2, S3: 0.3}, true},
		{"negative", "s1=-0.1,s2=0,s3=2", gesture.Triplet{S1: -0.1, S2: 0, S3: 2}, true},
		{"not a number", "s1=abc,s2=0.1,s3=0.1", gesture.Triplet{}, false},
		{"missing equals", "s1=0.1,s2 0.1,s3=0.1", gesture.Triplet{}, false},
		{"two fields", "s1=0.1,s2=0.1", gesture.Triplet{}, false},
		{"empty value", "s1=,s2=0.1,s3=0.1", gesture.Triplet{}, false},
		{"empty", "", gesture.Triplet{}, false},
		{"blank", " \n", gesture.Triplet{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPersistedFormatReparses(t *testing.T) {
	for i := 0; i <= 500; i++ {
		var v = float64(i)/500 + 0.00004
		var tr = gesture.Triplet{S1: v, S2: 1 - v, S3: v / 2}
		var record = dataset.FormatRecord(gesture.Sample{Triplet: tr})
		var line = "s1=" + record[0] + ",s2=" + record[1] + ",s3=" + record[2]
		got, ok := ParseLine(line)
		require.True(t, ok)
		assert.InDelta(t, tr.S1, got.S1, 1e-4)
		assert.InDelta(t, tr.S2, got.S2, 1e-4)
		assert.InDelta(t, tr.S3, got.S3, 1e-4)
	}
}

// scriptedReader replays lines; ErrNoData entries simulate read timeouts.
type scriptedReader struct {
	items []interface{}
	reads int
}

func (r *scriptedReader) ReadLine() (string, error) {
	r.reads++
	if len(r.items) == 0 {
		return "", io.EOF
	}
	var item = r.items[0]
	r.items = r.items[1:]
	switch v := item.(type) {
	case error:
		return "", v
	case string:
		return v, nil
	}
	panic("unexpected item")
}

type memoryWriter struct {
	samples []gesture.Sample
	err     error
}

func (w *memoryWriter) Write(sample gesture.Sample) error {
	if w.err != nil {
		return w.err
	}
	w.samples = append(w.samples, sample)
	return nil
}

func TestSamplerScenarios(t *testing.T) {
	const line = "s1=0.05,s2=0.05,s3=0.20"

	t.Run("right light accepted", func(t *testing.T) {
		var w = &memoryWriter{}
		var s = &Sampler{Target: gesture.RightLight, Quota: 1, Reader: &scriptedReader{items: []interface{}{line}}, Writer: w}
		result, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Result{Accepted: 1}, result)
		assert.Equal(t, []gesture.Sample{{Triplet: gesture.Triplet{S1: 0.05, S2: 0.05, S3: 0.2}, Label: gesture.RightLight}}, w.samples)
	})

	t.Run("middle rejected", func(t *testing.T) {
		var w = &memoryWriter{}
		var s = &Sampler{Target: gesture.Middle, Quota: 1, Reader: &scriptedReader{items: []interface{}{line}}, Writer: w}
		result, err := s.Run(context.Background())
		assert.True(t, errors.Is(err, io.EOF))
		assert.Equal(t, Result{Rejected: 1}, result)
		assert.Empty(t, w.samples)
	})

	t.Run("malformed skipped", func(t *testing.T) {
		var w = &memoryWriter{}
		var reader = &scriptedReader{items: []interface{}{"s1=abc,s2=0.1,s3=0.1", "s1=0.1,s2=0.1,s3=0.1"}}
		var s = &Sampler{Target: gesture.LightTouch, Quota: 1, Reader: reader, Writer: w}
		result, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Result{Accepted: 1, Malformed: 1}, result)
		assert.Len(t, w.samples, 1)
	})
}

func TestSamplerStopsAtQuota(t *testing.T) {
	var items []interface{}
	for i := 0; i < 20; i++ {
		items = append(items, "s1=0.9,s2=0.9,s3=0.9", ErrNoData, "", "junk")
	}
	var reader = &scriptedReader{items: items}
	var w = &memoryWriter{}
	var reported []int
	var reg = prometheus.NewRegistry()
	var s = &Sampler{
		Target:  gesture.HardTouch,
		Quota:   5,
		Reader:  reader,
		Writer:  w,
		Metrics: metrics.NewCapture(reg, gesture.HardTouch.String()),
		OnAccept: func(accepted int, sample gesture.Sample) {
			reported = append(reported, accepted)
		},
	}
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Accepted)
	assert.Equal(t, 4, result.Malformed)
	assert.Len(t, w.samples, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, reported)
	// the loop stops right after the quota-reaching line
	assert.Equal(t, 4*4+1, reader.reads)
	assert.Equal(t, 5.0, testutil.ToFloat64(s.Metrics.Count(metrics.OutcomeAccepted)))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.Metrics.Count(metrics.OutcomeMalformed)))
}

func TestSamplerRetriesTimeouts(t *testing.T) {
	var items []interface{}
	for i := 0; i < 1000; i++ {
		items = append(items, ErrNoData)
	}
	items = append(items, "s1=0.1,s2=0.9,s3=0.1")
	var s = &Sampler{Target: gesture.Middle, Quota: 1, Reader: &scriptedReader{items: items}, Writer: &memoryWriter{}}
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
}

func TestSamplerErrors(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var s = &Sampler{Target: gesture.Middle, Quota: 1, Reader: &scriptedReader{}, Writer: &memoryWriter{}}
	_, err := s.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	var writeErr = errors.New("disk full")
	s = &Sampler{Target: gesture.Middle, Quota: 1, Reader: &scriptedReader{items: []interface{}{"s1=0.1,s2=0.9,s3=0.1"}}, Writer: &memoryWriter{err: writeErr}}
	_, err = s.Run(context.Background())
	assert.True(t, errors.Is(err, writeErr))

	s = &Sampler{Target: gesture.Middle, Quota: 0, Reader: &scriptedReader{}, Writer: &memoryWriter{}}
	_, err = s.Run(context.Background())
	assert.Error(t, err)
}

func TestSamplerWritesCSV(t *testing.T) {
	var path = filepath.Join(t.TempDir(), gesture.RightLight.FileStem()+".csv")
	w, err := dataset.OpenCSVWriter(path)
	require.NoError(t, err)
	var input = "s1=0.05,s2=0.05,s3=0.20\ns1=0.5,s2=0.5,s3=0.5\ns1=0.0,s2=0.1,s3=0.3\ns1=0.01,s2=0.0,s3=0.15\n"
	var s = &Sampler{
		Target: gesture.RightLight,
		Quota:  2,
		Reader: NewStreamReader(strings.NewReader(input)),
		Writer: w,
	}
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, Result{Accepted: 2, Rejected: 1}, result)

	split, err := (&dataset.Repository{Locations: map[dataset.Partition]string{dataset.Train: path}}).Load(context.Background(), dataset.Train)
	require.NoError(t, err)
	assert.Equal(t, []gesture.Label{gesture.RightLight, gesture.RightLight}, split.Labels)
}

// timeoutReader returns (0, nil) between chunks like a serial port with a read timeout.
type timeoutReader struct {
	chunks []string
	toggle bool
}

func (r *timeoutReader) Read(p []byte) (int, error) {
	r.toggle = !r.toggle
	if r.toggle {
		return 0, nil
	}
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	var n = copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestStreamReader(t *testing.T) {
	var r = NewStreamReader(&timeoutReader{chunks: []string{"s1=0.1,s2", "=0.2,s3=0.3\ns1=1,", "s2=2,s3=3\n\xffpartial"}})
	var lines []string
	var timeouts int
	for {
		line, err := r.ReadLine()
		if errors.Is(err, ErrNoData) {
			timeouts++
			continue
		}
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"s1=0.1,s2=0.2,s3=0.3\n", "s1=1,s2=2,s3=3\n", "partial"}, lines)
	assert.Greater(t, timeouts, 0)
}

func TestStreamReaderDropsRunawayNoise(t *testing.T) {
	var noise = bytes.Repeat([]byte{'x'}, maxPendingLine+10)
	var r = NewStreamReader(io.MultiReader(bytes.NewReader(noise), strings.NewReader("\ns1=0,s2=0,s3=0\n")))
	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Less(t, len(line), maxPendingLine)
}
