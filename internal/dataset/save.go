package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

var captureHeader = []string{"s1", "s2", "s3", gestureColumn}

// CSVWriter appends captured samples to a CSV file. The header is written
// only when the file did not exist before.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

func OpenCSVWriter(path string) (*CSVWriter, error) {
	var _, statErr = os.Stat(path)
	var exists = statErr == nil

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open samples file")
	}
	var w = &CSVWriter{
		file:   file,
		writer: csv.NewWriter(file),
	}
	if !exists {
		if err := w.writeRecord(captureHeader); err != nil {
			file.Close()
			return nil, err
		}
	}
	return w, nil
}

// Write persists one sample and flushes it to the file immediately.
func (w *CSVWriter) Write(sample gesture.Sample) error {
	return w.writeRecord(FormatRecord(sample))
}

func (w *CSVWriter) writeRecord(record []string) error {
	if err := w.writer.Write(record); err != nil {
		return errors.Wrap(err, "write sample")
	}
	w.writer.Flush()
	return errors.Wrap(w.writer.Error(), "flush sample")
}

func (w *CSVWriter) Close() error {
	w.writer.Flush()
	var flushErr = w.writer.Error()
	var closeErr = w.file.Close()
	if flushErr != nil {
		return errors.Wrap(flushErr, "flush samples file")
	}
	return closeErr
}

// FormatRecord renders the persisted form: three 4-decimal values and the display name.
func FormatRecord(sample gesture.Sample) []string {
	return []string{
		strconv.FormatFloat(sample.S1, 'f', 4, 64),
		strconv.FormatFloat(sample.S2, 'f', 4, 64),
		strconv.FormatFloat(sample.S3, 'f', 4, 64),
		sample.Label.String(),
	}
}
