package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

const (
	labelColumn   = "label"
	gestureColumn = "gesture"
)

var featureColumns = [3]string{"s1", "s2", "s3"}

// ReadSplit parses a CSV with a header row. Feature columns s1, s2, s3 are
// required, the class comes from an integer "label" column or, failing that,
// a "gesture" column holding the display name.
func ReadSplit(r io.Reader) (Split, error) {
	var reader = csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Split{}, errors.New("missing header")
		}
		return Split{}, errors.Wrap(err, "read header")
	}

	var columns = make(map[string]int)
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var featureIndex [3]int
	for i, name := range featureColumns {
		index, found := columns[name]
		if !found {
			return Split{}, errors.Errorf("missing column %q", name)
		}
		featureIndex[i] = index
	}

	var parseLabel func(string) (gesture.Label, error)
	var labelIndex int
	if index, found := columns[labelColumn]; found {
		labelIndex = index
		parseLabel = parseClassIndex
	} else if index, found := columns[gestureColumn]; found {
		labelIndex = index
		parseLabel = gesture.ParseLabel
	} else {
		return Split{}, errors.Errorf("missing column %q or %q", labelColumn, gestureColumn)
	}

	var result Split
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Split{}, errors.Wrapf(err, "line %d", line)
		}

		var values [3]float64
		for i, index := range featureIndex {
			values[i], err = strconv.ParseFloat(strings.TrimSpace(record[index]), 64)
			if err != nil {
				return Split{}, errors.Wrapf(err, "line %d column %s", line, featureColumns[i])
			}
		}
		label, err := parseLabel(strings.TrimSpace(record[labelIndex]))
		if err != nil {
			return Split{}, errors.Wrapf(err, "line %d", line)
		}
		result.Append(gesture.Sample{
			Triplet: gesture.Triplet{S1: values[0], S2: values[1], S3: values[2]},
			Label:   label,
		})
	}
	return result, nil
}

func parseClassIndex(s string) (gesture.Label, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	var label = gesture.Label(index)
	if !label.Valid() {
		return 0, errors.Errorf("label %d out of range", index)
	}
	return label, nil
}
