package capture

import (
	"strconv"
	"strings"

	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

// ParseLine reads "s1=<f>,s2=<f>,s3=<f>". Only the first three comma separated
// fields are used and the key in front of '=' is not checked.
func ParseLine(line string) (gesture.Triplet, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return gesture.Triplet{}, false
	}
	var fields = strings.Split(line, ",")
	if len(fields) < 3 {
		return gesture.Triplet{}, false
	}
	var values [3]float64
	for i := range values {
		var parts = strings.Split(fields[i], "=")
		if len(parts) < 2 {
			return gesture.Triplet{}, false
		}
		var v, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return gesture.Triplet{}, false
		}
		values[i] = v
	}
	return gesture.Triplet{S1: values[0], S2: values[1], S3: values[2]}, true
}
