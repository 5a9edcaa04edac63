package gesture

import (
	"fmt"
	"strings"
)

// Label is one of the eight gesture categories.
// The ordinal value is the class index used by datasets and the network output.
type Label int

const (
	LightTouch Label = iota
	HardTouch
	LeftLight
	LeftHard
	RightLight
	RightHard
	Middle
	Indeterminate
)

const LabelCount = 8

var labelNames = [LabelCount]string{
	"Light Touch",
	"Hard Touch",
	"Left Light",
	"Left Hard",
	"Right Light",
	"Right Hard",
	"Middle",
	"Indeterminate",
}

// Triplet is a single reading of the three pressure channels.
type Triplet struct {
	S1, S2, S3 float64
}

type Sample struct {
	Triplet
	Label Label
}

func Labels() []Label {
	var result = make([]Label, LabelCount)
	for i := range result {
		result[i] = Label(i)
	}
	return result
}

// Names returns the canonical display names in class index order.
func Names() []string {
	return labelNames[:]
}

func (l Label) Valid() bool {
	return l >= 0 && l < LabelCount
}

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// FileStem is the lower-case, underscore separated form of the display name,
// e.g. "left_hard" for LeftHard.
func (l Label) FileStem() string {
	return strings.ReplaceAll(strings.ToLower(l.String()), " ", "_")
}

// ParseLabel matches a display name exactly (case-sensitive).
func ParseLabel(name string) (Label, error) {
	for i, n := range labelNames {
		if n == name {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gesture %q", name)
}
