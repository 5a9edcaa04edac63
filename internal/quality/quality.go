// Package quality reports how a classifier performs on a labelled split.
package quality

import (
	"fmt"
	"io"

	"github.com/ChizhovVadim/GestureNet/internal/dataset"
	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

type IClassifier interface {
	Predict(t gesture.Triplet) gesture.Label
}

// Report is a confusion matrix indexed [actual][predicted].
type Report struct {
	Confusion [gesture.LabelCount][gesture.LabelCount]int
	Total     int
	Correct   int
	// samples whose stored label is confirmed by the gesture rules
	RuleAgreement int
}

func Build(c IClassifier, split dataset.Split) Report {
	var r Report
	for i := 0; i < split.Len(); i++ {
		var sample = split.Sample(i)
		if !sample.Label.Valid() {
			continue
		}
		var predicted = c.Predict(sample.Triplet)
		r.Confusion[sample.Label][predicted]++
		r.Total++
		if predicted == sample.Label {
			r.Correct++
		}
		if sample.Label.Matches(sample.Triplet) {
			r.RuleAgreement++
		}
	}
	return r
}

func (r *Report) Accuracy() float64 {
	return ratio(r.Correct, r.Total)
}

func (r *Report) Recall(l gesture.Label) float64 {
	var actual int
	for _, n := range r.Confusion[l] {
		actual += n
	}
	return ratio(r.Confusion[l][l], actual)
}

func (r *Report) Precision(l gesture.Label) float64 {
	var predicted int
	for i := range r.Confusion {
		predicted += r.Confusion[i][l]
	}
	return ratio(r.Confusion[l][l], predicted)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func (r *Report) Write(w io.Writer) error {
	var _, err = fmt.Fprintf(w, "%-14s %9s %9s %9s\n", "gesture", "samples", "precision", "recall")
	if err != nil {
		return err
	}
	for _, l := range gesture.Labels() {
		var actual int
		for _, n := range r.Confusion[l] {
			actual += n
		}
		_, err = fmt.Fprintf(w, "%-14s %9d %9.4f %9.4f\n", l, actual, r.Precision(l), r.Recall(l))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "accuracy %.4f (%d/%d), rule agreement %d/%d\n",
		r.Accuracy(), r.Correct, r.Total, r.RuleAgreement, r.Total)
	return err
}
