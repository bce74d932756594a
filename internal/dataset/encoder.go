package dataset

import (
	"sort"

	scierr "wlequality/pkg/errors"
)

// LabelEncoder maps class strings to contiguous integer codes and back.
// Classes are assigned codes in lexical order, so A..E encode to 0..4.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabelEncoder learns the class set from the training labels.
func FitLabelEncoder(labels []string) *LabelEncoder {
	seen := make(map[string]bool, len(labels))
	classes := make([]string, 0, len(ClassLabels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Classes returns the learned class strings in code order.
func (e *LabelEncoder) Classes() []string {
	return e.classes
}

// NumClasses returns the number of learned classes.
func (e *LabelEncoder) NumClasses() int {
	return len(e.classes)
}

// Transform encodes labels to integer codes. Unseen labels are an error:
// the label column carries exactly the five fixed categories.
func (e *LabelEncoder) Transform(labels []string) ([]int, error) {
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, scierr.NewValueError("LabelEncoder.Transform", "unseen label "+l)
		}
		codes[i] = code
	}
	return codes, nil
}

// Inverse decodes integer codes back to class strings.
func (e *LabelEncoder) Inverse(codes []int) ([]string, error) {
	labels := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.classes) {
			return nil, scierr.Newf("LabelEncoder.Inverse: code %d out of range [0,%d)", c, len(e.classes))
		}
		labels[i] = e.classes[c]
	}
	return labels, nil
}
