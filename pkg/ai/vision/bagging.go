package vision

import (
	"strconv"
	"strings"
)

// TaskKind tells the aggregator how to combine repeated provider answers.
type TaskKind string

const (
	// TaskClassification reduces answers by unique mode.
	TaskClassification TaskKind = "classification"
	// TaskRegression reduces answers by arithmetic mean.
	TaskRegression TaskKind = "regression"
)

// ParseTaskKind validates a user-supplied task kind string.
func ParseTaskKind(s string) (TaskKind, error) {
	switch TaskKind(strings.ToLower(strings.TrimSpace(s))) {
	case TaskClassification:
		return TaskClassification, nil
	case TaskRegression:
		return TaskRegression, nil
	default:
		return "", errorRegistry.New(ErrInvalidTaskKind).WithDetail("task_kind", s)
	}
}

// UnavailableSentinel marks a run where no consensus could be computed.
const UnavailableSentinel = "-"

// Consensus is the aggregate answer for one repeat index.
type Consensus struct {
	// Run is the 1-based repeat index this consensus belongs to.
	Run int `json:"run"`
	// Value is the chosen classification label, the formatted mean, or the
	// unavailable sentinel.
	Value string `json:"value"`
	// Mean carries the numeric mean for regression runs that produced one.
	// Nil for classification runs and sentinel results, so a legitimate
	// mean of zero still serializes.
	Mean *float64 `json:"mean,omitempty"`
	// Available is false when the sentinel was returned.
	Available bool `json:"available"`
}

// Aggregate reduces the provider answers of a single repeat index to one
// consensus value. Classification returns the unique mode; any modal tie,
// including plurality ties, yields the unavailable sentinel rather than an
// arbitrary pick. Regression returns the arithmetic mean only when every
// answer parses as a float. The caller must not pass an empty values slice;
// runs with zero answers are skipped upstream, not zero-filled.
func Aggregate(kind TaskKind, values []string) Consensus {
	if len(values) == 0 {
		return Consensus{Value: UnavailableSentinel}
	}
	if kind == TaskRegression {
		return aggregateMean(values)
	}
	return aggregateMode(values)
}

func aggregateMode(values []string) Consensus {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best, bestCount, tied := "", 0, false
	for v, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = v, n, false
		case n == bestCount:
			tied = true
		}
	}
	if tied {
		return Consensus{Value: UnavailableSentinel}
	}
	return Consensus{Value: best, Available: true}
}

func aggregateMean(values []string) Consensus {
	var sum float64
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Consensus{Value: UnavailableSentinel}
		}
		sum += f
	}
	mean := sum / float64(len(values))
	return Consensus{
		Value:     formatMean(mean),
		Mean:      &mean,
		Available: true,
	}
}

func formatMean(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
