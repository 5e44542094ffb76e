package vision_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/casedesk/casedesk/pkg/ai/vision"
)

func TestAggregate_ClassificationMode(t *testing.T) {
	c := vision.Aggregate(vision.TaskClassification, []string{"A", "A", "B"})
	if !c.Available || c.Value != "A" {
		t.Fatalf("expected mode A, got %+v", c)
	}
}

func TestAggregate_ClassificationAllDistinct(t *testing.T) {
	c := vision.Aggregate(vision.TaskClassification, []string{"A", "B", "C"})
	if c.Available || c.Value != vision.UnavailableSentinel {
		t.Fatalf("expected unavailable sentinel, got %+v", c)
	}
}

func TestAggregate_ClassificationPluralityTie(t *testing.T) {
	// Two values share the top count; ties never resolve by insertion order.
	c := vision.Aggregate(vision.TaskClassification, []string{"A", "A", "B", "B"})
	if c.Available || c.Value != vision.UnavailableSentinel {
		t.Fatalf("expected unavailable sentinel for tie, got %+v", c)
	}
}

func TestAggregate_ClassificationSingleValue(t *testing.T) {
	c := vision.Aggregate(vision.TaskClassification, []string{"X"})
	if !c.Available || c.Value != "X" {
		t.Fatalf("expected X, got %+v", c)
	}
}

func TestAggregate_RegressionMean(t *testing.T) {
	c := vision.Aggregate(vision.TaskRegression, []string{"10", "20", "30"})
	if !c.Available {
		t.Fatalf("expected available mean, got %+v", c)
	}
	if c.Mean == nil || *c.Mean != 20.0 {
		t.Fatalf("expected mean 20.0, got %v", c.Mean)
	}
	if c.Value != "20" {
		t.Fatalf("expected value 20, got %q", c.Value)
	}
}

func TestAggregate_RegressionNonNumeric(t *testing.T) {
	c := vision.Aggregate(vision.TaskRegression, []string{"10", "x", "30"})
	if c.Available || c.Value != vision.UnavailableSentinel {
		t.Fatalf("expected unavailable sentinel, got %+v", c)
	}
}

func TestAggregate_RegressionTrimsWhitespace(t *testing.T) {
	c := vision.Aggregate(vision.TaskRegression, []string{" 1.5 ", "2.5\n"})
	if !c.Available || c.Mean == nil || *c.Mean != 2.0 {
		t.Fatalf("expected mean 2.0, got %+v", c)
	}
}

func TestConsensus_ZeroMeanSerializes(t *testing.T) {
	c := vision.Aggregate(vision.TaskRegression, []string{"-5", "5"})
	if !c.Available || c.Mean == nil || *c.Mean != 0 {
		t.Fatalf("expected mean 0, got %+v", c)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"mean":0`) {
		t.Fatalf("zero mean dropped from payload: %s", raw)
	}

	classified := vision.Aggregate(vision.TaskClassification, []string{"A"})
	raw, err = json.Marshal(classified)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "mean") {
		t.Fatalf("classification payload should omit mean: %s", raw)
	}
}

func TestParseTaskKind(t *testing.T) {
	if k, err := vision.ParseTaskKind("Classification"); err != nil || k != vision.TaskClassification {
		t.Fatalf("expected classification, got %v %v", k, err)
	}
	if k, err := vision.ParseTaskKind(" regression "); err != nil || k != vision.TaskRegression {
		t.Fatalf("expected regression, got %v %v", k, err)
	}
	if _, err := vision.ParseTaskKind("clustering"); err == nil {
		t.Fatal("expected error for unknown task kind")
	}
}
