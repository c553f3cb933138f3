package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAvailabilityMetricsExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAvailabilityMetrics(reg)
	metrics.ObserveRecheck("timer", 30*time.Millisecond)
	metrics.IncFlip("closed")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "availability_status_flips", "to", "closed"); err != nil {
		t.Fatalf("fetch flips: %v", err)
	} else if got != 1 {
		t.Fatalf("expected flips=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "availability_recheck_duration_seconds", "trigger", "timer"); err != nil {
		t.Fatalf("fetch recheck: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected recheck sum > 0, got %f", got)
	}
}

func TestCartMetricsCountsOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)
	metrics.IncMutation("add")
	metrics.IncMutation("add")
	metrics.IncMutation("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations", "op", "add"); err != nil {
		t.Fatalf("fetch add: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations", "op", "unknown"); err != nil {
		t.Fatalf("fetch unknown: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	metrics := NewAvailabilityMetrics(nil)
	metrics.ObserveRecheck("timer", time.Second)
	metrics.IncFlip("open")

	carts := NewCartMetrics(nil)
	carts.IncMutation("add")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
