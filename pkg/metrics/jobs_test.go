package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestJobMetricsLabelsRunsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := NewJobMetrics(reg)
	jobs.ObserveJob("demo-product-purge", JobSucceeded, 40*time.Millisecond)
	jobs.ObserveJob("demo-product-purge", JobSucceeded, 10*time.Millisecond)
	jobs.ObserveJob("demo-product-purge", JobFailed, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "maintenance_job_runs_total", "outcome", JobSucceeded); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "maintenance_job_runs_total", "outcome", JobFailed); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "maintenance_job_duration_seconds", "job", "demo-product-purge"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilJobMetricsAreSafe(t *testing.T) {
	var jobs *JobMetrics
	jobs.ObserveJob("x", JobSucceeded, time.Second)
	NewJobMetrics(nil).ObserveJob("x", JobFailed, time.Second)
}
