package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

func TestMemoryGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	gw := submission.NewMemoryGateway()

	stored, err := gw.Create(ctx, submission.Record{
		FormData:      answers.Map{"contact_name": answers.Scalar("Ada")},
		SubmitterName: "Ada",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored.ID == "" || stored.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", stored)
	}

	got, err := gw.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Record.SubmitterName != "Ada" {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, err := gw.Get(ctx, "missing"); !errors.Is(err, submission.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := gw.List(ctx, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
}

func TestInstrumentCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := submission.NewMetrics(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	fail := true
	gw := submission.Instrument(submission.GatewayFunc(func(ctx context.Context, record submission.Record) (submission.StoredRecord, error) {
		if fail {
			return submission.StoredRecord{}, errors.New("db down")
		}
		return submission.StoredRecord{ID: "1", Record: record}, nil
	}), metrics)

	if _, err := gw.Create(context.Background(), submission.Record{}); err == nil {
		t.Fatalf("expected failure")
	}
	fail = false
	if _, err := gw.Create(context.Background(), submission.Record{}); err != nil {
		t.Fatalf("create: %v", err)
	}

	count, err := testutil.GatherAndCount(reg, "pmsform_submission_created_total", "pmsform_submission_failures_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 series, got %d", count)
	}
	if got := counterValue(t, reg, "pmsform_submission_failures_total"); got != 1 {
		t.Fatalf("failures = %v", got)
	}
	if got := counterValue(t, reg, "pmsform_submission_created_total"); got != 1 {
		t.Fatalf("created = %v", got)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == name {
			return fam.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
