package metrics

import (
	"context"
	"testing"
	"time"

	"ai-recipe-assistant/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(t.TempDir() + "/metrics.db")
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestRecordAndDailyUsage(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, latency := range []int64{100, 300} {
		err := store.Record(ctx, ExecutionMetric{
			Endpoint:  "/api/recipes",
			Model:     "test-model",
			LatencyMS: latency,
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].Executions != 2 {
		t.Errorf("Expected 2 executions, got %d", usage[0].Executions)
	}
	if usage[0].AvgLatencyMS != 200 {
		t.Errorf("Expected average latency 200, got %d", usage[0].AvgLatencyMS)
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	old := ExecutionMetric{
		Endpoint:  "/api/recipes",
		Model:     "test-model",
		LatencyMS: 100,
		Timestamp: time.Now().UTC().AddDate(0, 0, -60),
	}
	recent := ExecutionMetric{
		Endpoint:  "/api/translate",
		Model:     "test-model",
		LatencyMS: 100,
	}
	for _, m := range []ExecutionMetric{old, recent} {
		if err := store.Record(ctx, m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	affected, err := store.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("Expected 1 record removed, got %d", affected)
	}

	// The recent record survives.
	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	var total int
	for _, d := range usage {
		total += d.Executions
	}
	if total != 1 {
		t.Errorf("Expected 1 surviving record, got %d", total)
	}
}
