package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(ImageGenerations.WithLabelValues("flux", "completed"))
	ObserveGeneration("flux", "completed", 1500*time.Millisecond)
	ObserveGeneration("flux", "completed", 2*time.Second)

	if got := testutil.ToFloat64(ImageGenerations.WithLabelValues("flux", "completed")); got != before+2 {
		t.Fatalf("counter = %v, want %v", got, before+2)
	}
	if n := testutil.CollectAndCount(ImageGenerationDuration); n < 1 {
		t.Fatalf("histogram not collected")
	}
}
