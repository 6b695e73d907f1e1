package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountAuthEvent(t *testing.T) {
	before := testutil.ToFloat64(authEventsTotal.WithLabelValues("signed_in"))

	CountAuthEvent("signed_in")
	CountAuthEvent("signed_in")
	CountAuthEvent("signed_out")

	got := testutil.ToFloat64(authEventsTotal.WithLabelValues("signed_in"))
	if got != before+2 {
		t.Errorf("signed_in count = %v, want %v", got, before+2)
	}
	if out := testutil.ToFloat64(authEventsTotal.WithLabelValues("signed_out")); out < 1 {
		t.Errorf("signed_out count = %v, want at least 1", out)
	}
}
