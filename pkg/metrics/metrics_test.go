package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func TestDump(t *testing.T) {
	counter := promauto.NewCounter(prometheus.CounterOpts{
		Name: "amo_metrics_dump_test_total",
		Help: "Test counter for Dump",
	})
	counter.Add(3)

	var buf bytes.Buffer
	if err := Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "amo_metrics_dump_test_total 3") {
		t.Errorf("dump missing test counter, got:\n%s", out)
	}
}

func TestRegistryIsDefault(t *testing.T) {
	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default registerer")
	}
}
