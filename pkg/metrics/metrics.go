// Package metrics provides the Prometheus registry handle for the fetch
// pipeline. Metrics are defined in their respective packages (amo,
// pagination, aggregate) next to the code they instrument.
//
// Metric inventory:
//
//	amo_requests_total{status}        (Counter)   search API requests by HTTP status
//	amo_request_duration_seconds      (Histogram) search API request duration
//	amo_pages_fetched_total           (Counter)   pages fetched successfully
//	amo_page_failures_total           (Counter)   page fetches that aborted a run
//	amo_records_total{outcome}        (Counter)   records by outcome (mapped, filtered, failed)
//
// A batch run has no scrape endpoint, so verbose runs dump the collected
// values to the diagnostic stream at exit via Dump.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Registry is the default Prometheus registerer used by the pipeline.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Dump writes the current value of every registered metric to w in the
// Prometheus text exposition format.
func Dump(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric family %q: %w", mf.GetName(), err)
		}
	}
	return nil
}
