// Package aggregate turns raw search results into the sorted catalog
// artifact on the primary output stream.
package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/amoutil/amo-fetch/pkg/amo"
	"github.com/amoutil/amo-fetch/pkg/catalog"
)

var recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "amo_records_total",
	Help: "Raw records processed by outcome (mapped, filtered, failed)",
}, []string{"outcome"})

// Build filters and maps every raw record and returns the catalog sorted
// ascending by pname. The first mapping failure aborts with no partial
// output; ineligible records are the only thing silently skipped.
func Build(addons []amo.Addon) ([]catalog.Record, error) {
	records := make([]catalog.Record, 0, len(addons))

	for i := range addons {
		a := &addons[i]

		if !catalog.Eligible(a) {
			recordsTotal.WithLabelValues("filtered").Inc()
			log.Debug().
				Str("guid", a.GUID).
				Str("status", a.Status).
				Msg("Skipping non-public addon")
			continue
		}

		rec, err := catalog.Map(a)
		if err != nil {
			recordsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("map addon %q: %w", a.GUID, err)
		}
		recordsTotal.WithLabelValues("mapped").Inc()
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Pname < records[j].Pname
	})

	return records, nil
}

// Write serializes the catalog as one JSON array in a single write, so a
// failed run never leaves a partial artifact on the primary stream.
func Write(w io.Writer, records []catalog.Record) error {
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	out = append(out, '\n')

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Run builds the catalog from raw results and writes it to w.
func Run(addons []amo.Addon, w io.Writer) error {
	records, err := Build(addons)
	if err != nil {
		return err
	}

	log.Info().
		Int("raw", len(addons)).
		Int("records", len(records)).
		Msg("Catalog assembled")

	return Write(w, records)
}
