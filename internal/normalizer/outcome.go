package normalizer

import "github.com/somnolabs/sleep-coach/internal/domain"

// Outcome is the result of normalizing one row or text fragment: either a
// record, or a skip carrying the reason it was dropped. Skips are logged by
// the normalizer; the proceed-vs-"no data" decision is made once by the
// caller over the whole outcome list.
type Outcome struct {
	// Index is the zero-based position of the row/fragment in the input.
	Index  int
	Record *domain.SleepRecord
	// Reason is non-empty when Record is nil.
	Reason string
}

func (o Outcome) Skipped() bool {
	return o.Record == nil
}

// Result is the ordered outcome list for one input batch.
type Result struct {
	Outcomes []Outcome
}

// Records returns the successfully normalized records in input order.
func (r Result) Records() []domain.SleepRecord {
	records := make([]domain.SleepRecord, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Record != nil {
			records = append(records, *o.Record)
		}
	}
	return records
}

// SkippedCount returns how many rows/fragments were dropped.
func (r Result) SkippedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped() {
			n++
		}
	}
	return n
}
