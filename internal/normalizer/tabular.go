package normalizer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

// requiredColumns is the tabular schema, in the order missing columns are
// reported.
var requiredColumns = []string{"date", "sleep", "wake", "duration"}

// Tabular normalizes CSV input with columns date, sleep, wake, duration.
// Column names match case-insensitively after trimming. A header missing any
// required column rejects the whole batch with a *domain.MissingColumnsError;
// individual rows that cannot be normalized are skipped with a logged reason.
func (n *Normalizer) Tabular(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		// No header at all means no schema: every required column is missing.
		return Result{}, &domain.MissingColumnsError{Columns: requiredColumns}
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading header: %v", domain.ErrInvalidInput, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Result{}, &domain.MissingColumnsError{Columns: missing}
	}

	var outcomes []Outcome
	for row := 0; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}

		var outcome Outcome
		if err != nil {
			outcome = Outcome{Index: row, Reason: fmt.Sprintf("malformed row: %v", err)}
		} else {
			outcome = n.normalizeRow(row, fields, index)
		}
		if outcome.Skipped() {
			n.logger.Warnw("skipping sleep row", "row", row, "reason", outcome.Reason)
		}
		outcomes = append(outcomes, outcome)
	}

	return Result{Outcomes: outcomes}, nil
}

func (n *Normalizer) normalizeRow(row int, fields []string, index map[string]int) Outcome {
	for _, col := range requiredColumns {
		if index[col] >= len(fields) {
			return Outcome{Index: row, Reason: fmt.Sprintf("row has %d fields, %q is out of range", len(fields), col)}
		}
	}

	rawDuration := strings.TrimSpace(fields[index["duration"]])
	duration, err := strconv.ParseFloat(rawDuration, 64)
	if err != nil {
		return Outcome{Index: row, Reason: fmt.Sprintf("bad duration %q", rawDuration)}
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return Outcome{Index: row, Reason: fmt.Sprintf("non-finite duration %q", rawDuration)}
	}
	if duration < 0 {
		return Outcome{Index: row, Reason: fmt.Sprintf("negative duration %q", rawDuration)}
	}

	rec := &domain.SleepRecord{
		Date:          strings.TrimSpace(fields[index["date"]]),
		SleepTime:     strings.TrimSpace(fields[index["sleep"]]),
		WakeTime:      strings.TrimSpace(fields[index["wake"]]),
		DurationHours: duration,
	}
	attachClocks(rec)
	return Outcome{Index: row, Record: rec}
}
