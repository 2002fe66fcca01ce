package normalizer

import (
	"regexp"
	"strconv"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

// fragmentRegex matches one check-in fragment:
//
//	<Month-abbrev day | "Last night"> ...: Slept at <time>, woke at <time> (<number> hours)
//
// Anything that strays from this shape is simply not matched; there is no
// partial-credit parsing.
var fragmentRegex = regexp.MustCompile(
	`((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}|Last night)[^:\n]*:\s*` +
		`Slept at\s+(\d{1,2}:\d{2}\s*[AP]M),\s*woke at\s+(\d{1,2}:\d{2}\s*[AP]M)\s*` +
		`\((\d+(?:\.\d+)?)\s*hours?\)`)

// FreeText extracts sleep records from a free-text check-in blob. Matched
// fragments become records in input order; non-conforming text is ignored.
// The literal label "Last night" resolves to the calendar day before the
// moment of parsing, formatted like the other date labels ("Jul 09").
func (n *Normalizer) FreeText(text string) Result {
	matches := fragmentRegex.FindAllStringSubmatch(text, -1)

	outcomes := make([]Outcome, 0, len(matches))
	for i, m := range matches {
		date := m[1]
		if date == "Last night" {
			date = n.now().AddDate(0, 0, -1).Format("Jan 02")
		}

		// The submatch shape guarantees a parseable non-negative float.
		duration, _ := strconv.ParseFloat(m[4], 64)

		rec := &domain.SleepRecord{
			Date:          date,
			SleepTime:     m[2],
			WakeTime:      m[3],
			DurationHours: duration,
		}
		attachClocks(rec)
		outcomes = append(outcomes, Outcome{Index: i, Record: rec})
	}

	return Result{Outcomes: outcomes}
}
