// Package normalizer turns raw sleep input, tabular CSV or a free-text
// check-in blob, into canonical domain.SleepRecord values. Both input shapes
// reduce to the same record; rows and fragments that cannot be normalized are
// skipped with a logged reason, never aborting the batch (the one exception
// is a tabular header missing required columns, which rejects the batch as a
// whole).
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

type Normalizer struct {
	logger *zap.SugaredLogger

	// now is used to resolve the "Last night" label; injectable for tests.
	now func() time.Time
}

func New(logger *zap.SugaredLogger) *Normalizer {
	return &Normalizer{
		logger: logger,
		now:    time.Now,
	}
}

// ParseClock parses a 12-hour display time such as "8:14 PM" into a
// ClockTime. Runs of whitespace are collapsed and case is ignored; anything
// else that strays from the hh:mm AM/PM shape is an error.
func ParseClock(s string) (domain.ClockTime, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	t, err := time.Parse("3:04 PM", cleaned)
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("parse clock %q: %w", s, err)
	}

	meridiem := domain.MeridiemAM
	if t.Hour() >= 12 {
		meridiem = domain.MeridiemPM
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return domain.ClockTime{Hour: hour, Minute: t.Minute(), Meridiem: meridiem}, nil
}

// attachClocks parses the record's display times into clock values. A failed
// parse leaves the clock nil: the record still counts for duration analysis,
// it just drops out of time-of-day heuristics.
func attachClocks(rec *domain.SleepRecord) {
	if c, err := ParseClock(rec.SleepTime); err == nil {
		rec.SleepClock = &c
	}
	if c, err := ParseClock(rec.WakeTime); err == nil {
		rec.WakeClock = &c
	}
}
