package llm

import (
	"fmt"
	"strings"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

// DataPlaceholder marks where the serialized record lines go in a narrative
// template. Managed templates must contain it to be usable.
const DataPlaceholder = "{{sleep_data}}"

// DefaultNarrativeTemplate is the built-in sleep-coach persona prompt.
const DefaultNarrativeTemplate = `You are a sleep coach AI. Write a message (100–120 words). Analyze the following 7 days of sleep data and:
- First, determine if the sleep is good or not (based on average duration, consistency, and healthy sleep guidelines).
- If sleep is good, generate a positive, encouraging message.
- If sleep is not good, diagnose possible issues (such as insomnia, sleep apnea, hypersomnia, or irregular sleep) and provide recommendations for improvement.
- Be concise, clear, and supportive. Use paragraphs and bullet points where appropriate.

SLEEP DATA:
{{sleep_data}}

Your response:`

// PromptBuilder embeds serialized sleep records into a narrative template.
type PromptBuilder struct {
	template string
}

// NewPromptBuilder creates a builder around the given template. A template
// without the data placeholder cannot carry the records, so it falls back to
// the built-in one.
func NewPromptBuilder(template string) *PromptBuilder {
	if !strings.Contains(template, DataPlaceholder) {
		template = DefaultNarrativeTemplate
	}
	return &PromptBuilder{template: template}
}

// DataLines renders one line per record, newline-joined in input order:
//
//	<date>: Slept at <sleepTime>, woke at <wakeTime> (<durationHours> hours)
func DataLines(records []domain.SleepRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s: Slept at %s, woke at %s (%s hours)",
			rec.Date, rec.SleepTime, rec.WakeTime, domain.FormatHours(rec.DurationHours)))
	}
	return strings.Join(lines, "\n")
}

// Build produces the full prompt for one record set. Callers never invoke it
// with an empty set; the analysis flow short-circuits to "no data" first.
func (b *PromptBuilder) Build(records []domain.SleepRecord) string {
	return strings.ReplaceAll(b.template, DataPlaceholder, DataLines(records))
}
