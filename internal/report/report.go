// Package report renders a standalone, mobile-friendly HTML report for one
// analysis run.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/somnolabs/sleep-coach/internal/domain"
)

//go:embed report.tmpl
var reportTemplate string

// Generator renders analysis results into the embedded HTML template.
type Generator struct {
	tmpl *template.Template
}

// NewGenerator parses the embedded report template.
func NewGenerator() (*Generator, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Filename returns the download filename for a report generated now.
func Filename(now time.Time) string {
	return fmt.Sprintf("sleep_report_%s.html", now.Format("20060102"))
}

// Render writes the HTML report for one analysis result.
func (g *Generator) Render(w io.Writer, result *domain.AnalysisResult) error {
	return g.tmpl.Execute(w, buildReportData(result))
}

type reportData struct {
	Avg      string
	Min      string
	Max      string
	Entries  []entryData
	Sections []sectionData
}

type entryData struct {
	Date     string
	Duration string
	Sleep    string
	Wake     string
}

type sectionData struct {
	Title string
	Icon  string
	Class string
	Items []string
}

func buildReportData(result *domain.AnalysisResult) reportData {
	data := reportData{
		Avg: fmt.Sprintf("%.1f", result.Stats.AverageDuration),
		Min: fmt.Sprintf("%.1f", result.Stats.MinDuration),
		Max: fmt.Sprintf("%.1f", result.Stats.MaxDuration),
	}

	for _, rec := range result.Records {
		entry := entryData{
			Date:     rec.Date,
			Duration: domain.FormatHours(rec.DurationHours),
			Sleep:    rec.SleepTime,
			Wake:     rec.WakeTime,
		}
		if entry.Sleep == "" {
			entry.Sleep = "?"
		}
		if entry.Wake == "" {
			entry.Wake = "?"
		}
		data.Entries = append(data.Entries, entry)
	}

	riskItems := make([]string, 0, len(result.RiskAssessments))
	for _, risk := range result.RiskAssessments {
		riskItems = append(riskItems, risk.Message)
	}

	aiItems := []string{"AI Analysis Unavailable"}
	if result.NarrativeStatus == domain.NarrativeStatusOK && result.Narrative != "" {
		aiItems = []string{result.Narrative}
	}

	data.Sections = appendSection(data.Sections, "Analysis", "🔍", "diagnosis", result.Stats.DiagnosisMessages)
	data.Sections = appendSection(data.Sections, "Tips", "💡", "recommendation", result.Stats.RecommendationMessages)
	data.Sections = appendSection(data.Sections, "Risk Screening", "🩺", "risk", riskItems)
	data.Sections = appendSection(data.Sections, "AI Insights", "🤖", "assessment", aiItems)

	return data
}

// appendSection drops empty sections so the report never shows bare headers.
func appendSection(sections []sectionData, title, icon, class string, items []string) []sectionData {
	if len(items) == 0 {
		return sections
	}
	return append(sections, sectionData{Title: title, Icon: icon, Class: class, Items: items})
}
