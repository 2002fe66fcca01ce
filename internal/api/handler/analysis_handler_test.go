package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/somnolabs/sleep-coach/internal/domain"
	"github.com/somnolabs/sleep-coach/internal/report"
)

func newTestAnalysisHandler(t *testing.T, svc *MockAnalysisService, lf *MockLangfuseClient) *AnalysisHandler {
	t.Helper()
	gen, err := report.NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if lf == nil {
		lf = &MockLangfuseClient{}
	}
	return NewAnalysisHandler(svc, gen, lf)
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		body           string
		mockService    *MockAnalysisService
		wantStatusCode int
		wantInBody     string
	}{
		{
			name:           "json csv input",
			contentType:    "application/json",
			body:           `{"csv": "date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5"}`,
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusOK,
			wantInBody:     `"narrative_status":"ok"`,
		},
		{
			name:           "json text input",
			contentType:    "application/json",
			body:           `{"text": "Last night: Slept at 11:15 PM, woke at 6:45 AM (7.5 hours)"}`,
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "raw csv body",
			contentType:    "text/csv",
			body:           "date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5",
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "raw csv body with charset",
			contentType:    "text/csv; charset=utf-8",
			body:           "date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5",
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "raw text body",
			contentType:    "text/plain",
			body:           "Jul 03: Slept at 11:15 PM, woke at 6:45 AM (7.5 hours)",
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "json with both csv and text",
			contentType:    "application/json",
			body:           `{"csv": "date,sleep,wake,duration", "text": "Last night: slept"}`,
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "cannot be combined",
		},
		{
			name:           "json with neither csv nor text",
			contentType:    "application/json",
			body:           `{}`,
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			contentType:    "application/json",
			body:           `{invalid}`,
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing content type",
			contentType:    "",
			body:           "date,sleep,wake,duration",
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unsupported content type",
			contentType:    "application/xml",
			body:           "<records/>",
			mockService:    &MockAnalysisService{},
			wantStatusCode: http.StatusUnsupportedMediaType,
		},
		{
			name:        "missing columns",
			contentType: "text/csv",
			body:        "date,sleep,duration\nJul 03,11:15 PM,7.5",
			mockService: &MockAnalysisService{
				analyzeCSVFunc: func(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
					return nil, &domain.MissingColumnsError{Columns: []string{"wake"}}
				},
			},
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "wake",
		},
		{
			name:        "no data",
			contentType: "text/plain",
			body:        "nothing about sleep here",
			mockService: &MockAnalysisService{
				analyzeTextFunc: func(ctx context.Context, text string) (*domain.AnalysisResult, error) {
					return nil, domain.ErrNoData
				},
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:        "unparseable input",
			contentType: "text/csv",
			body:        "\"date,sleep",
			mockService: &MockAnalysisService{
				analyzeCSVFunc: func(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
					return nil, fmt.Errorf("%w: reading header: unexpected EOF", domain.ErrInvalidInput)
				},
			},
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "could not be parsed",
		},
		{
			name:        "internal error",
			contentType: "text/csv",
			body:        "date,sleep,wake,duration",
			mockService: &MockAnalysisService{
				analyzeCSVFunc: func(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
					return nil, context.DeadlineExceeded
				},
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:        "degraded narrative still responds 200",
			contentType: "text/csv",
			body:        "date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5",
			mockService: &MockAnalysisService{
				analyzeCSVFunc: func(ctx context.Context, csvData string) (*domain.AnalysisResult, error) {
					result := sampleAnalysisResult()
					result.Narrative = ""
					result.NarrativeStatus = domain.NarrativeStatusUnavailable
					return result, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantInBody:     `"narrative_status":"unavailable"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAnalysisHandler(t, tt.mockService, nil)

			req := httptest.NewRequest(http.MethodPost, "/v1/analyses", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()

			handler.Analyze(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Analyze() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantInBody != "" && !strings.Contains(rec.Body.String(), tt.wantInBody) {
				t.Errorf("Analyze() body missing %q, body: %s", tt.wantInBody, rec.Body.String())
			}
		})
	}
}

func TestAnalysisHandler_Analyze_RoutesInputToService(t *testing.T) {
	svc := &MockAnalysisService{}
	handler := newTestAnalysisHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", strings.NewReader(`{"text": "Last night: Slept at 11:15 PM, woke at 6:45 AM (7.5 hours)"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.Analyze(httptest.NewRecorder(), req)

	if len(svc.csvInputs) != 0 {
		t.Errorf("expected no CSV calls, got %d", len(svc.csvInputs))
	}
	if len(svc.textInputs) != 1 {
		t.Fatalf("expected 1 text call, got %d", len(svc.textInputs))
	}
	if !strings.Contains(svc.textInputs[0], "11:15 PM") {
		t.Errorf("text input not forwarded verbatim: %q", svc.textInputs[0])
	}
}

func TestAnalysisHandler_Analyze_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "week.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	part.Write([]byte("date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5"))
	mw.Close()

	svc := &MockAnalysisService{}
	handler := newTestAnalysisHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyses", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Analyze() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if len(svc.csvInputs) != 1 {
		t.Fatalf("expected 1 CSV call, got %d", len(svc.csvInputs))
	}
	if !strings.Contains(svc.csvInputs[0], "Jul 03") {
		t.Errorf("file content not forwarded: %q", svc.csvInputs[0])
	}

	t.Run("missing file part", func(t *testing.T) {
		var empty bytes.Buffer
		emptyWriter := multipart.NewWriter(&empty)
		emptyWriter.WriteField("notes", "no file here")
		emptyWriter.Close()

		req := httptest.NewRequest(http.MethodPost, "/v1/analyses", &empty)
		req.Header.Set("Content-Type", emptyWriter.FormDataContentType())
		rec := httptest.NewRecorder()

		handler.Analyze(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Analyze() status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestAnalysisHandler_Analyze_TraceID(t *testing.T) {
	handler := newTestAnalysisHandler(t, &MockAnalysisService{}, nil)

	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyses", strings.NewReader(`{"csv": "date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5"}`))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("attached when span context is valid", func(t *testing.T) {
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04},
			SpanID:     trace.SpanID{0x0a},
			TraceFlags: trace.FlagsSampled,
		})
		req := newRequest()
		req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
		rec := httptest.NewRecorder()

		handler.Analyze(rec, req)

		var resp domain.AnalysisResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.TraceID != sc.TraceID().String() {
			t.Errorf("TraceID = %q, want %q", resp.TraceID, sc.TraceID().String())
		}
	})

	t.Run("omitted without a span", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Analyze(rec, newRequest())

		if strings.Contains(rec.Body.String(), "trace_id") {
			t.Errorf("expected no trace_id in body: %s", rec.Body.String())
		}
	})
}

func TestAnalysisHandler_Report(t *testing.T) {
	handler := newTestAnalysisHandler(t, &MockAnalysisService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyses/report", strings.NewReader("date,sleep,wake,duration\nJul 03,11:15 PM,6:45 AM,7.5"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Report() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "sleep_report_") || !strings.Contains(disposition, ".html") {
		t.Errorf("Content-Disposition = %q, want dated sleep_report attachment", disposition)
	}
	if !strings.Contains(rec.Body.String(), "Sleep Coach Report") {
		t.Error("expected rendered report in body")
	}
}

func TestAnalysisHandler_Report_InputErrors(t *testing.T) {
	svc := &MockAnalysisService{
		analyzeTextFunc: func(ctx context.Context, text string) (*domain.AnalysisResult, error) {
			return nil, domain.ErrNoData
		},
	}
	handler := newTestAnalysisHandler(t, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyses/report", strings.NewReader("no sleep mentioned"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Report() status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestAnalysisHandler_PostFeedback(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantScores     int
	}{
		{
			name:           "valid feedback",
			body:           `{"trace_id": "550e8400e29b41d4a716446655440000", "rating": 4, "comment": "helpful"}`,
			wantStatusCode: http.StatusNoContent,
			wantScores:     1,
		},
		{
			name:           "comment optional",
			body:           `{"trace_id": "550e8400e29b41d4a716446655440000", "rating": 5}`,
			wantStatusCode: http.StatusNoContent,
			wantScores:     1,
		},
		{
			name:           "missing trace_id",
			body:           `{"rating": 4}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "rating too low",
			body:           `{"trace_id": "550e8400e29b41d4a716446655440000", "rating": 0}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "rating too high",
			body:           `{"trace_id": "550e8400e29b41d4a716446655440000", "rating": 6}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := &MockLangfuseClient{enabled: true}
			handler := newTestAnalysisHandler(t, &MockAnalysisService{}, lf)

			req := httptest.NewRequest(http.MethodPost, "/v1/analyses/feedback", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.PostFeedback(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("PostFeedback() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if len(lf.scores) != tt.wantScores {
				t.Errorf("recorded scores = %d, want %d", len(lf.scores), tt.wantScores)
			}
		})
	}
}

func TestAnalysisHandler_PostFeedback_ScoreFields(t *testing.T) {
	lf := &MockLangfuseClient{enabled: true}
	handler := newTestAnalysisHandler(t, &MockAnalysisService{}, lf)

	body := `{"trace_id": "550e8400e29b41d4a716446655440000", "rating": 3, "comment": "decent"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyses/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.PostFeedback(httptest.NewRecorder(), req)

	if len(lf.scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(lf.scores))
	}
	score := lf.scores[0]
	if score.TraceID != "550e8400e29b41d4a716446655440000" {
		t.Errorf("TraceID = %q", score.TraceID)
	}
	if score.Name != "user_rating" {
		t.Errorf("Name = %q, want user_rating", score.Name)
	}
	if score.Value != 3 {
		t.Errorf("Value = %v, want 3", score.Value)
	}
	if score.Comment != "decent" {
		t.Errorf("Comment = %q", score.Comment)
	}
}
