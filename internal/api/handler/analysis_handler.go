package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/somnolabs/sleep-coach/internal/api/validation"
	"github.com/somnolabs/sleep-coach/internal/domain"
	"github.com/somnolabs/sleep-coach/internal/langfuse"
	"github.com/somnolabs/sleep-coach/internal/report"
	"github.com/somnolabs/sleep-coach/internal/service"
	"github.com/somnolabs/sleep-coach/pkg/problem"
	"go.opentelemetry.io/otel/trace"
)

// maxInputBytes caps pasted diaries and uploads. A week of records is a few
// hundred bytes; anything near the cap is not a sleep diary.
const maxInputBytes = 1 << 20

type AnalysisHandler struct {
	analysisService service.AnalysisService
	reportGenerator *report.Generator
	langfuseClient  langfuse.Client
}

func NewAnalysisHandler(analysisService service.AnalysisService, reportGenerator *report.Generator, langfuseClient langfuse.Client) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		reportGenerator: reportGenerator,
		langfuseClient:  langfuseClient,
	}
}

// Analyze handles POST /v1/analyses
// @Summary Analyze a week of sleep records
// @Description Normalize the submitted records and run the full analysis: duration statistics, rule-based diagnosis and recommendations, heuristic risk screening, and the AI coaching narrative. Accepts a JSON body with exactly one of csv or text, a raw text/csv or text/plain body, or a multipart form with a file part. A failed narrative degrades the response to narrative_status "unavailable" instead of failing the request.
// @Tags analyses
// @Accept json,text/csv,plain,mpfd
// @Produce json
// @Param request body domain.AnalyzeRequest true "Analysis input (JSON variant)"
// @Success 200 {object} domain.AnalysisResponse "Analysis outcome"
// @Failure 400 {object} problem.Problem "Invalid body or missing required columns"
// @Failure 415 {object} problem.Problem "Unsupported content type"
// @Failure 422 {object} problem.Problem "No valid sleep records in the input"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /analyses [post]
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, p := h.runAnalysis(r)
	if p != nil {
		p.Write(w)
		return
	}

	response := result.ToResponse()

	// Attach OTEL trace ID (if present) to response for feedback linking
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		response.TraceID = span.SpanContext().TraceID().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Report handles POST /v1/analyses/report
// @Summary Download the analysis as an HTML report
// @Description Run the same analysis as POST /analyses and render it into the mobile HTML report, returned as a dated attachment.
// @Tags analyses
// @Accept json,text/csv,plain,mpfd
// @Produce html
// @Param request body domain.AnalyzeRequest true "Analysis input (JSON variant)"
// @Success 200 {string} string "Rendered HTML report"
// @Failure 400 {object} problem.Problem "Invalid body or missing required columns"
// @Failure 415 {object} problem.Problem "Unsupported content type"
// @Failure 422 {object} problem.Problem "No valid sleep records in the input"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /analyses/report [post]
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	result, p := h.runAnalysis(r)
	if p != nil {
		p.Write(w)
		return
	}

	var buf bytes.Buffer
	if err := h.reportGenerator.Render(&buf, result); err != nil {
		problem.InternalError("Failed to render report").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(time.Now())))
	buf.WriteTo(w)
}

// FeedbackRequest is the request body for analysis feedback.
// @Description Request body for rating a previous analysis.
type FeedbackRequest struct {
	// Trace ID from the analysis response
	TraceID string `json:"trace_id" validate:"required" example:"550e8400e29b41d4a716446655440000"`
	// Rating score (1-5)
	Rating int `json:"rating" validate:"required,min=1,max=5" example:"4"`
	// Optional comment
	Comment string `json:"comment,omitempty" example:"The coaching advice was helpful!"`
}

// PostFeedback handles POST /v1/analyses/feedback
// @Summary Submit feedback on an analysis
// @Description Submit a user rating and optional comment for a previous analysis, linked by its trace ID.
// @Tags analyses
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Router /analyses/feedback [post]
func (h *AnalysisHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	// Score ingestion is fire-and-forget; feedback never fails the request.
	_ = h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Rating),
		Comment: req.Comment,
	})

	w.WriteHeader(http.StatusNoContent)
}

// runAnalysis reads the input from whichever shape the request carries and
// runs the analysis. It returns a ready-to-write problem on failure.
func (h *AnalysisHandler) runAnalysis(r *http.Request) (*domain.AnalysisResult, *problem.Problem) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, problem.BadRequest("Missing or malformed Content-Type header")
	}

	switch mediaType {
	case "application/json":
		var req domain.AnalyzeRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxInputBytes)).Decode(&req); err != nil {
			return nil, problem.BadRequest("Invalid JSON body")
		}
		if fieldErrors := validation.Validate(req); fieldErrors != nil {
			return nil, problem.ValidationError("Request body contains invalid fields", fieldErrors)
		}
		if req.CSV != "" && req.Text != "" {
			return nil, problem.ValidationError("Request body contains invalid fields", []problem.FieldError{
				{Field: "csv", Message: "cannot be combined with text"},
			})
		}
		if req.CSV != "" {
			return mapAnalysisError(h.analysisService.AnalyzeCSV(r.Context(), req.CSV))
		}
		return mapAnalysisError(h.analysisService.AnalyzeText(r.Context(), req.Text))

	case "text/csv":
		body, p := readRawBody(r)
		if p != nil {
			return nil, p
		}
		return mapAnalysisError(h.analysisService.AnalyzeCSV(r.Context(), body))

	case "text/plain":
		body, p := readRawBody(r)
		if p != nil {
			return nil, p
		}
		return mapAnalysisError(h.analysisService.AnalyzeText(r.Context(), body))

	case "multipart/form-data":
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, problem.BadRequest("Multipart form must include a 'file' part")
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxInputBytes))
		if err != nil {
			return nil, problem.BadRequest("Failed to read uploaded file")
		}
		return mapAnalysisError(h.analysisService.AnalyzeCSV(r.Context(), string(data)))

	default:
		return nil, problem.New(http.StatusUnsupportedMediaType, "unsupported-media-type", "Unsupported Media Type",
			"Use application/json, text/csv, text/plain or multipart/form-data")
	}
}

func readRawBody(r *http.Request) (string, *problem.Problem) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxInputBytes))
	if err != nil {
		return "", problem.BadRequest("Failed to read request body")
	}
	return string(data), nil
}

// mapAnalysisError translates analysis errors into problem responses.
func mapAnalysisError(result *domain.AnalysisResult, err error) (*domain.AnalysisResult, *problem.Problem) {
	if err == nil {
		return result, nil
	}
	var missing *domain.MissingColumnsError
	if errors.As(err, &missing) {
		return nil, problem.MissingColumns(fmt.Sprintf("Input is missing required columns: %s", strings.Join(missing.Columns, ", ")))
	}
	if errors.Is(err, domain.ErrNoData) {
		return nil, problem.NoData("No valid sleep records to analyze")
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return nil, problem.BadRequest("Input could not be parsed as sleep records")
	}
	return nil, problem.InternalError("Failed to analyze sleep records")
}
