package handler

import (
	"io"
	"net/http"

	"github.com/somnolabs/sleep-coach/internal/exampledata"
)

type DatasetHandler struct{}

func NewDatasetHandler() *DatasetHandler {
	return &DatasetHandler{}
}

// GetExample handles GET /v1/datasets/example
// @Summary Get the example dataset
// @Description Fetch the bundled seven-night example week as CSV, ready to POST back to the analysis endpoints.
// @Tags datasets
// @Produce plain
// @Success 200 {string} string "Example week in CSV form"
// @Router /datasets/example [get]
func (h *DatasetHandler) GetExample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	io.WriteString(w, exampledata.WeekCSV)
}
