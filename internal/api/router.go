package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/somnolabs/sleep-coach/docs"
	"github.com/somnolabs/sleep-coach/internal/api/handler"
	"github.com/somnolabs/sleep-coach/internal/api/middleware"
	"github.com/somnolabs/sleep-coach/pkg/problem"
)

type Router struct {
	analysisHandler *handler.AnalysisHandler
	datasetHandler  *handler.DatasetHandler
	logger          *zap.SugaredLogger
}

func NewRouter(analysisHandler *handler.AnalysisHandler, datasetHandler *handler.DatasetHandler, logger *zap.SugaredLogger) *Router {
	return &Router{
		analysisHandler: analysisHandler,
		datasetHandler:  datasetHandler,
		logger:          logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", rt.analysisHandler.Analyze)
			r.Post("/report", rt.analysisHandler.Report)
			r.Post("/feedback", rt.analysisHandler.PostFeedback)
		})

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/example", rt.datasetHandler.GetExample)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem.NotFound("Resource not found").Write(w)
	})

	return r
}
