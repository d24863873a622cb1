package api

import (
	"net/http"

	service "github.com/dara-lab/dara/internal/app"
	"github.com/dara-lab/dara/internal/domain/olympics"
)

// Version is reported by the info routes.
const Version = "1.0"

type welcome struct {
	Message string `json:"message"`
	Version string `json:"version"`
	olympics.Summary
	Datasets      map[string]int `json:"datasets"`
	Documentation string         `json:"documentation"`
	HealthCheck   string         `json:"health_check"`
}

// handleRoot handles GET / with a summary of the loaded data.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, welcome{
		Message:       "DARA Data API - Welcome!",
		Version:       Version,
		Summary:       s.deps.Olympics().Summary(),
		Datasets:      s.stats.GetStats().Rows,
		Documentation: "/api/docs",
		HealthCheck:   "/health",
	})
}

type healthResponse struct {
	Status        string         `json:"status"`
	DatasetLoaded bool           `json:"dataset_loaded"`
	Records       int            `json:"records"`
	Datasets      map[string]int `json:"datasets"`
}

// handleHealth handles GET /health. It answers 503 until every dataset is
// loaded.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.stats.Started() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading", Datasets: map[string]int{}})
		return
	}
	rows := s.stats.GetStats().Rows
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		DatasetLoaded: true,
		Records:       rows[service.DatasetOlympics],
		Datasets:      rows,
	})
}

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.GetStats())
}
