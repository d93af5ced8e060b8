package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
)

// Dependencies are the ports the HTTP layer is wired against. Repo,
// Searcher, Publisher and the metrics fields may be nil; the matching
// routes or side effects are then left out.
type Dependencies struct {
	Provider       ports.RouteProvider
	Searcher       ports.LocationSearcher
	Repo           ports.TripRepository
	Publisher      ports.PlanPublisher
	Metrics        ports.PlannerMetrics
	MetricsHandler http.Handler
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Provider:  deps.Provider,
		Repo:      deps.Repo,
		Publisher: deps.Publisher,
		Metrics:   deps.Metrics,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plan-trip", planHandler.Plan)

	if deps.Repo != nil {
		tripHandler := &handlers.TripHandler{Repo: deps.Repo}
		mux.HandleFunc("/trips", tripHandler.List)
		mux.HandleFunc("/trips/{id}", tripHandler.Get)
	}

	if deps.Searcher != nil {
		locHandler := &handlers.LocationHandler{Searcher: deps.Searcher}
		mux.HandleFunc("/locations/search", locHandler.Search)
	}

	if deps.MetricsHandler != nil {
		mux.Handle("/metrics", deps.MetricsHandler)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
