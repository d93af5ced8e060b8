package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// PlanHandler serves trip planning. Repo, Publisher and Metrics are
// optional; without Repo plans are returned but not stored.
type PlanHandler struct {
	Provider  ports.RouteProvider
	Repo      ports.TripRepository
	Publisher ports.PlanPublisher
	Metrics   ports.PlannerMetrics
}

// Plan fetches both legs, runs the HOS simulation and, when storage is
// configured, records the trip before responding.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CycleUsed == nil {
		writeError(w, r, http.StatusBadRequest, "cycle_used: is required")
		return
	}

	svcReq := services.PlanTripRequest{
		Current:        req.CurrentLocation,
		Pickup:         req.PickupLocation,
		Dropoff:        req.DropoffLocation,
		CycleUsedHours: float64(*req.CycleUsed),
	}

	start := time.Now()
	res, err := services.PlanTrip(r.Context(), svcReq, h.Provider)
	if h.Metrics != nil {
		h.Metrics.ObservePlan(services.Outcome(err), time.Since(start))
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	services.ObserveLogs(h.Metrics, res.Logs)

	out := dto.PlanTripResponse{Result: res}
	if h.Repo != nil {
		trip, err := services.RecordTrip(r.Context(), svcReq, res, h.Repo, h.Publisher)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		out.TripID = trip.ID
	}

	writeJSON(w, r, http.StatusOK, out)
}

// Location and cycle decode failures carry their own message; anything
// else is reported as a malformed body.
func decodeErrorMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "invalid json body"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return (&domain.InputError{Field: typeErr.Field, Msg: "has the wrong type"}).Error()
	}
	return "invalid json body: " + err.Error()
}
