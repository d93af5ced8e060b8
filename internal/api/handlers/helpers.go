package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", obs.RequestID(r.Context())).
			Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// writeDomainError maps the error taxonomy onto HTTP statuses:
// input 400, cycle exhaustion 422, upstream and leg failures 502, else 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ie *domain.InputError
	var le *domain.LegError
	var ue *domain.UpstreamError

	switch {
	case errors.As(err, &ie):
		writeError(w, r, http.StatusBadRequest, ie.Error())
	case errors.Is(err, domain.ErrCycleExhausted), errors.Is(err, domain.ErrCycleExhaustedMidRoute):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &le), errors.As(err, &ue):
		res := dto.ErrorResponse{Error: err.Error()}
		if errors.As(err, &ue) {
			res.ORSResponse = ue.RawResponse()
		}
		writeJSON(w, r, http.StatusBadGateway, res)
	default:
		log.Error().Err(err).
			Str("path", r.URL.Path).
			Str("req_id", obs.RequestID(r.Context())).
			Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
