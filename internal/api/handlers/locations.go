package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// LocationHandler proxies address suggestions for partial input.
type LocationHandler struct {
	Searcher ports.LocationSearcher
}

// Search relays the upstream document as-is. Upstream error responses are
// passed through with their original status when they carry JSON.
func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, r, http.StatusBadRequest, "Missing 'text' query parameter")
		return
	}

	raw, err := h.Searcher.Autocomplete(r.Context(), text)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode != 0 && json.Valid(ue.Raw) {
			writeJSON(w, r, ue.StatusCode, json.RawMessage(ue.Raw))
			return
		}
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, raw)
}
