package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/planejacasar/wedding-backend/internal/http/response"
)

// decodeJSON parses the request body into dst and writes the error response
// itself on failure; callers just return when it reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid json body")
		return false
	}
	return true
}

// requireEventID pulls the eventId query parameter shared by all child
// resource listings.
func requireEventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		response.BadRequest(w, "eventId query parameter is required")
		return "", false
	}
	return eventID, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
