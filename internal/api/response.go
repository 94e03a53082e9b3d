package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/inventory/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// actionError reports a failed controller action: validation errors carry
// their user message, anything else is logged and hidden.
func actionError(w http.ResponseWriter, action string, err error) {
	if msg := model.UserMessage(err); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	slog.Error("action failed", "action", action, "error", err)
	jsonError(w, http.StatusInternalServerError, "failed to "+action)
}

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// decodeJSON decodes a JSON request body of at most maxBodySize bytes into
// the given target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
