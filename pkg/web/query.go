package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParseQueryInt parses an optional integer query parameter, falling back to def
// when the parameter is absent. Writes a 400 response on a malformed value and
// returns false.
func ParseQueryInt(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid query parameter %s: %s", name, raw))
		return 0, false
	}
	return value, true
}
