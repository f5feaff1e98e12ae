package handler

import "net/http"

// HandleNotFound is the catch-all for routes nothing else matched.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "route not found")
}
