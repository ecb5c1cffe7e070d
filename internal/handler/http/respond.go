package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
)

// writeJSON сериализует ответ с заданным статусом.
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError отдает ошибку в едином формате {"error": "..."}.
// Серверные ошибки дополнительно уходят в Sentry (no-op при пустом DSN).
func writeError(w http.ResponseWriter, message string, statusCode int) {
	if statusCode == http.StatusInternalServerError {
		sentry.CaptureException(fmt.Errorf("http %d: %s", statusCode, message))
	}
	writeJSON(w, map[string]string{"error": message}, statusCode)
}
