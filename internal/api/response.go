package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// writeJSON emits the status code and the JSON serialization of payload with
// a JSON content type. Headers and body are always written together; once a
// status is decided nothing else can change it.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to write JSON response")
	}
}

// errorBody builds the standard error payload.
func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
