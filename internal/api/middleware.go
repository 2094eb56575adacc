package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Recoverer converts a panic escaping the wrapped handler into a generic 500
// response. The panic value and stack go to the log only; the client never
// sees internals.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).
					Errorf("Panic while handling %s %s\n%s", r.Method, r.URL.Path, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request with a generated request id, the
// response status and the handling duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"status":     rec.status,
			"duration":   time.Since(start),
		}).Infof("%s %s", r.Method, r.URL.Path)
	})
}

// statusRecorder captures the status code written by the inner handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
