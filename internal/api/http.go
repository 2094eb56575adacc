package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vaiellony/key-value-db/pkg/kv"
)

// Server wraps a kv.Store and exposes HTTP endpoints for KV operations.
type Server struct {
	Store kv.Store
}

// NewServer creates a new HTTP server with the given store.
func NewServer(store kv.Store) *Server {
	return &Server{
		Store: store,
	}
}

// RegisterRoutes registers the KV handlers on the given mux. A single root
// handler owns the dispatch so that /get, /set and /delete match by path
// prefix (trailing slashes and segments are tolerated but not parsed).
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/", RequestLogger(Recoverer(http.HandlerFunc(s.dispatch))))
}

// dispatch selects the handler by HTTP method. Routing below this point is
// by path prefix.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method Not Allowed"))
	}
}

// handleGet handles GET /get?key=foo requests, plus the error responses for
// every other GET path.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/get"):
		key := r.URL.Query().Get("key")
		if key == "" {
			writeJSON(w, http.StatusBadRequest, errorBody("Missing key parameter"))
			return
		}

		value, ok := s.Store.Get(key)
		if !ok {
			writeJSON(w, http.StatusNotFound,
				errorBody(fmt.Sprintf("Key `%s` does not exist in the database", key)))
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"key":   key,
			"value": value,
		})

	case strings.HasPrefix(path, "/set"), strings.HasPrefix(path, "/delete"):
		writeJSON(w, http.StatusMethodNotAllowed,
			errorBody("Method Not Allowed. Using GET instead of POST"))

	default:
		writeJSON(w, http.StatusNotFound,
			errorBody(fmt.Sprintf("invalid path `%s`. Unavailable resource", path)))
	}
}

// handlePost routes POST requests to the mutating handlers.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/set"):
		s.handleSet(w, r)

	case strings.HasPrefix(path, "/delete"):
		s.handleDelete(w, r)

	case strings.HasPrefix(path, "/get"):
		writeJSON(w, http.StatusMethodNotAllowed,
			errorBody("Method Not Allowed. Using POST instead of GET"))

	default:
		writeJSON(w, http.StatusNotFound,
			errorBody(fmt.Sprintf("invalid path `%s`. Unavailable resource", path)))
	}
}

// handleSet handles POST /set requests with JSON body.
// Expects: {"key": "foo", "value": <any JSON value>}
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	payload, verr := validateJSONRequest(r, "key", "value")
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(verr.Message))
		return
	}

	key, ok := payload["key"].(string)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("Key must be a string"))
		return
	}
	value := payload["value"]

	prev, existed := s.Store.Set(key, value)
	if existed {
		logrus.Infof("Overriding existing key %s --> %v with new value: %v", key, prev, value)
	} else {
		logrus.Infof("Inserting new key-value pair: %s --> %v", key, value)
	}

	writeJSON(w, http.StatusOK, payload)
}

// handleDelete handles POST /delete requests with JSON body.
// Expects: {"key": "foo"}. Deleting a missing key is an idempotent success,
// reported with a message rather than an error.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	payload, verr := validateJSONRequest(r, "key")
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(verr.Message))
		return
	}

	key, ok := payload["key"].(string)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("Key must be a string"))
		return
	}

	value, existed := s.Store.Delete(key)
	if !existed {
		logrus.Infof("Tried to delete non-existent key: %s", key)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Key `%s` does not exist", key),
		})
		return
	}

	logrus.Infof("Deleted key-value pair: %s --> %v", key, value)
	writeJSON(w, http.StatusOK, map[string]any{
		"key":   key,
		"value": value,
	})
}
