package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

const jsonContentType = "application/json"

// shapeRejectionMessage is the fixed error returned whenever the request is
// not shaped like a JSON request, regardless of which check failed.
const shapeRejectionMessage = "Request should accept JSON and its body should be a JSON object; " +
	"a length header must also be specified."

// ValidationError is a client-facing rejection produced before a request
// reaches the store. Its message is safe to return in the response body.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// validateJSONRequest checks that the request is shaped like a JSON request
// and that its body contains every expected parameter. On success it returns
// the decoded body; on failure it returns a ValidationError whose message can
// be sent back to the client.
func validateJSONRequest(r *http.Request, expectedParams ...string) (map[string]any, *ValidationError) {
	payload, ok := loadJSONBody(r)
	if !ok {
		return nil, &ValidationError{Message: shapeRejectionMessage}
	}

	var missing bool
	for _, param := range expectedParams {
		if _, present := payload[param]; !present {
			missing = true
			break
		}
	}
	if missing {
		found := make([]string, 0, len(payload))
		for name := range payload {
			found = append(found, name)
		}
		sort.Strings(found)

		return nil, &ValidationError{
			Message: fmt.Sprintf("Request is missing parameters. Expected: %v, Found: %v",
				expectedParams, found),
		}
	}

	return payload, nil
}

// loadJSONBody decides whether the request is shaped like a JSON request (a
// known body length, JSON acceptable to the client, and a JSON content type)
// and decodes the body. Parse failures and a JSON null degrade to an empty
// object rather than rejecting the request: the caller's missing-parameter
// check then produces a field-level error instead of a generic parse error.
func loadJSONBody(r *http.Request) (map[string]any, bool) {
	hasLength := r.ContentLength >= 0

	raw, err := io.ReadAll(r.Body)
	if err != nil || !utf8.Valid(raw) {
		raw = nil
	}

	if !hasLength || !acceptsJSON(r.Header.Get("Accept")) || !isJSONContent(r.Header.Get("Content-Type")) {
		return nil, false
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		payload = map[string]any{}
	}

	return payload, true
}

// acceptsJSON reports whether the Accept header allows a JSON response.
// An absent header means no preference, which is treated as accepting.
func acceptsJSON(header string) bool {
	if header == "" {
		return true
	}

	for _, item := range strings.Split(header, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(item, ";", 2)[0])
		if mediaType == jsonContentType || mediaType == "*/*" {
			return true
		}
	}

	return false
}

// isJSONContent reports whether the declared content type is a JSON media
// type. Matching is by substring so that parameterized values such as
// "application/json; charset=utf-8" pass.
func isJSONContent(contentType string) bool {
	return strings.Contains(contentType, jsonContentType)
}
