package api

import (
	"encoding/json"
	"net/http"
)

// response renders itself to the client.
type response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type jsonResponse struct {
	status      int
	contentType string
	body        any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	ct := j.contentType
	if ct == "" {
		ct = "application/json; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

func jsonOK(body any) response {
	return jsonResponse{status: http.StatusOK, body: body}
}

// httpError is an API error with a stable machine readable key.
type httpError struct {
	Status  int    `json:"-"`
	Key     string `json:"code"`
	Message string `json:"message"`
}

func (e httpError) Error() string { return e.Key + ": " + e.Message }

func (e httpError) Render(w http.ResponseWriter, r *http.Request) error {
	return jsonResponse{status: e.Status, body: errorBody{Error: e}}.Render(w, r)
}

type errorBody struct {
	Error httpError `json:"error"`
}

func errBadRequest(msg string) httpError {
	return httpError{Status: http.StatusBadRequest, Key: "bad_request", Message: msg}
}

func errNotFound(msg string) httpError {
	return httpError{Status: http.StatusNotFound, Key: "not_found", Message: msg}
}

func errTooLarge(msg string) httpError {
	return httpError{Status: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large", Message: msg}
}

func errInvalidSchema(msg string) httpError {
	return httpError{Status: http.StatusInternalServerError, Key: "invalid_schema", Message: msg}
}

// ValidationResponse is the body of POST /schemas/{name}/validate.
type ValidationResponse struct {
	Valid bool             `json:"valid"`
	Error *ValidationError `json:"error,omitempty"`
}

// ValidationError describes the first failing field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Key     string `json:"key"`
}

// SchemaList is the body of GET /schemas.
type SchemaList struct {
	Schemas []string `json:"schemas"`
}
